package testimonials

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/marianalima/joalheria-backend/pkg/db/models"
)

func setupTestimonialsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS testimonials (
  id TEXT PRIMARY KEY,
  author_name TEXT NOT NULL,
  rating INTEGER NOT NULL,
  body TEXT NOT NULL,
  response_text TEXT,
  response_at DATETIME,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)

	return db
}

func seedTestimonial(t *testing.T, db *gorm.DB, author string, createdAt time.Time) models.Testimonial {
	t.Helper()

	row := models.Testimonial{
		ID:         uuid.New(),
		AuthorName: author,
		Rating:     5,
		Body:       "Peça linda, chegou rápido.",
		CreatedAt:  createdAt,
	}
	require.NoError(t, db.Create(&row).Error)
	return row
}

func TestTestimonialsRepositoryListNewestFirst(t *testing.T) {
	db := setupTestimonialsTestDB(t)
	repo := NewRepository(db)

	base := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	older := seedTestimonial(t, db, "Ana", base)
	newer := seedTestimonial(t, db, "Beatriz", base.Add(time.Hour))

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
}

func TestTestimonialsRepositorySetResponse(t *testing.T) {
	db := setupTestimonialsTestDB(t)
	repo := NewRepository(db)

	row := seedTestimonial(t, db, "Carla", time.Now().UTC())

	at := time.Date(2025, 9, 2, 9, 30, 0, 0, time.UTC)
	affected, err := repo.SetResponse(context.Background(), row.ID, "Obrigada pelo carinho!", at)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	var stored models.Testimonial
	require.NoError(t, db.First(&stored, "id = ?", row.ID).Error)
	require.NotNil(t, stored.ResponseText)
	assert.Equal(t, "Obrigada pelo carinho!", *stored.ResponseText)

	affected, err = repo.SetResponse(context.Background(), uuid.New(), "sem alvo", at)
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestTestimonialsRepositoryDelete(t *testing.T) {
	db := setupTestimonialsTestDB(t)
	repo := NewRepository(db)

	row := seedTestimonial(t, db, "Diana", time.Now().UTC())

	affected, err := repo.Delete(context.Background(), row.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.Delete(context.Background(), row.ID)
	require.NoError(t, err)
	assert.Zero(t, affected)
}
