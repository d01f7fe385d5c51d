package testimonials

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marianalima/joalheria-backend/pkg/db/models"
	pkgerrors "github.com/marianalima/joalheria-backend/pkg/errors"
)

type stubRepo struct {
	created      *models.Testimonial
	listResult   []models.Testimonial
	responseRows int64
	responseText string
	responseAt   time.Time
	deleteRows   int64
}

func (s *stubRepo) Create(_ context.Context, testimonial *models.Testimonial) (*models.Testimonial, error) {
	if testimonial.ID == uuid.Nil {
		testimonial.ID = uuid.New()
	}
	s.created = testimonial
	return testimonial, nil
}

func (s *stubRepo) List(_ context.Context) ([]models.Testimonial, error) {
	return s.listResult, nil
}

func (s *stubRepo) SetResponse(_ context.Context, _ uuid.UUID, text string, at time.Time) (int64, error) {
	s.responseText = text
	s.responseAt = at
	return s.responseRows, nil
}

func (s *stubRepo) Delete(_ context.Context, _ uuid.UUID) (int64, error) {
	return s.deleteRows, nil
}

func TestCreateValidatesRating(t *testing.T) {
	svc, err := NewService(&stubRepo{})
	require.NoError(t, err)

	for _, rating := range []int{0, -1, 6} {
		_, err := svc.Create(context.Background(), CreateInput{
			AuthorName: "Ana",
			Rating:     rating,
			Body:       "Peça linda!",
		})
		require.Error(t, err, "rating %d", rating)
		assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	}
}

func TestCreateTrimsFields(t *testing.T) {
	repo := &stubRepo{}
	svc, err := NewService(repo)
	require.NoError(t, err)

	dto, err := svc.Create(context.Background(), CreateInput{
		AuthorName: "  Ana  ",
		Rating:     5,
		Body:       "  Peça linda, chegou rápido!  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", dto.AuthorName)
	assert.Equal(t, "Peça linda, chegou rápido!", dto.Body)
	assert.Nil(t, dto.ResponseText)
}

func TestRespondRecordsTimestamp(t *testing.T) {
	repo := &stubRepo{responseRows: 1}
	svc, err := NewService(repo)
	require.NoError(t, err)

	fixed := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	svc.(*service).now = func() time.Time { return fixed }

	require.NoError(t, svc.Respond(context.Background(), uuid.New(), "  Obrigada!  "))
	assert.Equal(t, "Obrigada!", repo.responseText)
	assert.Equal(t, fixed, repo.responseAt)
}

func TestRespondMissingTestimonial(t *testing.T) {
	svc, err := NewService(&stubRepo{responseRows: 0})
	require.NoError(t, err)

	err = svc.Respond(context.Background(), uuid.New(), "Obrigada!")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestDeleteMissingTestimonial(t *testing.T) {
	svc, err := NewService(&stubRepo{deleteRows: 0})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
