package testimonials

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marianalima/joalheria-backend/pkg/db/models"
)

// Repository persists testimonials.
type Repository interface {
	Create(ctx context.Context, testimonial *models.Testimonial) (*models.Testimonial, error)
	List(ctx context.Context) ([]models.Testimonial, error)
	SetResponse(ctx context.Context, id uuid.UUID, text string, at time.Time) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a testimonials repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, testimonial *models.Testimonial) (*models.Testimonial, error) {
	if err := r.db.WithContext(ctx).Create(testimonial).Error; err != nil {
		return nil, err
	}
	return testimonial, nil
}

func (r *repository) List(ctx context.Context) ([]models.Testimonial, error) {
	var testimonials []models.Testimonial
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&testimonials).Error
	if err != nil {
		return nil, err
	}
	return testimonials, nil
}

func (r *repository) SetResponse(ctx context.Context, id uuid.UUID, text string, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Testimonial{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"response_text": text,
			"response_at":   at,
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Testimonial{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
