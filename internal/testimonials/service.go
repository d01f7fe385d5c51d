package testimonials

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/marianalima/joalheria-backend/pkg/db/models"
	pkgerrors "github.com/marianalima/joalheria-backend/pkg/errors"
)

// Service exposes testimonial operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*TestimonialDTO, error)
	List(ctx context.Context) ([]TestimonialDTO, error)
	Respond(ctx context.Context, id uuid.UUID, text string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService builds the testimonials service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("testimonials repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*TestimonialDTO, error) {
	author := strings.TrimSpace(input.AuthorName)
	if author == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "author name required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	body := strings.TrimSpace(input.Body)
	if body == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "testimonial body required")
	}

	created, err := s.repo.Create(ctx, &models.Testimonial{
		AuthorName: author,
		Rating:     input.Rating,
		Body:       body,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create testimonial")
	}

	dto := toTestimonialDTO(*created)
	return &dto, nil
}

func (s *service) List(ctx context.Context) ([]TestimonialDTO, error) {
	testimonials, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list testimonials")
	}
	return toTestimonialDTOs(testimonials), nil
}

func (s *service) Respond(ctx context.Context, id uuid.UUID, text string) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "testimonial id required")
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "response text required")
	}

	affected, err := s.repo.SetResponse(ctx, id, trimmed, s.now())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "respond to testimonial")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "testimonial not found")
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "testimonial id required")
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete testimonial")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "testimonial not found")
	}
	return nil
}
