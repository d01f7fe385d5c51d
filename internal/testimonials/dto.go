package testimonials

import (
	"time"

	"github.com/google/uuid"

	"github.com/marianalima/joalheria-backend/pkg/db/models"
)

// CreateInput carries a validated public review submission.
type CreateInput struct {
	AuthorName string
	Rating     int
	Body       string
}

// TestimonialDTO is the review shape returned to clients.
type TestimonialDTO struct {
	ID           uuid.UUID  `json:"id"`
	AuthorName   string     `json:"author_name"`
	Rating       int        `json:"rating"`
	Body         string     `json:"body"`
	ResponseText *string    `json:"response_text,omitempty"`
	ResponseAt   *time.Time `json:"response_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func toTestimonialDTO(testimonial models.Testimonial) TestimonialDTO {
	return TestimonialDTO{
		ID:           testimonial.ID,
		AuthorName:   testimonial.AuthorName,
		Rating:       testimonial.Rating,
		Body:         testimonial.Body,
		ResponseText: testimonial.ResponseText,
		ResponseAt:   testimonial.ResponseAt,
		CreatedAt:    testimonial.CreatedAt,
	}
}

func toTestimonialDTOs(testimonials []models.Testimonial) []TestimonialDTO {
	dtos := make([]TestimonialDTO, 0, len(testimonials))
	for _, testimonial := range testimonials {
		dtos = append(dtos, toTestimonialDTO(testimonial))
	}
	return dtos
}
