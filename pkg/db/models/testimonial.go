package models

import (
	"time"

	"github.com/google/uuid"
)

// Testimonial is a public review with an optional admin response.
type Testimonial struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	AuthorName   string     `gorm:"column:author_name;not null"`
	Rating       int        `gorm:"column:rating;not null"`
	Body         string     `gorm:"column:body;not null"`
	ResponseText *string    `gorm:"column:response_text"`
	ResponseAt   *time.Time `gorm:"column:response_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
}
