package messages

import (
	"time"

	"github.com/google/uuid"

	"github.com/marianalima/joalheria-backend/pkg/db/models"
)

// CreateInput carries a validated contact form submission.
type CreateInput struct {
	SenderName  string
	SenderEmail string
	SenderPhone string
	Subject     string
	Body        string
}

// MessageDTO is the contact message shape returned to the back office.
type MessageDTO struct {
	ID          uuid.UUID `json:"id"`
	SenderName  string    `json:"sender_name"`
	SenderEmail string    `json:"sender_email"`
	SenderPhone string    `json:"sender_phone,omitempty"`
	Subject     string    `json:"subject"`
	Body        string    `json:"body"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}

func toMessageDTO(message models.ContactMessage) MessageDTO {
	return MessageDTO{
		ID:          message.ID,
		SenderName:  message.SenderName,
		SenderEmail: message.SenderEmail,
		SenderPhone: message.SenderPhone,
		Subject:     message.Subject,
		Body:        message.Body,
		Read:        message.Read,
		CreatedAt:   message.CreatedAt,
	}
}

func toMessageDTOs(messages []models.ContactMessage) []MessageDTO {
	dtos := make([]MessageDTO, 0, len(messages))
	for _, message := range messages {
		dtos = append(dtos, toMessageDTO(message))
	}
	return dtos
}
