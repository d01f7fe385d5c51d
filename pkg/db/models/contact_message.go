package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactMessage is a contact form submission reviewed from the back office.
type ContactMessage struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SenderName  string    `gorm:"column:sender_name;not null"`
	SenderEmail string    `gorm:"column:sender_email;not null"`
	SenderPhone string    `gorm:"column:sender_phone;not null;default:''"`
	Subject     string    `gorm:"column:subject;not null"`
	Body        string    `gorm:"column:body;not null"`
	Read        bool      `gorm:"column:read;not null;default:false"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}
