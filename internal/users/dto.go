package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/marianalima/joalheria-backend/pkg/db/models"
)

// RegisterInput carries a validated account registration.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    *string
}

// UserDTO is the account shape returned to clients. The password hash never
// leaves the service.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Phone:     user.Phone,
		CreatedAt: user.CreatedAt,
	}
}

func toUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, 0, len(users))
	for _, user := range users {
		dtos = append(dtos, toUserDTO(user))
	}
	return dtos
}
