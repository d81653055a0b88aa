package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/productivity-api/internal/models"
)

// UserDTO represents a user in API responses. The password hash never
// leaves the server.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
