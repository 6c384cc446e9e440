package response

import (
	"time"

	"vehicle-rental/internal/data/entity"
)

type UserResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Phone         *string   `json:"phone,omitempty"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"email_verified"`
	Banned        bool      `json:"banned"`
	AverageRating *float32  `json:"average_rating,omitempty"`
	ReportCount   int       `json:"report_count"`
	CanRent       bool      `json:"can_rent"`
	CreatedAt     time.Time `json:"created_at"`
}

func ToUserResponse(user *entity.User) *UserResponse {
	return &UserResponse{
		ID:            user.ID.String(),
		Email:         user.Email,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Phone:         user.Phone,
		Role:          string(user.Role),
		EmailVerified: user.EmailVerified,
		Banned:        user.Banned,
		AverageRating: user.AverageRating,
		ReportCount:   user.ReportCount,
		CanRent:       user.CanRent(),
		CreatedAt:     user.CreatedAt,
	}
}
