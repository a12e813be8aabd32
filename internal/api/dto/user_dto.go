package dto

import (
	"time"

	"github.com/shubh1628/Dabba-delight/internal/domain"
)

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string          `json:"email"`
	Password string          `json:"password"`
	UserType domain.UserType `json:"userType"`
}

// SignupRequest payload for new accounts.
type SignupRequest struct {
	Email           string          `json:"email"`
	Password        string          `json:"password"`
	ConfirmPassword string          `json:"confirmPassword"`
	UserType        domain.UserType `json:"userType"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        string          `json:"id"`
	Email     string          `json:"email"`
	UserType  domain.UserType `json:"userType"`
	CreatedAt time.Time       `json:"createdAt"`
}

// NewUserResponse maps a domain user, dropping the password hash.
func NewUserResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		UserType:  user.UserType,
		CreatedAt: user.CreatedAt,
	}
}
