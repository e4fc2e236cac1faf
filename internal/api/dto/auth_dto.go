package dto

import (
	"github.com/spec-kit/groundops-service/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest payload. The new password must be typed twice.
type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// ProfileResponse describes the authenticated account.
type ProfileResponse struct {
	Username    string      `json:"username"`
	Role        domain.Role `json:"role"`
	NewAccount  bool        `json:"new_account"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	Email       string      `json:"email,omitempty"`
	Phone       string      `json:"phone,omitempty"`
	Airline     string      `json:"airline,omitempty"`
	FullAirline string      `json:"full_airline,omitempty"`
}

// NewProfileResponse maps a user row.
func NewProfileResponse(user *domain.User) ProfileResponse {
	return ProfileResponse{
		Username:    user.Username,
		Role:        user.Role,
		NewAccount:  user.NewAccount,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		Phone:       user.Phone,
		Airline:     user.Airline,
		FullAirline: user.FullAirline,
	}
}
