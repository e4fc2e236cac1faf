package dto

import (
	"time"

	"github.com/spec-kit/groundops-service/internal/domain"
)

// RegisterUserRequest payload. Username and password are generated server
// side.
type RegisterUserRequest struct {
	Role        string `json:"role" validate:"required,oneof=airline gate ground"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone"`
	Airline     string `json:"airline"`
	FullAirline string `json:"full_airline"`
}

// RegisterUserResponse returns the generated credentials exactly once.
type RegisterUserResponse struct {
	User     UserSummary `json:"user"`
	Password string      `json:"password"`
}

// UserSummary response.
type UserSummary struct {
	ID          int64       `json:"id"`
	Username    string      `json:"username"`
	Role        domain.Role `json:"role"`
	NewAccount  bool        `json:"new_account"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	Email       string      `json:"email,omitempty"`
	Phone       string      `json:"phone,omitempty"`
	Airline     string      `json:"airline,omitempty"`
	FullAirline string      `json:"full_airline,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// DeleteByIDsRequest is the shared bulk-delete payload.
type DeleteByIDsRequest struct {
	IDs []int64 `json:"ids" validate:"required,min=1"`
}

// NewUserSummary maps a user row.
func NewUserSummary(user *domain.User) UserSummary {
	return UserSummary{
		ID:          user.ID,
		Username:    user.Username,
		Role:        user.Role,
		NewAccount:  user.NewAccount,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		Phone:       user.Phone,
		Airline:     user.Airline,
		FullAirline: user.FullAirline,
		CreatedAt:   user.CreatedAt,
	}
}

// NewUserSummaries maps a listing.
func NewUserSummaries(users []domain.User) []UserSummary {
	result := make([]UserSummary, 0, len(users))
	for i := range users {
		result = append(result, NewUserSummary(&users[i]))
	}
	return result
}
