package dto

import (
	"time"

	"github.com/spec-kit/groundops-service/internal/domain"
)

// CreatePassengerRequest payload.
type CreatePassengerRequest struct {
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name" validate:"required"`
	Identification int    `json:"identification" validate:"required"`
	Flight         string `json:"flight" validate:"required"`
}

// UpdatePassengerRequest advances a passenger's status or flags them for
// removal. Exactly one of Status and Flag must be set.
type UpdatePassengerRequest struct {
	ID     int64  `json:"id" validate:"required"`
	Status string `json:"status" validate:"omitempty,oneof=checked-in boarded"`
	Flag   bool   `json:"flag"`
}

// PassengerResponse response.
type PassengerResponse struct {
	ID             int64                  `json:"id"`
	FirstName      string                 `json:"first_name"`
	LastName       string                 `json:"last_name"`
	Identification int                    `json:"identification"`
	Ticket         int64                  `json:"ticket"`
	Flight         string                 `json:"flight"`
	Status         domain.PassengerStatus `json:"status"`
	Remove         bool                   `json:"remove"`
	CreatedAt      time.Time              `json:"created_at"`
}

// NewPassengerResponse maps a passenger row.
func NewPassengerResponse(passenger *domain.Passenger) PassengerResponse {
	return PassengerResponse{
		ID:             passenger.ID,
		FirstName:      passenger.FirstName,
		LastName:       passenger.LastName,
		Identification: passenger.Identification,
		Ticket:         passenger.Ticket,
		Flight:         passenger.Flight,
		Status:         passenger.Status,
		Remove:         passenger.Remove,
		CreatedAt:      passenger.CreatedAt,
	}
}

// NewPassengerResponses maps a listing.
func NewPassengerResponses(passengers []domain.Passenger) []PassengerResponse {
	result := make([]PassengerResponse, 0, len(passengers))
	for i := range passengers {
		result = append(result, NewPassengerResponse(&passengers[i]))
	}
	return result
}
