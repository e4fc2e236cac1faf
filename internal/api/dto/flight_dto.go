package dto

import (
	"time"

	"github.com/spec-kit/groundops-service/internal/domain"
)

// CreateFlightRequest payload.
type CreateFlightRequest struct {
	Flight      string `json:"flight" validate:"required"`
	Gate        string `json:"gate" validate:"required"`
	Destination string `json:"destination" validate:"required"`
	Airline     string `json:"airline"`
}

// FlightResponse response.
type FlightResponse struct {
	ID          int64     `json:"id"`
	Flight      string    `json:"flight"`
	Gate        string    `json:"gate"`
	Destination string    `json:"destination"`
	Airline     string    `json:"airline"`
	Departed    bool      `json:"departed"`
	CreatedAt   time.Time `json:"created_at"`
}

// RemovalsResponse reports flagged passengers and departed flights awaiting
// an admin purge.
type RemovalsResponse struct {
	Passengers int `json:"passengers"`
	Flights    int `json:"flights"`
}

// NewFlightResponse maps a flight row.
func NewFlightResponse(flight *domain.Flight) FlightResponse {
	return FlightResponse{
		ID:          flight.ID,
		Flight:      flight.Flight,
		Gate:        flight.Gate,
		Destination: flight.Destination,
		Airline:     flight.Airline,
		Departed:    flight.Departed,
		CreatedAt:   flight.CreatedAt,
	}
}

// NewFlightResponses maps a listing.
func NewFlightResponses(flights []domain.Flight) []FlightResponse {
	result := make([]FlightResponse, 0, len(flights))
	for i := range flights {
		result = append(result, NewFlightResponse(&flights[i]))
	}
	return result
}
