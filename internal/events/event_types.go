package events

import (
	"time"

	"github.com/spec-kit/groundops-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered     EventType = "user_registered"
	EventPassengerCheckedIn EventType = "passenger_checked_in"
	EventPassengerBoarded   EventType = "passenger_boarded"
	EventPassengerFlagged   EventType = "passenger_flagged"
	EventBagMoved           EventType = "bag_moved"
	EventFlightDeparted     EventType = "flight_departed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     string      `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload carries generated credentials to the notifier. The
// plaintext password exists only in flight; it is never persisted.
type UserRegisteredPayload struct {
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	FirstName string      `json:"first_name"`
	Password  string      `json:"-"`
}

// PassengerStatusPayload payload.
type PassengerStatusPayload struct {
	PassengerID int64                  `json:"passenger_id"`
	Ticket      int64                  `json:"ticket"`
	Flight      string                 `json:"flight"`
	OldStatus   domain.PassengerStatus `json:"old_status"`
	NewStatus   domain.PassengerStatus `json:"new_status"`
}

// PassengerFlaggedPayload payload.
type PassengerFlaggedPayload struct {
	PassengerID int64  `json:"passenger_id"`
	Ticket      int64  `json:"ticket"`
	Flight      string `json:"flight"`
}

// BagMovedPayload payload.
type BagMovedPayload struct {
	BagID       int64                  `json:"bag_id"`
	Ticket      int64                  `json:"ticket"`
	OldLocation domain.BagLocationType `json:"old_location"`
	NewLocation domain.BagLocationType `json:"new_location"`
}

// FlightDepartedPayload payload.
type FlightDepartedPayload struct {
	Flight  string `json:"flight"`
	Gate    string `json:"gate"`
	Airline string `json:"airline"`
}
