package dto

import (
	"time"

	"github.com/spec-kit/groundops-service/internal/domain"
)

// PostMessageRequest payload. Recipient is a role name or "all".
type PostMessageRequest struct {
	Airline   string `json:"airline"`
	Recipient string `json:"recipient" validate:"required"`
	Body      string `json:"body" validate:"required"`
}

// MessageResponse response.
type MessageResponse struct {
	ID        int64     `json:"id"`
	Airline   string    `json:"airline"`
	Recipient string    `json:"recipient"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// GateAssignmentRequest pins a gate account to one flight.
type GateAssignmentRequest struct {
	Flight string `json:"flight" validate:"required"`
}

// GateAssignmentResponse reports the current pin, empty when unassigned.
type GateAssignmentResponse struct {
	Flight string `json:"flight"`
}

// NewMessageResponse maps a message row.
func NewMessageResponse(message *domain.Message) MessageResponse {
	return MessageResponse{
		ID:        message.ID,
		Airline:   message.Airline,
		Recipient: message.Recipient,
		Body:      message.Body,
		CreatedAt: message.CreatedAt,
	}
}

// NewMessageResponses maps a listing.
func NewMessageResponses(messages []domain.Message) []MessageResponse {
	result := make([]MessageResponse, 0, len(messages))
	for i := range messages {
		result = append(result, NewMessageResponse(&messages[i]))
	}
	return result
}
