package dto

import (
	"time"

	"github.com/spec-kit/groundops-service/internal/domain"
)

// CreateBagRequest payload. A bag enters the pipeline at a check-in
// counter.
type CreateBagRequest struct {
	Ticket   int64  `json:"ticket" validate:"required"`
	Terminal string `json:"terminal" validate:"required"`
	Counter  int    `json:"counter" validate:"required,min=1"`
}

// MoveBagRequest requests one pipeline transition.
type MoveBagRequest struct {
	ID       int64  `json:"id" validate:"required"`
	Location string `json:"location" validate:"required,oneof=security gate loaded"`
	Flight   string `json:"flight"`
}

// DeleteBagsRequest removes every bag of a ticket.
type DeleteBagsRequest struct {
	Ticket int64 `json:"ticket" validate:"required"`
}

// BagResponse response.
type BagResponse struct {
	ID        int64              `json:"id"`
	Ticket    int64              `json:"ticket"`
	Location  domain.BagLocation `json:"location"`
	CreatedAt time.Time          `json:"created_at"`
}

// NewBagResponse maps a bag row.
func NewBagResponse(bag *domain.Bag) BagResponse {
	return BagResponse{
		ID:        bag.ID,
		Ticket:    bag.Ticket,
		Location:  bag.Location,
		CreatedAt: bag.CreatedAt,
	}
}

// NewBagResponses maps a listing.
func NewBagResponses(bags []domain.Bag) []BagResponse {
	result := make([]BagResponse, 0, len(bags))
	for i := range bags {
		result = append(result, NewBagResponse(&bags[i]))
	}
	return result
}
