package workflow

import (
	"github.com/spec-kit/groundops-service/internal/domain"
	apperrors "github.com/spec-kit/groundops-service/pkg/util/errorutil"
)

// DepartureReady reports whether a flight may depart: every non-removed
// passenger boarded and every bag of a non-removed passenger loaded.
// Passengers flagged for removal, and their bags, do not hold the flight.
func DepartureReady(passengers []domain.Passenger, bags []domain.Bag) bool {
	removed := make(map[int64]bool, len(passengers))
	for _, p := range passengers {
		if p.Remove {
			removed[p.Ticket] = true
			continue
		}
		if p.Status != domain.StatusBoarded {
			return false
		}
	}
	for _, bag := range bags {
		if removed[bag.Ticket] {
			continue
		}
		if bag.Location.Type != domain.LocationLoaded {
			return false
		}
	}
	return true
}

// Depart validates the one-way departed transition for a flight.
func Depart(flight *domain.Flight, passengers []domain.Passenger, bags []domain.Bag) error {
	if flight.Departed {
		return apperrors.NewConflict("flight has already departed", nil)
	}
	if !DepartureReady(passengers, bags) {
		return apperrors.NewConflict("flight is not ready to depart", nil)
	}
	return nil
}
