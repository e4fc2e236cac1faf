// Package workflow contains the pure transition rules for passenger
// check-in, baggage movement, and flight departure readiness. Functions here
// only inspect snapshots and report the next legal state; persistence and
// role checks live in the service and scope layers.
package workflow

import (
	"fmt"

	"github.com/spec-kit/groundops-service/internal/domain"
	apperrors "github.com/spec-kit/groundops-service/pkg/util/errorutil"
)

// statusOrder ranks passenger states along the one-way pipeline.
var statusOrder = map[domain.PassengerStatus]int{
	domain.StatusNotCheckedIn: 0,
	domain.StatusCheckedIn:    1,
	domain.StatusBoarded:      2,
}

// CheckIn validates the not-checked-in → checked-in transition and returns
// the next status.
func CheckIn(p *domain.Passenger) (domain.PassengerStatus, error) {
	if p.Remove {
		return "", apperrors.NewConflict("passenger is flagged for removal", nil)
	}
	if p.Status != domain.StatusNotCheckedIn {
		return "", apperrors.NewConflict(
			fmt.Sprintf("cannot check in passenger with status %q", p.Status), nil)
	}
	return domain.StatusCheckedIn, nil
}

// Board validates the checked-in → boarded transition. Every bag belonging
// to the passenger must already be at the gate or loaded.
func Board(p *domain.Passenger, bags []domain.Bag) (domain.PassengerStatus, error) {
	if p.Remove {
		return "", apperrors.NewConflict("passenger is flagged for removal", nil)
	}
	if p.Status != domain.StatusCheckedIn {
		return "", apperrors.NewConflict(
			fmt.Sprintf("cannot board passenger with status %q", p.Status), nil)
	}
	for _, bag := range bags {
		switch bag.Location.Type {
		case domain.LocationGate, domain.LocationLoaded:
		case domain.LocationCheckIn, domain.LocationSecurity:
			return "", apperrors.NewConflict(
				fmt.Sprintf("bag %d is still at %s", bag.ID, bag.Location.Type), nil)
		default:
			return "", apperrors.NewConflict(
				fmt.Sprintf("bag %d has unknown location %q", bag.ID, bag.Location.Type), nil)
		}
	}
	return domain.StatusBoarded, nil
}

// FlagForRemoval validates setting the remove marker. The marker never
// changes status; it only halts further transitions.
func FlagForRemoval(p *domain.Passenger) error {
	if p.Remove {
		return apperrors.NewConflict("passenger is already flagged for removal", nil)
	}
	return nil
}

// StatusProgresses reports whether moving from to next advances the one-way
// pipeline. A transition that stays put or moves backward is never legal.
func StatusProgresses(from, to domain.PassengerStatus) bool {
	fromRank, okFrom := statusOrder[from]
	toRank, okTo := statusOrder[to]
	return okFrom && okTo && toRank == fromRank+1
}
