package workflow

import (
	"fmt"

	"github.com/spec-kit/groundops-service/internal/domain"
	apperrors "github.com/spec-kit/groundops-service/pkg/util/errorutil"
)

// MoveToSecurity validates the check-in → security transition.
func MoveToSecurity(bag *domain.Bag, owner *domain.Passenger) (domain.BagLocation, error) {
	if err := ownerMovable(owner); err != nil {
		return domain.BagLocation{}, err
	}
	if bag.Location.Type != domain.LocationCheckIn {
		return domain.BagLocation{}, apperrors.NewConflict(
			fmt.Sprintf("cannot move bag to security from %s", bag.Location.Type), nil)
	}
	return domain.SecurityLocation(), nil
}

// ClearSecurity validates the security → gate transition. The bag lands at
// the gate of the owning passenger's flight.
func ClearSecurity(bag *domain.Bag, owner *domain.Passenger, flight *domain.Flight) (domain.BagLocation, error) {
	if err := ownerMovable(owner); err != nil {
		return domain.BagLocation{}, err
	}
	if bag.Location.Type != domain.LocationSecurity {
		return domain.BagLocation{}, apperrors.NewConflict(
			fmt.Sprintf("cannot clear security from %s", bag.Location.Type), nil)
	}
	if flight == nil || flight.Flight != owner.Flight {
		return domain.BagLocation{}, apperrors.NewConflict("bag destination does not match passenger flight", nil)
	}
	return domain.GateLocation(flight.Gate), nil
}

// LoadOnFlight validates the gate → loaded transition. Loading an already
// loaded bag onto the same flight is a no-op rather than an error.
func LoadOnFlight(bag *domain.Bag, owner *domain.Passenger, flight *domain.Flight) (domain.BagLocation, error) {
	if err := ownerMovable(owner); err != nil {
		return domain.BagLocation{}, err
	}
	if flight == nil || flight.Flight != owner.Flight {
		return domain.BagLocation{}, apperrors.NewConflict("bag destination does not match passenger flight", nil)
	}
	switch bag.Location.Type {
	case domain.LocationLoaded:
		if bag.Location.Flight == flight.Flight {
			return bag.Location, nil
		}
		return domain.BagLocation{}, apperrors.NewConflict(
			fmt.Sprintf("bag already loaded on %s", bag.Location.Flight), nil)
	case domain.LocationGate:
		return domain.LoadedLocation(flight.Flight), nil
	default:
		return domain.BagLocation{}, apperrors.NewConflict(
			fmt.Sprintf("cannot load bag from %s", bag.Location.Type), nil)
	}
}

func ownerMovable(owner *domain.Passenger) error {
	if owner == nil {
		return apperrors.NewNotFound("passenger", nil)
	}
	if owner.Remove {
		return apperrors.NewConflict("passenger is flagged for removal", nil)
	}
	return nil
}
