// Package scope restricts what each role may see and mutate. Every service
// call receives an Identity resolved once per request; nothing here reads
// ambient state.
package scope

import (
	"github.com/spec-kit/groundops-service/internal/domain"
	apperrors "github.com/spec-kit/groundops-service/pkg/util/errorutil"
)

// Identity describes the authenticated caller.
type Identity struct {
	Username string
	Role     domain.Role
	Airline  string
}

// Admin reports whether the caller has unrestricted access.
func (id Identity) Admin() bool {
	return id.Role == domain.RoleAdmin
}

// CanSeeFlight reports read visibility of a flight.
func (id Identity) CanSeeFlight(f *domain.Flight) bool {
	switch id.Role {
	case domain.RoleAdmin, domain.RoleGround:
		return true
	case domain.RoleAirline, domain.RoleGate:
		return f.Airline == id.Airline
	}
	return false
}

// AirlineFilter returns the airline code rows should be filtered by, or ""
// for an unfiltered view. Airline and gate staff see only their own
// airline's rows; ground crews carry no airline code and see the whole
// terminal. Gate mutation rights are narrowed further by the pinned
// assignment.
func (id Identity) AirlineFilter() string {
	switch id.Role {
	case domain.RoleAirline, domain.RoleGate:
		return id.Airline
	}
	return ""
}

// RequireRole fails with Forbidden unless the caller holds one of the
// allowed roles.
func (id Identity) RequireRole(allowed ...domain.Role) error {
	for _, role := range allowed {
		if id.Role == role {
			return nil
		}
	}
	return apperrors.NewForbidden("insufficient role")
}

// CanMutatePassenger reports whether the caller may advance or flag a
// passenger on the given flight. pinned is the gate caller's current
// assignment ("" when unassigned).
func (id Identity) CanMutatePassenger(flightAirline, flightNumber, pinned string) error {
	switch id.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleAirline:
		if flightAirline != id.Airline {
			return apperrors.NewForbidden("passenger belongs to another airline")
		}
		return nil
	case domain.RoleGate:
		if flightAirline != id.Airline {
			return apperrors.NewForbidden("passenger belongs to another airline")
		}
		if pinned != "" && pinned != flightNumber {
			return apperrors.NewForbidden("gate assignment pinned to another flight")
		}
		return nil
	case domain.RoleGround:
		// Ground crews move bags; passenger flagging is their only
		// passenger-level operation and is airline-agnostic.
		return nil
	}
	return apperrors.NewForbidden("insufficient role")
}

// CanMoveBag reports whether the caller may apply a location transition.
func (id Identity) CanMoveBag(next domain.BagLocationType, flightAirline, flightNumber, pinned string) error {
	switch id.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleGround:
		// Security screening and loading only.
		switch next {
		case domain.LocationSecurity, domain.LocationGate, domain.LocationLoaded:
			return nil
		}
		return apperrors.NewForbidden("ground crew cannot perform check-in moves")
	case domain.RoleGate:
		if flightAirline != id.Airline {
			return apperrors.NewForbidden("bag belongs to another airline")
		}
		if pinned != "" && pinned != flightNumber {
			return apperrors.NewForbidden("gate assignment pinned to another flight")
		}
		if next != domain.LocationLoaded {
			return apperrors.NewForbidden("gate crew may only load bags")
		}
		return nil
	case domain.RoleAirline:
		if flightAirline != id.Airline {
			return apperrors.NewForbidden("bag belongs to another airline")
		}
		if next != domain.LocationSecurity {
			return apperrors.NewForbidden("airline staff may only send bags to security")
		}
		return nil
	}
	return apperrors.NewForbidden("insufficient role")
}
