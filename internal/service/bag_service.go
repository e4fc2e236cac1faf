package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/groundops-service/internal/auth"
	"github.com/spec-kit/groundops-service/internal/domain"
	"github.com/spec-kit/groundops-service/internal/events"
	"github.com/spec-kit/groundops-service/internal/repository"
	"github.com/spec-kit/groundops-service/internal/scope"
	"github.com/spec-kit/groundops-service/internal/workflow"
	apperrors "github.com/spec-kit/groundops-service/pkg/util/errorutil"
)

// BagService drives bags through the check-in, security, gate and loaded
// pipeline stages.
type BagService struct {
	bags        repository.BagRepository
	passengers  repository.PassengerRepository
	flights     repository.FlightRepository
	assignments *auth.AssignmentStore
	dispatcher  events.Dispatcher
}

// BagDependencies bundles repositories for the bag service.
type BagDependencies struct {
	BagRepo       repository.BagRepository
	PassengerRepo repository.PassengerRepository
	FlightRepo    repository.FlightRepository
	Assignments   *auth.AssignmentStore
	Dispatcher    events.Dispatcher
}

// BagCreateInput describes a bag checked at a counter.
type BagCreateInput struct {
	Ticket   int64
	Terminal string
	Counter  int
}

// BagMoveInput describes a requested location transition.
type BagMoveInput struct {
	ID       int64
	Location domain.BagLocationType
	Flight   string
}

// NewBagService constructs the service.
func NewBagService(deps BagDependencies) *BagService {
	return &BagService{
		bags:        deps.BagRepo,
		passengers:  deps.PassengerRepo,
		flights:     deps.FlightRepo,
		assignments: deps.Assignments,
		dispatcher:  deps.Dispatcher,
	}
}

// Add checks a bag at a counter for an existing passenger. Airline staff
// check bags for their own flights only.
func (s *BagService) Add(ctx context.Context, caller scope.Identity, input BagCreateInput) (*domain.Bag, error) {
	if err := caller.RequireRole(domain.RoleAdmin, domain.RoleAirline); err != nil {
		return nil, err
	}
	if err := validateTicket(input.Ticket); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Terminal) == "" || input.Counter <= 0 {
		return nil, apperrors.NewValidationError("terminal and counter required", nil)
	}

	owner, flight, err := s.owner(ctx, input.Ticket)
	if err != nil {
		return nil, err
	}
	if !caller.Admin() && flight.Airline != caller.Airline {
		return nil, apperrors.NewForbidden("bag belongs to another airline")
	}
	if owner.Remove {
		return nil, apperrors.NewConflict("passenger is flagged for removal", nil)
	}

	bag := &domain.Bag{
		Ticket:   input.Ticket,
		Location: domain.CheckInLocation(strings.TrimSpace(input.Terminal), input.Counter),
	}
	if err := s.bags.Create(ctx, bag); err != nil {
		return nil, err
	}
	return bag, nil
}

// List returns bags visible to the caller, optionally filtered by flight
// number or ticket.
func (s *BagService) List(ctx context.Context, caller scope.Identity, flight string, ticket int64) ([]domain.Bag, error) {
	filter := repository.BagFilter{
		Flight:  strings.ToUpper(strings.TrimSpace(flight)),
		Ticket:  ticket,
		Airline: caller.AirlineFilter(),
	}
	return s.bags.List(ctx, filter)
}

// Move applies one pipeline transition to a bag. The requested location
// type selects the transition; moving back or skipping stages is refused.
func (s *BagService) Move(ctx context.Context, caller scope.Identity, input BagMoveInput) (*domain.Bag, error) {
	bag, err := s.bags.GetByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("bag", nil)
		}
		return nil, err
	}
	owner, flight, err := s.owner(ctx, bag.Ticket)
	if err != nil {
		return nil, err
	}

	pinned := ""
	if caller.Role == domain.RoleGate {
		if pinned, err = s.assignments.Get(ctx, caller.Username); err != nil {
			return nil, err
		}
	}
	if err := caller.CanMoveBag(input.Location, flight.Airline, flight.Flight, pinned); err != nil {
		return nil, err
	}

	var next domain.BagLocation
	switch input.Location {
	case domain.LocationSecurity:
		next, err = workflow.MoveToSecurity(bag, owner)
	case domain.LocationGate:
		next, err = workflow.ClearSecurity(bag, owner, flight)
	case domain.LocationLoaded:
		target := flight
		if strings.TrimSpace(input.Flight) != "" {
			number := strings.ToUpper(strings.TrimSpace(input.Flight))
			if target, err = s.flights.GetByNumber(ctx, number); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return nil, apperrors.NewNotFound("flight", nil)
				}
				return nil, err
			}
		}
		next, err = workflow.LoadOnFlight(bag, owner, target)
	case domain.LocationCheckIn:
		return nil, apperrors.NewConflict("bags cannot move back to check-in", nil)
	default:
		return nil, apperrors.NewValidationError("unknown bag location", nil)
	}
	if err != nil {
		return nil, err
	}

	old := bag.Location.Type
	if next == bag.Location {
		// Idempotent load; nothing to write.
		return bag, nil
	}
	if err := s.bags.UpdateLocation(ctx, bag.ID, next, bag.Version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewConflict("bag was modified concurrently", nil)
		}
		return nil, err
	}
	bag.Location = next
	bag.Version++

	s.publishEvent(ctx, events.Event{
		Type:  events.EventBagMoved,
		Actor: caller.Username,
		Payload: events.BagMovedPayload{
			BagID:       bag.ID,
			Ticket:      bag.Ticket,
			OldLocation: old,
			NewLocation: next.Type,
		},
	})
	return bag, nil
}

// Delete removes every bag checked under a ticket. Admin only.
func (s *BagService) Delete(ctx context.Context, caller scope.Identity, ticket int64) error {
	if err := caller.RequireRole(domain.RoleAdmin); err != nil {
		return err
	}
	return s.bags.DeleteByTicket(ctx, ticket)
}

func (s *BagService) owner(ctx context.Context, ticket int64) (*domain.Passenger, *domain.Flight, error) {
	owner, err := s.passengers.GetByTicket(ctx, ticket)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("passenger", nil)
		}
		return nil, nil, err
	}
	flight, err := s.flights.GetByNumber(ctx, owner.Flight)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("flight", nil)
		}
		return nil, nil, err
	}
	return owner, flight, nil
}

func (s *BagService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
