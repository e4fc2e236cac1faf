package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
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

// PassengerService coordinates the passenger check-in workflow.
type PassengerService struct {
	passengers  repository.PassengerRepository
	flights     repository.FlightRepository
	bags        repository.BagRepository
	assignments *auth.AssignmentStore
	dispatcher  events.Dispatcher
}

// PassengerDependencies bundles repositories for the passenger service.
type PassengerDependencies struct {
	PassengerRepo repository.PassengerRepository
	FlightRepo    repository.FlightRepository
	BagRepo       repository.BagRepository
	Assignments   *auth.AssignmentStore
	Dispatcher    events.Dispatcher
}

// PassengerCreateInput describes passenger creation payload.
type PassengerCreateInput struct {
	FirstName      string
	LastName       string
	Identification int
	Flight         string
}

// NewPassengerService constructs the service.
func NewPassengerService(deps PassengerDependencies) *PassengerService {
	return &PassengerService{
		passengers:  deps.PassengerRepo,
		flights:     deps.FlightRepo,
		bags:        deps.BagRepo,
		assignments: deps.Assignments,
		dispatcher:  deps.Dispatcher,
	}
}

// Create books a passenger on a flight with a generated 10-digit ticket.
func (s *PassengerService) Create(ctx context.Context, caller scope.Identity, input PassengerCreateInput) (*domain.Passenger, error) {
	if err := caller.RequireRole(domain.RoleAdmin); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.FirstName) == "" || strings.TrimSpace(input.LastName) == "" {
		return nil, apperrors.NewValidationError("first and last name required", nil)
	}
	if err := validateIdentification(input.Identification); err != nil {
		return nil, err
	}
	number := strings.ToUpper(strings.TrimSpace(input.Flight))
	if err := validateFlightNumber(number); err != nil {
		return nil, err
	}
	if _, err := s.flights.GetByNumber(ctx, number); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("flight", nil)
		}
		return nil, err
	}

	passenger := &domain.Passenger{
		FirstName:      strings.TrimSpace(input.FirstName),
		LastName:       strings.TrimSpace(input.LastName),
		Identification: input.Identification,
		Flight:         number,
	}

	// Ticket collisions are vanishingly rare; retry a few times before
	// surfacing the conflict.
	for attempt := 0; attempt < 3; attempt++ {
		passenger.Ticket = generateTicket()
		err := s.passengers.Create(ctx, passenger)
		if err == nil {
			return passenger, nil
		}
		if !apperrors.IsConflict(err) {
			return nil, err
		}
	}
	return nil, apperrors.NewConflict("could not allocate a unique ticket", nil)
}

// List returns passengers visible to the caller, optionally filtered by
// flight number.
func (s *PassengerService) List(ctx context.Context, caller scope.Identity, flight string) ([]domain.Passenger, error) {
	filter := repository.PassengerFilter{
		Flight:  strings.ToUpper(strings.TrimSpace(flight)),
		Airline: caller.AirlineFilter(),
	}
	return s.passengers.List(ctx, filter)
}

// CheckIn advances a passenger from not-checked-in to checked-in. Airline
// role only.
func (s *PassengerService) CheckIn(ctx context.Context, caller scope.Identity, id int64) (*domain.Passenger, error) {
	if err := caller.RequireRole(domain.RoleAdmin, domain.RoleAirline); err != nil {
		return nil, err
	}
	passenger, flight, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.Admin() && flight.Airline != caller.Airline {
		return nil, apperrors.NewForbidden("passenger belongs to another airline")
	}

	next, err := workflow.CheckIn(passenger)
	if err != nil {
		return nil, err
	}
	return s.applyStatus(ctx, caller, passenger, next, events.EventPassengerCheckedIn)
}

// Board advances a passenger from checked-in to boarded. Gate role only;
// every bag of the passenger must already be at the gate or loaded.
func (s *PassengerService) Board(ctx context.Context, caller scope.Identity, id int64) (*domain.Passenger, error) {
	if err := caller.RequireRole(domain.RoleAdmin, domain.RoleGate); err != nil {
		return nil, err
	}
	passenger, flight, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.Admin() {
		pinned, err := s.assignments.Get(ctx, caller.Username)
		if err != nil {
			return nil, err
		}
		if err := caller.CanMutatePassenger(flight.Airline, flight.Flight, pinned); err != nil {
			return nil, err
		}
	}

	bags, err := s.bags.List(ctx, repository.BagFilter{Ticket: passenger.Ticket})
	if err != nil {
		return nil, err
	}
	next, err := workflow.Board(passenger, bags)
	if err != nil {
		return nil, err
	}
	return s.applyStatus(ctx, caller, passenger, next, events.EventPassengerBoarded)
}

// Flag marks a passenger for removal. Any operational role may flag; the
// record stays visible until an admin purges it.
func (s *PassengerService) Flag(ctx context.Context, caller scope.Identity, id int64) (*domain.Passenger, error) {
	if err := caller.RequireRole(domain.RoleAdmin, domain.RoleAirline, domain.RoleGate, domain.RoleGround); err != nil {
		return nil, err
	}
	passenger, flight, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.Admin() {
		pinned := ""
		if caller.Role == domain.RoleGate {
			if pinned, err = s.assignments.Get(ctx, caller.Username); err != nil {
				return nil, err
			}
		}
		if err := caller.CanMutatePassenger(flight.Airline, flight.Flight, pinned); err != nil {
			return nil, err
		}
	}

	if err := workflow.FlagForRemoval(passenger); err != nil {
		return nil, err
	}
	if err := s.passengers.SetRemove(ctx, passenger.ID, passenger.Version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewConflict("passenger was modified concurrently", nil)
		}
		return nil, err
	}
	passenger.Remove = true
	passenger.Version++

	s.publish(ctx, events.Event{
		Type:  events.EventPassengerFlagged,
		Actor: caller.Username,
		Payload: events.PassengerFlaggedPayload{
			PassengerID: passenger.ID,
			Ticket:      passenger.Ticket,
			Flight:      passenger.Flight,
		},
	})
	return passenger, nil
}

// Delete purges passengers and their bags. Admin only.
func (s *PassengerService) Delete(ctx context.Context, caller scope.Identity, ids []int64) error {
	if err := caller.RequireRole(domain.RoleAdmin); err != nil {
		return err
	}
	return s.passengers.DeleteByIDs(ctx, ids)
}

func (s *PassengerService) load(ctx context.Context, id int64) (*domain.Passenger, *domain.Flight, error) {
	passenger, err := s.passengers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("passenger", nil)
		}
		return nil, nil, err
	}
	flight, err := s.flights.GetByNumber(ctx, passenger.Flight)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("flight", nil)
		}
		return nil, nil, err
	}
	return passenger, flight, nil
}

func (s *PassengerService) applyStatus(ctx context.Context, caller scope.Identity, passenger *domain.Passenger, next domain.PassengerStatus, eventType events.EventType) (*domain.Passenger, error) {
	old := passenger.Status
	if err := s.passengers.UpdateStatus(ctx, passenger.ID, next, passenger.Version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewConflict("passenger was modified concurrently", nil)
		}
		return nil, err
	}
	passenger.Status = next
	passenger.Version++

	s.publish(ctx, events.Event{
		Type:  eventType,
		Actor: caller.Username,
		Payload: events.PassengerStatusPayload{
			PassengerID: passenger.ID,
			Ticket:      passenger.Ticket,
			Flight:      passenger.Flight,
			OldStatus:   old,
			NewStatus:   next,
		},
	})
	return passenger, nil
}

// generateTicket draws a uniformly random 10-digit ticket number.
func generateTicket() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic(err)
	}
	n := int64(binary.BigEndian.Uint64(buf[:]) >> 1)
	const span = 9999999999 - 1000000000 + 1
	return 1000000000 + n%span
}

func (s *PassengerService) publish(ctx context.Context, event events.Event) {
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
