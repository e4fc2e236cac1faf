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

// FlightService coordinates flight lifecycle operations.
type FlightService struct {
	flights     repository.FlightRepository
	passengers  repository.PassengerRepository
	bags        repository.BagRepository
	assignments *auth.AssignmentStore
	dispatcher  events.Dispatcher
}

// FlightDependencies bundles repositories for the flight service.
type FlightDependencies struct {
	FlightRepo    repository.FlightRepository
	PassengerRepo repository.PassengerRepository
	BagRepo       repository.BagRepository
	Assignments   *auth.AssignmentStore
	Dispatcher    events.Dispatcher
}

// FlightCreateInput describes flight creation payload.
type FlightCreateInput struct {
	Flight      string
	Gate        string
	Destination string
	Airline     string
}

// RemovalCounts summarizes records awaiting admin purge.
type RemovalCounts struct {
	Passengers int `json:"passengers"`
	Flights    int `json:"flights"`
}

// NewFlightService constructs the service.
func NewFlightService(deps FlightDependencies) *FlightService {
	return &FlightService{
		flights:     deps.FlightRepo,
		passengers:  deps.PassengerRepo,
		bags:        deps.BagRepo,
		assignments: deps.Assignments,
		dispatcher:  deps.Dispatcher,
	}
}

// Create registers a flight. The airline code must equal the first two
// characters of the flight number.
func (s *FlightService) Create(ctx context.Context, caller scope.Identity, input FlightCreateInput) (*domain.Flight, error) {
	if err := caller.RequireRole(domain.RoleAdmin); err != nil {
		return nil, err
	}
	number := strings.ToUpper(strings.TrimSpace(input.Flight))
	if err := validateFlightNumber(number); err != nil {
		return nil, err
	}
	airline := strings.ToUpper(strings.TrimSpace(input.Airline))
	if airline == "" {
		airline = number[:2]
	}
	if airline != number[:2] {
		return nil, apperrors.NewValidationError("airline code must match the flight number prefix", nil)
	}
	if strings.TrimSpace(input.Gate) == "" {
		return nil, apperrors.NewValidationError("gate required", nil)
	}

	flight := &domain.Flight{
		Flight:      number,
		Gate:        strings.TrimSpace(input.Gate),
		Destination: strings.TrimSpace(input.Destination),
		Airline:     airline,
	}
	if err := s.flights.Create(ctx, flight); err != nil {
		return nil, err
	}
	return flight, nil
}

// List returns flights visible to the caller.
func (s *FlightService) List(ctx context.Context, caller scope.Identity) ([]domain.Flight, error) {
	return s.flights.List(ctx, caller.AirlineFilter())
}

// Depart marks a flight departed once its departure preconditions hold.
// Gate callers must be working the flight's airline and, when pinned, this
// exact flight.
func (s *FlightService) Depart(ctx context.Context, caller scope.Identity, number string) (*domain.Flight, error) {
	if err := caller.RequireRole(domain.RoleAdmin, domain.RoleGate); err != nil {
		return nil, err
	}
	number = strings.ToUpper(strings.TrimSpace(number))

	flight, err := s.flights.GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("flight", nil)
		}
		return nil, err
	}
	if caller.Role == domain.RoleGate {
		if flight.Airline != caller.Airline {
			return nil, apperrors.NewForbidden("flight belongs to another airline")
		}
		pinned, err := s.assignments.Get(ctx, caller.Username)
		if err != nil {
			return nil, err
		}
		if pinned != "" && pinned != flight.Flight {
			return nil, apperrors.NewForbidden("gate assignment pinned to another flight")
		}
	}

	passengers, err := s.passengers.List(ctx, repository.PassengerFilter{Flight: number})
	if err != nil {
		return nil, err
	}
	bags, err := s.bags.List(ctx, repository.BagFilter{Flight: number})
	if err != nil {
		return nil, err
	}

	if err := workflow.Depart(flight, passengers, bags); err != nil {
		return nil, err
	}
	if err := s.flights.MarkDeparted(ctx, number); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewConflict("flight has already departed", nil)
		}
		return nil, err
	}
	flight.Departed = true

	s.publish(ctx, events.Event{
		Type:  events.EventFlightDeparted,
		Actor: caller.Username,
		Payload: events.FlightDepartedPayload{
			Flight:  flight.Flight,
			Gate:    flight.Gate,
			Airline: flight.Airline,
		},
	})
	return flight, nil
}

// Delete removes flights with their passengers and bags.
func (s *FlightService) Delete(ctx context.Context, caller scope.Identity, ids []int64) error {
	if err := caller.RequireRole(domain.RoleAdmin); err != nil {
		return err
	}
	return s.flights.DeleteCascade(ctx, ids)
}

// Removals reports counts for the admin dashboard: passengers flagged for
// removal and flights that have departed and await purge.
func (s *FlightService) Removals(ctx context.Context, caller scope.Identity) (*RemovalCounts, error) {
	if err := caller.RequireRole(domain.RoleAdmin); err != nil {
		return nil, err
	}
	flagged, err := s.passengers.CountFlagged(ctx)
	if err != nil {
		return nil, err
	}
	departed, err := s.flights.CountDeparted(ctx)
	if err != nil {
		return nil, err
	}
	return &RemovalCounts{Passengers: flagged, Flights: departed}, nil
}

func (s *FlightService) publish(ctx context.Context, event events.Event) {
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
