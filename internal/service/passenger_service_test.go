package service

import (
	"context"
	"testing"

	"github.com/spec-kit/groundops-service/internal/auth"
	"github.com/spec-kit/groundops-service/internal/domain"
	"github.com/spec-kit/groundops-service/internal/scope"
	apperrors "github.com/spec-kit/groundops-service/pkg/util/errorutil"
)

type fixture struct {
	users      *fakeUserRepo
	flights    *fakeFlightRepo
	passengers *fakePassengerRepo
	bags       *fakeBagRepo
	messages   *fakeMessageRepo

	flightSvc    *FlightService
	passengerSvc *PassengerService
	bagSvc       *BagService
	messageSvc   *MessageService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:      newFakeUserRepo(),
		flights:    newFakeFlightRepo(),
		passengers: newFakePassengerRepo(),
		messages:   newFakeMessageRepo(),
	}
	f.bags = newFakeBagRepo(f.passengers)
	f.passengers.bags = f.bags
	f.flights.passengers = f.passengers

	// A nil-client store behaves as permanently unassigned.
	assignments := auth.NewAssignmentStore(nil, 0)

	f.flightSvc = NewFlightService(FlightDependencies{
		FlightRepo:    f.flights,
		PassengerRepo: f.passengers,
		BagRepo:       f.bags,
		Assignments:   assignments,
	})
	f.passengerSvc = NewPassengerService(PassengerDependencies{
		PassengerRepo: f.passengers,
		FlightRepo:    f.flights,
		BagRepo:       f.bags,
		Assignments:   assignments,
	})
	f.bagSvc = NewBagService(BagDependencies{
		BagRepo:       f.bags,
		PassengerRepo: f.passengers,
		FlightRepo:    f.flights,
		Assignments:   assignments,
	})
	f.messageSvc = NewMessageService(f.messages)
	return f
}

func (f *fixture) seedFlight(t *testing.T, number, gate string) *domain.Flight {
	t.Helper()
	flight, err := f.flightSvc.Create(context.Background(), adminCaller, FlightCreateInput{
		Flight:      number,
		Gate:        gate,
		Destination: "AMS",
	})
	if err != nil {
		t.Fatalf("seed flight %s: %v", number, err)
	}
	return flight
}

func (f *fixture) seedPassenger(t *testing.T, flight string) *domain.Passenger {
	t.Helper()
	passenger, err := f.passengerSvc.Create(context.Background(), adminCaller, PassengerCreateInput{
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Identification: 123456,
		Flight:         flight,
	})
	if err != nil {
		t.Fatalf("seed passenger: %v", err)
	}
	return passenger
}

var (
	airlineKL = scope.Identity{Username: "kl-agent", Role: domain.RoleAirline, Airline: "KL"}
	airlineBA = scope.Identity{Username: "ba-agent", Role: domain.RoleAirline, Airline: "BA"}
	gateKL    = scope.Identity{Username: "kl-gate", Role: domain.RoleGate, Airline: "KL"}
	groundOps = scope.Identity{Username: "ground1", Role: domain.RoleGround}
)

func TestCreatePassengerGeneratesTicket(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.seedFlight(t, "KL1234", "B2")
	passenger := f.seedPassenger(t, "KL1234")

	if passenger.Ticket < 1000000000 || passenger.Ticket > 9999999999 {
		t.Errorf("expected a 10-digit ticket, got %d", passenger.Ticket)
	}
	if passenger.Status != domain.StatusNotCheckedIn {
		t.Errorf("expected not-checked-in, got %q", passenger.Status)
	}
}

func TestCreatePassengerUnknownFlight(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	if _, err := f.passengerSvc.Create(context.Background(), adminCaller, PassengerCreateInput{
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Identification: 123456,
		Flight:         "XX0000",
	}); err == nil {
		t.Error("expected unknown flight to be rejected")
	}
}

func TestCheckInByOwningAirline(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.seedFlight(t, "KL1234", "B2")
	passenger := f.seedPassenger(t, "KL1234")

	updated, err := f.passengerSvc.CheckIn(context.Background(), airlineKL, passenger.ID)
	if err != nil {
		t.Fatalf("check in: %v", err)
	}
	if updated.Status != domain.StatusCheckedIn {
		t.Errorf("expected checked-in, got %q", updated.Status)
	}

	// A repeat is a conflict, not a silent no-op.
	if _, err := f.passengerSvc.CheckIn(context.Background(), airlineKL, passenger.ID); !apperrors.IsConflict(err) {
		t.Errorf("expected conflict on double check-in, got %v", err)
	}
}

func TestCheckInScopedToAirline(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.seedFlight(t, "KL1234", "B2")
	passenger := f.seedPassenger(t, "KL1234")

	if _, err := f.passengerSvc.CheckIn(context.Background(), airlineBA, passenger.ID); err == nil {
		t.Error("another airline must not check in this passenger")
	}
}

func TestBoardRequiresBagsAtGate(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.seedFlight(t, "KL1234", "B2")
	passenger := f.seedPassenger(t, "KL1234")

	if _, err := f.passengerSvc.CheckIn(context.Background(), airlineKL, passenger.ID); err != nil {
		t.Fatalf("check in: %v", err)
	}
	bag, err := f.bagSvc.Add(context.Background(), airlineKL, BagCreateInput{
		Ticket:   passenger.Ticket,
		Terminal: "T1",
		Counter:  4,
	})
	if err != nil {
		t.Fatalf("add bag: %v", err)
	}

	if _, err := f.passengerSvc.Board(context.Background(), gateKL, passenger.ID); !apperrors.IsConflict(err) {
		t.Errorf("expected boarding held by a check-in bag, got %v", err)
	}

	if _, err := f.bagSvc.Move(context.Background(), airlineKL, BagMoveInput{ID: bag.ID, Location: domain.LocationSecurity}); err != nil {
		t.Fatalf("send to security: %v", err)
	}
	if _, err := f.bagSvc.Move(context.Background(), groundOps, BagMoveInput{ID: bag.ID, Location: domain.LocationGate}); err != nil {
		t.Fatalf("clear security: %v", err)
	}

	updated, err := f.passengerSvc.Board(context.Background(), gateKL, passenger.ID)
	if err != nil {
		t.Fatalf("board: %v", err)
	}
	if updated.Status != domain.StatusBoarded {
		t.Errorf("expected boarded, got %q", updated.Status)
	}
}

func TestFlagStopsFurtherProgress(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.seedFlight(t, "KL1234", "B2")
	passenger := f.seedPassenger(t, "KL1234")

	flagged, err := f.passengerSvc.Flag(context.Background(), groundOps, passenger.ID)
	if err != nil {
		t.Fatalf("flag: %v", err)
	}
	if !flagged.Remove {
		t.Error("expected the remove marker to be set")
	}

	if _, err := f.passengerSvc.CheckIn(context.Background(), airlineKL, passenger.ID); !apperrors.IsConflict(err) {
		t.Errorf("flagged passenger must not check in, got %v", err)
	}
	if _, err := f.passengerSvc.Flag(context.Background(), groundOps, passenger.ID); !apperrors.IsConflict(err) {
		t.Errorf("expected conflict on double flag, got %v", err)
	}
}

func TestListScopedByAirline(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.seedFlight(t, "KL1234", "B2")
	f.seedFlight(t, "BA5678", "C1")
	f.seedPassenger(t, "KL1234")
	f.seedPassenger(t, "BA5678")

	klView, err := f.passengerSvc.List(context.Background(), airlineKL, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(klView) != 1 || klView[0].Flight != "KL1234" {
		t.Errorf("airline view should hold only own passengers, got %+v", klView)
	}

	gateView, err := f.passengerSvc.List(context.Background(), gateKL, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(gateView) != 1 || gateView[0].Flight != "KL1234" {
		t.Errorf("gate view should hold only own airline's passengers, got %+v", gateView)
	}

	groundView, err := f.passengerSvc.List(context.Background(), groundOps, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(groundView) != 2 {
		t.Errorf("ground crews work the whole terminal, got %d", len(groundView))
	}

	adminView, err := f.passengerSvc.List(context.Background(), adminCaller, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(adminView) != 2 {
		t.Errorf("admin should see everyone, got %d", len(adminView))
	}
}

func TestDeletePassengerPurgesBags(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.seedFlight(t, "KL1234", "B2")
	passenger := f.seedPassenger(t, "KL1234")
	if _, err := f.bagSvc.Add(context.Background(), adminCaller, BagCreateInput{
		Ticket:   passenger.Ticket,
		Terminal: "T1",
		Counter:  4,
	}); err != nil {
		t.Fatalf("add bag: %v", err)
	}

	if err := f.passengerSvc.Delete(context.Background(), adminCaller, []int64{passenger.ID}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	remaining, err := f.bagSvc.List(context.Background(), adminCaller, "", passenger.Ticket)
	if err != nil {
		t.Fatalf("list bags: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("expected bags to be purged with the passenger, got %d", len(remaining))
	}
}
