package service

import (
	"context"
	"testing"

	"github.com/spec-kit/groundops-service/internal/domain"
	apperrors "github.com/spec-kit/groundops-service/pkg/util/errorutil"
)

func TestAddBagStartsAtCheckIn(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.seedFlight(t, "KL1234", "B2")
	passenger := f.seedPassenger(t, "KL1234")

	bag, err := f.bagSvc.Add(context.Background(), airlineKL, BagCreateInput{
		Ticket:   passenger.Ticket,
		Terminal: "T1",
		Counter:  4,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	want := domain.CheckInLocation("T1", 4)
	if bag.Location != want {
		t.Errorf("expected %+v, got %+v", want, bag.Location)
	}
}

func TestAddBagScopedToAirline(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.seedFlight(t, "KL1234", "B2")
	passenger := f.seedPassenger(t, "KL1234")

	if _, err := f.bagSvc.Add(context.Background(), airlineBA, BagCreateInput{
		Ticket:   passenger.Ticket,
		Terminal: "T1",
		Counter:  4,
	}); err == nil {
		t.Error("another airline must not check bags for this passenger")
	}
}

func TestAddBagForUnknownTicket(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	if _, err := f.bagSvc.Add(context.Background(), adminCaller, BagCreateInput{
		Ticket:   1234567890,
		Terminal: "T1",
		Counter:  4,
	}); err == nil {
		t.Error("expected unknown ticket to be rejected")
	}
}

func TestBagPipelineFullRun(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.seedFlight(t, "KL1234", "B2")
	passenger := f.seedPassenger(t, "KL1234")
	bag, err := f.bagSvc.Add(context.Background(), airlineKL, BagCreateInput{
		Ticket:   passenger.Ticket,
		Terminal: "T1",
		Counter:  4,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	moved, err := f.bagSvc.Move(context.Background(), airlineKL, BagMoveInput{ID: bag.ID, Location: domain.LocationSecurity})
	if err != nil {
		t.Fatalf("to security: %v", err)
	}
	if moved.Location.Type != domain.LocationSecurity {
		t.Fatalf("expected security, got %s", moved.Location.Type)
	}

	moved, err = f.bagSvc.Move(context.Background(), groundOps, BagMoveInput{ID: bag.ID, Location: domain.LocationGate})
	if err != nil {
		t.Fatalf("to gate: %v", err)
	}
	if moved.Location.Gate != "B2" {
		t.Errorf("expected the flight's gate B2, got %q", moved.Location.Gate)
	}

	moved, err = f.bagSvc.Move(context.Background(), gateKL, BagMoveInput{ID: bag.ID, Location: domain.LocationLoaded})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if moved.Location.Flight != "KL1234" {
		t.Errorf("expected loaded on KL1234, got %q", moved.Location.Flight)
	}
}

func TestMoveRejectsStageSkips(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.seedFlight(t, "KL1234", "B2")
	passenger := f.seedPassenger(t, "KL1234")
	bag, err := f.bagSvc.Add(context.Background(), airlineKL, BagCreateInput{
		Ticket:   passenger.Ticket,
		Terminal: "T1",
		Counter:  4,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := f.bagSvc.Move(context.Background(), adminCaller, BagMoveInput{ID: bag.ID, Location: domain.LocationLoaded}); !apperrors.IsConflict(err) {
		t.Errorf("loading from check-in: expected conflict, got %v", err)
	}
	if _, err := f.bagSvc.Move(context.Background(), adminCaller, BagMoveInput{ID: bag.ID, Location: domain.LocationGate}); !apperrors.IsConflict(err) {
		t.Errorf("gate from check-in: expected conflict, got %v", err)
	}
	if _, err := f.bagSvc.Move(context.Background(), adminCaller, BagMoveInput{ID: bag.ID, Location: domain.LocationCheckIn}); !apperrors.IsConflict(err) {
		t.Errorf("back to check-in: expected conflict, got %v", err)
	}
}

func TestMoveRoleRules(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.seedFlight(t, "KL1234", "B2")
	passenger := f.seedPassenger(t, "KL1234")
	bag, err := f.bagSvc.Add(context.Background(), airlineKL, BagCreateInput{
		Ticket:   passenger.Ticket,
		Terminal: "T1",
		Counter:  4,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	// Gate crews only load; airline staff only hand over to security.
	if _, err := f.bagSvc.Move(context.Background(), gateKL, BagMoveInput{ID: bag.ID, Location: domain.LocationSecurity}); err == nil {
		t.Error("gate crew must not perform the security handover")
	}
	if _, err := f.bagSvc.Move(context.Background(), airlineKL, BagMoveInput{ID: bag.ID, Location: domain.LocationSecurity}); err != nil {
		t.Fatalf("airline handover: %v", err)
	}
	if _, err := f.bagSvc.Move(context.Background(), airlineKL, BagMoveInput{ID: bag.ID, Location: domain.LocationGate}); err == nil {
		t.Error("airline staff must not clear security")
	}
}

func TestMoveHaltedByFlaggedOwner(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.seedFlight(t, "KL1234", "B2")
	passenger := f.seedPassenger(t, "KL1234")
	bag, err := f.bagSvc.Add(context.Background(), airlineKL, BagCreateInput{
		Ticket:   passenger.Ticket,
		Terminal: "T1",
		Counter:  4,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := f.passengerSvc.Flag(context.Background(), groundOps, passenger.ID); err != nil {
		t.Fatalf("flag: %v", err)
	}

	if _, err := f.bagSvc.Move(context.Background(), airlineKL, BagMoveInput{ID: bag.ID, Location: domain.LocationSecurity}); !apperrors.IsConflict(err) {
		t.Errorf("expected conflict for flagged owner, got %v", err)
	}
}
