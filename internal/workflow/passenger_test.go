package workflow

import (
	"testing"

	"github.com/spec-kit/groundops-service/internal/domain"
	apperrors "github.com/spec-kit/groundops-service/pkg/util/errorutil"
)

func TestCheckIn(t *testing.T) {
	t.Parallel()

	next, err := CheckIn(&domain.Passenger{Status: domain.StatusNotCheckedIn})
	if err != nil {
		t.Fatalf("check in: %v", err)
	}
	if next != domain.StatusCheckedIn {
		t.Errorf("expected %q, got %q", domain.StatusCheckedIn, next)
	}
}

func TestCheckInRejectsRepeats(t *testing.T) {
	t.Parallel()

	for _, status := range []domain.PassengerStatus{domain.StatusCheckedIn, domain.StatusBoarded} {
		if _, err := CheckIn(&domain.Passenger{Status: status}); !apperrors.IsConflict(err) {
			t.Errorf("check in from %q: expected conflict, got %v", status, err)
		}
	}
}

func TestCheckInRejectsFlaggedPassenger(t *testing.T) {
	t.Parallel()

	passenger := &domain.Passenger{Status: domain.StatusNotCheckedIn, Remove: true}
	if _, err := CheckIn(passenger); !apperrors.IsConflict(err) {
		t.Errorf("expected conflict for flagged passenger, got %v", err)
	}
}

func TestBoard(t *testing.T) {
	t.Parallel()

	passenger := &domain.Passenger{Status: domain.StatusCheckedIn, Ticket: 1234567890}
	bags := []domain.Bag{
		{Ticket: 1234567890, Location: domain.GateLocation("B2")},
		{Ticket: 1234567890, Location: domain.LoadedLocation("KL1234")},
	}

	next, err := Board(passenger, bags)
	if err != nil {
		t.Fatalf("board: %v", err)
	}
	if next != domain.StatusBoarded {
		t.Errorf("expected %q, got %q", domain.StatusBoarded, next)
	}
}

func TestBoardWithoutCheckIn(t *testing.T) {
	t.Parallel()

	if _, err := Board(&domain.Passenger{Status: domain.StatusNotCheckedIn}, nil); !apperrors.IsConflict(err) {
		t.Errorf("expected conflict, got %v", err)
	}
}

func TestBoardHeldByStragglingBag(t *testing.T) {
	t.Parallel()

	passenger := &domain.Passenger{Status: domain.StatusCheckedIn, Ticket: 1234567890}
	for _, location := range []domain.BagLocation{
		domain.CheckInLocation("T1", 4),
		domain.SecurityLocation(),
	} {
		bags := []domain.Bag{{ID: 7, Ticket: 1234567890, Location: location}}
		if _, err := Board(passenger, bags); !apperrors.IsConflict(err) {
			t.Errorf("bag at %s: expected conflict, got %v", location.Type, err)
		}
	}
}

func TestBoardWithNoBags(t *testing.T) {
	t.Parallel()

	next, err := Board(&domain.Passenger{Status: domain.StatusCheckedIn}, nil)
	if err != nil {
		t.Fatalf("board without bags: %v", err)
	}
	if next != domain.StatusBoarded {
		t.Errorf("expected %q, got %q", domain.StatusBoarded, next)
	}
}

func TestFlagForRemoval(t *testing.T) {
	t.Parallel()

	passenger := &domain.Passenger{Status: domain.StatusBoarded}
	if err := FlagForRemoval(passenger); err != nil {
		t.Fatalf("flag: %v", err)
	}

	passenger.Remove = true
	if err := FlagForRemoval(passenger); !apperrors.IsConflict(err) {
		t.Errorf("expected conflict when already flagged, got %v", err)
	}
}

func TestStatusProgresses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from, to domain.PassengerStatus
		want     bool
	}{
		{domain.StatusNotCheckedIn, domain.StatusCheckedIn, true},
		{domain.StatusCheckedIn, domain.StatusBoarded, true},
		{domain.StatusNotCheckedIn, domain.StatusBoarded, false},
		{domain.StatusBoarded, domain.StatusCheckedIn, false},
		{domain.StatusCheckedIn, domain.StatusCheckedIn, false},
		{domain.StatusBoarded, "departed", false},
	}
	for _, tc := range tests {
		if got := StatusProgresses(tc.from, tc.to); got != tc.want {
			t.Errorf("StatusProgresses(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
