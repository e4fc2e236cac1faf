package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/groundops-service/internal/domain"
	"github.com/spec-kit/groundops-service/internal/repository"
	apperrors "github.com/spec-kit/groundops-service/pkg/util/errorutil"
)

// In-memory repository fakes. Version guards and uniqueness behave like
// the real SQL so the services see the same failure modes.

type fakeUserRepo struct {
	seq   int64
	users map[int64]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*domain.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return apperrors.NewConflict("username already exists", nil)
		}
	}
	r.seq++
	user.ID = r.seq
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(ctx context.Context) ([]domain.User, error) {
	result := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		result = append(result, *user)
	}
	return result, nil
}

func (r *fakeUserRepo) ListUsernamesByPrefix(ctx context.Context, prefix string) ([]string, error) {
	var result []string
	for _, user := range r.users {
		if strings.HasPrefix(user.Username, prefix) {
			result = append(result, user.Username)
		}
	}
	return result, nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string, newAccount bool) error {
	user, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.PasswordHash = passwordHash
	user.NewAccount = newAccount
	return nil
}

func (r *fakeUserRepo) DeleteByIDs(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		if user, ok := r.users[id]; ok && user.Role != domain.RoleAdmin {
			delete(r.users, id)
		}
	}
	return nil
}

type fakeFlightRepo struct {
	seq        int64
	flights    map[string]*domain.Flight
	passengers *fakePassengerRepo
}

func newFakeFlightRepo() *fakeFlightRepo {
	return &fakeFlightRepo{flights: map[string]*domain.Flight{}}
}

func (r *fakeFlightRepo) Create(ctx context.Context, flight *domain.Flight) error {
	if _, ok := r.flights[flight.Flight]; ok {
		return apperrors.NewConflict("flight already exists", nil)
	}
	r.seq++
	flight.ID = r.seq
	copied := *flight
	r.flights[flight.Flight] = &copied
	return nil
}

func (r *fakeFlightRepo) GetByNumber(ctx context.Context, number string) (*domain.Flight, error) {
	flight, ok := r.flights[number]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *flight
	return &copied, nil
}

func (r *fakeFlightRepo) List(ctx context.Context, airline string) ([]domain.Flight, error) {
	var result []domain.Flight
	for _, flight := range r.flights {
		if airline != "" && flight.Airline != airline {
			continue
		}
		result = append(result, *flight)
	}
	return result, nil
}

func (r *fakeFlightRepo) MarkDeparted(ctx context.Context, number string) error {
	flight, ok := r.flights[number]
	if !ok || flight.Departed {
		return pgx.ErrNoRows
	}
	flight.Departed = true
	return nil
}

// DeleteCascade removes flights with their passengers and bags, matching
// the transactional SQL delete.
func (r *fakeFlightRepo) DeleteCascade(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		for number, flight := range r.flights {
			if flight.ID != id {
				continue
			}
			if r.passengers != nil {
				var doomed []int64
				for pid, passenger := range r.passengers.passengers {
					if passenger.Flight == number {
						doomed = append(doomed, pid)
					}
				}
				_ = r.passengers.DeleteByIDs(ctx, doomed)
			}
			delete(r.flights, number)
		}
	}
	return nil
}

func (r *fakeFlightRepo) CountDeparted(ctx context.Context) (int, error) {
	count := 0
	for _, flight := range r.flights {
		if flight.Departed {
			count++
		}
	}
	return count, nil
}

type fakePassengerRepo struct {
	seq        int64
	passengers map[int64]*domain.Passenger
	bags       *fakeBagRepo
}

func newFakePassengerRepo() *fakePassengerRepo {
	return &fakePassengerRepo{passengers: map[int64]*domain.Passenger{}}
}

func (r *fakePassengerRepo) Create(ctx context.Context, passenger *domain.Passenger) error {
	for _, existing := range r.passengers {
		if existing.Ticket == passenger.Ticket {
			return apperrors.NewConflict("ticket already exists", nil)
		}
	}
	r.seq++
	passenger.ID = r.seq
	passenger.Status = domain.StatusNotCheckedIn
	passenger.Version = 1
	copied := *passenger
	r.passengers[passenger.ID] = &copied
	return nil
}

func (r *fakePassengerRepo) GetByID(ctx context.Context, id int64) (*domain.Passenger, error) {
	passenger, ok := r.passengers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *passenger
	return &copied, nil
}

func (r *fakePassengerRepo) GetByTicket(ctx context.Context, ticket int64) (*domain.Passenger, error) {
	for _, passenger := range r.passengers {
		if passenger.Ticket == ticket {
			copied := *passenger
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakePassengerRepo) List(ctx context.Context, filter repository.PassengerFilter) ([]domain.Passenger, error) {
	var result []domain.Passenger
	for _, passenger := range r.passengers {
		if filter.Flight != "" && passenger.Flight != filter.Flight {
			continue
		}
		// The airline code is the flight number prefix.
		if filter.Airline != "" && !strings.HasPrefix(passenger.Flight, filter.Airline) {
			continue
		}
		result = append(result, *passenger)
	}
	return result, nil
}

func (r *fakePassengerRepo) UpdateStatus(ctx context.Context, id int64, status domain.PassengerStatus, version int) error {
	passenger, ok := r.passengers[id]
	if !ok || passenger.Version != version || passenger.Remove {
		return pgx.ErrNoRows
	}
	passenger.Status = status
	passenger.Version++
	return nil
}

func (r *fakePassengerRepo) SetRemove(ctx context.Context, id int64, version int) error {
	passenger, ok := r.passengers[id]
	if !ok || passenger.Version != version || passenger.Remove {
		return pgx.ErrNoRows
	}
	passenger.Remove = true
	passenger.Version++
	return nil
}

// DeleteByIDs purges bags with their passengers, matching the
// transactional SQL delete.
func (r *fakePassengerRepo) DeleteByIDs(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		if passenger, ok := r.passengers[id]; ok && r.bags != nil {
			_ = r.bags.DeleteByTicket(ctx, passenger.Ticket)
		}
		delete(r.passengers, id)
	}
	return nil
}

func (r *fakePassengerRepo) CountFlagged(ctx context.Context) (int, error) {
	count := 0
	for _, passenger := range r.passengers {
		if passenger.Remove {
			count++
		}
	}
	return count, nil
}

type fakeBagRepo struct {
	seq        int64
	bags       map[int64]*domain.Bag
	passengers *fakePassengerRepo
}

func newFakeBagRepo(passengers *fakePassengerRepo) *fakeBagRepo {
	return &fakeBagRepo{bags: map[int64]*domain.Bag{}, passengers: passengers}
}

func (r *fakeBagRepo) Create(ctx context.Context, bag *domain.Bag) error {
	r.seq++
	bag.ID = r.seq
	bag.Version = 1
	copied := *bag
	r.bags[bag.ID] = &copied
	return nil
}

func (r *fakeBagRepo) GetByID(ctx context.Context, id int64) (*domain.Bag, error) {
	bag, ok := r.bags[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *bag
	return &copied, nil
}

func (r *fakeBagRepo) List(ctx context.Context, filter repository.BagFilter) ([]domain.Bag, error) {
	var result []domain.Bag
	for _, bag := range r.bags {
		if filter.Ticket != 0 && bag.Ticket != filter.Ticket {
			continue
		}
		if filter.Flight != "" || filter.Airline != "" {
			owner, err := r.passengers.GetByTicket(ctx, bag.Ticket)
			if err != nil {
				continue
			}
			if filter.Flight != "" && owner.Flight != filter.Flight {
				continue
			}
			if filter.Airline != "" && !strings.HasPrefix(owner.Flight, filter.Airline) {
				continue
			}
		}
		result = append(result, *bag)
	}
	return result, nil
}

func (r *fakeBagRepo) UpdateLocation(ctx context.Context, id int64, location domain.BagLocation, version int) error {
	bag, ok := r.bags[id]
	if !ok || bag.Version != version {
		return pgx.ErrNoRows
	}
	bag.Location = location
	bag.Version++
	return nil
}

func (r *fakeBagRepo) DeleteByTicket(ctx context.Context, ticket int64) error {
	for id, bag := range r.bags {
		if bag.Ticket == ticket {
			delete(r.bags, id)
		}
	}
	return nil
}

type fakeMessageRepo struct {
	seq      int64
	messages map[int64]*domain.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: map[int64]*domain.Message{}}
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *domain.Message) error {
	r.seq++
	message.ID = r.seq
	copied := *message
	r.messages[message.ID] = &copied
	return nil
}

func (r *fakeMessageRepo) List(ctx context.Context, filter repository.MessageFilter) ([]domain.Message, error) {
	var result []domain.Message
	for _, message := range r.messages {
		if filter.Airline != "" {
			if message.Airline != filter.Airline {
				continue
			}
			if message.Recipient != filter.Recipient && message.Recipient != domain.RecipientAll {
				continue
			}
		} else if filter.Recipient != "" {
			if message.Recipient != filter.Recipient && message.Recipient != domain.RecipientAll {
				continue
			}
		}
		result = append(result, *message)
	}
	return result, nil
}

func (r *fakeMessageRepo) DeleteByIDs(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		delete(r.messages, id)
	}
	return nil
}
