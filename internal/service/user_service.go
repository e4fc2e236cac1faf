package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/groundops-service/internal/auth"
	"github.com/spec-kit/groundops-service/internal/config"
	"github.com/spec-kit/groundops-service/internal/domain"
	"github.com/spec-kit/groundops-service/internal/events"
	"github.com/spec-kit/groundops-service/internal/repository"
	"github.com/spec-kit/groundops-service/internal/scope"
	apperrors "github.com/spec-kit/groundops-service/pkg/util/errorutil"
)

// UserService handles admin account management.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	bcryptCost int
}

// RegisterInput describes an admin registration request. Username and
// password are generated, never supplied.
type RegisterInput struct {
	Role        domain.Role
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Airline     string
	FullAirline string
}

// NewUserService builds the service.
func NewUserService(cfg config.AuthConfig, users repository.UserRepository, dispatcher events.Dispatcher) *UserService {
	return &UserService{users: users, dispatcher: dispatcher, bcryptCost: cfg.BcryptCost}
}

// Register creates an operator account with a generated username and
// password. The plaintext password is returned once for delivery and never
// stored.
func (s *UserService) Register(ctx context.Context, caller scope.Identity, input RegisterInput) (*domain.User, string, error) {
	if err := caller.RequireRole(domain.RoleAdmin); err != nil {
		return nil, "", err
	}
	if !input.Role.Valid() || input.Role == domain.RoleAdmin {
		return nil, "", apperrors.NewValidationError("role must be airline, gate, or ground", nil)
	}
	if strings.TrimSpace(input.LastName) == "" {
		return nil, "", apperrors.NewValidationError("last name required", nil)
	}
	if err := validateEmail(input.Email); err != nil {
		return nil, "", err
	}
	if err := validatePhone(input.Phone); err != nil {
		return nil, "", err
	}
	if input.Role != domain.RoleGround && len(input.Airline) != 2 {
		return nil, "", apperrors.NewValidationError("airline code must be two characters", nil)
	}

	username, err := s.nextUsername(ctx, input.LastName)
	if err != nil {
		return nil, "", err
	}

	password := auth.GeneratePassword()
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         input.Role,
		NewAccount:   true,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        strings.TrimSpace(input.Email),
		Phone:        strings.TrimSpace(input.Phone),
		Airline:      strings.ToUpper(input.Airline),
		FullAirline:  strings.TrimSpace(input.FullAirline),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	s.publish(ctx, events.Event{
		Type:  events.EventUserRegistered,
		Actor: caller.Username,
		Payload: events.UserRegisteredPayload{
			Username:  user.Username,
			Email:     user.Email,
			Role:      user.Role,
			FirstName: user.FirstName,
			Password:  password,
		},
	})
	return user, password, nil
}

// List returns all accounts for the admin view.
func (s *UserService) List(ctx context.Context, caller scope.Identity) ([]domain.User, error) {
	if err := caller.RequireRole(domain.RoleAdmin); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

// Delete bulk-removes accounts. Admin rows are never deleted.
func (s *UserService) Delete(ctx context.Context, caller scope.Identity, ids []int64) error {
	if err := caller.RequireRole(domain.RoleAdmin); err != nil {
		return err
	}
	return s.users.DeleteByIDs(ctx, ids)
}

// nextUsername derives lowercase lastname plus the first free two-digit
// suffix: smith00, smith01, and so on.
func (s *UserService) nextUsername(ctx context.Context, lastName string) (string, error) {
	base := strings.ToLower(strings.TrimSpace(lastName))
	existing, err := s.users.ListUsernamesByPrefix(ctx, base)
	if err != nil {
		return "", err
	}

	taken := make(map[int]bool, len(existing))
	for _, name := range existing {
		suffix := strings.TrimPrefix(name, base)
		if len(suffix) != 2 {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		taken[n] = true
	}

	for n := 0; n < 100; n++ {
		if !taken[n] {
			return fmt.Sprintf("%s%02d", base, n), nil
		}
	}
	return "", apperrors.NewConflict(fmt.Sprintf("no free username suffix for %q", base), nil)
}

func (s *UserService) publish(ctx context.Context, event events.Event) {
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
