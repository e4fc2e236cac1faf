package service

import (
	"context"
	"testing"

	"github.com/spec-kit/groundops-service/internal/config"
	"github.com/spec-kit/groundops-service/internal/domain"
	"github.com/spec-kit/groundops-service/internal/scope"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 60, BcryptCost: 4}
}

var adminCaller = scope.Identity{Username: "admin", Role: domain.RoleAdmin}

func TestRegisterGeneratesUsernameAndPassword(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	svc := NewUserService(testAuthConfig(), users, nil)

	user, password, err := svc.Register(context.Background(), adminCaller, RegisterInput{
		Role:      domain.RoleAirline,
		FirstName: "Ada",
		LastName:  "Smith",
		Airline:   "kl",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if user.Username != "smith00" {
		t.Errorf("expected username smith00, got %q", user.Username)
	}
	if len(password) != 15 {
		t.Errorf("expected a 15-character password, got %d", len(password))
	}
	if !user.NewAccount {
		t.Error("new accounts must carry the new-account flag")
	}
	if user.Airline != "KL" {
		t.Errorf("expected airline code uppercased, got %q", user.Airline)
	}
	if user.PasswordHash == password {
		t.Error("password must be stored hashed")
	}
}

func TestRegisterIncrementsUsernameSuffix(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	svc := NewUserService(testAuthConfig(), users, nil)

	for i, want := range []string{"smith00", "smith01", "smith02"} {
		user, _, err := svc.Register(context.Background(), adminCaller, RegisterInput{
			Role:     domain.RoleGround,
			LastName: "Smith",
		})
		if err != nil {
			t.Fatalf("register %d: %v", i, err)
		}
		if user.Username != want {
			t.Errorf("register %d: expected %q, got %q", i, want, user.Username)
		}
	}
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	t.Parallel()

	svc := NewUserService(testAuthConfig(), newFakeUserRepo(), nil)

	if _, _, err := svc.Register(context.Background(), adminCaller, RegisterInput{
		Role:     domain.RoleAdmin,
		LastName: "Smith",
	}); err == nil {
		t.Error("expected admin role to be rejected")
	}
}

func TestRegisterRequiresAirlineCode(t *testing.T) {
	t.Parallel()

	svc := NewUserService(testAuthConfig(), newFakeUserRepo(), nil)

	if _, _, err := svc.Register(context.Background(), adminCaller, RegisterInput{
		Role:     domain.RoleAirline,
		LastName: "Smith",
	}); err == nil {
		t.Error("airline staff without an airline code should be rejected")
	}

	// Ground crews are airline-agnostic.
	if _, _, err := svc.Register(context.Background(), adminCaller, RegisterInput{
		Role:     domain.RoleGround,
		LastName: "Jones",
	}); err != nil {
		t.Errorf("ground registration without airline: %v", err)
	}
}

func TestRegisterRequiresAdminCaller(t *testing.T) {
	t.Parallel()

	svc := NewUserService(testAuthConfig(), newFakeUserRepo(), nil)
	caller := scope.Identity{Username: "smith00", Role: domain.RoleAirline, Airline: "KL"}

	if _, _, err := svc.Register(context.Background(), caller, RegisterInput{
		Role:     domain.RoleGate,
		LastName: "Brown",
		Airline:  "KL",
	}); err == nil {
		t.Error("only admins may register accounts")
	}
}

func TestDeleteSkipsAdminRows(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	admin := &domain.User{Username: "root00", Role: domain.RoleAdmin}
	if err := users.Create(context.Background(), admin); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	svc := NewUserService(testAuthConfig(), users, nil)
	if err := svc.Delete(context.Background(), adminCaller, []int64{admin.ID}); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := users.GetByID(context.Background(), admin.ID); err != nil {
		t.Error("admin rows must survive bulk deletion")
	}
}
