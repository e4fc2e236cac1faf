package domain

import "time"

// Role enumerates operational roles at the terminal.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleAirline Role = "airline"
	RoleGate    Role = "gate"
	RoleGround  Role = "ground"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleAirline, RoleGate, RoleGround:
		return true
	}
	return false
}

// User is an operator account. Accounts are created by an admin with a
// generated username and password; NewAccount stays true until the first
// password change.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
	NewAccount   bool
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Airline      string
	FullAirline  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
