package domain

import "time"

// PassengerStatus enumerates check-in lifecycle states.
type PassengerStatus string

const (
	StatusNotCheckedIn PassengerStatus = "not-checked-in"
	StatusCheckedIn    PassengerStatus = "checked-in"
	StatusBoarded      PassengerStatus = "boarded"
)

// Passenger is a ticketed traveler on a flight. Remove is a soft-delete
// marker: a flagged passenger stays visible but is excluded from all further
// status transitions until an admin purges the record. Version guards
// read-modify-write updates against concurrent writers.
type Passenger struct {
	ID             int64
	FirstName      string
	LastName       string
	Identification int
	Ticket         int64
	Flight         string
	Status         PassengerStatus
	Remove         bool
	Version        int
	CreatedAt      time.Time
}
