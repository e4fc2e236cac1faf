package domain

import "time"

// Flight is a departure tracked at the terminal. The airline code always
// equals the first two characters of the flight number; it is stored as its
// own column so scoping queries compare on equality.
type Flight struct {
	ID          int64
	Flight      string
	Gate        string
	Destination string
	Airline     string
	Departed    bool
	CreatedAt   time.Time
}
