package domain

import "time"

// RecipientAll broadcasts a message to every role of the airline.
const RecipientAll = "all"

// Message is an operational notice scoped to an airline and a recipient
// role (or "all").
type Message struct {
	ID        int64
	Airline   string
	Recipient string
	Body      string
	CreatedAt time.Time
}
