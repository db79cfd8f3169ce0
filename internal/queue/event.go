// Package queue defines the domain events the back office publishes over
// RabbitMQ, the publisher and the consumer that journals them.
package queue

import (
	"time"

	"github.com/google/uuid"
)

// Event types.
const (
	ScreenProvisioned = "screen.provisioned" // seats created for a screen
	ScreenCleared     = "screen.cleared"     // every ticket of a screen removed
	ScreenResized     = "screen.resized"     // seat run grown or shrunk after a seat count change
	TicketIssued      = "ticket.issued"      // customer attached to a ticket
	TicketReleased    = "ticket.released"    // customer detached from a ticket
)

// Event is published after the transaction that caused it commits.  It
// carries enough for downstream consumers to journal or notify without
// querying the primary database.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	ScreenID   uint64    `json:"screen_id"`
	MovieID    *uint64   `json:"movie_id,omitempty"`
	TicketID   uint64    `json:"ticket_id,omitempty"`
	CustomerID *uint64   `json:"customer_id,omitempty"`
	SeatNumber int       `json:"seat_number,omitempty"`
	Seats      []int     `json:"seats,omitempty"`
	Price      string    `json:"price,omitempty"`
	Label      string    `json:"label,omitempty"`
}

// NewEvent stamps a fresh id and the given instant.
func NewEvent(typ string, screenID uint64, at time.Time) Event {
	return Event{ID: uuid.NewString(), Type: typ, OccurredAt: at.UTC(), ScreenID: screenID}
}
