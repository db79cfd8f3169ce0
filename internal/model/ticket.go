package model

import (
	"strconv"
	"time"
)

// Ticket is one seat of one screen.  Tickets are provisioned in bulk
// when a screen gains a movie and removed when it loses it.  A ticket
// without a customer is available; attaching a customer issues it.
// Price and IssuedAt are derived on every save.
//
// Fields:
//  ID         – primary key ("number" in the back office).
//  ScreenID   – screen the seat belongs to (cascade on delete).
//  CustomerID – buyer, nil while the seat is available.
//  SeatNumber – 1-based seat number, unique per screen.
//  Price      – derived from the screen type.
//  IssuedAt   – instant the customer was attached, nil when available.
type Ticket struct {
	ID         uint64     `json:"id"`          // tickets.id
	ScreenID   uint64     `json:"screen_id"`   // tickets.screen_id
	CustomerID *uint64    `json:"customer_id"` // tickets.customer_id (nullable)
	SeatNumber int        `json:"seat_number"` // tickets.seat_number
	Price      Money      `json:"price"`       // tickets.price (derived)
	IssuedAt   *time.Time `json:"issued_at"`   // tickets.issued_at (derived, nullable)
	CreatedAt  time.Time  `json:"created_at"`  // tickets.created_at
	UpdatedAt  time.Time  `json:"updated_at"`  // tickets.updated_at
}

// Available reports whether no customer holds the ticket.
func (t *Ticket) Available() bool { return t.CustomerID == nil }

// Label renders "Theater: Screen: seat number N" and appends the
// customer name once the ticket is issued.
func (t *Ticket) Label(theater *Theater, screen *Screen, customer *Customer) string {
	name := "seat number " + strconv.Itoa(t.SeatNumber)
	if screen != nil {
		name = screen.Label(theater, nil) + ": " + name
	}
	if customer != nil {
		name += ": " + customer.Name
	}
	return name
}
