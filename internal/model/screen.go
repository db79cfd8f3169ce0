package model

import (
	"fmt"
	"strings"
	"time"
)

// ScreenType distinguishes premium auditoriums from regular ones.  The
// numeric values match the stored smallint.
type ScreenType uint8

const (
	ScreenVIP    ScreenType = 1
	ScreenPublic ScreenType = 2
)

// Seat count bounds for a screen.
const (
	MinSeats = 10
	MaxSeats = 100
)

// Valid reports whether t is one of the known screen types.
func (t ScreenType) Valid() bool { return t == ScreenVIP || t == ScreenPublic }

func (t ScreenType) String() string {
	switch t {
	case ScreenVIP:
		return "VIP"
	case ScreenPublic:
		return "Public"
	}
	return fmt.Sprintf("ScreenType(%d)", uint8(t))
}

// ParseScreenType accepts "VIP" or "Public" in any letter case.
func ParseScreenType(s string) (ScreenType, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "VIP":
		return ScreenVIP, true
	case "PUBLIC":
		return ScreenPublic, true
	}
	return 0, false
}

// Screen is a single auditorium inside a theater showing at most one
// movie at a time.  IsOccupied is derived on every save from the movie's
// showing window and is never taken from the caller.  Screen names are
// unique per theater.
//
// Fields:
//  ID         – primary key identifier.
//  TheaterID  – owning theater (cascade on delete).
//  MovieID    – assigned movie, nil when nothing is scheduled.
//  Name       – label unique within the theater.
//  Type       – VIP or Public; drives ticket pricing.
//  TotalSeats – number of seats, between MinSeats and MaxSeats.
//  IsActive   – inactive screens cannot issue tickets.
//  IsOccupied – derived: the assigned movie is currently showing.
type Screen struct {
	ID         uint64     `json:"id"`          // screens.id
	TheaterID  uint64     `json:"theater_id"`  // screens.theater_id
	MovieID    *uint64    `json:"movie_id"`    // screens.movie_id (nullable)
	Name       string     `json:"name"`        // screens.name
	Type       ScreenType `json:"type"`        // screens.type
	TotalSeats int        `json:"total_seats"` // screens.total_seats
	IsActive   bool       `json:"is_active"`   // screens.is_active
	IsOccupied bool       `json:"is_occupied"` // screens.is_occupied (derived)
	CreatedAt  time.Time  `json:"created_at"`  // screens.created_at
	UpdatedAt  time.Time  `json:"updated_at"`  // screens.updated_at
}

// Label renders "Theater: Screen" and appends the movie name when one
// is assigned.  A nil movie is rendered without the suffix.
func (s *Screen) Label(theater *Theater, movie *Movie) string {
	name := s.Name
	if theater != nil {
		name = theater.Name + ": " + name
	}
	if movie != nil {
		name += ": " + movie.Name
	}
	return name
}
