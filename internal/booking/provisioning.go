package booking

import (
	"fmt"
	"sort"

	"github.com/iliyamo/cinema-backoffice/internal/model"
)

// Transition describes how a save changes a screen's movie assignment.
type Transition int

const (
	// StayUnassigned: no movie before, no movie after.
	StayUnassigned Transition = iota
	// Assign: Unassigned -> Assigned(movie).  Provisions the seat run.
	Assign
	// Unassign: Assigned -> Unassigned.  Clears every ticket.
	Unassign
	// Keep: Assigned -> Assigned, same or different movie.
	Keep
)

func (t Transition) String() string {
	switch t {
	case StayUnassigned:
		return "stay_unassigned"
	case Assign:
		return "assign"
	case Unassign:
		return "unassign"
	case Keep:
		return "keep"
	}
	return "unknown"
}

// TransitionOf compares the persisted movie reference with the one being
// saved.  prev is nil for a screen that is being created.
func TransitionOf(prev, next *uint64) Transition {
	switch {
	case prev == nil && next == nil:
		return StayUnassigned
	case prev == nil:
		return Assign
	case next == nil:
		return Unassign
	}
	return Keep
}

// TicketPlan is the reconciliation a screen save applies to the screen's
// tickets.  ClearAll wins over the seat lists.
type TicketPlan struct {
	ClearAll bool
	Create   []int // seat numbers to provision
	Remove   []int // unsold seat numbers beyond the new seat count
}

// Empty reports whether applying the plan changes nothing.
func (p TicketPlan) Empty() bool {
	return !p.ClearAll && len(p.Create) == 0 && len(p.Remove) == 0
}

// PlanTickets decides how the existing tickets of a screen must change
// for the screen to hold exactly {1..totalSeats} while a movie is
// assigned and nothing otherwise.
//
// Without a movie every ticket goes, sold or not.  With a movie the
// missing seat numbers are created: on Assign that is the whole run,
// afterwards only the seats added by a grown seat count, so re-saving a
// provisioned screen is a no-op.  Seats beyond a shrunk seat count are
// removed when unsold; a sold seat blocks the shrink with a total_seats
// violation.
func PlanTickets(tr Transition, totalSeats int, existing []model.Ticket) (TicketPlan, Violations) {
	var plan TicketPlan
	var v Violations

	if tr == StayUnassigned || tr == Unassign {
		plan.ClearAll = len(existing) > 0
		return plan, v
	}

	have := make(map[int]bool, len(existing))
	var sold []int
	for i := range existing {
		t := &existing[i]
		have[t.SeatNumber] = true
		if t.SeatNumber > totalSeats {
			if t.Available() {
				plan.Remove = append(plan.Remove, t.SeatNumber)
			} else {
				sold = append(sold, t.SeatNumber)
			}
		}
	}
	if len(sold) > 0 {
		sort.Ints(sold)
		v.Add("total_seats", fmt.Sprintf("Can not reduce the number of seats to %d: seat %d is already issued.", totalSeats, sold[len(sold)-1]))
		return TicketPlan{}, v
	}
	for seat := 1; seat <= totalSeats; seat++ {
		if !have[seat] {
			plan.Create = append(plan.Create, seat)
		}
	}
	sort.Ints(plan.Remove)
	return plan, v
}

// NewTickets builds the available, priced tickets for the given seats of
// a screen.  The screen must already have its ID.
func NewTickets(screen *model.Screen, seats []int) []model.Ticket {
	price := PriceFor(screen.Type)
	out := make([]model.Ticket, 0, len(seats))
	for _, seat := range seats {
		out = append(out, model.Ticket{
			ScreenID:   screen.ID,
			SeatNumber: seat,
			Price:      price,
		})
	}
	return out
}
