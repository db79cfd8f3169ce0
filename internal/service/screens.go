package service

import (
	"context"

	"github.com/iliyamo/cinema-backoffice/internal/booking"
	"github.com/iliyamo/cinema-backoffice/internal/model"
	"github.com/iliyamo/cinema-backoffice/internal/queue"
)

// ScreenSave reports what a screen save did to the screen's tickets.
type ScreenSave struct {
	Screen     *model.Screen      `json:"screen"`
	Transition string             `json:"transition"`
	Created    int                `json:"tickets_created"`
	Removed    int                `json:"tickets_removed"`
	Cleared    bool               `json:"tickets_cleared"`
	Plan       booking.TicketPlan `json:"-"`
}

// SaveScreen validates s against its theater and movie, recomputes its
// occupancy and reconciles its tickets with the movie transition: a
// newly assigned movie provisions seats 1..TotalSeats, an unassigned
// screen loses every ticket and a kept movie only follows seat count
// changes.  Screen row and tickets commit together.
func (b *Backoffice) SaveScreen(ctx context.Context, s *model.Screen) (*ScreenSave, error) {
	if s.ID != 0 {
		defer b.locks.lock(s.ID)()
	}
	now := b.clock.Now()
	out := &ScreenSave{Screen: s}
	var evs []queue.Event

	err := b.tx.WithTx(ctx, func(ctx context.Context) error {
		var prevMovie *uint64
		var existing []model.Ticket
		if s.ID != 0 {
			cur, err := b.st.Screens.GetForUpdate(ctx, s.ID)
			if err != nil {
				return err
			}
			prevMovie = cur.MovieID
			if existing, err = b.st.Tickets.ListByScreen(ctx, s.ID); err != nil {
				return err
			}
		}

		theater, err := b.st.Theaters.GetByID(ctx, s.TheaterID)
		if err != nil {
			return err
		}
		var movie *model.Movie
		if s.MovieID != nil {
			if movie, err = b.st.Movies.GetByID(ctx, *s.MovieID); err != nil {
				return err
			}
		}

		v := booking.ValidateScreen(s, theater, movie)
		tr := booking.TransitionOf(prevMovie, s.MovieID)
		plan, pv := booking.PlanTickets(tr, s.TotalSeats, existing)
		v.Merge(pv)
		if err := v.Err(); err != nil {
			return err
		}

		s.IsOccupied = booking.ResolveOccupancy(s, movie, now)
		if s.ID == 0 {
			err = b.st.Screens.Create(ctx, s)
		} else {
			err = b.st.Screens.Update(ctx, s)
		}
		if err != nil {
			return err
		}

		if plan.ClearAll {
			if _, err := b.st.Tickets.DeleteByScreen(ctx, s.ID); err != nil {
				return err
			}
			ev := queue.NewEvent(queue.ScreenCleared, s.ID, now)
			ev.MovieID = prevMovie
			evs = append(evs, ev)
		}
		if len(plan.Remove) > 0 {
			if err := b.st.Tickets.DeleteAvailableSeats(ctx, s.ID, plan.Remove); err != nil {
				return err
			}
		}
		if len(plan.Create) > 0 {
			if err := b.st.Tickets.CreateBulk(ctx, booking.NewTickets(s, plan.Create)); err != nil {
				return err
			}
		}
		if !plan.ClearAll && (len(plan.Create) > 0 || len(plan.Remove) > 0) {
			typ := queue.ScreenResized
			if tr == booking.Assign {
				typ = queue.ScreenProvisioned
			}
			ev := queue.NewEvent(typ, s.ID, now)
			ev.MovieID = s.MovieID
			ev.Seats = append(append([]int(nil), plan.Create...), plan.Remove...)
			ev.Price = booking.PriceFor(s.Type).String()
			evs = append(evs, ev)
		}

		out.Transition = tr.String()
		out.Plan = plan
		out.Created = len(plan.Create)
		out.Removed = len(plan.Remove)
		out.Cleared = plan.ClearAll
		return nil
	})
	if err != nil {
		return nil, err
	}
	b.publish(ctx, evs)
	return out, nil
}

// GetScreen returns the stored screen.
func (b *Backoffice) GetScreen(ctx context.Context, id uint64) (*model.Screen, error) {
	return b.st.Screens.GetByID(ctx, id)
}

// DeleteScreen removes a screen and, through the schema, its tickets.
func (b *Backoffice) DeleteScreen(ctx context.Context, id uint64) error {
	defer b.locks.lock(id)()
	return b.st.Screens.Delete(ctx, id)
}

// ScreenView is a screen with its place in the showing lifecycle.
type ScreenView struct {
	*model.Screen
	Label          string `json:"label"`
	State          string `json:"state"`
	AvailableSeats int    `json:"available_seats"`
}

// ScreenDetail loads a screen with its derived state at the current
// instant.  The stored occupied flag is reported as saved; State
// reflects the clock.
func (b *Backoffice) ScreenDetail(ctx context.Context, id uint64) (*ScreenView, error) {
	s, err := b.st.Screens.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	theater, err := b.st.Theaters.GetByID(ctx, s.TheaterID)
	if err != nil {
		return nil, err
	}
	var movie *model.Movie
	if s.MovieID != nil {
		if movie, err = b.st.Movies.GetByID(ctx, *s.MovieID); err != nil {
			return nil, err
		}
	}
	tickets, err := b.st.Tickets.ListByScreen(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ScreenView{
		Screen:         s,
		Label:          s.Label(theater, movie),
		State:          booking.StateOf(s, movie, b.clock.Now()).String(),
		AvailableSeats: booking.AvailableSeats(tickets),
	}, nil
}

// ScreenTickets lists a screen's tickets by seat number.
func (b *Backoffice) ScreenTickets(ctx context.Context, id uint64) ([]model.Ticket, error) {
	if _, err := b.st.Screens.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return b.st.Tickets.ListByScreen(ctx, id)
}
