package service

import (
	"context"
	"fmt"

	"github.com/iliyamo/cinema-backoffice/internal/booking"
	"github.com/iliyamo/cinema-backoffice/internal/model"
	"github.com/iliyamo/cinema-backoffice/internal/queue"
)

// SaveTheater creates t when its ID is zero and updates it otherwise.
func (b *Backoffice) SaveTheater(ctx context.Context, t *model.Theater) error {
	if err := booking.ValidateTheater(t).Err(); err != nil {
		return err
	}
	if t.ID == 0 {
		return b.st.Theaters.Create(ctx, t)
	}
	return b.st.Theaters.Update(ctx, t)
}

// DeleteTheater removes a theater together with its screens and their
// tickets.
func (b *Backoffice) DeleteTheater(ctx context.Context, id uint64) error {
	return b.st.Theaters.Delete(ctx, id)
}

func (b *Backoffice) SaveCategory(ctx context.Context, c *model.Category) error {
	if err := booking.ValidateCategory(c).Err(); err != nil {
		return err
	}
	if c.ID == 0 {
		return b.st.Categories.Create(ctx, c)
	}
	return b.st.Categories.Update(ctx, c)
}

// DeleteCategory fails with model.ErrIntegrityConflict while movies use it.
func (b *Backoffice) DeleteCategory(ctx context.Context, id uint64) error {
	return b.st.Categories.Delete(ctx, id)
}

func (b *Backoffice) GetMovie(ctx context.Context, id uint64) (*model.Movie, error) {
	return b.st.Movies.GetByID(ctx, id)
}

// SaveMovie validates m against its category, derives its active flag
// and records actorID as its creator.  Screens showing the movie get
// their occupancy recomputed since the showing window may have moved.
func (b *Backoffice) SaveMovie(ctx context.Context, actorID uint64, m *model.Movie) error {
	now := b.clock.Now()
	return b.tx.WithTx(ctx, func(ctx context.Context) error {
		category, err := b.st.Categories.GetByID(ctx, m.CategoryID)
		if err != nil {
			return err
		}
		if err := booking.ValidateMovie(m, category).Err(); err != nil {
			return err
		}
		m.IsActive = booking.MovieActive(m, now)
		m.CreatedBy = actorID

		if m.ID == 0 {
			return b.st.Movies.Create(ctx, m)
		}
		if err := b.st.Movies.Update(ctx, m); err != nil {
			return err
		}
		screens, err := b.st.Screens.ListByMovieForUpdate(ctx, m.ID)
		if err != nil {
			return err
		}
		for i := range screens {
			s := &screens[i]
			occupied := booking.ResolveOccupancy(s, m, now)
			if occupied == s.IsOccupied {
				continue
			}
			s.IsOccupied = occupied
			if err := b.st.Screens.Update(ctx, s); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteMovie removes a movie.  Every screen showing it loses the movie
// and all of its tickets first, so no screen is left referencing a
// missing movie and no ticket outlives its screen's movie.
func (b *Backoffice) DeleteMovie(ctx context.Context, id uint64) error {
	now := b.clock.Now()
	var evs []queue.Event
	err := b.tx.WithTx(ctx, func(ctx context.Context) error {
		if _, err := b.st.Movies.GetByID(ctx, id); err != nil {
			return err
		}
		screens, err := b.st.Screens.ListByMovieForUpdate(ctx, id)
		if err != nil {
			return err
		}
		for i := range screens {
			s := &screens[i]
			n, err := b.st.Tickets.DeleteByScreen(ctx, s.ID)
			if err != nil {
				return fmt.Errorf("clear screen %d: %w", s.ID, err)
			}
			s.MovieID = nil
			s.IsOccupied = false
			if err := b.st.Screens.Update(ctx, s); err != nil {
				return err
			}
			if n > 0 {
				ev := queue.NewEvent(queue.ScreenCleared, s.ID, now)
				movieID := id
				ev.MovieID = &movieID
				evs = append(evs, ev)
			}
		}
		return b.st.Movies.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	b.publish(ctx, evs)
	return nil
}
