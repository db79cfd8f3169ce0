package service

import (
	"context"

	"github.com/iliyamo/cinema-backoffice/internal/model"
)

// ScreenListing is a screen as shown in the theater listing.
type ScreenListing struct {
	ID             uint64  `json:"id"`
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	MovieID        *uint64 `json:"movie_id"`
	TotalSeats     int     `json:"total_seats"`
	AvailableSeats int     `json:"available_seats"`
	IsActive       bool    `json:"is_active"`
	IsOccupied     bool    `json:"is_occupied"`
}

type TheaterListing struct {
	model.Theater
	Screens []ScreenListing `json:"screens"`
}

// ListTheaters returns theaters with their screens and free seat counts.
// Anonymous callers only see active theaters and active screens;
// privileged callers see everything.
func (b *Backoffice) ListTheaters(ctx context.Context, privileged bool) ([]TheaterListing, error) {
	activeOnly := !privileged
	theaters, err := b.st.Theaters.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]TheaterListing, 0, len(theaters))
	var ids []uint64
	for _, t := range theaters {
		screens, err := b.st.Screens.ListByTheater(ctx, t.ID, activeOnly)
		if err != nil {
			return nil, err
		}
		tl := TheaterListing{Theater: t, Screens: make([]ScreenListing, 0, len(screens))}
		for _, s := range screens {
			ids = append(ids, s.ID)
			tl.Screens = append(tl.Screens, ScreenListing{
				ID:         s.ID,
				Name:       s.Name,
				Type:       s.Type.String(),
				MovieID:    s.MovieID,
				TotalSeats: s.TotalSeats,
				IsActive:   s.IsActive,
				IsOccupied: s.IsOccupied,
			})
		}
		out = append(out, tl)
	}

	free, err := b.st.Tickets.CountAvailable(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		for j := range out[i].Screens {
			out[i].Screens[j].AvailableSeats = free[out[i].Screens[j].ID]
		}
	}
	return out, nil
}
