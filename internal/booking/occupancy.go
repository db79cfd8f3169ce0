package booking

import (
	"time"

	"github.com/iliyamo/cinema-backoffice/internal/model"
)

// ScreenState combines movie assignment and the showing window into the
// lifecycle a screen goes through.
type ScreenState int

const (
	NoMovie ScreenState = iota
	MovieScheduledFuture
	MovieShowingNow
	MovieEnded
)

func (s ScreenState) String() string {
	switch s {
	case NoMovie:
		return "no_movie"
	case MovieScheduledFuture:
		return "scheduled"
	case MovieShowingNow:
		return "showing"
	case MovieEnded:
		return "ended"
	}
	return "unknown"
}

// StateOf places a screen in its lifecycle at instant now.  Both ends of
// the showing window are inclusive.  A screen that references a movie
// the caller could not resolve (movie == nil) is treated as NoMovie.
func StateOf(s *model.Screen, movie *model.Movie, now time.Time) ScreenState {
	if s.MovieID == nil || movie == nil {
		return NoMovie
	}
	switch {
	case now.Before(movie.StartsAt):
		return MovieScheduledFuture
	case now.After(movie.EndsAt):
		return MovieEnded
	}
	return MovieShowingNow
}

// ResolveOccupancy reports whether the screen's movie is showing at now.
// It must be recomputed on every save since time moves independently of
// writes.
func ResolveOccupancy(s *model.Screen, movie *model.Movie, now time.Time) bool {
	return StateOf(s, movie, now) == MovieShowingNow
}

// MovieActive derives a movie's activity flag: a movie stays active until
// its end instant has passed.
func MovieActive(m *model.Movie, now time.Time) bool {
	return !now.After(m.EndsAt)
}
