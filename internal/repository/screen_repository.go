package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/cinema-backoffice/internal/model"
)

const screenColumns = `id, theater_id, movie_id, name, type, total_seats, is_active, is_occupied, created_at, updated_at`

// ScreenRepo persists screens.  The pipeline locks a screen row with
// GetForUpdate before reconciling its tickets so concurrent saves of the
// same screen are serialized by the database as well.
type ScreenRepo struct {
	db *sql.DB
}

func NewScreenRepo(db *sql.DB) *ScreenRepo {
	return &ScreenRepo{db: db}
}

func scanScreen(row interface{ Scan(...any) error }, s *model.Screen) error {
	var movieID sql.NullInt64
	if err := row.Scan(&s.ID, &s.TheaterID, &movieID, &s.Name, &s.Type, &s.TotalSeats, &s.IsActive, &s.IsOccupied, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return err
	}
	s.MovieID = nil
	if movieID.Valid {
		id := uint64(movieID.Int64)
		s.MovieID = &id
	}
	return nil
}

func (r *ScreenRepo) Create(ctx context.Context, s *model.Screen) error {
	q := conn(ctx, r.db)
	res, err := q.ExecContext(ctx,
		`INSERT INTO screens (theater_id, movie_id, name, type, total_seats, is_active, is_occupied) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.TheaterID, s.MovieID, s.Name, s.Type, s.TotalSeats, s.IsActive, s.IsOccupied)
	if err != nil {
		return translate(err, "screen")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return translate(scanScreen(q.QueryRowContext(ctx, `SELECT `+screenColumns+` FROM screens WHERE id = ?`, s.ID), s), "screen")
}

func (r *ScreenRepo) GetByID(ctx context.Context, id uint64) (*model.Screen, error) {
	var s model.Screen
	row := conn(ctx, r.db).QueryRowContext(ctx, `SELECT `+screenColumns+` FROM screens WHERE id = ?`, id)
	if err := scanScreen(row, &s); err != nil {
		return nil, translate(err, "screen")
	}
	return &s, nil
}

// GetForUpdate reads a screen and, inside a transaction, locks its row
// until commit.
func (r *ScreenRepo) GetForUpdate(ctx context.Context, id uint64) (*model.Screen, error) {
	var s model.Screen
	row := conn(ctx, r.db).QueryRowContext(ctx, forUpdate(ctx, `SELECT `+screenColumns+` FROM screens WHERE id = ?`), id)
	if err := scanScreen(row, &s); err != nil {
		return nil, translate(err, "screen")
	}
	return &s, nil
}

func (r *ScreenRepo) Update(ctx context.Context, s *model.Screen) error {
	res, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE screens
		 SET theater_id = ?, movie_id = ?, name = ?, type = ?, total_seats = ?, is_active = ?, is_occupied = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		s.TheaterID, s.MovieID, s.Name, s.Type, s.TotalSeats, s.IsActive, s.IsOccupied, s.ID)
	if err != nil {
		return translate(err, "screen")
	}
	return affected(res, "screen")
}

// Delete removes a screen; its tickets cascade.
func (r *ScreenRepo) Delete(ctx context.Context, id uint64) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM screens WHERE id = ?`, id)
	if err != nil {
		return translate(err, "screen")
	}
	return affected(res, "screen")
}

// ListByTheater returns a theater's screens ordered by name, leaving out
// inactive ones when activeOnly is set.
func (r *ScreenRepo) ListByTheater(ctx context.Context, theaterID uint64, activeOnly bool) ([]model.Screen, error) {
	q := `SELECT ` + screenColumns + ` FROM screens WHERE theater_id = ?`
	if activeOnly {
		q += ` AND is_active = TRUE`
	}
	q += ` ORDER BY name`
	return r.list(ctx, q, theaterID)
}

// ListByMovieForUpdate returns, and locks inside a transaction, every
// screen currently showing the movie.
func (r *ScreenRepo) ListByMovieForUpdate(ctx context.Context, movieID uint64) ([]model.Screen, error) {
	return r.list(ctx, forUpdate(ctx, `SELECT `+screenColumns+` FROM screens WHERE movie_id = ? ORDER BY id`), movieID)
}

func (r *ScreenRepo) list(ctx context.Context, q string, args ...any) ([]model.Screen, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Screen
	for rows.Next() {
		var s model.Screen
		if err := scanScreen(rows, &s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
