package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/cinema-backoffice/internal/model"
)

const movieColumns = `id, category_id, name, starts_at, ends_at, is_active, created_by, created_at, updated_at`

// MovieRepo persists movies.  IsActive and CreatedBy are written as
// given; deriving them is the booking pipeline's job.
type MovieRepo struct {
	db *sql.DB
}

func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

func scanMovie(row interface{ Scan(...any) error }, m *model.Movie) error {
	return row.Scan(&m.ID, &m.CategoryID, &m.Name, &m.StartsAt, &m.EndsAt, &m.IsActive, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt)
}

func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	q := conn(ctx, r.db)
	res, err := q.ExecContext(ctx,
		`INSERT INTO movies (category_id, name, starts_at, ends_at, is_active, created_by) VALUES (?, ?, ?, ?, ?, ?)`,
		m.CategoryID, m.Name, m.StartsAt.UTC(), m.EndsAt.UTC(), m.IsActive, m.CreatedBy)
	if err != nil {
		return translate(err, "movie")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return translate(scanMovie(q.QueryRowContext(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = ?`, m.ID), m), "movie")
}

func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	var m model.Movie
	row := conn(ctx, r.db).QueryRowContext(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = ?`, id)
	if err := scanMovie(row, &m); err != nil {
		return nil, translate(err, "movie")
	}
	return &m, nil
}

func (r *MovieRepo) Update(ctx context.Context, m *model.Movie) error {
	res, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE movies
		 SET category_id = ?, name = ?, starts_at = ?, ends_at = ?, is_active = ?, created_by = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		m.CategoryID, m.Name, m.StartsAt.UTC(), m.EndsAt.UTC(), m.IsActive, m.CreatedBy, m.ID)
	if err != nil {
		return translate(err, "movie")
	}
	return affected(res, "movie")
}

// Delete removes a movie.  Screens showing it fall back to NULL through
// ON DELETE SET NULL; the pipeline clears their tickets beforehand.
func (r *MovieRepo) Delete(ctx context.Context, id uint64) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
	if err != nil {
		return translate(err, "movie")
	}
	return affected(res, "movie")
}
