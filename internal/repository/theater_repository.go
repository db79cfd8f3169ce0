package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/cinema-backoffice/internal/model"
)

const theaterColumns = `id, name, location, is_active, created_at, updated_at`

// TheaterRepo encapsulates all database queries related to theaters.
type TheaterRepo struct {
	db *sql.DB
}

// NewTheaterRepo constructs a TheaterRepo with the provided DB handle.
func NewTheaterRepo(db *sql.DB) *TheaterRepo {
	return &TheaterRepo{db: db}
}

func scanTheater(row interface{ Scan(...any) error }, t *model.Theater) error {
	return row.Scan(&t.ID, &t.Name, &t.Location, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
}

// Create inserts a theater and reads the row back so timestamps are set.
func (r *TheaterRepo) Create(ctx context.Context, t *model.Theater) error {
	q := conn(ctx, r.db)
	res, err := q.ExecContext(ctx,
		`INSERT INTO theaters (name, location, is_active) VALUES (?, ?, ?)`,
		t.Name, t.Location, t.IsActive)
	if err != nil {
		return translate(err, "theater")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return translate(scanTheater(q.QueryRowContext(ctx, `SELECT `+theaterColumns+` FROM theaters WHERE id = ?`, t.ID), t), "theater")
}

// GetByID fetches a theater; a missing row yields model.ErrNotFound.
func (r *TheaterRepo) GetByID(ctx context.Context, id uint64) (*model.Theater, error) {
	var t model.Theater
	row := conn(ctx, r.db).QueryRowContext(ctx, `SELECT `+theaterColumns+` FROM theaters WHERE id = ?`, id)
	if err := scanTheater(row, &t); err != nil {
		return nil, translate(err, "theater")
	}
	return &t, nil
}

// Update writes every user-settable column.
func (r *TheaterRepo) Update(ctx context.Context, t *model.Theater) error {
	res, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE theaters SET name = ?, location = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		t.Name, t.Location, t.IsActive, t.ID)
	if err != nil {
		return translate(err, "theater")
	}
	return affected(res, "theater")
}

// Delete removes a theater.  Its screens and their tickets go with it
// through ON DELETE CASCADE.
func (r *TheaterRepo) Delete(ctx context.Context, id uint64) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM theaters WHERE id = ?`, id)
	if err != nil {
		return translate(err, "theater")
	}
	return affected(res, "theater")
}

// List returns theaters ordered by name.  When activeOnly is set
// inactive theaters are left out.
func (r *TheaterRepo) List(ctx context.Context, activeOnly bool) ([]model.Theater, error) {
	q := `SELECT ` + theaterColumns + ` FROM theaters`
	if activeOnly {
		q += ` WHERE is_active = TRUE`
	}
	q += ` ORDER BY name`
	rows, err := conn(ctx, r.db).QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Theater
	for rows.Next() {
		var t model.Theater
		if err := scanTheater(rows, &t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
