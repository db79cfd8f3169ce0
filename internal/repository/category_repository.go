package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/cinema-backoffice/internal/model"
)

// CategoryRepo persists movie categories.
type CategoryRepo struct {
	db *sql.DB
}

func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

func (r *CategoryRepo) Create(ctx context.Context, c *model.Category) error {
	res, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO categories (name, is_active) VALUES (?, ?)`, c.Name, c.IsActive)
	if err != nil {
		return translate(err, "category")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id uint64) (*model.Category, error) {
	var c model.Category
	err := conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT id, name, is_active FROM categories WHERE id = ?`, id).Scan(&c.ID, &c.Name, &c.IsActive)
	if err != nil {
		return nil, translate(err, "category")
	}
	return &c, nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *model.Category) error {
	res, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE categories SET name = ?, is_active = ? WHERE id = ?`, c.Name, c.IsActive, c.ID)
	if err != nil {
		return translate(err, "category")
	}
	return affected(res, "category")
}

// Delete removes a category.  Movies still filed under it block the
// delete (ON DELETE RESTRICT), reported as model.ErrIntegrityConflict.
func (r *CategoryRepo) Delete(ctx context.Context, id uint64) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return translate(err, "category")
	}
	return affected(res, "category")
}
