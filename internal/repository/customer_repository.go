package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/cinema-backoffice/internal/model"
)

const customerColumns = `id, name, phone, email, is_active, created_by, created_at, updated_at`

// CustomerRepo persists customers.  Email and phone are unique; a
// duplicate surfaces as model.ErrIntegrityConflict.
type CustomerRepo struct {
	db *sql.DB
}

func NewCustomerRepo(db *sql.DB) *CustomerRepo {
	return &CustomerRepo{db: db}
}

func scanCustomer(row interface{ Scan(...any) error }, c *model.Customer) error {
	var phone sql.NullString
	if err := row.Scan(&c.ID, &c.Name, &phone, &c.Email, &c.IsActive, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return err
	}
	c.Phone = nil
	if phone.Valid {
		p := phone.String
		c.Phone = &p
	}
	return nil
}

func (r *CustomerRepo) Create(ctx context.Context, c *model.Customer) error {
	q := conn(ctx, r.db)
	res, err := q.ExecContext(ctx,
		`INSERT INTO customers (name, phone, email, is_active, created_by) VALUES (?, ?, ?, ?, ?)`,
		c.Name, c.Phone, c.Email, c.IsActive, c.CreatedBy)
	if err != nil {
		return translate(err, "customer")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return translate(scanCustomer(q.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = ?`, c.ID), c), "customer")
}

func (r *CustomerRepo) GetByID(ctx context.Context, id uint64) (*model.Customer, error) {
	var c model.Customer
	row := conn(ctx, r.db).QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = ?`, id)
	if err := scanCustomer(row, &c); err != nil {
		return nil, translate(err, "customer")
	}
	return &c, nil
}

func (r *CustomerRepo) Update(ctx context.Context, c *model.Customer) error {
	res, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE customers SET name = ?, phone = ?, email = ?, is_active = ?, created_by = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		c.Name, c.Phone, c.Email, c.IsActive, c.CreatedBy, c.ID)
	if err != nil {
		return translate(err, "customer")
	}
	return affected(res, "customer")
}

// Delete removes a customer.  Issued tickets block the delete (ON DELETE
// RESTRICT), reported as model.ErrIntegrityConflict.
func (r *CustomerRepo) Delete(ctx context.Context, id uint64) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return translate(err, "customer")
	}
	return affected(res, "customer")
}
