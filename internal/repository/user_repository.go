package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/cinema-backoffice/internal/model"
	"github.com/iliyamo/cinema-backoffice/internal/utils"
)

const userColumns = `id, email, password_hash, role, phone, salary, is_active, created_at, updated_at`

// UserRepo persists staff accounts.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

func scanUser(row interface{ Scan(...any) error }, u *model.User) error {
	var phone sql.NullString
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &phone, &u.Salary, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return err
	}
	u.Phone = nil
	if phone.Valid {
		p := phone.String
		u.Phone = &p
	}
	return nil
}

// Create hashes the password with the given bcrypt cost and inserts the
// user.  A taken email or phone yields model.ErrIntegrityConflict.
func (r *UserRepo) Create(ctx context.Context, u *model.User, password string, cost int) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	res, err := conn(ctx, r.DB).ExecContext(ctx,
		"INSERT INTO users (email, password_hash, role, phone, salary, is_active) VALUES (?,?,?,?,?,?)",
		u.Email, u.PasswordHash, u.Role, u.Phone, u.Salary, u.IsActive)
	if err != nil {
		return translate(err, "user")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	return nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	row := conn(ctx, r.DB).QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email)
	if err := scanUser(row, &u); err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	var u model.User
	row := conn(ctx, r.DB).QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id)
	if err := scanUser(row, &u); err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}
