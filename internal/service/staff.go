package service

import (
	"context"
	"errors"
	"log"
	"net/mail"
	"strings"

	"github.com/iliyamo/cinema-backoffice/internal/booking"
	"github.com/iliyamo/cinema-backoffice/internal/model"
	"github.com/iliyamo/cinema-backoffice/internal/utils"
)

// ErrInvalidCredentials is returned by Login for an unknown email, a
// wrong password or a disabled account alike.
var ErrInvalidCredentials = errors.New("invalid credentials")

const minPasswordLen = 8

type UserStore interface {
	Create(ctx context.Context, u *model.User, password string, cost int) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uint64) (*model.User, error)
}

// Staff manages the accounts that operate the back office.
type Staff struct {
	users      UserStore
	secret     string
	ttlMin     int
	bcryptCost int
}

func NewStaff(users UserStore, jwtSecret string, accessTTLMin, bcryptCost int) *Staff {
	return &Staff{users: users, secret: jwtSecret, ttlMin: accessTTLMin, bcryptCost: bcryptCost}
}

// Login checks the password and issues an access token.
func (s *Staff) Login(ctx context.Context, email, password string) (utils.AccessToken, *model.User, error) {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return utils.AccessToken{}, nil, ErrInvalidCredentials
		}
		return utils.AccessToken{}, nil, err
	}
	if !u.IsActive || !utils.VerifyPassword(u.PasswordHash, password) {
		return utils.AccessToken{}, nil, ErrInvalidCredentials
	}
	tok, err := utils.NewAccessToken(s.secret, u.ID, u.Role, s.ttlMin)
	if err != nil {
		return utils.AccessToken{}, nil, err
	}
	return tok, u, nil
}

func (s *Staff) Get(ctx context.Context, id uint64) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// Create registers a staff account.  Duplicate emails or phones fail
// with model.ErrIntegrityConflict.
func (s *Staff) Create(ctx context.Context, u *model.User, password string) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Role == "" {
		u.Role = model.RoleStaff
	}
	var v booking.Violations
	if addr, err := mail.ParseAddress(u.Email); err != nil || addr.Address != u.Email {
		v.Add("email", "Enter a valid email address.")
	}
	if u.Role != model.RoleStaff && u.Role != model.RoleAdmin {
		v.Add("role", "Select a valid choice.")
	}
	if len(password) < minPasswordLen {
		v.Add("password", "This password is too short.")
	}
	if u.Salary.IsNegative() {
		v.Add("salary", "Ensure this value is greater than or equal to 0.")
	}
	if err := v.Err(); err != nil {
		return err
	}
	u.IsActive = true
	return s.users.Create(ctx, u, password, s.bcryptCost)
}

// EnsureAdmin creates an ADMIN account for email unless one exists.
// It is a no-op when email is empty.
func (s *Staff) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" {
		return nil
	}
	_, err := s.users.GetByEmail(ctx, strings.ToLower(email))
	if err == nil {
		return nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return err
	}
	if err := s.Create(ctx, &model.User{Email: email, Role: model.RoleAdmin}, password); err != nil {
		return err
	}
	log.Printf("staff: bootstrap admin %s created", email)
	return nil
}
