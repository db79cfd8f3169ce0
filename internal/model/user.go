package model

import "time"

// Staff roles.  ADMIN may additionally manage staff accounts.
const (
	RoleStaff = "STAFF"
	RoleAdmin = "ADMIN"
)

// User represents a staff account as stored in the `users` table.  Staff
// users perform every administrative action and are recorded as the
// creator of movies and customers, which is why a user referenced by
// either cannot be deleted.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique login email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – STAFF or ADMIN.
//  Phone        – optional phone number, unique when set.
//  Salary       – monthly salary in Currency.
//  IsActive     – whether the account may log in.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    `json:"id"`         // users.id
	Email        string    `json:"email"`      // users.email
	PasswordHash string    `json:"-"`          // users.password_hash
	Role         string    `json:"role"`       // users.role
	Phone        *string   `json:"phone"`      // users.phone (nullable)
	Salary       Money     `json:"salary"`     // users.salary
	IsActive     bool      `json:"is_active"`  // users.is_active
	CreatedAt    time.Time `json:"created_at"` // users.created_at
	UpdatedAt    time.Time `json:"updated_at"` // users.updated_at
}
