package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-backoffice/internal/model"
)

// Context keys set by JWTAuth and OptionalJWT.
const (
	ctxUserID = "user_id"
	ctxRole   = "role"
)

// UserID returns the authenticated staff user id, if any.
func UserID(c echo.Context) (uint64, bool) {
	id, ok := c.Get(ctxUserID).(uint64)
	return id, ok && id != 0
}

// Role returns the authenticated role or "" for anonymous callers.
func Role(c echo.Context) string {
	r, _ := c.Get(ctxRole).(string)
	return r
}

// Privileged reports whether the caller is staff and may therefore see
// inactive theaters and screens.
func Privileged(c echo.Context) bool {
	switch Role(c) {
	case model.RoleStaff, model.RoleAdmin:
		return true
	}
	return false
}
