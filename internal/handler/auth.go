package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-backoffice/internal/model"
	"github.com/iliyamo/cinema-backoffice/internal/service"
	"github.com/iliyamo/cinema-backoffice/internal/utils"
)

// StaffAccounts is the part of service.Staff the auth endpoints use.
type StaffAccounts interface {
	Login(ctx context.Context, email, password string) (utils.AccessToken, *model.User, error)
	Get(ctx context.Context, id uint64) (*model.User, error)
	Create(ctx context.Context, u *model.User, password string) error
}

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Staff StaffAccounts
}

func NewAuthHandler(staff StaffAccounts) *AuthHandler {
	return &AuthHandler{Staff: staff}
}

// ----- DTOs -----

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResp struct {
	User   *model.User       `json:"user"`
	Access utils.AccessToken `json:"access"`
}

type createUserReq struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     string      `json:"role"` // STAFF | ADMIN
	Phone    *string     `json:"phone"`
	Salary   model.Money `json:"salary"`
}

// Login: verify credentials and return an access token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return badRequest(c, "email/password required")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	tok, u, err := h.Staff.Login(ctx, req.Email, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, loginResp{User: u, Access: tok})
}

// Me: the authenticated staff account.
func (h *AuthHandler) Me(c echo.Context) error {
	id, err := actor(c)
	if err != nil || id == 0 {
		return err
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	u, err := h.Staff.Get(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

// CreateUser: ADMIN registers another staff account.
func (h *AuthHandler) CreateUser(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	u := &model.User{
		Email:  req.Email,
		Role:   strings.ToUpper(strings.TrimSpace(req.Role)),
		Phone:  req.Phone,
		Salary: req.Salary,
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.Staff.Create(ctx, u, req.Password); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, u)
}
