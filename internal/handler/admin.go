package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-backoffice/internal/model"
	"github.com/iliyamo/cinema-backoffice/internal/service"
)

// Backoffice is the save pipeline behind the staff endpoints.
type Backoffice interface {
	SaveTheater(ctx context.Context, t *model.Theater) error
	DeleteTheater(ctx context.Context, id uint64) error
	SaveCategory(ctx context.Context, c *model.Category) error
	DeleteCategory(ctx context.Context, id uint64) error
	GetMovie(ctx context.Context, id uint64) (*model.Movie, error)
	SaveMovie(ctx context.Context, actorID uint64, m *model.Movie) error
	DeleteMovie(ctx context.Context, id uint64) error
	GetScreen(ctx context.Context, id uint64) (*model.Screen, error)
	SaveScreen(ctx context.Context, s *model.Screen) (*service.ScreenSave, error)
	DeleteScreen(ctx context.Context, id uint64) error
	ScreenDetail(ctx context.Context, id uint64) (*service.ScreenView, error)
	ScreenTickets(ctx context.Context, id uint64) ([]model.Ticket, error)
	SaveCustomer(ctx context.Context, actorID uint64, c *model.Customer) error
	DeleteCustomer(ctx context.Context, id uint64) error
	GetTicket(ctx context.Context, id uint64) (*model.Ticket, error)
	SaveTicket(ctx context.Context, t *model.Ticket) error
}

// AdminHandler serves the staff CRUD endpoints.
type AdminHandler struct {
	Svc Backoffice
}

func NewAdminHandler(svc Backoffice) *AdminHandler {
	return &AdminHandler{Svc: svc}
}

// ----- DTOs -----

type namedReq struct {
	Name     string `json:"name"`
	IsActive *bool  `json:"is_active"`
}

type theaterReq struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	IsActive *bool  `json:"is_active"`
}

type movieReq struct {
	CategoryID uint64    `json:"category_id"`
	Name       string    `json:"name"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
}

// screenReq fields are optional on PUT; absent ones keep the stored
// value.  movie_id must be sent as null to unassign the movie.
type screenReq struct {
	TheaterID  *uint64  `json:"theater_id"`
	MovieID    movieRef `json:"movie_id"`
	Name       *string  `json:"name"`
	Type       *string  `json:"type"` // VIP | Public
	TotalSeats *int     `json:"total_seats"`
	IsActive   *bool    `json:"is_active"`
}

// movieRef tells an absent movie_id apart from an explicit null.
type movieRef struct {
	Set bool
	ID  *uint64
}

func (r *movieRef) UnmarshalJSON(b []byte) error {
	r.Set = true
	return json.Unmarshal(b, &r.ID)
}

type customerReq struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone"`
	IsActive *bool   `json:"is_active"`
}

// ticketReq carries what staff may set on a ticket.  Price and issuance
// are derived and therefore not accepted.
type ticketReq struct {
	ScreenID   uint64  `json:"screen_id"`
	SeatNumber int     `json:"seat_number"`
	CustomerID *uint64 `json:"customer_id"`
}

// pathID resolves :id for PUT/DELETE routes and 0 for POST.
func pathID(c echo.Context) (uint64, bool) {
	if c.Param("id") == "" {
		return 0, true
	}
	id, err := parseID(c)
	return id, err == nil
}

// ----- theaters & categories -----

// SaveTheater handles POST /v1/theaters and PUT /v1/theaters/:id.
func (h *AdminHandler) SaveTheater(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	var req theaterReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	t := &model.Theater{ID: id, Name: req.Name, Location: req.Location, IsActive: boolOr(req.IsActive, true)}
	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.Svc.SaveTheater(ctx, t); err != nil {
		return respondError(c, err)
	}
	return c.JSON(savedStatus(id), t)
}

func (h *AdminHandler) DeleteTheater(c echo.Context) error {
	return h.delete(c, h.Svc.DeleteTheater)
}

// SaveCategory handles POST /v1/categories and PUT /v1/categories/:id.
func (h *AdminHandler) SaveCategory(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	var req namedReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	cat := &model.Category{ID: id, Name: req.Name, IsActive: boolOr(req.IsActive, true)}
	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.Svc.SaveCategory(ctx, cat); err != nil {
		return respondError(c, err)
	}
	return c.JSON(savedStatus(id), cat)
}

func (h *AdminHandler) DeleteCategory(c echo.Context) error {
	return h.delete(c, h.Svc.DeleteCategory)
}

// ----- movies -----

func (h *AdminHandler) GetMovie(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	m, err := h.Svc.GetMovie(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

// SaveMovie handles POST /v1/movies and PUT /v1/movies/:id.  The active
// flag is derived from the end date.
func (h *AdminHandler) SaveMovie(c echo.Context) error {
	actorID, err := actor(c)
	if err != nil || actorID == 0 {
		return err
	}
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	m := &model.Movie{ID: id, CategoryID: req.CategoryID, Name: req.Name, StartsAt: req.StartsAt.UTC(), EndsAt: req.EndsAt.UTC()}
	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.Svc.SaveMovie(ctx, actorID, m); err != nil {
		return respondError(c, err)
	}
	return c.JSON(savedStatus(id), m)
}

// DeleteMovie clears every screen showing the movie before removing it.
func (h *AdminHandler) DeleteMovie(c echo.Context) error {
	return h.delete(c, h.Svc.DeleteMovie)
}

// ----- screens -----

func (h *AdminHandler) GetScreen(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	v, err := h.Svc.ScreenDetail(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

// SaveScreen handles POST /v1/screens and PUT /v1/screens/:id and reports
// how the screen's tickets were reconciled.  A PUT starts from the stored
// screen, so leaving movie_id out keeps the movie and its tickets.
func (h *AdminHandler) SaveScreen(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	var req screenReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	s := &model.Screen{IsActive: true}
	if id != 0 {
		cur, err := h.Svc.GetScreen(ctx, id)
		if err != nil {
			return respondError(c, err)
		}
		s = cur
	}
	if req.TheaterID != nil {
		s.TheaterID = *req.TheaterID
	}
	if req.MovieID.Set {
		s.MovieID = req.MovieID.ID
	}
	if req.Name != nil {
		s.Name = *req.Name
	}
	if req.Type != nil {
		s.Type, _ = model.ParseScreenType(*req.Type)
	}
	if req.TotalSeats != nil {
		s.TotalSeats = *req.TotalSeats
	}
	s.IsActive = boolOr(req.IsActive, s.IsActive)

	res, err := h.Svc.SaveScreen(ctx, s)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(savedStatus(id), res)
}

func (h *AdminHandler) DeleteScreen(c echo.Context) error {
	return h.delete(c, h.Svc.DeleteScreen)
}

// ListScreenTickets handles GET /v1/screens/:id/tickets.
func (h *AdminHandler) ListScreenTickets(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	items, err := h.Svc.ScreenTickets(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// ----- customers -----

func (h *AdminHandler) SaveCustomer(c echo.Context) error {
	actorID, err := actor(c)
	if err != nil || actorID == 0 {
		return err
	}
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	var req customerReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	cust := &model.Customer{ID: id, Name: req.Name, Email: req.Email, Phone: req.Phone, IsActive: boolOr(req.IsActive, true)}
	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.Svc.SaveCustomer(ctx, actorID, cust); err != nil {
		return respondError(c, err)
	}
	return c.JSON(savedStatus(id), cust)
}

func (h *AdminHandler) DeleteCustomer(c echo.Context) error {
	return h.delete(c, h.Svc.DeleteCustomer)
}

// ----- tickets -----

func (h *AdminHandler) GetTicket(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	t, err := h.Svc.GetTicket(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// SaveTicket handles POST /v1/tickets and PUT /v1/tickets/:id.  A PUT
// starts from the stored ticket, so issuing or releasing a seat only
// needs customer_id; null releases it.
func (h *AdminHandler) SaveTicket(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	var req ticketReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	t := &model.Ticket{}
	if id != 0 {
		cur, err := h.Svc.GetTicket(ctx, id)
		if err != nil {
			return respondError(c, err)
		}
		t = cur
	}
	if req.ScreenID != 0 {
		t.ScreenID = req.ScreenID
	}
	if req.SeatNumber != 0 {
		t.SeatNumber = req.SeatNumber
	}
	t.CustomerID = req.CustomerID
	if err := h.Svc.SaveTicket(ctx, t); err != nil {
		return respondError(c, err)
	}
	return c.JSON(savedStatus(id), t)
}

// ----- helpers -----

func (h *AdminHandler) delete(c echo.Context, del func(ctx context.Context, id uint64) error) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := del(ctx, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func savedStatus(id uint64) int {
	if id == 0 {
		return http.StatusCreated
	}
	return http.StatusOK
}
