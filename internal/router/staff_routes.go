package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-backoffice/internal/handler"
	"github.com/iliyamo/cinema-backoffice/internal/middleware"
	"github.com/iliyamo/cinema-backoffice/internal/model"
)

// RegisterStaff registers the back office CRUD under /v1.  Every route
// requires a staff JWT and is rate limited; successful writes purge the
// cached listings.
func RegisterStaff(e *echo.Echo, h *handler.AdminHandler, jwtSecret string, rateLimit, purge echo.MiddlewareFunc) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleStaff, model.RoleAdmin),
		rateLimit,
		purge,
	)

	// ---- Theaters ----
	g.POST("/theaters", h.SaveTheater)
	g.PUT("/theaters/:id", h.SaveTheater)
	g.DELETE("/theaters/:id", h.DeleteTheater)

	// ---- Categories ----
	g.POST("/categories", h.SaveCategory)
	g.PUT("/categories/:id", h.SaveCategory)
	g.DELETE("/categories/:id", h.DeleteCategory)

	// ---- Movies ----
	g.GET("/movies/:id", h.GetMovie)
	g.POST("/movies", h.SaveMovie)
	g.PUT("/movies/:id", h.SaveMovie)
	g.DELETE("/movies/:id", h.DeleteMovie) // clears the screens showing it

	// ---- Screens ----
	g.GET("/screens/:id", h.GetScreen)
	g.GET("/screens/:id/tickets", h.ListScreenTickets)
	g.POST("/screens", h.SaveScreen)
	g.PUT("/screens/:id", h.SaveScreen)
	g.DELETE("/screens/:id", h.DeleteScreen)

	// ---- Customers ----
	g.POST("/customers", h.SaveCustomer)
	g.PUT("/customers/:id", h.SaveCustomer)
	g.DELETE("/customers/:id", h.DeleteCustomer)

	// ---- Tickets ----
	// No DELETE: seats only disappear through screen reconciliation.
	g.GET("/tickets/:id", h.GetTicket)
	g.POST("/tickets", h.SaveTicket)
	g.PUT("/tickets/:id", h.SaveTicket)
}
