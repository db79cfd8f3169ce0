package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-backoffice/internal/handler"
	"github.com/iliyamo/cinema-backoffice/internal/middleware"
	"github.com/iliyamo/cinema-backoffice/internal/model"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only the health check.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
	e.GET("/healthz", handler.Health(db))
}

// RegisterAuth registers login under /v1/auth and the authenticated
// account endpoints under /v1.  Creating staff accounts is ADMIN only.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	e.POST("/v1/auth/login", a.Login)

	g := e.Group("/v1", middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleStaff, model.RoleAdmin))
	g.GET("/me", a.Me)
	g.POST("/users", a.CreateUser, middleware.RequireRole(model.RoleAdmin))
}

// RegisterPublic registers the theater listing.  A bearer token is
// optional; cache sits after identification so staff and anonymous
// listings are cached apart.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	e.GET("/v1/theaters", p.ListTheaters, middleware.OptionalJWT(jwtSecret), cache)
}
