package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-backoffice/internal/middleware"
	"github.com/iliyamo/cinema-backoffice/internal/service"
)

// TheaterLister serves the public theater listing.
type TheaterLister interface {
	ListTheaters(ctx context.Context, privileged bool) ([]service.TheaterListing, error)
}

type PublicHandler struct {
	Listing TheaterLister
}

func NewPublicHandler(l TheaterLister) *PublicHandler {
	return &PublicHandler{Listing: l}
}

// ListTheaters handles GET /v1/theaters.  Anonymous callers get active
// theaters and screens only; staff tokens widen the listing.
func (h *PublicHandler) ListTheaters(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	items, err := h.Listing.ListTheaters(ctx, middleware.Privileged(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}
