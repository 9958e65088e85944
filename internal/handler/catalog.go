package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/azulroute/tour-booking-api/internal/catalog"
	"github.com/azulroute/tour-booking-api/internal/repository"
)

// CatalogHandler serves the public tour catalog. Responses are resolved for
// the requested language with fallback to the base language; these routes
// sit behind the response cache.
type CatalogHandler struct {
	Catalog *catalog.Service
}

func NewCatalogHandler(cat *catalog.Service) *CatalogHandler {
	if cat == nil {
		panic("nil catalog service passed to NewCatalogHandler")
	}
	return &CatalogHandler{Catalog: cat}
}

// List handles GET /api/tours?lang=xx.
func (h *CatalogHandler) List(c echo.Context) error {
	lang := c.QueryParam("lang")
	if lang == "" {
		lang = h.Catalog.BaseLang()
	}
	tours, err := h.Catalog.ListTours(c.Request().Context(), lang)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load tours"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": tours})
}

// Get handles GET /api/tours/:id?lang=xx.
func (h *CatalogHandler) Get(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tour id"})
	}
	lang := c.QueryParam("lang")
	if lang == "" {
		lang = h.Catalog.BaseLang()
	}
	tour, err := h.Catalog.TourByID(c.Request().Context(), id, lang)
	if err != nil {
		if errors.Is(err, repository.ErrTourNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "tour not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load tour"})
	}
	return c.JSON(http.StatusOK, tour)
}
