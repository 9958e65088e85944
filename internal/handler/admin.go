package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/azulroute/tour-booking-api/internal/catalog"
	"github.com/azulroute/tour-booking-api/internal/model"
	"github.com/azulroute/tour-booking-api/internal/repository"
)

// SubscriberCounter reports newsletter signups for the dashboard.
type SubscriberCounter interface {
	Count(ctx context.Context) (int, error)
}

// AdminHandler groups every back-office operation: catalog publishing, draft
// previews, reservation management, review moderation, site settings and the
// dashboard stats. All routes sit behind the admin JWT middleware.
type AdminHandler struct {
	Catalog      *catalog.Service
	Tours        *repository.TourRepo
	Reservations *repository.ReservationRepo
	Reviews      *repository.ReviewRepo
	SiteConfig   *repository.SiteConfigRepo
	Subscribers  SubscriberCounter
}

func NewAdminHandler(cat *catalog.Service, tours *repository.TourRepo, reservations *repository.ReservationRepo, reviews *repository.ReviewRepo, siteConfig *repository.SiteConfigRepo, subscribers SubscriberCounter) *AdminHandler {
	if cat == nil || tours == nil || reservations == nil || reviews == nil || siteConfig == nil || subscribers == nil {
		panic("nil dependency passed to NewAdminHandler")
	}
	return &AdminHandler{
		Catalog:      cat,
		Tours:        tours,
		Reservations: reservations,
		Reviews:      reviews,
		SiteConfig:   siteConfig,
		Subscribers:  subscribers,
	}
}

// Stats handles GET /api/admin/stats, the numbers on the dashboard landing
// page.
func (h *AdminHandler) Stats(c echo.Context) error {
	n, err := h.Subscribers.Count(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load stats"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"newsletter_subscribers": n,
	})
}

// --- catalog publishing ---

// UpsertTour handles PUT /api/admin/tours/:id. Writing the row publishes the
// content: it also discards any pending draft so the overlay cannot shadow
// what was just saved.
func (h *AdminHandler) UpsertTour(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tour id"})
	}
	var content model.TourContent
	if err := c.Bind(&content); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	content.ID = id
	ctx := c.Request().Context()
	if err := h.Tours.Upsert(ctx, &content); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save tour"})
	}
	if err := h.Catalog.ClearDraft(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "tour saved but draft cleanup failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "tour saved"})
}

// DeleteTour handles DELETE /api/admin/tours/:id. It removes the database
// row and the draft; a tour with static defaults falls back to those.
func (h *AdminHandler) DeleteTour(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tour id"})
	}
	ctx := c.Request().Context()
	if err := h.Tours.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTourNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "tour not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete tour"})
	}
	_ = h.Catalog.ClearDraft(ctx, id)
	return c.NoContent(http.StatusNoContent)
}

// SaveDraft handles PUT /api/admin/tours/:id/draft. Drafts overlay the
// published record in catalog reads without touching the database.
func (h *AdminHandler) SaveDraft(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tour id"})
	}
	var content model.TourContent
	if err := c.Bind(&content); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	content.ID = id
	if err := h.Catalog.SaveDraft(c.Request().Context(), content); err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "draft store unavailable"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "draft saved"})
}

// ClearDraft handles DELETE /api/admin/tours/:id/draft.
func (h *AdminHandler) ClearDraft(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tour id"})
	}
	if err := h.Catalog.ClearDraft(c.Request().Context(), id); err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "draft store unavailable"})
	}
	return c.NoContent(http.StatusNoContent)
}

// --- reservations ---

// ListReservations handles GET /api/admin/reservations?status=&limit=.
func (h *AdminHandler) ListReservations(c echo.Context) error {
	var status model.ReservationStatus
	if s := c.QueryParam("status"); s != "" {
		status = model.ReservationStatus(s)
		if !status.Valid() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
		}
	}
	limit := 100
	if l := c.QueryParam("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
		}
		limit = n
	}
	items, err := h.Reservations.List(c.Request().Context(), status, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// UpdateReservationStatus handles PATCH /api/admin/reservations/:id/status.
// Transitions outside the lifecycle graph come back as 409.
func (h *AdminHandler) UpdateReservationStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var body struct {
		Status model.ReservationStatus `json:"status"`
	}
	if err := c.Bind(&body); err != nil || !body.Status.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "a valid status is required"})
	}
	ctx := c.Request().Context()
	if err := h.Reservations.UpdateStatus(ctx, id, body.Status); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		if errors.Is(err, repository.ErrInvalidTransition) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "illegal status transition"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update status"})
	}
	res, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservation"})
	}
	return c.JSON(http.StatusOK, res)
}

// --- review moderation ---

// ListAllReviews handles GET /api/admin/reviews, unpublished included.
func (h *AdminHandler) ListAllReviews(c echo.Context) error {
	reviews, err := h.Reviews.List(c.Request().Context(), false)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reviews"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": reviews})
}

// PublishReview handles PATCH /api/admin/reviews/:id/publish.
func (h *AdminHandler) PublishReview(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review id"})
	}
	var body struct {
		Published bool `json:"published"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := h.Reviews.SetPublished(c.Request().Context(), id, body.Published); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update review"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "review updated"})
}

// DeleteReview handles DELETE /api/admin/reviews/:id.
func (h *AdminHandler) DeleteReview(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review id"})
	}
	if err := h.Reviews.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete review"})
	}
	return c.NoContent(http.StatusNoContent)
}

// --- site settings ---

// GetConfig handles GET /api/admin/config.
func (h *AdminHandler) GetConfig(c echo.Context) error {
	entries, err := h.SiteConfig.All(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load configuration"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": entries})
}

// SetConfig handles PUT /api/admin/config/:key.
func (h *AdminHandler) SetConfig(c echo.Context) error {
	key := c.Param("key")
	if key == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid config key"})
	}
	var body struct {
		Value string `json:"value"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := h.SiteConfig.Set(c.Request().Context(), key, body.Value); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save configuration"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "configuration saved"})
}
