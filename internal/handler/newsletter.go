package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/azulroute/tour-booking-api/internal/repository"
)

// NewsletterHandler records newsletter signups. Subscribing twice with the
// same address is accepted silently.
type NewsletterHandler struct {
	Subscribers *repository.SubscriberRepo
}

func NewNewsletterHandler(subscribers *repository.SubscriberRepo) *NewsletterHandler {
	if subscribers == nil {
		panic("nil subscriber repository passed to NewNewsletterHandler")
	}
	return &NewsletterHandler{Subscribers: subscribers}
}

// Subscribe handles POST /api/newsletter.
func (h *NewsletterHandler) Subscribe(c echo.Context) error {
	var body struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	email := strings.TrimSpace(strings.ToLower(body.Email))
	if email == "" || !strings.Contains(email, "@") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "a valid email is required"})
	}
	if err := h.Subscribers.Subscribe(c.Request().Context(), email); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to subscribe"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "subscribed"})
}
