package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/azulroute/tour-booking-api/internal/booking"
	"github.com/azulroute/tour-booking-api/internal/payment"
)

// IntentService sizes and creates a payment intent for a tour and party.
type IntentService interface {
	CreateIntent(ctx context.Context, tourID string, participants int, currency string) (payment.Intent, error)
}

// PaymentHandler exposes payment-intent creation to the checkout page. The
// amount is always recomputed server-side; the request carries only the tour
// reference and party size.
type PaymentHandler struct {
	Intents        IntentService
	Currency       string // default when the request does not name one
	PublishableKey string // safe to expose; the checkout page needs it to init the SDK
}

func NewPaymentHandler(intents IntentService, currency, publishableKey string) *PaymentHandler {
	if intents == nil {
		panic("nil intent service passed to NewPaymentHandler")
	}
	if currency == "" {
		currency = payment.DefaultCurrency
	}
	return &PaymentHandler{Intents: intents, Currency: currency, PublishableKey: publishableKey}
}

// Config handles GET /api/payment-config. It tells the checkout page which
// publishable key and currency to initialize with; an empty key signals that
// checkout is disabled.
func (h *PaymentHandler) Config(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"publishableKey": h.PublishableKey,
		"currency":       h.Currency,
	})
}

// CreateIntent handles POST /api/create-payment-intent. The body must name a
// tour and a participant count between 1 and 8. Missing configuration is
// reported as a generic 500 so the secret-key state never leaks to clients;
// upstream processor errors pass through verbatim.
func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	var body struct {
		TourID       string `json:"tourId"`
		Participants int    `json:"participants"`
		Currency     string `json:"currency"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.TourID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tourId is required"})
	}
	if body.Participants < booking.MinParticipants || body.Participants > booking.MaxParticipants {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "participants must be between 1 and 8"})
	}

	currency := body.Currency
	if currency == "" {
		currency = h.Currency
	}
	intent, err := h.Intents.CreateIntent(c.Request().Context(), body.TourID, body.Participants, currency)
	if err != nil {
		if errors.Is(err, payment.ErrTourNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "tour not found"})
		}
		if errors.Is(err, payment.ErrNotConfigured) {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "payment processing unavailable"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, intent)
}
