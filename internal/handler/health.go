package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/azulroute/tour-booking-api/internal/payment"
)

// StripeProber reports whether the payment provider is reachable and which
// mode (test or live) the configured key selects.
type StripeProber interface {
	HealthProbe(ctx context.Context) payment.Probe
}

// Pinger is the database connectivity probe; *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler verifies both external dependencies the booking flow needs:
// the payment provider and the database. Used by uptime monitors, so the
// response stays small and the overall status code reflects the aggregate.
type HealthHandler struct {
	DB     Pinger
	Stripe StripeProber
}

func NewHealthHandler(db Pinger, stripe StripeProber) *HealthHandler {
	if db == nil || stripe == nil {
		panic("nil dependency passed to NewHealthHandler")
	}
	return &HealthHandler{DB: db, Stripe: stripe}
}

type dbCheckResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Check handles GET /api/health-check. Both probes always run; a failing
// Stripe probe must not hide a failing database probe or vice versa. The
// response is 200 only when every check passes, 500 otherwise.
func (h *HealthHandler) Check(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stripeCheck := h.Stripe.HealthProbe(ctx)

	dbCheck := dbCheckResult{Status: "connected"}
	dbOK := true
	if err := h.DB.PingContext(ctx); err != nil {
		dbCheck = dbCheckResult{Status: "error", Message: err.Error()}
		dbOK = false
	}

	overall := "ok"
	code := http.StatusOK
	if !stripeCheck.OK || !dbOK {
		overall = "error"
		code = http.StatusInternalServerError
	}

	return c.JSON(code, echo.Map{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"status":    overall,
		"checks": echo.Map{
			"stripe":   stripeCheck,
			"database": dbCheck,
		},
	})
}
