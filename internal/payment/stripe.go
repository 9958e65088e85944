// Package payment wraps the Stripe SDK behind a service object constructed
// once at startup and injected into handlers. Amounts are always recomputed
// from the stored tour price; a client-supplied price is never trusted.
package payment

import (
	"context"
	"errors"
	"strconv"
	"strings"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"

	"github.com/azulroute/tour-booking-api/internal/model"
	"github.com/azulroute/tour-booking-api/internal/pricing"
	"github.com/azulroute/tour-booking-api/internal/repository"
)

var (
	// ErrNotConfigured is returned when no secret key was provided at
	// startup. Handlers translate it to a generic 500 without leaking
	// configuration details.
	ErrNotConfigured = errors.New("payment processor is not configured")
	// ErrTourNotFound is returned when the referenced tour exists in no
	// catalog source.
	ErrTourNotFound = errors.New("tour not found")
)

// DefaultCurrency is used when the request does not specify one.
const DefaultCurrency = "eur"

// Intent is the sized charge returned to the client: the opaque secret the
// browser needs to confirm the payment, plus the fee breakdown shown on the
// order summary.
type Intent struct {
	ClientSecret string  `json:"clientSecret"`
	Amount       float64 `json:"amount"`     // fee-inclusive total
	BaseAmount   float64 `json:"baseAmount"` // seller-side subtotal
	Fees         float64 `json:"stripeFees"`
}

// CatalogSource resolves the authoritative tour record used for server-side
// price computation.
type CatalogSource interface {
	TourByID(ctx context.Context, id, lang string) (*model.Tour, error)
}

// Probe is the result of the health-check call against the processor.
type Probe struct {
	OK      bool   `json:"-"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Mode    string `json:"mode,omitempty"`
}

// StripeService creates payment intents sized by the pricing rules. The
// zero-key form is a valid, disabled service: every call returns
// ErrNotConfigured.
type StripeService struct {
	sc       *client.API
	catalog  CatalogSource
	baseLang string
	testMode bool
}

// NewStripeService constructs the service. An empty secretKey yields a
// disabled service rather than an error so that main can wire handlers
// unconditionally.
func NewStripeService(secretKey string, catalog CatalogSource, baseLang string) *StripeService {
	s := &StripeService{catalog: catalog, baseLang: baseLang}
	if secretKey == "" {
		return s
	}
	s.testMode = strings.HasPrefix(secretKey, "sk_test_")
	s.sc = &client.API{}
	s.sc.Init(secretKey, nil)
	return s
}

// Enabled reports whether a secret key was configured.
func (s *StripeService) Enabled() bool { return s.sc != nil }

// CreateIntent recomputes subtotal and total for the tour and party size and
// creates a Stripe payment intent for the total, in cents. Upstream
// processor errors are returned verbatim for diagnosability.
func (s *StripeService) CreateIntent(ctx context.Context, tourID string, participants int, currency string) (Intent, error) {
	if s.sc == nil {
		return Intent{}, ErrNotConfigured
	}
	if currency == "" {
		currency = DefaultCurrency
	}

	tour, err := s.catalog.TourByID(ctx, tourID, s.baseLang)
	if err != nil {
		if errors.Is(err, repository.ErrTourNotFound) {
			return Intent{}, ErrTourNotFound
		}
		return Intent{}, err
	}

	subtotal := pricing.Subtotal(tour.Price, tour.PricingTiers, participants)
	total := pricing.Total(subtotal)

	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(pricing.Cents(total)),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("tour_id", tourID)
	params.AddMetadata("participants", strconv.Itoa(participants))

	pi, err := s.sc.PaymentIntents.New(params)
	if err != nil {
		return Intent{}, err
	}
	return Intent{
		ClientSecret: pi.ClientSecret,
		Amount:       total,
		BaseAmount:   subtotal,
		Fees:         pricing.Fees(subtotal),
	}, nil
}

// HealthProbe checks connectivity to the processor. It retrieves the account
// balance, the cheapest authenticated call the API offers.
func (s *StripeService) HealthProbe(ctx context.Context) Probe {
	if s.sc == nil {
		return Probe{Status: "error", Message: "secret key not configured"}
	}
	if _, err := s.sc.Balance.Get(&stripe.BalanceParams{Params: stripe.Params{Context: ctx}}); err != nil {
		return Probe{Status: "error", Message: err.Error()}
	}
	mode := "live"
	if s.testMode {
		mode = "test"
	}
	return Probe{OK: true, Status: "ok", Mode: mode}
}
