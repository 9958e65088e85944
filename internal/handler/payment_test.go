package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/azulroute/tour-booking-api/internal/payment"
)

type fakeIntents struct {
	intent payment.Intent
	err    error
	calls  int
}

func (f *fakeIntents) CreateIntent(_ context.Context, tourID string, participants int, currency string) (payment.Intent, error) {
	f.calls++
	if f.err != nil {
		return payment.Intent{}, f.err
	}
	return f.intent, nil
}

func postIntent(t *testing.T, h *PaymentHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/create-payment-intent", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h.CreateIntent(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestCreateIntentSuccess(t *testing.T) {
	fi := &fakeIntents{intent: payment.Intent{
		ClientSecret: "pi_123_secret_456",
		Amount:       303.66,
		BaseAmount:   290,
		Fees:         13.66,
	}}
	h := NewPaymentHandler(fi, "eur", "pk_test_123")

	rec := postIntent(t, h, `{"tourId":"douro-valley-day-trip","participants":2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got payment.Intent
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ClientSecret != "pi_123_secret_456" || got.Amount != 303.66 {
		t.Errorf("unexpected intent: %+v", got)
	}
	if fi.calls != 1 {
		t.Errorf("service called %d times, want 1", fi.calls)
	}
}

func TestCreateIntentValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing tour", `{"participants":2}`},
		{"zero participants", `{"tourId":"porto-food-walk","participants":0}`},
		{"too many participants", `{"tourId":"porto-food-walk","participants":9}`},
		{"malformed body", `{`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fi := &fakeIntents{}
			rec := postIntent(t, NewPaymentHandler(fi, "eur", "pk_test_123"), tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if fi.calls != 0 {
				t.Errorf("service was called %d times for an invalid request", fi.calls)
			}
		})
	}
}

func TestPaymentConfig(t *testing.T) {
	h := NewPaymentHandler(&fakeIntents{}, "eur", "pk_test_123")
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/payment-config", nil)
	rec := httptest.NewRecorder()
	if err := h.Config(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		PublishableKey string `json:"publishableKey"`
		Currency       string `json:"currency"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.PublishableKey != "pk_test_123" || body.Currency != "eur" {
		t.Errorf("unexpected config: %+v", body)
	}
}

func TestCreateIntentTourNotFound(t *testing.T) {
	fi := &fakeIntents{err: payment.ErrTourNotFound}
	rec := postIntent(t, NewPaymentHandler(fi, "eur", "pk_test_123"), `{"tourId":"nope","participants":2}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestCreateIntentNotConfiguredIsGeneric(t *testing.T) {
	fi := &fakeIntents{err: payment.ErrNotConfigured}
	rec := postIntent(t, NewPaymentHandler(fi, "eur", "pk_test_123"), `{"tourId":"porto-food-walk","participants":2}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "key") {
		t.Errorf("response leaks configuration detail: %s", rec.Body.String())
	}
}

func TestCreateIntentUpstreamErrorPassthrough(t *testing.T) {
	fi := &fakeIntents{err: errors.New("card network timeout")}
	rec := postIntent(t, NewPaymentHandler(fi, "eur", "pk_test_123"), `{"tourId":"porto-food-walk","participants":2}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "card network timeout") {
		t.Errorf("upstream message not passed through: %s", rec.Body.String())
	}
}
