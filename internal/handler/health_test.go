package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/azulroute/tour-booking-api/internal/payment"
)

type fakePinger struct{ err error }

func (f fakePinger) PingContext(context.Context) error { return f.err }

type fakeProber struct{ probe payment.Probe }

func (f fakeProber) HealthProbe(context.Context) payment.Probe { return f.probe }

func TestHealthCheckAggregation(t *testing.T) {
	cases := []struct {
		name       string
		stripeOK   bool
		dbErr      error
		wantCode   int
		wantStatus string
	}{
		{"both ok", true, nil, http.StatusOK, "ok"},
		{"stripe down", false, nil, http.StatusInternalServerError, "error"},
		{"database down", true, errors.New("connection refused"), http.StatusInternalServerError, "error"},
		{"both down", false, errors.New("connection refused"), http.StatusInternalServerError, "error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			probe := payment.Probe{OK: true, Status: "ok", Mode: "test"}
			if !tc.stripeOK {
				probe = payment.Probe{Status: "error", Message: "balance probe failed"}
			}
			h := NewHealthHandler(fakePinger{err: tc.dbErr}, fakeProber{probe: probe})

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/health-check", nil)
			rec := httptest.NewRecorder()
			if err := h.Check(e.NewContext(req, rec)); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != tc.wantCode {
				t.Errorf("status code = %d, want %d", rec.Code, tc.wantCode)
			}

			var body struct {
				Timestamp string `json:"timestamp"`
				Status    string `json:"status"`
				Checks    struct {
					Stripe   payment.Probe `json:"stripe"`
					Database struct {
						Status  string `json:"status"`
						Message string `json:"message"`
					} `json:"database"`
				} `json:"checks"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if body.Status != tc.wantStatus {
				t.Errorf("overall status = %q, want %q", body.Status, tc.wantStatus)
			}
			if body.Timestamp == "" {
				t.Error("timestamp missing from response")
			}

			// A failing probe must not hide the other check's result.
			wantStripe := "ok"
			if !tc.stripeOK {
				wantStripe = "error"
			}
			if body.Checks.Stripe.Status != wantStripe {
				t.Errorf("stripe check status = %q, want %q", body.Checks.Stripe.Status, wantStripe)
			}
			wantDB := "connected"
			if tc.dbErr != nil {
				wantDB = "error"
			}
			if body.Checks.Database.Status != wantDB {
				t.Errorf("database check status = %q, want %q", body.Checks.Database.Status, wantDB)
			}
		})
	}
}
