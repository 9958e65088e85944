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
)

type fakeSubscriberCounter struct {
	n   int
	err error
}

func (f fakeSubscriberCounter) Count(context.Context) (int, error) { return f.n, f.err }

func TestAdminStats(t *testing.T) {
	h := &AdminHandler{Subscribers: fakeSubscriberCounter{n: 42}}
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	rec := httptest.NewRecorder()
	if err := h.Stats(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Subscribers int `json:"newsletter_subscribers"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Subscribers != 42 {
		t.Errorf("newsletter_subscribers = %d, want 42", body.Subscribers)
	}
}

func TestAdminStatsCountFailure(t *testing.T) {
	h := &AdminHandler{Subscribers: fakeSubscriberCounter{err: errors.New("db down")}}
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	rec := httptest.NewRecorder()
	if err := h.Stats(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

// The guard paths below reject the request before any repository call, so a
// zero-value handler is safe to use.
func TestChangePasswordGuards(t *testing.T) {
	h := &AdminAuthHandler{BcryptCost: 4}

	newCtx := func(body string, email string) (echo.Context, *httptest.ResponseRecorder) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPut, "/api/admin/password", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if email != "" {
			c.Set("admin_email", email)
		}
		return c, rec
	}

	t.Run("no session email", func(t *testing.T) {
		c, rec := newCtx(`{"current_password":"old-secret","new_password":"new-secret-1"}`, "")
		if err := h.ChangePassword(c); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		c, rec := newCtx(`{"new_password":"new-secret-1"}`, "admin@example.com")
		if err := h.ChangePassword(c); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("new password too short", func(t *testing.T) {
		c, rec := newCtx(`{"current_password":"old-secret","new_password":"short"}`, "admin@example.com")
		if err := h.ChangePassword(c); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}
