package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/azulroute/tour-booking-api/internal/handler"
	"github.com/azulroute/tour-booking-api/internal/middleware"
)

// PublicHandlers bundles the handlers mounted without authentication.
type PublicHandlers struct {
	Health     *handler.HealthHandler
	Catalog    *handler.CatalogHandler
	Payment    *handler.PaymentHandler
	Booking    *handler.BookingHandler
	Review     *handler.ReviewHandler
	Newsletter *handler.NewsletterHandler
	Reminder   *handler.ReminderHandler
}

// RegisterPublic mounts every unauthenticated endpoint under /api. The
// cacheMW middleware is applied only to the catalog reads; everything
// stateful stays uncached.
func RegisterPublic(e *echo.Echo, h PublicHandlers, cacheMW echo.MiddlewareFunc) {
	e.GET("/api/health-check", h.Health.Check)

	// ---- Catalog ----
	e.GET("/api/tours", h.Catalog.List, cacheMW)
	e.GET("/api/tours/:id", h.Catalog.Get, cacheMW)

	// ---- Checkout ----
	e.GET("/api/payment-config", h.Payment.Config)
	e.POST("/api/create-payment-intent", h.Payment.CreateIntent)
	e.POST("/api/reservations", h.Booking.Create)
	e.GET("/api/reservations/:id", h.Booking.Get)
	e.POST("/api/confirm-booking", h.Booking.Confirm)

	// ---- Reviews & newsletter ----
	e.GET("/api/reviews", h.Review.List)
	e.POST("/api/reviews", h.Review.Create)
	e.POST("/api/newsletter/subscribe", h.Newsletter.Subscribe)

	// ---- Scheduled tasks ----
	// GET is kept alongside POST because hosted cron services commonly only
	// issue GET requests.
	e.GET("/api/cron/reminders", h.Reminder.Run)
	e.POST("/api/cron/reminders", h.Reminder.Run)
}

// RegisterAdmin mounts the back office under /api/admin. Login is the only
// route outside the JWT middleware.
func RegisterAdmin(e *echo.Echo, auth *handler.AdminAuthHandler, a *handler.AdminHandler, jwtSecret string) {
	e.POST("/api/admin/login", auth.Login)

	g := e.Group("/api/admin", middleware.AdminAuth(jwtSecret))

	// ---- Session ----
	g.PUT("/password", auth.ChangePassword)

	// ---- Dashboard ----
	g.GET("/stats", a.Stats)

	// ---- Catalog publishing ----
	g.PUT("/tours/:id", a.UpsertTour)
	g.DELETE("/tours/:id", a.DeleteTour)
	g.PUT("/tours/:id/draft", a.SaveDraft)
	g.DELETE("/tours/:id/draft", a.ClearDraft)

	// ---- Reservations ----
	g.GET("/reservations", a.ListReservations)
	g.PATCH("/reservations/:id/status", a.UpdateReservationStatus)

	// ---- Review moderation ----
	g.GET("/reviews", a.ListAllReviews)
	g.PATCH("/reviews/:id/publish", a.PublishReview)
	g.DELETE("/reviews/:id", a.DeleteReview)

	// ---- Site settings ----
	g.GET("/config", a.GetConfig)
	g.PUT("/config/:key", a.SetConfig)
}
