package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/azulroute/tour-booking-api/internal/reminder"
)

// ReminderHandler triggers the reminder batch on demand. The route is meant
// for an external cron caller; the job is also scheduled in-process, and both
// paths share the same idempotent flagging so overlap is harmless.
type ReminderHandler struct {
	Job *reminder.Job
}

func NewReminderHandler(job *reminder.Job) *ReminderHandler {
	if job == nil {
		panic("nil reminder job passed to NewReminderHandler")
	}
	return &ReminderHandler{Job: job}
}

// Run handles GET and POST /api/cron/reminders.
func (h *ReminderHandler) Run(c echo.Context) error {
	stats, err := h.Job.Run(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reminder scan failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "reminder batch complete",
		"stats":   stats,
	})
}
