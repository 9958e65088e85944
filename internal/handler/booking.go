package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/azulroute/tour-booking-api/internal/booking"
	"github.com/azulroute/tour-booking-api/internal/catalog"
	"github.com/azulroute/tour-booking-api/internal/model"
	"github.com/azulroute/tour-booking-api/internal/pricing"
	"github.com/azulroute/tour-booking-api/internal/repository"
)

// ReservationNotifier is the fire-and-forget hook invoked after a
// reservation row is written. Failures are logged, never surfaced.
type ReservationNotifier interface {
	ReservationCreated(ctx context.Context, r *model.Reservation) error
}

// BookingHandler persists reservations and drives the status machine. The
// total price is recomputed from the catalog on every create; a
// client-supplied figure is accepted only as a display hint and discarded.
type BookingHandler struct {
	Catalog      *catalog.Service
	Reservations *repository.ReservationRepo
	Notify       ReservationNotifier
}

func NewBookingHandler(cat *catalog.Service, reservations *repository.ReservationRepo, notify ReservationNotifier) *BookingHandler {
	if cat == nil || reservations == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Catalog: cat, Reservations: reservations, Notify: notify}
}

// Create handles POST /api/reservations. The reservation is stored as
// pending with the tour name and the server-computed total snapshotted onto
// the row. Notification dispatch happens after the row exists and cannot
// fail the request.
func (h *BookingHandler) Create(c echo.Context) error {
	var body struct {
		Name         string `json:"name"`
		Email        string `json:"email"`
		Phone        string `json:"phone"`
		TourID       string `json:"tourId"`
		Date         string `json:"date"`
		Participants int    `json:"participants"`
		Message      string `json:"message"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Name == "" || body.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and email are required"})
	}
	if body.TourID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tourId is required"})
	}
	if body.Participants < booking.MinParticipants || body.Participants > booking.MaxParticipants {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "participants must be between 1 and 8"})
	}
	date, err := time.ParseInLocation(booking.DateLayout, body.Date, time.UTC)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be formatted YYYY-MM-DD"})
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if !date.After(today) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be at least one day ahead"})
	}

	ctx := c.Request().Context()
	tour, err := h.Catalog.TourByID(ctx, body.TourID, h.Catalog.BaseLang())
	if err != nil {
		if errors.Is(err, repository.ErrTourNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "tour not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load tour"})
	}

	subtotal := pricing.Subtotal(tour.Price, tour.PricingTiers, body.Participants)
	res := &model.Reservation{
		Name:         body.Name,
		Email:        body.Email,
		Phone:        body.Phone,
		TourID:       tour.ID,
		TourName:     tour.Title,
		Date:         date,
		Participants: body.Participants,
		TotalPrice:   pricing.Total(subtotal),
		Status:       model.StatusPending,
		Message:      body.Message,
	}
	if err := h.Reservations.CreateReservation(ctx, res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"})
	}

	if h.Notify != nil {
		if err := h.Notify.ReservationCreated(ctx, res); err != nil {
			log.Printf("reservation %d: notification dispatch failed: %v", res.ID, err)
		}
	}
	return c.JSON(http.StatusCreated, res)
}

// Confirm handles POST /api/confirm-booking. It moves a pending reservation
// to confirmed, typically after the frontend reports a successful payment.
func (h *BookingHandler) Confirm(c echo.Context) error {
	var body struct {
		ReservationID uint64 `json:"reservationId"`
	}
	if err := c.Bind(&body); err != nil || body.ReservationID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reservationId is required"})
	}
	ctx := c.Request().Context()
	if err := h.Reservations.UpdateStatus(ctx, body.ReservationID, model.StatusConfirmed); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		if errors.Is(err, repository.ErrInvalidTransition) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is not pending"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to confirm reservation"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Get handles GET /api/reservations/:id.
func (h *BookingHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	res, err := h.Reservations.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservation"})
	}
	return c.JSON(http.StatusOK, res)
}
