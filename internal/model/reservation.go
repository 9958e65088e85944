package model

import "time"

// ReservationStatus enumerates the lifecycle states of a reservation.
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
)

// Valid reports whether s is one of the known status values.
func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// CanTransition reports whether a reservation may move from s to next.
// The only legal edges are pending->confirmed, pending->cancelled and
// confirmed->completed; everything else is rejected, including self loops.
func (s ReservationStatus) CanTransition(next ReservationStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted
	}
	return false
}

// Reservation is the durable booking record created after a successful
// payment confirmation. TourName and TotalPrice are snapshots taken at
// creation time: later catalog or price edits must not affect a paid booking.
type Reservation struct {
	ID           uint64            `json:"id"`
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	Phone        string            `json:"phone"`
	TourID       string            `json:"tour_id"`
	TourName     string            `json:"tour_name"`
	Date         time.Time         `json:"date"` // calendar day of the tour, midnight UTC
	Participants int               `json:"participants"`
	TotalPrice   float64           `json:"total_price"` // fee-inclusive, immutable after creation
	Status       ReservationStatus `json:"status"`
	Message      string            `json:"message"`
	ReminderSent bool              `json:"reminder_sent"`
	CreatedAt    time.Time         `json:"created_at"`
}
