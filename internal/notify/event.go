// Package notify implements the best-effort notification pipeline. A
// reservation.created event is published to the message broker right after a
// booking is persisted; a background consumer turns each event into the
// guest confirmation and admin notification emails. Every stage logs and
// swallows its own failures: notifications never block or fail a paid
// booking.
package notify

import (
	"time"

	"github.com/azulroute/tour-booking-api/internal/model"
)

// reservationQueueName is the durable queue both publisher and consumer
// declare.
const reservationQueueName = "reservation.created"

// ReservationCreatedEvent is published when a reservation is successfully
// persisted. It carries everything the consumer needs to format the emails
// without querying the primary database.
type ReservationCreatedEvent struct {
	ReservationID uint64  `json:"reservation_id"`
	TourID        string  `json:"tour_id"`
	TourName      string  `json:"tour_name"`
	Date          string  `json:"date"` // YYYY-MM-DD
	Participants  int     `json:"participants"`
	TotalPrice    float64 `json:"total_price"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Message       string  `json:"message"`
	CreatedAt     string  `json:"created_at"`
}

// EventFromReservation builds the wire payload for a persisted reservation.
func EventFromReservation(r *model.Reservation) ReservationCreatedEvent {
	return ReservationCreatedEvent{
		ReservationID: r.ID,
		TourID:        r.TourID,
		TourName:      r.TourName,
		Date:          r.Date.Format("2006-01-02"),
		Participants:  r.Participants,
		TotalPrice:    r.TotalPrice,
		Name:          r.Name,
		Email:         r.Email,
		Phone:         r.Phone,
		Message:       r.Message,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}
}
