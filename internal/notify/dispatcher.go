package notify

import (
	"context"
	"log"

	"github.com/azulroute/tour-booking-api/internal/model"
)

// Dispatcher routes reservation notifications to the broker when one is
// configured, or sends the emails in-process as a fallback. It satisfies the
// booking wizard's Notifier port; callers treat its result as best-effort
// and only log failures.
type Dispatcher struct {
	pub    *Publisher
	mailer *Mailer
}

// NewDispatcher wires the dispatcher. pub may be nil (no broker configured);
// mailer must be non-nil but may be disabled.
func NewDispatcher(pub *Publisher, mailer *Mailer) *Dispatcher {
	return &Dispatcher{pub: pub, mailer: mailer}
}

// ReservationCreated dispatches the post-booking notification for r.
func (d *Dispatcher) ReservationCreated(ctx context.Context, r *model.Reservation) error {
	ev := EventFromReservation(r)
	if d.pub != nil {
		return d.pub.PublishReservationCreated(ctx, ev)
	}
	if !d.mailer.Enabled() {
		log.Printf("notify: dropping notification for reservation %d, email disabled", r.ID)
		return nil
	}
	if err := d.mailer.SendReservationConfirmation(ev); err != nil {
		return err
	}
	if err := d.mailer.SendAdminNotification(ev); err != nil {
		log.Printf("notify: admin email for reservation %d failed: %v", r.ID, err)
	}
	return nil
}
