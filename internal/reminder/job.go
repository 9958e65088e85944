// Package reminder implements the upcoming-tour reminder batch. The job
// scans for pending reservations dated exactly two days ahead that have not
// been reminded yet, emails each guest, and flips the reminder_sent flag on
// send success. The flag is the only idempotency guard: two overlapping job
// runs can double-send. That is a known, accepted gap in the current design
// rather than a guarantee to build on.
package reminder

import (
	"context"
	"log"
	"time"

	"github.com/azulroute/tour-booking-api/internal/model"
)

// LeadDays is how far ahead of the tour date the reminder goes out.
const LeadDays = 2

// Store is the reservation persistence the job needs.
type Store interface {
	DueForReminder(ctx context.Context, date time.Time) ([]model.Reservation, error)
	MarkReminderSent(ctx context.Context, id uint64) error
}

// Sender delivers one reminder email.
type Sender interface {
	SendReminder(r *model.Reservation) error
}

// Stats summarizes one batch run.
type Stats struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// Job scans and sends reminders. It is safe to trigger from both the cron
// endpoint and the in-process ticker; each run is independent.
type Job struct {
	store  Store
	sender Sender
	now    func() time.Time
}

// NewJob constructs a reminder job.
func NewJob(store Store, sender Sender) *Job {
	return &Job{store: store, sender: sender, now: time.Now}
}

// Run executes one batch. Rows are processed sequentially; a failing row is
// counted and logged but never aborts the batch. The returned error covers
// only the initial scan; once rows are in hand the batch always completes.
func (j *Job) Run(ctx context.Context) (Stats, error) {
	target := j.now().UTC().AddDate(0, 0, LeadDays)
	rows, err := j.store.DueForReminder(ctx, target)
	if err != nil {
		return Stats{}, err
	}

	var stats Stats
	for i := range rows {
		r := &rows[i]
		if err := j.sender.SendReminder(r); err != nil {
			log.Printf("reminder: send for reservation %d failed: %v", r.ID, err)
			stats.Failed++
			continue
		}
		// Flag only after a successful send; a failed send stays eligible
		// for the next run.
		if err := j.store.MarkReminderSent(ctx, r.ID); err != nil {
			log.Printf("reminder: flagging reservation %d failed: %v", r.ID, err)
		}
		stats.Sent++
	}
	return stats, nil
}

// RunEvery triggers the job on a fixed interval until ctx is cancelled. It
// is launched as a goroutine from main alongside the cron endpoint, so
// deployments without an external scheduler still send reminders.
func (j *Job) RunEvery(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats, err := j.Run(ctx)
			if err != nil {
				log.Printf("reminder: scheduled run failed: %v", err)
				continue
			}
			if stats.Sent > 0 || stats.Failed > 0 {
				log.Printf("reminder: scheduled run sent=%d failed=%d", stats.Sent, stats.Failed)
			}
		}
	}
}
