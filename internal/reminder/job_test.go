package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/azulroute/tour-booking-api/internal/model"
)

// fakeStore serves rows the way the repository does: only pending,
// unreminded reservations matching the requested calendar day.
type fakeStore struct {
	rows    []model.Reservation
	marked  []uint64
	markErr error
	scanErr error
}

func (f *fakeStore) DueForReminder(ctx context.Context, date time.Time) ([]model.Reservation, error) {
	if f.scanErr != nil {
		return nil, f.scanErr
	}
	day := date.Format("2006-01-02")
	var out []model.Reservation
	for _, r := range f.rows {
		if r.Status == model.StatusPending && !r.ReminderSent && r.Date.Format("2006-01-02") == day {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) MarkReminderSent(ctx context.Context, id uint64) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.marked = append(f.marked, id)
	return nil
}

type fakeSender struct {
	sent    []uint64
	failFor map[uint64]error
}

func (f *fakeSender) SendReminder(r *model.Reservation) error {
	if err := f.failFor[r.ID]; err != nil {
		return err
	}
	f.sent = append(f.sent, r.ID)
	return nil
}

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func newJob(store *fakeStore, sender *fakeSender) *Job {
	j := NewJob(store, sender)
	j.now = func() time.Time { return time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC) }
	return j
}

func TestRunSendsExactlyTwoDaysAhead(t *testing.T) {
	store := &fakeStore{rows: []model.Reservation{
		{ID: 1, Status: model.StatusPending, Date: day("2026-05-12")}, // today+2: due
		{ID: 2, Status: model.StatusPending, Date: day("2026-05-13")}, // today+3: skipped
		{ID: 3, Status: model.StatusPending, Date: day("2026-05-11")}, // today+1: skipped
	}}
	sender := &fakeSender{}

	stats, err := newJob(store, sender).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Sent != 1 || stats.Failed != 0 {
		t.Errorf("stats = %+v, want exactly one sent", stats)
	}
	if len(sender.sent) != 1 || sender.sent[0] != 1 {
		t.Errorf("sent = %v, want [1]", sender.sent)
	}
	if len(store.marked) != 1 || store.marked[0] != 1 {
		t.Errorf("marked = %v, want reminder_sent set for reservation 1", store.marked)
	}
}

func TestRunSkipsAlreadyRemindedAndNonPending(t *testing.T) {
	store := &fakeStore{rows: []model.Reservation{
		{ID: 1, Status: model.StatusPending, Date: day("2026-05-12"), ReminderSent: true},
		{ID: 2, Status: model.StatusCancelled, Date: day("2026-05-12")},
		{ID: 3, Status: model.StatusConfirmed, Date: day("2026-05-12")},
	}}
	sender := &fakeSender{}

	stats, err := newJob(store, sender).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Sent != 0 || stats.Failed != 0 {
		t.Errorf("stats = %+v, want nothing sent", stats)
	}
}

func TestRunPerRowFailureDoesNotAbortBatch(t *testing.T) {
	store := &fakeStore{rows: []model.Reservation{
		{ID: 1, Status: model.StatusPending, Date: day("2026-05-12")},
		{ID: 2, Status: model.StatusPending, Date: day("2026-05-12")},
		{ID: 3, Status: model.StatusPending, Date: day("2026-05-12")},
	}}
	sender := &fakeSender{failFor: map[uint64]error{2: errors.New("smtp 550")}}

	stats, err := newJob(store, sender).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Sent != 2 || stats.Failed != 1 {
		t.Errorf("stats = %+v, want sent=2 failed=1", stats)
	}
	// The failed row must not be flagged, so the next run retries it.
	for _, id := range store.marked {
		if id == 2 {
			t.Error("reservation 2 was flagged despite a failed send")
		}
	}
}

func TestRunScanErrorSurfaces(t *testing.T) {
	store := &fakeStore{scanErr: errors.New("db down")}
	if _, err := newJob(store, &fakeSender{}).Run(context.Background()); err == nil {
		t.Fatal("Run should surface the scan error")
	}
}

func TestRunMarkFailureStillCountsSent(t *testing.T) {
	store := &fakeStore{
		rows:    []model.Reservation{{ID: 1, Status: model.StatusPending, Date: day("2026-05-12")}},
		markErr: errors.New("db down"),
	}
	sender := &fakeSender{}

	stats, err := newJob(store, sender).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// The email went out; the flag failure is logged, not counted as a
	// failed reminder.
	if stats.Sent != 1 || stats.Failed != 0 {
		t.Errorf("stats = %+v, want sent=1 failed=0", stats)
	}
}
