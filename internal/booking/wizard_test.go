package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/azulroute/tour-booking-api/internal/model"
)

type fakeIntents struct {
	calls  int
	err    error
	intent Intent
}

func (f *fakeIntents) CreateIntent(ctx context.Context, tourID string, participants int, currency string) (Intent, error) {
	f.calls++
	if f.err != nil {
		return Intent{}, f.err
	}
	return f.intent, nil
}

type fakeStore struct {
	calls int
	err   error
	last  *model.Reservation
}

func (f *fakeStore) CreateReservation(ctx context.Context, r *model.Reservation) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	r.ID = 42
	f.last = r
	return nil
}

type fakeNotifier struct {
	calls int
	err   error
}

func (f *fakeNotifier) ReservationCreated(ctx context.Context, r *model.Reservation) error {
	f.calls++
	return f.err
}

func newTestWizard() (*Wizard, *fakeIntents, *fakeStore, *fakeNotifier) {
	intents := &fakeIntents{intent: Intent{ClientSecret: "cs_test", Amount: 303.66, BaseAmount: 290, Fees: 13.66}}
	store := &fakeStore{}
	notify := &fakeNotifier{}
	w := NewWizard(intents, store, notify)
	w.now = func() time.Time { return time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC) }
	d := w.Draft()
	d.TourID = "douro-valley-day-trip"
	d.TourName = "Douro Valley Day Trip"
	d.Date = "2026-05-11"
	d.Participants = 2
	d.Name = "Ana Costa"
	d.Email = "ana@example.com"
	return w, intents, store, notify
}

func TestWizardOpensAtStepOneWithTomorrowPrefilled(t *testing.T) {
	w := NewWizard(&fakeIntents{}, &fakeStore{}, &fakeNotifier{})
	if w.Step() != StepDateAndParty {
		t.Fatalf("Step() = %d, want %d", w.Step(), StepDateAndParty)
	}
	want := time.Now().AddDate(0, 0, 1).Format(DateLayout)
	if w.Draft().Date != want {
		t.Errorf("prefilled date = %q, want %q", w.Draft().Date, want)
	}
}

func TestWizardHappyPathVisitsEveryStep(t *testing.T) {
	w, intents, store, notify := newTestWizard()
	ctx := context.Background()

	visited := []Step{w.Step()}
	for w.Step() < StepPayment {
		if err := w.Next(ctx); err != nil {
			t.Fatalf("Next() at step %d: %v", w.Step(), err)
		}
		visited = append(visited, w.Step())
	}
	if err := w.ConfirmPayment(ctx); err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}
	visited = append(visited, w.Step())

	want := []Step{StepDateAndParty, StepContactInfo, StepOrderSummary, StepPayment, StepSuccess}
	if len(visited) != len(want) {
		t.Fatalf("visited %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("visited %v, want %v (no skipping)", visited, want)
		}
	}
	if intents.calls != 1 {
		t.Errorf("intent calls = %d, want exactly 1", intents.calls)
	}
	if store.calls != 1 {
		t.Errorf("persistence calls = %d, want exactly 1", store.calls)
	}
	if notify.calls != 1 {
		t.Errorf("notification calls = %d, want exactly 1", notify.calls)
	}
	if store.last.Status != model.StatusPending {
		t.Errorf("reservation status = %q, want pending", store.last.Status)
	}
	if store.last.TotalPrice != 303.66 {
		t.Errorf("reservation total = %v, want intent amount", store.last.TotalPrice)
	}
}

func TestWizardDateGuard(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name string
		date string
		want error
	}{
		{"empty", "", ErrDateRequired},
		{"unparseable", "next tuesday", ErrDateUnparseable},
		{"yesterday", "2026-05-09", ErrDateInPast},
		{"today allowed", "2026-05-10", nil},
		{"tomorrow allowed", "2026-05-11", nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, _, _, _ := newTestWizard()
			w.Draft().Date = c.date
			err := w.Next(ctx)
			if !errors.Is(err, c.want) {
				t.Errorf("Next() = %v, want %v", err, c.want)
			}
			if c.want != nil && w.Step() != StepDateAndParty {
				t.Errorf("step advanced to %d despite guard failure", w.Step())
			}
		})
	}
}

func TestWizardParticipantsGuard(t *testing.T) {
	ctx := context.Background()
	for _, n := range []int{0, -1, 9, 100} {
		w, _, _, _ := newTestWizard()
		w.Draft().Participants = n
		if err := w.Next(ctx); !errors.Is(err, ErrParticipantsRange) {
			t.Errorf("participants=%d: Next() = %v, want ErrParticipantsRange", n, err)
		}
	}
	for n := MinParticipants; n <= MaxParticipants; n++ {
		w, _, _, _ := newTestWizard()
		w.Draft().Participants = n
		if err := w.Next(ctx); err != nil {
			t.Errorf("participants=%d: Next() = %v, want nil", n, err)
		}
	}
}

func TestWizardContactGuard(t *testing.T) {
	ctx := context.Background()
	w, _, _, _ := newTestWizard()
	if err := w.Next(ctx); err != nil {
		t.Fatalf("Next() to contact step: %v", err)
	}
	w.Draft().Name = "   "
	if err := w.Next(ctx); !errors.Is(err, ErrContactRequired) {
		t.Errorf("Next() with blank name = %v, want ErrContactRequired", err)
	}
	if w.Step() != StepContactInfo {
		t.Errorf("step = %d, must not advance past contact info", w.Step())
	}
}

func TestWizardIntentCreatedOncePerEntry(t *testing.T) {
	ctx := context.Background()
	w, intents, _, _ := newTestWizard()
	for w.Step() < StepPayment {
		if err := w.Next(ctx); err != nil {
			t.Fatalf("Next(): %v", err)
		}
	}
	if intents.calls != 1 {
		t.Fatalf("intent calls = %d, want 1", intents.calls)
	}
	if w.Draft().ClientSecret != "cs_test" {
		t.Fatalf("client secret not cached")
	}
}

func TestWizardBackToSummaryDiscardsIntent(t *testing.T) {
	ctx := context.Background()
	w, intents, _, _ := newTestWizard()
	for w.Step() < StepPayment {
		if err := w.Next(ctx); err != nil {
			t.Fatalf("Next(): %v", err)
		}
	}
	if err := w.Back(); err != nil {
		t.Fatalf("Back(): %v", err)
	}
	if w.Step() != StepOrderSummary {
		t.Fatalf("step = %d, want order summary", w.Step())
	}
	if w.Draft().ClientSecret != "" {
		t.Error("client secret should be discarded when re-entering the summary")
	}
	// Guest changes the party size and proceeds again: a fresh intent is
	// required.
	w.Draft().Participants = 4
	if err := w.Next(ctx); err != nil {
		t.Fatalf("Next(): %v", err)
	}
	if intents.calls != 2 {
		t.Errorf("intent calls = %d, want a second sizing call", intents.calls)
	}
}

func TestWizardBackSkipsValidation(t *testing.T) {
	ctx := context.Background()
	w, _, _, _ := newTestWizard()
	if err := w.Next(ctx); err != nil {
		t.Fatalf("Next(): %v", err)
	}
	// Blank out a field that the forward guard would reject; going back must
	// still be allowed.
	w.Draft().Date = ""
	if err := w.Back(); err != nil {
		t.Errorf("Back() = %v, want nil (no re-validation)", err)
	}
	if w.Step() != StepDateAndParty {
		t.Errorf("step = %d, want 1", w.Step())
	}
	if err := w.Back(); !errors.Is(err, ErrNoPreviousStep) {
		t.Errorf("Back() from step 1 = %v, want ErrNoPreviousStep", err)
	}
}

func TestWizardPaymentFailureStaysAtPaymentStep(t *testing.T) {
	ctx := context.Background()
	w, _, store, _ := newTestWizard()
	for w.Step() < StepPayment {
		if err := w.Next(ctx); err != nil {
			t.Fatalf("Next(): %v", err)
		}
	}
	// Next() can never cross 4->5; only the confirmation signal can.
	if err := w.Next(ctx); !errors.Is(err, ErrPaymentNotConfirmed) {
		t.Errorf("Next() at payment step = %v, want ErrPaymentNotConfirmed", err)
	}
	store.err = errors.New("db down")
	if err := w.ConfirmPayment(ctx); err == nil {
		t.Fatal("ConfirmPayment with failing store should error")
	}
	if w.Step() != StepPayment {
		t.Errorf("step = %d, want to remain at payment after failure", w.Step())
	}
	if w.Reservation() != nil {
		t.Error("no reservation must exist after a failed confirmation")
	}
}

func TestWizardNotificationFailureDoesNotBlockSuccess(t *testing.T) {
	ctx := context.Background()
	w, _, _, notify := newTestWizard()
	notify.err = errors.New("smtp down")
	for w.Step() < StepPayment {
		if err := w.Next(ctx); err != nil {
			t.Fatalf("Next(): %v", err)
		}
	}
	if err := w.ConfirmPayment(ctx); err != nil {
		t.Fatalf("ConfirmPayment = %v, notification failure must not surface", err)
	}
	if w.Step() != StepSuccess {
		t.Errorf("step = %d, want success", w.Step())
	}
}

func TestWizardIntentFailureBlocksEntryToPayment(t *testing.T) {
	ctx := context.Background()
	w, intents, _, _ := newTestWizard()
	intents.err = errors.New("processor rejected")
	for w.Step() < StepOrderSummary {
		if err := w.Next(ctx); err != nil {
			t.Fatalf("Next(): %v", err)
		}
	}
	if err := w.Next(ctx); err == nil {
		t.Fatal("Next() into payment should surface the intent error")
	}
	if w.Step() != StepOrderSummary {
		t.Errorf("step = %d, want to remain at summary", w.Step())
	}
}
