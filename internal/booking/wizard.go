// Package booking implements the checkout wizard state machine. The wizard
// owns one in-progress booking draft, walks it through five linear steps and
// triggers the external side effects (payment-intent creation, reservation
// persistence, notification dispatch) at the documented transitions. The
// external boundaries are interfaces so the machine is fully testable with
// fakes.
package booking

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/azulroute/tour-booking-api/internal/model"
)

// Step identifies the wizard's position. Steps are strictly linear: no
// branching and no skip-ahead.
type Step int

const (
	StepDateAndParty Step = iota + 1
	StepContactInfo
	StepOrderSummary
	StepPayment
	StepSuccess
)

// Participant bounds enforced on the draft.
const (
	MinParticipants = 1
	MaxParticipants = 8
)

// DateLayout is the calendar-day format used throughout the wizard.
const DateLayout = "2006-01-02"

var (
	ErrDateRequired        = errors.New("a tour date is required")
	ErrDateInPast          = errors.New("the tour date must be today or later")
	ErrDateUnparseable     = errors.New("the tour date is not a valid date")
	ErrContactRequired     = errors.New("name and email are required")
	ErrParticipantsRange   = errors.New("participants must be between 1 and 8")
	ErrPaymentNotConfirmed = errors.New("payment has not been confirmed")
	ErrNoFurtherStep       = errors.New("no further step")
	ErrNoPreviousStep      = errors.New("no previous step")
)

// Draft is the transient, session-held state of one reservation attempt. It
// is discarded wholesale if the wizard closes before reaching StepSuccess;
// nothing durable exists until the payment confirmation transition.
type Draft struct {
	TourID         string
	TourName       string
	Date           string // calendar day, DateLayout
	Participants   int
	PickupTime     string
	PickupAddress  string
	Name           string
	Email          string
	Phone          string
	BillingAddress string
	Comment        string
	Currency       string

	// Set when a payment intent has been created for the current totals.
	ClientSecret string
	Total        float64
}

// Intent is the result of sizing a charge with the payment processor.
type Intent struct {
	ClientSecret string
	Amount       float64
	BaseAmount   float64
	Fees         float64
}

// IntentCreator sizes and creates a payment intent for a tour and party
// size. Implementations must recompute the price server-side.
type IntentCreator interface {
	CreateIntent(ctx context.Context, tourID string, participants int, currency string) (Intent, error)
}

// ReservationStore persists the reservation exactly once, on payment
// confirmation.
type ReservationStore interface {
	CreateReservation(ctx context.Context, r *model.Reservation) error
}

// Notifier dispatches the post-booking notification. Its error is
// deliberately discarded by the wizard: a failed email must never block a
// paid booking.
type Notifier interface {
	ReservationCreated(ctx context.Context, r *model.Reservation) error
}

// Wizard drives one draft through the five steps.
type Wizard struct {
	draft   Draft
	step    Step
	intents IntentCreator
	store   ReservationStore
	notify  Notifier
	now     func() time.Time

	reservation *model.Reservation // set once, at the success transition
}

// NewWizard opens a wizard at step 1 with tomorrow pre-filled as the date,
// matching what the booking form shows when it opens.
func NewWizard(intents IntentCreator, store ReservationStore, notify Notifier) *Wizard {
	w := &Wizard{
		step:    StepDateAndParty,
		intents: intents,
		store:   store,
		notify:  notify,
		now:     time.Now,
	}
	w.draft.Participants = MinParticipants
	w.draft.Date = w.now().AddDate(0, 0, 1).Format(DateLayout)
	return w
}

// Step returns the wizard's current step.
func (w *Wizard) Step() Step { return w.step }

// Draft exposes the mutable draft so form fields can be bound to it.
func (w *Wizard) Draft() *Draft { return &w.draft }

// Reservation returns the persisted reservation after the success
// transition, nil before it.
func (w *Wizard) Reservation() *model.Reservation { return w.reservation }

// Next advances one step forward after validating the current step's guard.
// The 3->4 transition creates a payment intent as a side effect when none is
// cached. The 4->5 transition never happens through Next: it requires the
// explicit payment confirmation signal (ConfirmPayment).
func (w *Wizard) Next(ctx context.Context) error {
	switch w.step {
	case StepDateAndParty:
		if err := w.validateDateAndParty(); err != nil {
			return err
		}
	case StepContactInfo:
		if strings.TrimSpace(w.draft.Name) == "" || strings.TrimSpace(w.draft.Email) == "" {
			return ErrContactRequired
		}
	case StepOrderSummary:
		// Unconditional transition, but entering the payment step sizes the
		// charge when no intent is cached for the current draft.
		if w.draft.ClientSecret == "" {
			intent, err := w.intents.CreateIntent(ctx, w.draft.TourID, w.draft.Participants, w.draft.Currency)
			if err != nil {
				return err
			}
			w.draft.ClientSecret = intent.ClientSecret
			w.draft.Total = intent.Amount
		}
	case StepPayment:
		return ErrPaymentNotConfirmed
	default:
		return ErrNoFurtherStep
	}
	w.step++
	return nil
}

// Back moves one step backward without re-validating forward guards. It is
// allowed from steps 2-4. Returning to the order summary discards the cached
// payment intent: the participant count may change before the guest moves
// forward again, so the charge must be re-sized.
func (w *Wizard) Back() error {
	if w.step <= StepDateAndParty || w.step >= StepSuccess {
		return ErrNoPreviousStep
	}
	w.step--
	if w.step == StepOrderSummary {
		w.draft.ClientSecret = ""
		w.draft.Total = 0
	}
	return nil
}

// ConfirmPayment is the success signal from the payment processor and the
// only way to reach StepSuccess. It persists the reservation (status
// "pending") and fires the notification dispatch. The notification result is
// logged and discarded; persistence failure keeps the wizard at StepPayment
// so the guest can retry.
func (w *Wizard) ConfirmPayment(ctx context.Context) error {
	if w.step != StepPayment {
		return ErrPaymentNotConfirmed
	}
	date, err := time.Parse(DateLayout, w.draft.Date)
	if err != nil {
		return ErrDateUnparseable
	}
	r := &model.Reservation{
		Name:         strings.TrimSpace(w.draft.Name),
		Email:        strings.TrimSpace(w.draft.Email),
		Phone:        strings.TrimSpace(w.draft.Phone),
		TourID:       w.draft.TourID,
		TourName:     w.draft.TourName,
		Date:         date,
		Participants: w.draft.Participants,
		TotalPrice:   w.draft.Total,
		Status:       model.StatusPending,
		Message:      w.draft.Comment,
	}
	if err := w.store.CreateReservation(ctx, r); err != nil {
		return err
	}
	w.reservation = r
	w.step = StepSuccess

	// Best-effort, non-blocking by contract: the booking already succeeded.
	if err := w.notify.ReservationCreated(ctx, r); err != nil {
		log.Printf("booking: notification dispatch failed for reservation %d: %v", r.ID, err)
	}
	return nil
}

func (w *Wizard) validateDateAndParty() error {
	if strings.TrimSpace(w.draft.Date) == "" {
		return ErrDateRequired
	}
	date, err := time.Parse(DateLayout, w.draft.Date)
	if err != nil {
		return ErrDateUnparseable
	}
	today := w.now().UTC().Truncate(24 * time.Hour)
	if date.Before(today) {
		return ErrDateInPast
	}
	if w.draft.Participants < MinParticipants || w.draft.Participants > MaxParticipants {
		return ErrParticipantsRange
	}
	return nil
}
