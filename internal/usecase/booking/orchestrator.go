package booking

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	bookingdomain "github.com/rocker1166/skilllink/internal/domain/booking"
	"github.com/rocker1166/skilllink/internal/domain/notification"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

// Orchestration states. A run always terminates in Complete or
// AwaitingPayment; NotifyFailed is a transient state the run passes
// through, never a terminal one.
const (
	StateBookingCreated  = "booking_created"
	StateNotified        = "notified"
	StateNotifyFailed    = "notify_failed"
	StateAwaitingPayment = "awaiting_payment"
	StateComplete        = "complete"
)

// Payload is the booking hand-off shape the creation flow produces and the
// orchestrator consumes.
type Payload struct {
	ID            uuid.UUID `json:"id"`
	ProviderID    uuid.UUID `json:"provider_id"`
	RequesterID   uuid.UUID `json:"requester_id"`
	RequesterName string    `json:"requester_name"`
	ServiceName   string    `json:"service_name"`
	IsSkillSwap   bool      `json:"is_skill_swap"`
}

// Ack is the transient user-facing acknowledgment of a completed step.
type Ack struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Outcome is the structured result of one orchestration run. The delivery
// layer alone decides how to surface it; the orchestrator never touches
// presentation directly.
type Outcome struct {
	State           string  `json:"state"`
	Booking         Payload `json:"booking"`
	Ack             Ack     `json:"ack"`
	Warning         string  `json:"warning,omitempty"`
	PaymentRequired bool    `json:"payment_required"`
}

// EventSink observes the orchestration's ordered side effects. The
// creation-dialog close fires before the notification step resolves, and
// the payment request fires strictly after it.
type EventSink interface {
	DialogClosed(p Payload)
	PaymentRequested(p Payload)
}

// NopSink satisfies EventSink for callers without an observer.
type NopSink struct{}

func (NopSink) DialogClosed(Payload)     {}
func (NopSink) PaymentRequested(Payload) {}

// Pusher delivers a realtime copy of a persisted notification,
// best-effort.
type Pusher interface {
	Push(userID uuid.UUID, n notification.Notification)
}

type CreateInput struct {
	ProviderID    uuid.UUID
	RequesterID   uuid.UUID
	RequesterName string
	ServiceName   string
	IsSkillSwap   bool
}

type Orchestrator struct {
	bookings      bookingdomain.Repository
	notifications notification.Repository
	pusher        Pusher
	logger        *log.Logger

	// stepTimeout bounds each orchestration step so a hung store call
	// cannot wedge the workflow.
	stepTimeout time.Duration
}

func NewOrchestrator(
	bookings bookingdomain.Repository,
	notifications notification.Repository,
	pusher Pusher,
	logger *log.Logger,
	stepTimeout time.Duration,
) *Orchestrator {
	if stepTimeout <= 0 {
		stepTimeout = 10 * time.Second
	}
	return &Orchestrator{
		bookings:      bookings,
		notifications: notifications,
		pusher:        pusher,
		logger:        logger,
		stepTimeout:   stepTimeout,
	}
}

// Create persists the booking record itself and returns the hand-off
// payload. It is the server-side analog of the booking-creation dialog
// submitting.
func (o *Orchestrator) Create(ctx context.Context, in CreateInput) (Payload, error) {
	if in.ProviderID == uuid.Nil || in.RequesterID == uuid.Nil {
		return Payload{}, ErrInvalidInput
	}
	if in.ProviderID == in.RequesterID {
		return Payload{}, ErrInvalidInput
	}
	service := strings.TrimSpace(in.ServiceName)
	if service == "" {
		return Payload{}, ErrInvalidInput
	}
	requester := strings.TrimSpace(in.RequesterName)
	if requester == "" {
		return Payload{}, ErrInvalidInput
	}

	b := bookingdomain.Booking{
		ID:            uuid.New(),
		ProviderID:    in.ProviderID,
		RequesterID:   in.RequesterID,
		RequesterName: requester,
		ServiceName:   service,
		IsSkillSwap:   in.IsSkillSwap,
		Status:        bookingdomain.StatusCreated,
	}

	stepCtx, cancel := o.step(ctx)
	defer cancel()
	if err := o.bookings.Create(stepCtx, b); err != nil {
		return Payload{}, ErrInternal
	}

	return Payload{
		ID:            b.ID,
		ProviderID:    b.ProviderID,
		RequesterID:   b.RequesterID,
		RequesterName: b.RequesterName,
		ServiceName:   b.ServiceName,
		IsSkillSwap:   b.IsSkillSwap,
	}, nil
}

// Orchestrate runs the post-creation workflow for a booking payload:
//
//	BookingCreated -> (Notified | NotifyFailed) -> AwaitingPayment | Complete
//
// The creation dialog is closed first, unconditionally. The notification is
// derived from the swap flag and persisted best-effort: its failure warns
// the user but never invalidates the booking. Only a non-swap booking
// proceeds to the payment step, and only after the notification step has
// resolved.
func (o *Orchestrator) Orchestrate(ctx context.Context, p Payload, events EventSink) Outcome {
	if events == nil {
		events = NopSink{}
	}

	// Step 1: the dialog's job ended the moment the payload existed.
	events.DialogClosed(p)

	out := Outcome{State: StateBookingCreated, Booking: p}

	// Step 2+3: derive, persist, push.
	n := notification.ForBooking(p.ProviderID, p.ID, p.RequesterName, p.ServiceName, p.IsSkillSwap)
	if err := o.persistNotification(ctx, n); err != nil {
		if o.logger != nil {
			o.logger.Printf("booking notification failed | booking=%s error=%v", p.ID, err)
		}
		out.State = StateNotifyFailed
		out.Warning = "Booking created but notification could not be sent."
	} else {
		out.State = StateNotified
		if o.pusher != nil {
			o.pusher.Push(n.UserID, n)
		}
	}

	out.Ack = Ack{Title: n.Title, Message: "Your request has been sent successfully."}

	// Step 4: payment hand-off, strictly after notification resolution.
	if p.IsSkillSwap {
		o.transition(ctx, p.ID, bookingdomain.StatusCreated, bookingdomain.StatusSwapAccepted)
		out.State = StateComplete
		return out
	}

	o.transition(ctx, p.ID, bookingdomain.StatusCreated, bookingdomain.StatusAwaitingPayment)
	out.State = StateAwaitingPayment
	out.PaymentRequired = true
	events.PaymentRequested(p)
	return out
}

func (o *Orchestrator) persistNotification(ctx context.Context, n notification.Notification) error {
	stepCtx, cancel := o.step(ctx)
	defer cancel()
	return o.notifications.Create(stepCtx, n)
}

// transition is best-effort bookkeeping; the payment finalizer re-checks
// status on its own.
func (o *Orchestrator) transition(ctx context.Context, id uuid.UUID, from, to string) {
	stepCtx, cancel := o.step(ctx)
	defer cancel()
	if _, err := o.bookings.UpdateStatus(stepCtx, id, from, to); err != nil && o.logger != nil {
		o.logger.Printf("booking status transition failed | booking=%s from=%s to=%s error=%v", id, from, to, err)
	}
}

func (o *Orchestrator) step(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, o.stepTimeout)
}
