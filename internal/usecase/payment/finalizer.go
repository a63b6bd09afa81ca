package payment

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	bookingdomain "github.com/rocker1166/skilllink/internal/domain/booking"
)

var (
	ErrBookingNotFound    = errors.New("booking not found")
	ErrNotAwaitingPayment = errors.New("booking not awaiting payment")
	ErrForbidden          = errors.New("booking belongs to another requester")
	ErrInternal           = errors.New("internal error")
)

// Result is the terminal acknowledgment of a confirmed booking.
type Result struct {
	BookingID uuid.UUID `json:"booking_id"`
	Status    string    `json:"status"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
}

// Finalizer closes the payment step. It only ever reacts to an explicit
// success signal; it never infers success from the absence of an error.
type Finalizer struct {
	bookings bookingdomain.Repository
	logger   *log.Logger

	stepTimeout time.Duration
}

func NewFinalizer(bookings bookingdomain.Repository, logger *log.Logger, stepTimeout time.Duration) *Finalizer {
	if stepTimeout <= 0 {
		stepTimeout = 10 * time.Second
	}
	return &Finalizer{bookings: bookings, logger: logger, stepTimeout: stepTimeout}
}

// ConfirmPayment transitions awaiting_payment -> confirmed. The status
// column is the idempotency guard: a replayed confirmation of an
// already-confirmed booking returns the same acknowledgment without a
// second transition.
func (f *Finalizer) ConfirmPayment(ctx context.Context, requesterID, bookingID uuid.UUID) (Result, error) {
	stepCtx, cancel := context.WithTimeout(ctx, f.stepTimeout)
	defer cancel()

	b, err := f.bookings.GetByID(stepCtx, bookingID)
	if err != nil {
		if errors.Is(err, bookingdomain.ErrNotFound) {
			return Result{}, ErrBookingNotFound
		}
		return Result{}, ErrInternal
	}
	if b.RequesterID != requesterID {
		return Result{}, ErrForbidden
	}

	switch b.Status {
	case bookingdomain.StatusAwaitingPayment:
		// fall through to the transition
	case bookingdomain.StatusConfirmed:
		return confirmedResult(bookingID), nil
	default:
		return Result{}, ErrNotAwaitingPayment
	}

	moved, err := f.bookings.UpdateStatus(stepCtx, bookingID, bookingdomain.StatusAwaitingPayment, bookingdomain.StatusConfirmed)
	if err != nil {
		return Result{}, ErrInternal
	}
	if !moved {
		// Lost a race with a concurrent confirmation; the outcome is the
		// same confirmed booking.
		fresh, err := f.bookings.GetByID(stepCtx, bookingID)
		if err == nil && fresh.Status == bookingdomain.StatusConfirmed {
			return confirmedResult(bookingID), nil
		}
		return Result{}, ErrNotAwaitingPayment
	}

	if f.logger != nil {
		f.logger.Printf("payment confirmed | booking=%s", bookingID)
	}
	return confirmedResult(bookingID), nil
}

func confirmedResult(bookingID uuid.UUID) Result {
	return Result{
		BookingID: bookingID,
		Status:    bookingdomain.StatusConfirmed,
		Title:     "Booking confirmed",
		Message:   "Your booking has been successfully confirmed and added to your dashboard.",
	}
}
