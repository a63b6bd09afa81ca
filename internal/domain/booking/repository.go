package booking

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("booking not found")

type Repository interface {
	Create(ctx context.Context, b Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (Booking, error)

	// UpdateStatus transitions a booking only when it currently holds
	// fromStatus; it returns false when no row matched, which callers use
	// as an idempotency signal.
	UpdateStatus(ctx context.Context, id uuid.UUID, fromStatus, toStatus string) (bool, error)
}
