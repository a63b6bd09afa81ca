package notification

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("notification not found")

type Repository interface {
	Create(ctx context.Context, n Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Notification, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
}
