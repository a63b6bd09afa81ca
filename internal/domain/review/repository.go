package review

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, r Review) error
	ListByProvider(ctx context.Context, providerID uuid.UUID) ([]Review, error)
}
