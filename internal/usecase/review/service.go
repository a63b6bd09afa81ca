package review

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	domain "github.com/rocker1166/skilllink/internal/domain/review"
	"github.com/rocker1166/skilllink/internal/domain/user"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrProviderNotFound = errors.New("provider not found")
	ErrInternal         = errors.New("internal error")
)

type CreateInput struct {
	ProviderID uuid.UUID
	ReviewerID uuid.UUID
	Rating     int
	Comment    string
}

// ViewInvalidator drops a cached provider view after a write.
type ViewInvalidator interface {
	InvalidateView(ctx context.Context, providerID uuid.UUID)
}

type Service struct {
	reviews     domain.Repository
	users       user.Repository
	invalidator ViewInvalidator
}

func NewService(reviews domain.Repository, users user.Repository, invalidator ViewInvalidator) *Service {
	return &Service{reviews: reviews, users: users, invalidator: invalidator}
}

func (s *Service) ListByProvider(ctx context.Context, providerID uuid.UUID) ([]domain.Review, error) {
	out, err := s.reviews.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return domain.Review{}, ErrInvalidInput
	}
	if in.ProviderID == uuid.Nil || in.ReviewerID == uuid.Nil || in.ProviderID == in.ReviewerID {
		return domain.Review{}, ErrInvalidInput
	}

	if _, err := s.users.GetByID(ctx, in.ProviderID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return domain.Review{}, ErrProviderNotFound
		}
		return domain.Review{}, ErrInternal
	}

	r := domain.Review{
		ID:         uuid.New(),
		ProviderID: in.ProviderID,
		ReviewerID: in.ReviewerID,
		Rating:     in.Rating,
		Comment:    strings.TrimSpace(in.Comment),
	}
	if err := s.reviews.Create(ctx, r); err != nil {
		return domain.Review{}, ErrInternal
	}

	if s.invalidator != nil {
		s.invalidator.InvalidateView(ctx, in.ProviderID)
	}
	return r, nil
}
