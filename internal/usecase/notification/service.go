package notification

import (
	"context"
	"errors"

	"github.com/google/uuid"

	domain "github.com/rocker1166/skilllink/internal/domain/notification"
)

var (
	ErrNotFound = errors.New("notification not found")
	ErrInternal = errors.New("internal error")
)

type Service struct {
	notifications domain.Repository
}

func NewService(notifications domain.Repository) *Service {
	return &Service{notifications: notifications}
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	out, err := s.notifications.ListByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (s *Service) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.notifications.MarkRead(ctx, userID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	return nil
}
