package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	bookingdomain "github.com/rocker1166/skilllink/internal/domain/booking"
)

type mockBookingRepo struct {
	byID      map[uuid.UUID]bookingdomain.Booking
	getErr    error
	updateErr error
	moved     bool
	updates   int
}

func (m *mockBookingRepo) Create(context.Context, bookingdomain.Booking) error { return nil }

func (m *mockBookingRepo) GetByID(_ context.Context, id uuid.UUID) (bookingdomain.Booking, error) {
	if m.getErr != nil {
		return bookingdomain.Booking{}, m.getErr
	}
	b, ok := m.byID[id]
	if !ok {
		return bookingdomain.Booking{}, bookingdomain.ErrNotFound
	}
	return b, nil
}

func (m *mockBookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to string) (bool, error) {
	m.updates++
	if m.updateErr != nil {
		return false, m.updateErr
	}
	if !m.moved {
		return false, nil
	}
	b := m.byID[id]
	if b.Status != from {
		return false, nil
	}
	b.Status = to
	m.byID[id] = b
	return true, nil
}

func awaiting(requesterID uuid.UUID) (uuid.UUID, *mockBookingRepo) {
	id := uuid.New()
	repo := &mockBookingRepo{
		byID: map[uuid.UUID]bookingdomain.Booking{id: {
			ID:          id,
			ProviderID:  uuid.New(),
			RequesterID: requesterID,
			Status:      bookingdomain.StatusAwaitingPayment,
		}},
		moved: true,
	}
	return id, repo
}

func TestFinalizer_ConfirmPayment_Success(t *testing.T) {
	requester := uuid.New()
	id, repo := awaiting(requester)
	f := NewFinalizer(repo, nil, 0)

	res, err := f.ConfirmPayment(context.Background(), requester, id)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Status != bookingdomain.StatusConfirmed {
		t.Fatalf("expected status %q, got %q", bookingdomain.StatusConfirmed, res.Status)
	}
	if res.Title != "Booking confirmed" {
		t.Fatalf("unexpected title: %q", res.Title)
	}
	if repo.byID[id].Status != bookingdomain.StatusConfirmed {
		t.Fatalf("booking not persisted as confirmed")
	}
}

func TestFinalizer_ConfirmPayment_Idempotent(t *testing.T) {
	requester := uuid.New()
	id, repo := awaiting(requester)
	f := NewFinalizer(repo, nil, 0)

	first, err := f.ConfirmPayment(context.Background(), requester, id)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	second, err := f.ConfirmPayment(context.Background(), requester, id)
	if err != nil {
		t.Fatalf("replayed confirmation must not fail: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical results, got %+v vs %+v", first, second)
	}
	if repo.updates != 1 {
		t.Fatalf("expected a single transition, got %d", repo.updates)
	}
}

func TestFinalizer_ConfirmPayment_Forbidden(t *testing.T) {
	id, repo := awaiting(uuid.New())
	f := NewFinalizer(repo, nil, 0)

	if _, err := f.ConfirmPayment(context.Background(), uuid.New(), id); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestFinalizer_ConfirmPayment_NotFound(t *testing.T) {
	f := NewFinalizer(&mockBookingRepo{byID: map[uuid.UUID]bookingdomain.Booking{}}, nil, 0)

	if _, err := f.ConfirmPayment(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestFinalizer_ConfirmPayment_NotAwaitingPayment(t *testing.T) {
	requester := uuid.New()
	id, repo := awaiting(requester)
	b := repo.byID[id]
	b.Status = bookingdomain.StatusCreated
	repo.byID[id] = b
	f := NewFinalizer(repo, nil, 0)

	if _, err := f.ConfirmPayment(context.Background(), requester, id); !errors.Is(err, ErrNotAwaitingPayment) {
		t.Fatalf("expected ErrNotAwaitingPayment, got %v", err)
	}
}

func TestFinalizer_ConfirmPayment_LostRace(t *testing.T) {
	requester := uuid.New()
	id, repo := awaiting(requester)
	repo.moved = false
	f := NewFinalizer(repo, nil, 0)

	// The CAS fails and the re-read still sees awaiting_payment.
	if _, err := f.ConfirmPayment(context.Background(), requester, id); !errors.Is(err, ErrNotAwaitingPayment) {
		t.Fatalf("expected ErrNotAwaitingPayment, got %v", err)
	}
}
