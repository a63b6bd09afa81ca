package magiclink

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeStore struct {
	entries map[string]string
	ttls    map[string]time.Duration
	err     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (s *fakeStore) SetIfNotExists(_ context.Context, key, value string, ttl time.Duration) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	if _, ok := s.entries[key]; ok {
		return false, nil
	}
	s.entries[key] = value
	s.ttls[key] = ttl
	return true, nil
}

func (s *fakeStore) GetDel(_ context.Context, key string) (string, bool, error) {
	if s.err != nil {
		return "", false, s.err
	}
	v, ok := s.entries[key]
	if !ok {
		return "", false, nil
	}
	delete(s.entries, key)
	return v, true, nil
}

func TestService_IssueAndConsume(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	userID := uuid.New()

	token, err := svc.Issue(context.Background(), userID, "alice@example.com")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a token")
	}

	// Only a hash is persisted, never the raw token.
	for key := range store.entries {
		if strings.Contains(key, token) {
			t.Fatalf("raw token leaked into store key: %q", key)
		}
		if !strings.HasPrefix(key, "auth:magiclink:") {
			t.Fatalf("unexpected key namespace: %q", key)
		}
		if store.ttls[key] != LinkTTL+graceTTL {
			t.Fatalf("expected ttl %v, got %v", LinkTTL+graceTTL, store.ttls[key])
		}
	}

	ticket, err := svc.Consume(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ticket.UserID != userID || ticket.Email != "alice@example.com" {
		t.Fatalf("unexpected ticket: %+v", ticket)
	}
}

func TestService_Consume_SingleUse(t *testing.T) {
	svc := NewService(newFakeStore())

	token, err := svc.Issue(context.Background(), uuid.New(), "alice@example.com")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := svc.Consume(context.Background(), token); err != nil {
		t.Fatalf("first consume must succeed: %v", err)
	}
	if _, err := svc.Consume(context.Background(), token); !errors.Is(err, ErrInvalid) {
		t.Fatalf("second consume must be invalid, got %v", err)
	}
}

func TestService_Consume_Unknown(t *testing.T) {
	svc := NewService(newFakeStore())

	if _, err := svc.Consume(context.Background(), "never-issued"); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if _, err := svc.Consume(context.Background(), ""); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for empty token, got %v", err)
	}
}

func TestService_Consume_ExpiredWithinGrace(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	issued := time.Now().UTC()
	svc.now = func() time.Time { return issued }
	token, err := svc.Issue(context.Background(), uuid.New(), "alice@example.com")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	// Past the link TTL but inside the grace window the record is still
	// present, so the failure is expired, not invalid.
	svc.now = func() time.Time { return issued.Add(LinkTTL + time.Hour) }
	if _, err := svc.Consume(context.Background(), token); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestService_Issue_StoreError(t *testing.T) {
	store := newFakeStore()
	store.err = errors.New("redis down")
	svc := NewService(store)

	if _, err := svc.Issue(context.Background(), uuid.New(), "alice@example.com"); err == nil {
		t.Fatalf("expected store error to surface")
	}
}
