package magiclink

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Links expire after 24 hours; the stored record outlives the link by a
// grace window so an expired link can be told apart from an unknown or
// already-used one.
const (
	LinkTTL  = 24 * time.Hour
	graceTTL = 24 * time.Hour
)

var (
	// ErrExpired maps to the otp_expired callback code.
	ErrExpired = errors.New("magic link expired")
	// ErrInvalid maps to the access_denied callback code: unknown or
	// already consumed.
	ErrInvalid = errors.New("magic link invalid")
)

// Store is the slice of the Redis cache the token service needs.
type Store interface {
	SetIfNotExists(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	GetDel(ctx context.Context, key string) (string, bool, error)
}

type Ticket struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Issue mints a single-use token for the user. Only a hash of the token is
// stored; the raw value goes into the emailed link.
func (s *Service) Issue(ctx context.Context, userID uuid.UUID, email string) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	token := base64.RawURLEncoding.EncodeToString(raw)

	t := Ticket{
		UserID:    userID,
		Email:     email,
		ExpiresAt: s.now().UTC().Add(LinkTTL),
	}
	payload, err := marshalTicket(t)
	if err != nil {
		return "", err
	}

	ok, err := s.store.SetIfNotExists(ctx, tokenKey(token), payload, LinkTTL+graceTTL)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrInvalid
	}
	return token, nil
}

// Consume redeems a token exactly once. Expired links return ErrExpired;
// unknown or reused links return ErrInvalid.
func (s *Service) Consume(ctx context.Context, token string) (Ticket, error) {
	if token == "" {
		return Ticket{}, ErrInvalid
	}

	payload, found, err := s.store.GetDel(ctx, tokenKey(token))
	if err != nil {
		return Ticket{}, err
	}
	if !found {
		return Ticket{}, ErrInvalid
	}

	t, err := unmarshalTicket(payload)
	if err != nil {
		return Ticket{}, ErrInvalid
	}
	if s.now().UTC().After(t.ExpiresAt) {
		return Ticket{}, ErrExpired
	}
	return t, nil
}

func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "auth:magiclink:" + hex.EncodeToString(sum[:])
}
