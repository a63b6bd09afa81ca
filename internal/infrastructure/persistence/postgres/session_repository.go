package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rocker1166/skilllink/internal/database"
)

// SessionRepository tracks the single local refresh session per user so a
// fresh login can revoke any prior one before issuing tokens.
type SessionRepository struct {
	db database.DB
}

func NewSessionRepository(db database.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Revoke(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM auth_sessions WHERE user_id = $1`, userID)
	return err
}

func (r *SessionRepository) Save(ctx context.Context, userID uuid.UUID, refreshTokenHash string, expiresAt time.Time) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO auth_sessions (user_id, refresh_token_hash, expires_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE
		 SET refresh_token_hash = EXCLUDED.refresh_token_hash, expires_at = EXCLUDED.expires_at, created_at = now()`,
		userID, refreshTokenHash, expiresAt,
	)
	return err
}

func (r *SessionRepository) IsCurrent(ctx context.Context, userID uuid.UUID, refreshTokenHash string) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM auth_sessions
		   WHERE user_id = $1 AND refresh_token_hash = $2 AND expires_at > now()
		 )`,
		userID, refreshTokenHash,
	).Scan(&ok)
	return ok, err
}
