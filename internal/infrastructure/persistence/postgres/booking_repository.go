package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rocker1166/skilllink/internal/database"
	"github.com/rocker1166/skilllink/internal/domain/booking"
)

type BookingRepository struct {
	db database.DB
}

func NewBookingRepository(db database.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b booking.Booking) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO bookings (id, provider_id, requester_id, requester_name, service_name, is_skill_swap, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		b.ID, b.ProviderID, b.RequesterID, b.RequesterName, b.ServiceName, b.IsSkillSwap, b.Status,
	)
	return err
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (booking.Booking, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, provider_id, requester_id, requester_name, service_name, is_skill_swap, status, created_at, updated_at
		 FROM bookings
		 WHERE id = $1`,
		id,
	)

	var b booking.Booking
	err := row.Scan(
		&b.ID, &b.ProviderID, &b.RequesterID, &b.RequesterName,
		&b.ServiceName, &b.IsSkillSwap, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return booking.Booking{}, booking.ErrNotFound
		}
		return booking.Booking{}, err
	}
	return b, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, fromStatus, toStatus string) (bool, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE bookings
		 SET status = $3, updated_at = now()
		 WHERE id = $1 AND status = $2`,
		id, fromStatus, toStatus,
	)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
