package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rocker1166/skilllink/internal/database"
	"github.com/rocker1166/skilllink/internal/domain/user"
)

type UserRepository struct {
	db database.DB
}

func NewUserRepository(db database.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, name, profile_image, bio, location, open_to_swap)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Email, u.PasswordHash, u.Name, u.ProfileImage, u.Bio, u.Location, u.OpenToSwap,
	)
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx, selectUser+` WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx, selectUser+` WHERE email = $1`, email)
	return scanUser(row)
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

func (r *UserRepository) ListSkills(ctx context.Context, userID uuid.UUID) ([]user.Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, skill_name, category, description, intent
		 FROM skills
		 WHERE user_id = $1
		 ORDER BY skill_name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.Skill, 0)
	for rows.Next() {
		var s user.Skill
		if err := rows.Scan(&s.ID, &s.UserID, &s.SkillName, &s.Category, &s.Description, &s.Intent); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *UserRepository) ListAvailability(ctx context.Context, userID uuid.UUID) ([]user.AvailabilitySlot, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, date, start_time, end_time, is_available
		 FROM availability_slots
		 WHERE user_id = $1
		 ORDER BY date ASC, start_time ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.AvailabilitySlot, 0)
	for rows.Next() {
		var s user.AvailabilitySlot
		if err := rows.Scan(&s.ID, &s.UserID, &s.Date, &s.StartTime, &s.EndTime, &s.IsAvailable); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

const selectUser = `SELECT id, email, password_hash, name, profile_image, bio, location, open_to_swap, created_at, updated_at FROM users`

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.ProfileImage,
		&u.Bio, &u.Location, &u.OpenToSwap, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}
