package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/rocker1166/skilllink/internal/database"
	"github.com/rocker1166/skilllink/internal/domain/review"
)

type ReviewRepository struct {
	db database.DB
}

func NewReviewRepository(db database.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, rv review.Review) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO reviews (id, provider_id, reviewer_id, rating, comment)
		 VALUES ($1, $2, $3, $4, $5)`,
		rv.ID, rv.ProviderID, rv.ReviewerID, rv.Rating, rv.Comment,
	)
	return err
}

func (r *ReviewRepository) ListByProvider(ctx context.Context, providerID uuid.UUID) ([]review.Review, error) {
	rows, err := r.db.Query(ctx,
		`SELECT r.id, r.provider_id, r.reviewer_id, r.rating, r.comment, r.created_at,
		        u.name, u.profile_image
		 FROM reviews r
		 JOIN users u ON u.id = r.reviewer_id
		 WHERE r.provider_id = $1
		 ORDER BY r.created_at DESC`,
		providerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]review.Review, 0)
	for rows.Next() {
		var rv review.Review
		if err := rows.Scan(
			&rv.ID, &rv.ProviderID, &rv.ReviewerID, &rv.Rating, &rv.Comment, &rv.CreatedAt,
			&rv.Reviewer.Name, &rv.Reviewer.ProfileImage,
		); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
