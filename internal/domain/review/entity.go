package review

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID         uuid.UUID
	ProviderID uuid.UUID
	ReviewerID uuid.UUID
	Rating     int
	Comment    string
	Reviewer   Reviewer
	CreatedAt  time.Time
}

// Reviewer is the hydrated display slice of the reviewing user.
type Reviewer struct {
	Name         string
	ProfileImage string
}

// AverageRating is the exact mean of the ratings, 0 for an empty
// collection. Rounding happens only at display time.
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}
