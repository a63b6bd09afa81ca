package profile

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/rocker1166/skilllink/internal/domain/review"
	"github.com/rocker1166/skilllink/internal/domain/user"
)

var (
	ErrProviderNotFound = errors.New("provider not found")
	ErrInternal         = errors.New("internal error")
)

// cached provider views live briefly; the page-load consistency contract is
// read-once-per-page-load, nothing stronger.
const viewTTL = time.Minute

// ProviderView is everything the provider page renders in one shape.
type ProviderView struct {
	ID            uuid.UUID               `json:"id"`
	Name          string                  `json:"name"`
	ProfileImage  string                  `json:"profile_image"`
	Bio           string                  `json:"bio"`
	Location      string                  `json:"location"`
	OpenToSwap    bool                    `json:"open_to_swap"`
	SkillsOffered []user.Skill            `json:"skills_offered"`
	SkillsSeeking []user.Skill            `json:"skills_seeking"`
	Availability  []user.AvailabilitySlot `json:"availability"`
	Reviews       []review.Review         `json:"reviews"`
	ReviewCount   int                     `json:"review_count"`

	// Rating is the exact average; StarRating is the display rounding.
	Rating float64 `json:"rating"`

	// Viewer-scoped fields; zero-valued for anonymous loads and when the
	// viewer read degrades.
	CanProposeSwap bool `json:"can_propose_swap"`
}

// StarRating rounds the exact average to the nearest whole star. Only the
// display path rounds.
func (v ProviderView) StarRating() int {
	return int(math.Round(v.Rating))
}

// ViewCache is the slice of the Redis wrapper this service needs.
type ViewCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type Service struct {
	users   user.Repository
	reviews review.Repository
	cache   ViewCache
	logger  *log.Logger
}

func NewService(users user.Repository, reviews review.Repository, cache ViewCache, logger *log.Logger) *Service {
	return &Service{users: users, reviews: reviews, cache: cache, logger: logger}
}

// LoadProvider assembles the provider page view from three logically
// independent reads: the provider record with skills and availability, the
// provider's reviews, and, when a viewer is present, the viewer's own
// skills. Only the provider read is fatal; a failing viewer read degrades
// the swap offer rather than aborting the load.
func (s *Service) LoadProvider(ctx context.Context, providerID uuid.UUID, viewerID *uuid.UUID) (ProviderView, error) {
	view, err := s.providerView(ctx, providerID)
	if err != nil {
		return ProviderView{}, err
	}

	if viewerID != nil && *viewerID != providerID {
		view.CanProposeSwap = view.OpenToSwap && s.viewerHasSkills(ctx, *viewerID)
	}

	return view, nil
}

func (s *Service) providerView(ctx context.Context, providerID uuid.UUID) (ProviderView, error) {
	key := viewCacheKey(providerID)

	if s.cache != nil {
		var cached ProviderView
		if found, err := s.cache.GetJSON(ctx, key, &cached); err == nil && found {
			return cached, nil
		}
	}

	u, err := s.users.GetByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ProviderView{}, ErrProviderNotFound
		}
		return ProviderView{}, ErrInternal
	}

	skills, err := s.users.ListSkills(ctx, providerID)
	if err != nil {
		return ProviderView{}, ErrInternal
	}

	slots, err := s.users.ListAvailability(ctx, providerID)
	if err != nil {
		return ProviderView{}, ErrInternal
	}

	reviews, err := s.reviews.ListByProvider(ctx, providerID)
	if err != nil {
		return ProviderView{}, ErrInternal
	}

	view := ProviderView{
		ID:            u.ID,
		Name:          u.Name,
		ProfileImage:  u.ProfileImage,
		Bio:           u.Bio,
		Location:      u.Location,
		OpenToSwap:    u.OpenToSwap,
		SkillsOffered: user.OfferedSkills(skills),
		SkillsSeeking: user.SeekingSkills(skills),
		Availability:  availableSlots(slots),
		Reviews:       reviews,
		ReviewCount:   len(reviews),
		Rating:        review.AverageRating(reviews),
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, view, viewTTL); err != nil && s.logger != nil {
			s.logger.Printf("profile cache write skipped | provider=%s error=%v", providerID, err)
		}
	}

	return view, nil
}

// viewerHasSkills is the non-fatal viewer read. Any failure logs and
// degrades to false.
func (s *Service) viewerHasSkills(ctx context.Context, viewerID uuid.UUID) bool {
	skills, err := s.users.ListSkills(ctx, viewerID)
	if err != nil {
		if s.logger != nil {
			s.logger.Printf("viewer profile read degraded | viewer=%s error=%v", viewerID, err)
		}
		return false
	}
	return len(skills) > 0
}

// InvalidateView drops the cached provider view after a write that changes
// what the page shows (a new review, for instance).
func (s *Service) InvalidateView(ctx context.Context, providerID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, viewCacheKey(providerID)); err != nil && s.logger != nil {
		s.logger.Printf("profile cache invalidate skipped | provider=%s error=%v", providerID, err)
	}
}

func availableSlots(slots []user.AvailabilitySlot) []user.AvailabilitySlot {
	out := make([]user.AvailabilitySlot, 0, len(slots))
	for _, sl := range slots {
		if sl.IsAvailable {
			out = append(out, sl)
		}
	}
	return out
}

func viewCacheKey(providerID uuid.UUID) string {
	return "providers:view:" + providerID.String()
}
