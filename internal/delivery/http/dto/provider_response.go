package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/rocker1166/skilllink/internal/domain/review"
	"github.com/rocker1166/skilllink/internal/domain/user"
	"github.com/rocker1166/skilllink/internal/usecase/profile"
)

type ProviderResponse struct {
	ID           uuid.UUID      `json:"id"`
	Name         string         `json:"name"`
	ProfileImage string         `json:"profile_image"`
	Bio          string         `json:"bio"`
	Location     string         `json:"location"`
	OpenToSwap   bool           `json:"open_to_swap"`

	SkillsOffered []SkillResponse            `json:"skills_offered"`
	SkillsSeeking []SkillResponse            `json:"skills_seeking"`
	Availability  []AvailabilitySlotResponse `json:"availability"`
	Reviews       []ReviewResponse           `json:"reviews"`

	ReviewCount int     `json:"review_count"`
	Rating      float64 `json:"rating"`
	StarRating  int     `json:"star_rating"`

	CanProposeSwap bool `json:"can_propose_swap"`
}

type SkillResponse struct {
	ID          uuid.UUID `json:"id"`
	SkillName   string    `json:"skill_name"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	Intent      string    `json:"intent"`
}

type AvailabilitySlotResponse struct {
	ID          uuid.UUID `json:"id"`
	Date        time.Time `json:"date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	IsAvailable bool      `json:"is_available"`
}

type ReviewResponse struct {
	ID        uuid.UUID        `json:"id"`
	Rating    int              `json:"rating"`
	Comment   string           `json:"comment,omitempty"`
	Reviewer  ReviewerResponse `json:"reviewer"`
	CreatedAt time.Time        `json:"created_at"`
}

type ReviewerResponse struct {
	Name         string `json:"name"`
	ProfileImage string `json:"profile_image"`
}

func FromProviderView(v profile.ProviderView) ProviderResponse {
	return ProviderResponse{
		ID:             v.ID,
		Name:           v.Name,
		ProfileImage:   v.ProfileImage,
		Bio:            v.Bio,
		Location:       v.Location,
		OpenToSwap:     v.OpenToSwap,
		SkillsOffered:  skillResponses(v.SkillsOffered),
		SkillsSeeking:  skillResponses(v.SkillsSeeking),
		Availability:   slotResponses(v.Availability),
		Reviews:        ReviewResponses(v.Reviews),
		ReviewCount:    v.ReviewCount,
		Rating:         v.Rating,
		StarRating:     v.StarRating(),
		CanProposeSwap: v.CanProposeSwap,
	}
}

func ReviewResponses(reviews []review.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, ReviewResponse{
			ID:      r.ID,
			Rating:  r.Rating,
			Comment: r.Comment,
			Reviewer: ReviewerResponse{
				Name:         r.Reviewer.Name,
				ProfileImage: r.Reviewer.ProfileImage,
			},
			CreatedAt: r.CreatedAt,
		})
	}
	return out
}

func skillResponses(skills []user.Skill) []SkillResponse {
	out := make([]SkillResponse, 0, len(skills))
	for _, s := range skills {
		out = append(out, SkillResponse{
			ID:          s.ID,
			SkillName:   s.SkillName,
			Category:    s.Category,
			Description: s.Description,
			Intent:      s.Intent,
		})
	}
	return out
}

func slotResponses(slots []user.AvailabilitySlot) []AvailabilitySlotResponse {
	out := make([]AvailabilitySlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, AvailabilitySlotResponse{
			ID:          s.ID,
			Date:        s.Date,
			StartTime:   s.StartTime,
			EndTime:     s.EndTime,
			IsAvailable: s.IsAvailable,
		})
	}
	return out
}
