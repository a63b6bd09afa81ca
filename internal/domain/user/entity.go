package user

import (
	"time"

	"github.com/google/uuid"
)

// Skill intent tags: whether the owning user offers the skill or is looking
// for it.
const (
	IntentProvider = "provider"
	IntentSeeker   = "seeker"
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	ProfileImage string
	Bio          string
	Location     string
	OpenToSwap   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Skill struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	SkillName   string
	Category    string
	Description string
	Intent      string
}

// AvailabilitySlot is read-only from the booking surface; slots are managed
// by the provider's own scheduling flow.
type AvailabilitySlot struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Date        time.Time
	StartTime   string
	EndTime     string
	IsAvailable bool
}

// OfferedSkills returns the subset of skills tagged with the provider
// intent, preserving order.
func OfferedSkills(skills []Skill) []Skill {
	out := make([]Skill, 0, len(skills))
	for _, s := range skills {
		if s.Intent == IntentProvider {
			out = append(out, s)
		}
	}
	return out
}

// SeekingSkills returns the subset of skills tagged with the seeker intent.
func SeekingSkills(skills []Skill) []Skill {
	out := make([]Skill, 0, len(skills))
	for _, s := range skills {
		if s.Intent == IntentSeeker {
			out = append(out, s)
		}
	}
	return out
}
