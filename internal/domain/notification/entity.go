package notification

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	TypeNewBooking       = "new_booking"
	TypeSkillSwapRequest = "skill_swap_request"
)

type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Type      string
	Title     string
	Message   string
	Data      Data
	IsRead    bool
	CreatedAt time.Time
}

// Data is the opaque payload carried alongside a notification. For booking
// notifications it records the booking id and the swap flag.
type Data struct {
	BookingID   uuid.UUID `json:"booking_id"`
	IsSkillSwap bool      `json:"is_skill_swap"`
}

// ForBooking derives the provider-facing notification for a freshly created
// booking. The mapping on IsSkillSwap is exhaustive: a swap request and a
// paid booking request are the only two variants.
func ForBooking(providerID uuid.UUID, bookingID uuid.UUID, requesterName, serviceName string, isSkillSwap bool) Notification {
	n := Notification{
		ID:     uuid.New(),
		UserID: providerID,
		Data:   Data{BookingID: bookingID, IsSkillSwap: isSkillSwap},
	}

	if isSkillSwap {
		n.Type = TypeSkillSwapRequest
		n.Title = "New Skill Swap Request"
		n.Message = fmt.Sprintf("%s has requested a skill swap session for %s", requesterName, serviceName)
		return n
	}

	n.Type = TypeNewBooking
	n.Title = "New Booking Request"
	n.Message = fmt.Sprintf("%s has requested to book a session for %s", requesterName, serviceName)
	return n
}
