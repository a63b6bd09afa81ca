package booking

import (
	"time"

	"github.com/google/uuid"
)

// Booking lifecycle. A paid booking moves created -> awaiting_payment ->
// confirmed; a skill swap moves created -> swap_accepted without a payment
// step.
const (
	StatusCreated         = "created"
	StatusAwaitingPayment = "awaiting_payment"
	StatusSwapAccepted    = "swap_accepted"
	StatusConfirmed       = "confirmed"
)

type Booking struct {
	ID            uuid.UUID
	ProviderID    uuid.UUID
	RequesterID   uuid.UUID
	RequesterName string
	ServiceName   string
	IsSkillSwap   bool
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
