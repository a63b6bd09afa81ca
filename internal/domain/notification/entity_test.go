package notification

import (
	"testing"

	"github.com/google/uuid"
)

func TestForBooking_SkillSwap(t *testing.T) {
	providerID := uuid.New()
	bookingID := uuid.New()

	n := ForBooking(providerID, bookingID, "Alice", "Pottery Basics", true)

	if n.UserID != providerID {
		t.Fatalf("notification must target the provider")
	}
	if n.Type != TypeSkillSwapRequest {
		t.Fatalf("expected type %q, got %q", TypeSkillSwapRequest, n.Type)
	}
	if n.Title != "New Skill Swap Request" {
		t.Fatalf("unexpected title: %q", n.Title)
	}
	if n.Message != "Alice has requested a skill swap session for Pottery Basics" {
		t.Fatalf("unexpected message: %q", n.Message)
	}
	if n.Data.BookingID != bookingID || !n.Data.IsSkillSwap {
		t.Fatalf("unexpected data: %+v", n.Data)
	}
}

func TestForBooking_PaidBooking(t *testing.T) {
	providerID := uuid.New()
	bookingID := uuid.New()

	n := ForBooking(providerID, bookingID, "Bob", "Guitar Lessons", false)

	if n.Type != TypeNewBooking {
		t.Fatalf("expected type %q, got %q", TypeNewBooking, n.Type)
	}
	if n.Title != "New Booking Request" {
		t.Fatalf("unexpected title: %q", n.Title)
	}
	if n.Message != "Bob has requested to book a session for Guitar Lessons" {
		t.Fatalf("unexpected message: %q", n.Message)
	}
	if n.Data.BookingID != bookingID || n.Data.IsSkillSwap {
		t.Fatalf("unexpected data: %+v", n.Data)
	}
}
