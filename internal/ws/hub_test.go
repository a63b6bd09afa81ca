package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rocker1166/skilllink/internal/domain/notification"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met in time")
}

func TestHub_SendTargetsOwnerOnly(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	alice := uuid.New()
	bob := uuid.New()
	aliceClient := NewClient(hub, nil, alice)
	bobClient := NewClient(hub, nil, bob)

	hub.Register(aliceClient)
	hub.Register(bobClient)
	waitFor(t, func() bool { return hub.ClientCount() == 2 })

	hub.Send(alice, []byte("hello"))

	select {
	case got := <-aliceClient.send:
		if string(got) != "hello" {
			t.Fatalf("unexpected payload: %q", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("owner connection never received the payload")
	}

	select {
	case got := <-bobClient.send:
		t.Fatalf("other user received %q", got)
	default:
	}
}

func TestHub_UnregisterDropsConnection(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	userID := uuid.New()
	client := NewClient(hub, nil, userID)

	hub.Register(client)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	hub.Unregister(client)
	waitFor(t, func() bool { return hub.ClientCount() == 0 })

	// The send channel is closed on unregister.
	if _, ok := <-client.send; ok {
		t.Fatalf("expected a closed send channel")
	}
}

func TestNotifier_PushDeliversWireShape(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	userID := uuid.New()
	client := NewClient(hub, nil, userID)
	hub.Register(client)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	note := notification.ForBooking(userID, uuid.New(), "Alice", "Pottery Basics", true)
	NewNotifier(hub).Push(userID, note)

	select {
	case payload := <-client.send:
		var evt NotificationEvent
		if err := json.Unmarshal(payload, &evt); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if evt.Type != notification.TypeSkillSwapRequest {
			t.Fatalf("unexpected type: %q", evt.Type)
		}
		if evt.Title != note.Title || evt.Message != note.Message {
			t.Fatalf("unexpected event: %+v", evt)
		}
		if evt.Data.BookingID != note.Data.BookingID {
			t.Fatalf("data lost in transit: %+v", evt.Data)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("push never reached the connection")
	}
}
