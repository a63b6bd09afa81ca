package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/rocker1166/skilllink/internal/domain/notification"
)

// NotificationEvent is the wire shape pushed to a user's live connections
// when a notification is persisted for them.
type NotificationEvent struct {
	Type      string            `json:"type"`
	ID        uuid.UUID         `json:"id"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Data      notification.Data `json:"data"`
	Timestamp string            `json:"timestamp"`
}

// Notifier adapts the hub to the orchestrator's Pusher contract.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

// Push is fire-and-forget: a marshalling failure or a full buffer drops the
// realtime copy, the persisted record remains authoritative.
func (n *Notifier) Push(userID uuid.UUID, note notification.Notification) {
	if n == nil || n.hub == nil {
		return
	}

	evt := NotificationEvent{
		Type:      note.Type,
		ID:        note.ID,
		Title:     note.Title,
		Message:   note.Message,
		Data:      note.Data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	n.hub.Send(userID, b)
}
