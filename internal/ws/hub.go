package ws

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

type message struct {
	userID  uuid.UUID
	payload []byte
}

// Hub fans persisted notifications out to the owning user's live
// connections. Delivery is best-effort: a slow client is dropped, never
// waited on.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]bool
	send       chan message
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	logger     *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		send:       make(chan message, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			conns, ok := h.clients[client.userID]
			if !ok {
				conns = make(map[*Client]bool)
				h.clients[client.userID] = conns
			}
			conns[client] = true
			h.mutex.Unlock()
			if h.logger != nil {
				h.logger.Printf("WS connected | user=%s", client.userID)
			}

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			if conns, ok := h.clients[client.userID]; ok {
				if _, ok := conns[client]; ok {
					delete(conns, client)
					close(client.send)
				}
				if len(conns) == 0 {
					delete(h.clients, client.userID)
				}
			}
			h.mutex.Unlock()
			if h.logger != nil {
				h.logger.Printf("WS disconnected | user=%s", client.userID)
			}

		case msg := <-h.send:
			h.mutex.RLock()
			targets := make([]*Client, 0)
			for c := range h.clients[msg.userID] {
				targets = append(targets, c)
			}
			h.mutex.RUnlock()

			for _, client := range targets {
				select {
				case client.send <- msg.payload:
				default:
					h.unregister <- client
				}
			}
		}
	}
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

// Send queues a payload for every live connection of the given user; it
// never blocks the caller.
func (h *Hub) Send(userID uuid.UUID, payload []byte) {
	if h == nil {
		return
	}
	select {
	case h.send <- message{userID: userID, payload: payload}:
	default:
		if h.logger != nil {
			h.logger.Printf("WS send dropped | user=%s reason=buffer_full", userID)
		}
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	n := 0
	for _, conns := range h.clients {
		n += len(conns)
	}
	return n
}
