package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	"DriveLine/entity"
)

// Event represents a WebSocket event sent to dashboard clients.
type Event struct {
	Type string      `json:"type"` // "new_turn", "typing"
	Data interface{} `json:"data"`
}

// Hub maintains the set of active WebSocket clients and broadcasts every
// persisted conversation turn to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan *Event
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	log        *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        log,
	}
}

// Run starts the hub's event loop. Should be called in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			// Write lock: slow clients are dropped from the set here.
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastTurn sends a new_turn event to all connected dashboard clients.
func (h *Hub) BroadcastTurn(turn entity.ChatTurn) {
	h.broadcast <- &Event{
		Type: "new_turn",
		Data: turn,
	}
}

// BroadcastTyping sends a typing event for a user's conversation.
func (h *Hub) BroadcastTyping(userID string) {
	h.broadcast <- &Event{
		Type: "typing",
		Data: map[string]string{
			"user_id": userID,
		},
	}
}
