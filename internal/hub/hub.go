package hub

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/sv1nxmmvt/GigaChat/internal/common"
)

// MembershipChecker gates room joins on chat membership.
type MembershipChecker interface {
	IsMember(ctx context.Context, chatID, userID string) (bool, error)
}

// Hub tracks live connections and the chat rooms each one has joined.
// It implements common.Broadcaster so the services can fan out events
// without importing this package.
type Hub struct {
	mu      sync.RWMutex
	rooms   map[string]map[*Client]struct{}
	clients map[*Client]map[string]struct{}

	members    MembershipChecker
	sendBuffer int
}

func NewHub(members MembershipChecker, sendBuffer int) *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]struct{}),
		clients:    make(map[*Client]map[string]struct{}),
		members:    members,
		sendBuffer: sendBuffer,
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = make(map[string]struct{})
}

// Join subscribes the connection to a chat room after verifying the
// user is a member of that chat.
func (h *Hub) Join(ctx context.Context, c *Client, chatID string) error {
	ok, err := h.members.IsMember(ctx, chatID, c.userID)
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrForbidden
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, registered := h.clients[c]; !registered {
		// The connection disconnected while the membership check ran.
		return nil
	}
	if h.rooms[chatID] == nil {
		h.rooms[chatID] = make(map[*Client]struct{})
	}
	h.rooms[chatID][c] = struct{}{}
	h.clients[c][chatID] = struct{}{}
	return nil
}

func (h *Hub) Leave(c *Client, chatID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeFromRoom(c, chatID)
}

func (h *Hub) disconnect(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, registered := h.clients[c]
	if !registered {
		// A broadcast already evicted this connection and closed its
		// channel; closing again would panic.
		return
	}
	for chatID := range subs {
		h.removeFromRoom(c, chatID)
	}
	delete(h.clients, c)
	close(c.send)
}

// trySend queues a payload for one connection without blocking. Nothing
// is sent once the connection has been evicted or disconnected; its
// channel is closed then.
func (h *Hub) trySend(c *Client, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, registered := h.clients[c]; !registered {
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}

// removeFromRoom requires h.mu held.
func (h *Hub) removeFromRoom(c *Client, chatID string) {
	if room, ok := h.rooms[chatID]; ok {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, chatID)
		}
	}
	if subs, ok := h.clients[c]; ok {
		delete(subs, chatID)
	}
}

// Broadcast delivers an event to every connection joined to the chat.
// A connection whose send buffer is full is dropped rather than allowed
// to stall the rest of the room.
func (h *Hub) Broadcast(chatID string, event common.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to marshal event %s: %v", event.Type, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.rooms[chatID] {
		select {
		case c.send <- payload:
		default:
			for id := range h.clients[c] {
				h.removeFromRoom(c, id)
			}
			delete(h.clients, c)
			close(c.send)
		}
	}
}

// RoomSize reports the number of live connections joined to a chat.
func (h *Hub) RoomSize(chatID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[chatID])
}
