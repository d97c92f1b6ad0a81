package realtime

import (
	"sync"

	"church-checkin-go/pkg/logger"
)

// Hub tracks the live connections and their room membership. Rooms are plain
// string keys (user:{id}, person:{id}, schedule:{id}); a connection joins its
// user and person rooms at authentication time and schedule rooms on request.
// The registry is process-local and vanishes on restart.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	rooms   map[string]map[*Client]struct{}
	log     logger.Logger
}

func NewHub(log logger.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		rooms:   make(map[string]map[*Client]struct{}),
		log:     log,
	}
}

func (h *Hub) register(client *Client) {
	h.mu.Lock()
	h.clients[client] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()

	h.log.Info("realtime: client connected", "user_id", client.userID, "total_clients", total)
}

func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client)
	for room, members := range h.rooms {
		delete(members, client)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	total := len(h.clients)
	// Closed under the lock: Broadcast and Client.Send send under the read
	// lock, so an in-flight send finishes before the channel closes.
	close(client.send)
	h.mu.Unlock()

	h.log.Info("realtime: client disconnected", "user_id", client.userID, "total_clients", total)
}

// Join adds the client to a room. Membership is only ever mutated through the
// owning connection's join/leave/disconnect events, so there is no
// cross-connection contention beyond the map locks.
func (h *Hub) Join(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Client]struct{})
		h.rooms[room] = members
	}
	members[client] = struct{}{}
}

func (h *Hub) Leave(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.rooms[room]
	if !ok {
		return
	}
	delete(members, client)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
}

// Broadcast delivers the event to every connection in the room. Slow clients
// with a full send buffer are skipped rather than blocking the fan-out. The
// sends happen under the read lock: unregister closes a client's send channel
// under the write lock, so holding the read lock here keeps the sends and the
// close mutually exclusive.
func (h *Hub) Broadcast(room string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[room] {
		select {
		case client.send <- event:
		default:
			h.log.Warn("realtime: dropping event for slow client", "room", room, "event", event.Event, "user_id", client.userID)
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
