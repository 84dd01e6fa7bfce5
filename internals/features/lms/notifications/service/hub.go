// file: internals/features/lms/notifications/service/hub.go
package service

import (
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
)

/* =============================================================================
   Rooms
   user-{id}           one room per user
   admin:general       all subscribed admins
   admin:role:{role}   admins watching a role segment
   admin:user:{id}     admins watching one user
============================================================================= */

func UserRoom(userID uuid.UUID) string     { return fmt.Sprintf("user-%s", userID) }
func AdminGeneralRoom() string             { return "admin:general" }
func AdminRoleRoom(role string) string     { return fmt.Sprintf("admin:role:%s", role) }
func AdminUserRoom(userID uuid.UUID) string { return fmt.Sprintf("admin:user:%s", userID) }

// Conn is the minimal connection surface the hub needs. *websocket.Conn
// satisfies it; tests use a fake.
type Conn interface {
	WriteJSON(v any) error
}

// SafeConn serializes writes to the underlying connection. The websocket
// transport allows at most one writer per conn at a time, while Emit runs on
// whatever request goroutine triggered the fan-out; every write to a live
// socket must go through this wrapper, the read loop's error frames included.
type SafeConn struct {
	mu    sync.Mutex
	inner Conn
}

func NewSafeConn(inner Conn) *SafeConn { return &SafeConn{inner: inner} }

func (s *SafeConn) WriteJSON(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.WriteJSON(v)
}

// Event is a single websocket frame: {"event": ..., "payload": ...}.
type Event struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// Server-emitted event names.
const (
	EventNotification      = "notification"
	EventAdminNotification = "admin:notification"
	EventAdminStatsUpdated = "admin:stats:updated"
)

/* =============================================================================
   Hub
   In-memory room registry. Delivery is at-most-once, best-effort: a failed
   write drops the connection from all rooms. Single-process state.
============================================================================= */

type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[Conn]struct{})}
}

// DefaultHub is the process-wide hub used by the fan-out helpers.
var DefaultHub = NewHub()

// Subscribe joins a connection to a room.
func (h *Hub) Subscribe(conn Conn, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[Conn]struct{})
	}
	h.rooms[room][conn] = struct{}{}
}

// Unsubscribe removes a connection from one room.
func (h *Hub) Unsubscribe(conn Conn, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if members, ok := h.rooms[room]; ok {
		delete(members, conn)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

// Drop removes a connection from every room (on disconnect).
func (h *Hub) Drop(conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room, members := range h.rooms {
		delete(members, conn)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

// Emit pushes an event to every connection in a room. Failed writes evict
// the connection; no retry, no ordering guarantee.
func (h *Hub) Emit(room, event string, payload any) {
	h.mu.RLock()
	members := make([]Conn, 0, len(h.rooms[room]))
	for conn := range h.rooms[room] {
		members = append(members, conn)
	}
	h.mu.RUnlock()

	for _, conn := range members {
		if err := conn.WriteJSON(Event{Event: event, Payload: payload}); err != nil {
			log.Printf("[WS] write failed, dropping conn from rooms: %v", err)
			h.Drop(conn)
		}
	}
}

// RoomSize reports current membership of a room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
