package service

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
)

type fakeConn struct {
	events []Event
	fail   bool
}

func (f *fakeConn) WriteJSON(v any) error {
	if f.fail {
		return errors.New("broken pipe")
	}
	f.events = append(f.events, v.(Event))
	return nil
}

func TestHubEmitReachesOnlyRoomMembers(t *testing.T) {
	h := NewHub()
	alice := uuid.New()
	bob := uuid.New()

	aliceConn := &fakeConn{}
	bobConn := &fakeConn{}
	h.Subscribe(aliceConn, UserRoom(alice))
	h.Subscribe(bobConn, UserRoom(bob))

	h.Emit(UserRoom(alice), EventNotification, "hello")

	if len(aliceConn.events) != 1 {
		t.Fatalf("alice got %d events, want 1", len(aliceConn.events))
	}
	if aliceConn.events[0].Event != EventNotification {
		t.Errorf("event = %q, want %q", aliceConn.events[0].Event, EventNotification)
	}
	if len(bobConn.events) != 0 {
		t.Errorf("bob got %d events, want 0", len(bobConn.events))
	}
}

func TestHubMultipleConnectionsPerUser(t *testing.T) {
	h := NewHub()
	user := uuid.New()

	tab1 := &fakeConn{}
	tab2 := &fakeConn{}
	h.Subscribe(tab1, UserRoom(user))
	h.Subscribe(tab2, UserRoom(user))

	h.Emit(UserRoom(user), EventNotification, "ping")

	if len(tab1.events) != 1 || len(tab2.events) != 1 {
		t.Errorf("events = (%d, %d), want (1, 1)", len(tab1.events), len(tab2.events))
	}
}

func TestHubFailedWriteEvictsConnection(t *testing.T) {
	h := NewHub()
	user := uuid.New()

	bad := &fakeConn{fail: true}
	h.Subscribe(bad, UserRoom(user))
	h.Subscribe(bad, AdminGeneralRoom())

	h.Emit(UserRoom(user), EventNotification, "ping")

	if got := h.RoomSize(UserRoom(user)); got != 0 {
		t.Errorf("user room size = %d, want 0 after evict", got)
	}
	if got := h.RoomSize(AdminGeneralRoom()); got != 0 {
		t.Errorf("admin room size = %d, want 0 after evict", got)
	}
}

// racyConn trips when two WriteJSON calls overlap, which the websocket
// transport forbids on a single connection.
type racyConn struct {
	active  int32
	writes  int32
	overlap int32
}

func (r *racyConn) WriteJSON(v any) error {
	if atomic.AddInt32(&r.active, 1) > 1 {
		atomic.StoreInt32(&r.overlap, 1)
	}
	runtime.Gosched()
	atomic.AddInt32(&r.active, -1)
	atomic.AddInt32(&r.writes, 1)
	return nil
}

func TestSafeConnSerializesConcurrentEmits(t *testing.T) {
	h := NewHub()
	user := uuid.New()

	raw := &racyConn{}
	conn := NewSafeConn(raw)
	h.Subscribe(conn, UserRoom(user))

	const emits = 8
	var wg sync.WaitGroup
	wg.Add(emits)
	for i := 0; i < emits; i++ {
		go func() {
			defer wg.Done()
			h.Emit(UserRoom(user), EventNotification, "ping")
		}()
	}
	wg.Wait()

	if atomic.LoadInt32(&raw.overlap) != 0 {
		t.Fatal("concurrent Emit calls overlapped on one connection")
	}
	if got := atomic.LoadInt32(&raw.writes); got != emits {
		t.Errorf("writes = %d, want %d", got, emits)
	}
}

func TestHubUnsubscribeAndDrop(t *testing.T) {
	h := NewHub()
	user := uuid.New()
	conn := &fakeConn{}

	h.Subscribe(conn, UserRoom(user))
	h.Subscribe(conn, AdminGeneralRoom())
	h.Subscribe(conn, AdminRoleRoom("instructor"))

	h.Unsubscribe(conn, AdminGeneralRoom())
	if got := h.RoomSize(AdminGeneralRoom()); got != 0 {
		t.Errorf("admin room size = %d, want 0 after unsubscribe", got)
	}
	if got := h.RoomSize(UserRoom(user)); got != 1 {
		t.Errorf("user room size = %d, want 1", got)
	}

	h.Drop(conn)
	if got := h.RoomSize(UserRoom(user)); got != 0 {
		t.Errorf("user room size = %d, want 0 after drop", got)
	}
	if got := h.RoomSize(AdminRoleRoom("instructor")); got != 0 {
		t.Errorf("role room size = %d, want 0 after drop", got)
	}
}
