package hub

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/SKT-TRTR/zyrok-mobile-app/internal/config"
)

func newTestHub() *Hub {
	h := NewHub(config.WebSocketConfig{
		PingInterval:   30 * time.Second,
		PongWait:       60 * time.Second,
		WriteWait:      10 * time.Second,
		MaxMessageSize: 65536,
	})
	go h.Run()
	return h
}

func newTestClient(h *Hub, id, userID string) *Client {
	return &Client{
		ID:     id,
		UserID: userID,
		Hub:    h,
		Send:   make(chan []byte, 16),
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func receiveMessage(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case msg := <-c.Send:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no message received before deadline")
		return nil
	}
}

func assertNoMessage(t *testing.T, c *Client) {
	t.Helper()
	select {
	case msg := <-c.Send:
		t.Fatalf("unexpected message: %s", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestJoinRoomIdempotent(t *testing.T) {
	h := newTestHub()
	c := newTestClient(h, "c1", "u1")
	h.Register(c)

	h.JoinRoom(c, "video-1")
	h.JoinRoom(c, "video-1")

	if got := h.RoomSize("video-1"); got != 1 {
		t.Errorf("RoomSize = %d, want 1", got)
	}
	if !h.InRoom("c1", "video-1") {
		t.Error("client should be in room")
	}
}

func TestLeaveRoomPrunesEmptyRoom(t *testing.T) {
	h := newTestHub()
	c := newTestClient(h, "c1", "u1")
	h.Register(c)

	h.JoinRoom(c, "video-1")
	h.LeaveRoom(c, "video-1")

	if h.InRoom("c1", "video-1") {
		t.Error("client should have left room")
	}
	if got := h.RoomSize("video-1"); got != 0 {
		t.Errorf("RoomSize = %d, want 0", got)
	}

	// Leaving again must not panic or alter anything.
	h.LeaveRoom(c, "video-1")
}

func TestBroadcastToRoomOnlyReachesMembers(t *testing.T) {
	h := newTestHub()
	member1 := newTestClient(h, "c1", "u1")
	member2 := newTestClient(h, "c2", "u2")
	outsider := newTestClient(h, "c3", "u3")
	for _, c := range []*Client{member1, member2, outsider} {
		h.Register(c)
	}
	h.JoinRoom(member1, "video-1")
	h.JoinRoom(member2, "video-1")
	h.JoinRoom(outsider, "video-2")

	payload := map[string]string{"type": "comment-added"}
	if err := h.BroadcastToRoom("video-1", payload, ""); err != nil {
		t.Fatalf("BroadcastToRoom: %v", err)
	}

	for _, c := range []*Client{member1, member2} {
		var got map[string]string
		if err := json.Unmarshal(receiveMessage(t, c), &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got["type"] != "comment-added" {
			t.Errorf("type = %q, want comment-added", got["type"])
		}
	}
	assertNoMessage(t, outsider)
}

func TestBroadcastToRoomExcludesSender(t *testing.T) {
	h := newTestHub()
	sender := newTestClient(h, "c1", "u1")
	other := newTestClient(h, "c2", "u2")
	h.Register(sender)
	h.Register(other)
	h.JoinRoom(sender, "video-1")
	h.JoinRoom(other, "video-1")

	if err := h.BroadcastToRoom("video-1", map[string]string{"type": "user-typing"}, sender.ID); err != nil {
		t.Fatalf("BroadcastToRoom: %v", err)
	}

	receiveMessage(t, other)
	assertNoMessage(t, sender)
}

func TestBroadcastAllIgnoresRooms(t *testing.T) {
	h := newTestHub()
	inRoom := newTestClient(h, "c1", "u1")
	roomless := newTestClient(h, "c2", "u2")
	h.Register(inRoom)
	h.Register(roomless)
	h.JoinRoom(inRoom, "video-1")

	if err := h.BroadcastAll(map[string]string{"type": "follow-updated"}); err != nil {
		t.Fatalf("BroadcastAll: %v", err)
	}

	receiveMessage(t, inRoom)
	receiveMessage(t, roomless)
}

func TestUnregisterEvictsFromEveryRoom(t *testing.T) {
	h := newTestHub()
	c := newTestClient(h, "c1", "u1")
	peer := newTestClient(h, "c2", "u2")
	h.Register(c)
	h.Register(peer)
	h.JoinRoom(c, "video-1")
	h.JoinRoom(c, "video-2")
	h.JoinRoom(peer, "video-1")

	h.Unregister(c)

	waitFor(t, func() bool {
		return !h.InRoom("c1", "video-1") && !h.InRoom("c1", "video-2")
	})
	// video-2 had only the departed client, so it must be pruned.
	waitFor(t, func() bool { return h.RoomSize("video-2") == 0 })
	if got := h.RoomSize("video-1"); got != 1 {
		t.Errorf("RoomSize(video-1) = %d, want 1", got)
	}

	// The send channel is closed on unregister.
	waitFor(t, func() bool {
		select {
		case _, ok := <-c.Send:
			return !ok
		default:
			return false
		}
	})

	// Broadcasts after eviction must not reach the departed client.
	if err := h.BroadcastToRoom("video-1", map[string]string{"type": "comment-added"}, ""); err != nil {
		t.Fatalf("BroadcastToRoom: %v", err)
	}
	receiveMessage(t, peer)
}

func TestBroadcastsArriveInOrder(t *testing.T) {
	h := newTestHub()
	c := newTestClient(h, "c1", "u1")
	h.Register(c)
	h.JoinRoom(c, "video-1")

	for i := 0; i < 5; i++ {
		if err := h.BroadcastToRoom("video-1", map[string]int{"seq": i}, ""); err != nil {
			t.Fatalf("BroadcastToRoom: %v", err)
		}
	}

	for i := 0; i < 5; i++ {
		var got map[string]int
		if err := json.Unmarshal(receiveMessage(t, c), &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got["seq"] != i {
			t.Fatalf("message %d has seq %d", i, got["seq"])
		}
	}
}

func TestSendToClientUnknownClientIsNoOp(t *testing.T) {
	h := newTestHub()
	if err := h.SendToClient("missing", map[string]string{"type": "error"}); err != nil {
		t.Fatalf("SendToClient: %v", err)
	}
}

func TestSendMessageAfterForcedEvictionIsDropped(t *testing.T) {
	h := newTestHub()
	c := &Client{ID: "c1", UserID: "u1", Hub: h, Send: make(chan []byte, 1)}
	h.Register(c)
	h.JoinRoom(c, "video-1")

	// The first broadcast fills the single-slot queue; the second finds
	// it full and forces an unregister.
	if err := h.BroadcastToRoom("video-1", map[string]int{"seq": 1}, ""); err != nil {
		t.Fatalf("BroadcastToRoom: %v", err)
	}
	if err := h.BroadcastToRoom("video-1", map[string]int{"seq": 2}, ""); err != nil {
		t.Fatalf("BroadcastToRoom: %v", err)
	}
	waitFor(t, func() bool { return !h.InRoom("c1", "video-1") })

	// A handler still in flight for the departed connection may try to
	// answer it; the send must be dropped, never a panic.
	if err := c.SendMessage(map[string]string{"type": "error"}); err != nil {
		t.Errorf("SendMessage = %v, want nil", err)
	}

	// Only the first broadcast made it into the queue.
	receiveMessage(t, c)
	if _, ok := <-c.Send; ok {
		t.Error("no delivery expected after eviction")
	}
}
