package handler

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SKT-TRTR/zyrok-mobile-app/internal/config"
	"github.com/SKT-TRTR/zyrok-mobile-app/internal/domain"
	"github.com/SKT-TRTR/zyrok-mobile-app/internal/hub"
	"github.com/SKT-TRTR/zyrok-mobile-app/internal/repository"
	"github.com/SKT-TRTR/zyrok-mobile-app/internal/service"
	"github.com/SKT-TRTR/zyrok-mobile-app/internal/store"
)

type wsFixture struct {
	hub    *hub.Hub
	server *httptest.Server
}

func newWSFixture(t *testing.T) *wsFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(domain.Models()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	for _, id := range []string{"alice", "bob"} {
		if err := db.Create(&domain.UserModel{ID: id, Email: id + "@example.com", Username: id}).Error; err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
	if err := db.Create(&domain.VideoModel{UserID: "alice", Title: "t", VideoURL: "/media/t.mp4"}).Error; err != nil {
		t.Fatalf("seed video: %v", err)
	}

	h := hub.NewHub(config.WebSocketConfig{
		PingInterval:   30 * time.Second,
		PongWait:       60 * time.Second,
		WriteWait:      10 * time.Second,
		MaxMessageSize: 65536,
	})
	go h.Run()

	counters := store.NewMemoryCounterStore()
	engagement := service.NewEngagementService(
		repository.NewGormVideoRepository(db),
		repository.NewGormCommentRepository(db),
		repository.NewGormLikeRepository(db),
		counters, nil,
	)
	social := service.NewSocialService(
		repository.NewGormFollowRepository(db),
		repository.NewGormUserRepository(db),
		counters, nil,
	)
	realtime := service.NewRealtimeService(h, engagement, social)

	engine := gin.New()
	engine.GET("/ws", NewWSHandler(h, realtime).HandleWebSocket)

	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)

	return &wsFixture{hub: h, server: srv}
}

func (f *wsFixture) dial(t *testing.T, token string) *websocket.Conn {
	t.Helper()
	url := strings.Replace(f.server.URL, "http", "ws", 1) + "/ws"
	if token != "" {
		url += "?token=" + token
	}
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) map[string]interface{} {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg map[string]interface{}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func waitForRoomSize(t *testing.T, h *hub.Hub, roomID string, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if h.RoomSize(roomID) == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("RoomSize(%s) never reached %d", roomID, want)
}

func TestWebSocketCommentFanout(t *testing.T) {
	f := newWSFixture(t)
	alice := f.dial(t, "alice")
	bob := f.dial(t, "bob")

	join := map[string]string{"type": "join-video", "video_id": "1"}
	if err := alice.WriteJSON(join); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := bob.WriteJSON(join); err != nil {
		t.Fatalf("join: %v", err)
	}
	waitForRoomSize(t, f.hub, "1", 2)

	if err := alice.WriteJSON(map[string]string{
		"type": "new-comment", "video_id": "1", "content": "hello",
	}); err != nil {
		t.Fatalf("comment: %v", err)
	}

	for _, conn := range []*websocket.Conn{alice, bob} {
		msg := readEvent(t, conn)
		if msg["type"] != "comment-added" {
			t.Fatalf("type = %v", msg["type"])
		}
		comment, _ := msg["comment"].(map[string]interface{})
		if comment == nil || comment["content"] != "hello" {
			t.Fatalf("comment = %v", msg["comment"])
		}
	}
}

func TestWebSocketLikeToggleFanout(t *testing.T) {
	f := newWSFixture(t)
	alice := f.dial(t, "alice")
	bob := f.dial(t, "bob")

	for _, conn := range []*websocket.Conn{alice, bob} {
		if err := conn.WriteJSON(map[string]string{"type": "join-video", "video_id": "1"}); err != nil {
			t.Fatalf("join: %v", err)
		}
	}
	waitForRoomSize(t, f.hub, "1", 2)

	if err := alice.WriteJSON(map[string]string{"type": "toggle-like", "video_id": "1"}); err != nil {
		t.Fatalf("like: %v", err)
	}

	for _, conn := range []*websocket.Conn{alice, bob} {
		msg := readEvent(t, conn)
		if msg["type"] != "like-updated" {
			t.Fatalf("type = %v", msg["type"])
		}
		if msg["is_liked"] != true {
			t.Errorf("is_liked = %v", msg["is_liked"])
		}
		if count, _ := msg["likes_count"].(float64); count != 1 {
			t.Errorf("likes_count = %v", msg["likes_count"])
		}
	}
}

func TestWebSocketTypingExcludesSender(t *testing.T) {
	f := newWSFixture(t)
	alice := f.dial(t, "alice")
	bob := f.dial(t, "bob")

	for _, conn := range []*websocket.Conn{alice, bob} {
		if err := conn.WriteJSON(map[string]string{"type": "join-video", "video_id": "1"}); err != nil {
			t.Fatalf("join: %v", err)
		}
	}
	waitForRoomSize(t, f.hub, "1", 2)

	if err := bob.WriteJSON(map[string]interface{}{
		"type": "typing", "video_id": "1", "is_typing": true,
	}); err != nil {
		t.Fatalf("typing: %v", err)
	}

	msg := readEvent(t, alice)
	if msg["type"] != "user-typing" || msg["user_id"] != "bob" {
		t.Fatalf("msg = %v", msg)
	}

	// The sender must not hear its own indicator.
	bob.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	var stray map[string]interface{}
	if err := bob.ReadJSON(&stray); err == nil {
		t.Fatalf("unexpected message to sender: %v", stray)
	}
}

func TestWebSocketMalformedMessageScopedError(t *testing.T) {
	f := newWSFixture(t)
	alice := f.dial(t, "alice")
	bob := f.dial(t, "bob")

	for _, conn := range []*websocket.Conn{alice, bob} {
		if err := conn.WriteJSON(map[string]string{"type": "join-video", "video_id": "1"}); err != nil {
			t.Fatalf("join: %v", err)
		}
	}
	waitForRoomSize(t, f.hub, "1", 2)

	if err := alice.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("write: %v", err)
	}

	msg := readEvent(t, alice)
	if msg["type"] != "error" {
		t.Fatalf("type = %v", msg["type"])
	}

	bob.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	var stray map[string]interface{}
	if err := bob.ReadJSON(&stray); err == nil {
		t.Fatalf("error leaked to another connection: %v", stray)
	}
}

func TestWebSocketDisconnectPrunesMembership(t *testing.T) {
	f := newWSFixture(t)
	alice := f.dial(t, "alice")
	bob := f.dial(t, "bob")

	for _, conn := range []*websocket.Conn{alice, bob} {
		if err := conn.WriteJSON(map[string]string{"type": "join-video", "video_id": "1"}); err != nil {
			t.Fatalf("join: %v", err)
		}
	}
	waitForRoomSize(t, f.hub, "1", 2)

	bob.Close()
	waitForRoomSize(t, f.hub, "1", 1)
}
