package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SKT-TRTR/zyrok-mobile-app/pkg/jwt"
	"github.com/SKT-TRTR/zyrok-mobile-app/pkg/storage"
)

func TestLocalMediaServedStatically(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	ctx := context.Background()

	local, err := storage.NewLocalStorage(storage.LocalConfig{BasePath: dir})
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}
	const body = "frames"
	if err := local.Write(ctx, "videos/u1/clip.mp4", strings.NewReader(body), int64(len(body)), "video/mp4"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	url, err := local.GetURL(ctx, "videos/u1/clip.mp4", time.Hour)
	if err != nil {
		t.Fatalf("GetURL: %v", err)
	}

	manager, err := jwt.NewManager(15*time.Minute, time.Hour, "zyrok-test")
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	router := &Router{
		WS:         &WSHandler{},
		Videos:     &VideoHandler{},
		Engagement: &EngagementHandler{},
		Social:     &SocialHandler{},
		JWT:        manager,
		MediaDir:   dir,
	}
	engine := router.Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))

	if w.Code != http.StatusOK {
		t.Fatalf("GET %s: status = %d, want 200", url, w.Code)
	}
	if w.Body.String() != body {
		t.Errorf("body = %q, want %q", w.Body.String(), body)
	}
}
