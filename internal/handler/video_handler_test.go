package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/SKT-TRTR/zyrok-mobile-app/internal/domain"
	"github.com/SKT-TRTR/zyrok-mobile-app/internal/middleware"
	"github.com/SKT-TRTR/zyrok-mobile-app/internal/service"
)

type fakeVideoService struct {
	lastUserID string
	lastInput  service.UploadInput
}

func (f *fakeVideoService) Feed(ctx context.Context, viewerID string, offset, limit int) ([]*domain.Video, error) {
	return nil, nil
}

func (f *fakeVideoService) Get(ctx context.Context, id uint) (*domain.Video, error) {
	return &domain.Video{ID: id}, nil
}

func (f *fakeVideoService) Upload(ctx context.Context, userID string, in service.UploadInput, file io.Reader, size int64, contentType string) (*domain.Video, error) {
	f.lastUserID = userID
	f.lastInput = in
	return &domain.Video{ID: 1, Title: in.Title}, nil
}

func (f *fakeVideoService) Delete(ctx context.Context, id uint, userID string) error { return nil }

func (f *fakeVideoService) ByUser(ctx context.Context, userID string, offset, limit int) ([]*domain.Video, error) {
	return nil, nil
}

func (f *fakeVideoService) Search(ctx context.Context, query string, limit int) ([]*domain.Video, error) {
	return nil, nil
}

func (f *fakeVideoService) Music(ctx context.Context, query string, offset, limit int) ([]*domain.Music, error) {
	return nil, nil
}

func newUploadRouter(svc service.VideoService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := NewVideoHandler(svc)
	engine.POST("/api/videos/upload", func(c *gin.Context) {
		c.Set(middleware.UserIDKey, "alice")
	}, h.Upload)
	return engine
}

func uploadForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="video"; filename="clip.mp4"`)
	header.Set("Content-Type", "video/mp4")
	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	part.Write([]byte("frames"))

	for name, value := range fields {
		mw.WriteField(name, value)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close form: %v", err)
	}
	return body, mw.FormDataContentType()
}

func TestUploadParsesDuration(t *testing.T) {
	svc := &fakeVideoService{}
	engine := newUploadRouter(svc)

	body, contentType := uploadForm(t, map[string]string{
		"title":    "first clip",
		"duration": "42",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/videos/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
	if svc.lastUserID != "alice" {
		t.Errorf("user id = %q, want alice", svc.lastUserID)
	}
	if svc.lastInput.Duration != 42 {
		t.Errorf("duration = %d, want 42", svc.lastInput.Duration)
	}
}

func TestUploadRejectsBadDuration(t *testing.T) {
	svc := &fakeVideoService{}
	engine := newUploadRouter(svc)

	body, contentType := uploadForm(t, map[string]string{
		"title":    "first clip",
		"duration": "soon",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/videos/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", w.Code, w.Body.String())
	}
}
