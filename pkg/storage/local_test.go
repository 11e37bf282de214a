package storage

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"
)

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(LocalConfig{BasePath: t.TempDir()})
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}
	return s
}

func TestLocalStorageWriteReadDelete(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	content := "fake video bytes"
	if err := s.Write(ctx, "videos/u1/a.mp4", strings.NewReader(content), int64(len(content)), "video/mp4"); err != nil {
		t.Fatalf("Write: %v", err)
	}

	exists, err := s.Exists(ctx, "videos/u1/a.mp4")
	if err != nil || !exists {
		t.Fatalf("Exists = %v, %v", exists, err)
	}

	r, err := s.Read(ctx, "videos/u1/a.mp4")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	got, err := io.ReadAll(r)
	r.Close()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != content {
		t.Errorf("content = %q, want %q", got, content)
	}

	if err := s.Delete(ctx, "videos/u1/a.mp4"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	exists, _ = s.Exists(ctx, "videos/u1/a.mp4")
	if exists {
		t.Error("file should be gone after delete")
	}

	// Deleting a missing key is not an error.
	if err := s.Delete(ctx, "videos/u1/a.mp4"); err != nil {
		t.Errorf("Delete missing: %v", err)
	}
}

func TestLocalStorageGetURL(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	if _, err := s.GetURL(ctx, "missing.mp4", time.Hour); err == nil {
		t.Fatal("expected error for missing key")
	}

	if err := s.Write(ctx, "videos/a.mp4", strings.NewReader("x"), 1, "video/mp4"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	url, err := s.GetURL(ctx, "videos/a.mp4", time.Hour)
	if err != nil {
		t.Fatalf("GetURL: %v", err)
	}
	if url != "/media/videos/a.mp4" {
		t.Errorf("url = %q", url)
	}
}

func TestLocalStorageRejectsTraversal(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	// A traversal key collapses to the base path itself and the write
	// fails instead of escaping it.
	if err := s.Write(ctx, "../escape.mp4", strings.NewReader("x"), 1, "video/mp4"); err == nil {
		t.Fatal("expected traversal write to fail")
	}
	if exists, _ := s.Exists(ctx, "escape.mp4"); exists {
		t.Fatal("traversal key escaped into the base path")
	}
}
