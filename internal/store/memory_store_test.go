package store

import (
	"context"
	"testing"
)

func TestMemoryCounterStoreVideoLikes(t *testing.T) {
	s := NewMemoryCounterStore()
	ctx := context.Background()

	if _, ok, err := s.GetVideoLikes(ctx, 1); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	if err := s.SetVideoLikes(ctx, 1, 7); err != nil {
		t.Fatalf("set: %v", err)
	}

	count, ok, err := s.GetVideoLikes(ctx, 1)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if count != 7 {
		t.Errorf("count = %d, want 7", count)
	}

	// A different video is still a miss.
	if _, ok, _ := s.GetVideoLikes(ctx, 2); ok {
		t.Error("unexpected hit for video 2")
	}
}

func TestMemoryCounterStoreFollowers(t *testing.T) {
	s := NewMemoryCounterStore()
	ctx := context.Background()

	if err := s.SetFollowers(ctx, "alice", 3); err != nil {
		t.Fatalf("set: %v", err)
	}
	count, ok, err := s.GetFollowers(ctx, "alice")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}

	// Overwrite refreshes the value.
	if err := s.SetFollowers(ctx, "alice", 4); err != nil {
		t.Fatalf("set: %v", err)
	}
	count, _, _ = s.GetFollowers(ctx, "alice")
	if count != 4 {
		t.Errorf("count = %d, want 4", count)
	}
}
