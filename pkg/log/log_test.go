package log

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestCtxReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	ctx := WithLogger(context.Background(), logger)

	Ctx(ctx).Info().Str(FieldRoomID, "video-1").Msg("hello")

	out := buf.String()
	if !strings.Contains(out, "hello") || !strings.Contains(out, "video-1") {
		t.Errorf("log output = %q, want message and room id", out)
	}
}

func TestCtxFallsBackToGlobal(t *testing.T) {
	// Chained calls off the package-level accessors must work without
	// binding a local first.
	Ctx(context.Background()).Debug().Msg("fallback")
	L().Debug().Str(FieldClientID, "c1").Msg("global")
}

func TestInitAppliesLevel(t *testing.T) {
	Init(Config{Level: "warn"}, "zyrok-test")
	defer Init(Config{Level: "info"}, "zyrok-test")

	if got := L().GetLevel(); got != zerolog.WarnLevel {
		t.Errorf("level = %s, want warn", got)
	}
}
