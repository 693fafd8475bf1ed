package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestFromContext_RoundTrip(t *testing.T) {
	log := zap.NewNop()
	ctx := ContextWithLogger(context.Background(), log)
	if got := FromContext(ctx); got != log {
		t.Error("expected the stored logger back")
	}
}

func TestFromContext_Missing(t *testing.T) {
	if got := FromContext(context.Background()); got != nil {
		t.Error("expected nil for a bare context")
	}
}
