package shared

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetAndGetTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx), "fresh context carries no trace ID")

	ctxWithTrace := SetTraceID(ctx)
	traceID := GetTraceID(ctxWithTrace)
	assert.Len(t, traceID, 32)

	_, err := hex.DecodeString(traceID)
	assert.NoError(t, err, "trace ID must be valid hex")

	assert.Empty(t, GetTraceID(ctx), "original context stays unchanged")
}

func TestGetTraceID_InvalidType(t *testing.T) {
	ctx := context.WithValue(context.Background(), TraceIDKey, 123)
	assert.Empty(t, GetTraceID(ctx))
}

func TestGenerateTraceID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := generateTraceID()
		assert.False(t, seen[id], "trace IDs must not collide")
		seen[id] = true
	}
}
