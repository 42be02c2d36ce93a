package logctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")

	id, ok := RequestID(ctx)
	assert.True(t, ok)
	assert.Equal(t, "req-1", id)
	assert.Equal(t, []zap.Field{zap.String("request_id", "req-1")}, Fields(ctx))
}

func TestRequestID_Missing(t *testing.T) {
	ctx := WithRequestID(context.Background(), "")

	_, ok := RequestID(ctx)
	assert.False(t, ok)
	assert.Nil(t, Fields(ctx))
}
