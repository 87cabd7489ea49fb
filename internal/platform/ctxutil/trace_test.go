package ctxutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogFields(t *testing.T) {
	assert.Nil(t, LogFields(context.Background()))

	ctx := WithTraceData(context.Background(), &TraceData{RequestID: "req-1"})
	assert.Equal(t, []any{"request_id", "req-1"}, LogFields(ctx))

	ctx = WithTraceData(ctx, &TraceData{TraceID: "tr-1", RequestID: "req-2"})
	assert.Equal(t, []any{"trace_id", "tr-1", "request_id", "req-2"}, LogFields(ctx))
	assert.Equal(t, "tr-1", GetTraceData(ctx).TraceID)
}
