package logger

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQueueOnlyHandler(size int) *MongoHandler {
	// No client/collection: Handle only enqueues, so the sink side is
	// irrelevant for these tests.
	return &MongoHandler{
		queue: make(chan LogDocument, size),
		done:  make(chan struct{}),
	}
}

func TestMongoHandler_HandleEnqueuesDocument(t *testing.T) {
	h := newQueueOnlyHandler(4)

	r := slog.NewRecord(time.Now(), slog.LevelWarn, "payment gateway slow", 0)
	r.AddAttrs(slog.String("request_id", "a1b2c3d4"), slog.Float64("latency_ms", 812.5))

	require.NoError(t, h.Handle(context.Background(), r))

	select {
	case doc := <-h.queue:
		assert.Equal(t, "WARN", doc.Level)
		assert.Equal(t, "payment gateway slow", doc.Msg)
		assert.Equal(t, "a1b2c3d4", doc.RequestID)
		assert.Equal(t, 812.5, doc.Attrs["latency_ms"])
		assert.NotContains(t, doc.Attrs, "request_id")
	default:
		t.Fatal("expected a queued document")
	}
}

func TestMongoHandler_WithAttrsCarriesOver(t *testing.T) {
	base := newQueueOnlyHandler(4)
	h := base.WithAttrs([]slog.Attr{slog.String("component", "cart")})

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "item added", 0)
	require.NoError(t, h.Handle(context.Background(), r))

	doc := <-base.queue
	assert.Equal(t, "cart", doc.Attrs["component"])
}

func TestMongoHandler_FullQueueDropsInsteadOfBlocking(t *testing.T) {
	h := newQueueOnlyHandler(1)

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "first", 0)
	require.NoError(t, h.Handle(context.Background(), r))

	done := make(chan struct{})
	go func() {
		r2 := slog.NewRecord(time.Now(), slog.LevelInfo, "second", 0)
		_ = h.Handle(context.Background(), r2)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Handle blocked on a full queue")
	}

	doc := <-h.queue
	assert.Equal(t, "first", doc.Msg)
	assert.Empty(t, h.queue)
}

func TestMultiHandler_FansOutToEveryHandler(t *testing.T) {
	a := newQueueOnlyHandler(4)
	b := newQueueOnlyHandler(4)
	m := NewMultiHandler(a, b)

	assert.True(t, m.Enabled(context.Background(), slog.LevelDebug))

	r := slog.NewRecord(time.Now(), slog.LevelError, "boom", 0)
	require.NoError(t, m.Handle(context.Background(), r))

	assert.Equal(t, "boom", (<-a.queue).Msg)
	assert.Equal(t, "boom", (<-b.queue).Msg)
}
