package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects delivered events for assertions
type recorder struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (r *recorder) handler(id string) HandlerFunc {
	return HandlerFunc{
		ID: id,
		Func: func(ctx context.Context, event Event) error {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.events = append(r.events, event)
			return r.err
		},
	}
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func TestPublishDeliversToSubscribers(t *testing.T) {
	bus := NewInMemoryBus(nil, nil)
	rec := &recorder{}
	bus.Subscribe(EventPinCreated, rec.handler("rec"))

	event := NewPinCreated(7, 42, nil)
	require.NoError(t, bus.Publish(context.Background(), event))

	require.Equal(t, 1, rec.count())
	assert.Equal(t, int64(7), rec.events[0].GetUserID())
	assert.Equal(t, EventPinCreated, rec.events[0].GetEventType())
}

func TestPublishSkipsOtherEventTypes(t *testing.T) {
	bus := NewInMemoryBus(nil, nil)
	rec := &recorder{}
	bus.Subscribe(EventPinCreated, rec.handler("rec"))

	require.NoError(t, bus.Publish(context.Background(), NewUserFollowed(7, 9)))
	assert.Equal(t, 0, rec.count())
}

func TestPublishNilEvent(t *testing.T) {
	bus := NewInMemoryBus(nil, nil)
	assert.Error(t, bus.Publish(context.Background(), nil))
	assert.Error(t, bus.PublishAsync(nil))
}

func TestPublishAsyncDeliversViaWorkers(t *testing.T) {
	bus := NewInMemoryBus(&BusConfig{QueueSize: 16, WorkerCount: 2, HandlerTimeout: time.Second}, nil)
	rec := &recorder{}
	bus.Subscribe(EventPinLiked, rec.handler("rec"))

	bus.Start()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		require.NoError(t, bus.Stop(ctx))
	}()

	for i := 0; i < 5; i++ {
		require.NoError(t, bus.PublishAsync(NewPinLiked(7, 42, int64(i+100))))
	}

	assert.Eventually(t, func() bool {
		return rec.count() == 5
	}, time.Second, 5*time.Millisecond)
}

func TestPublishAsyncFullQueueDrops(t *testing.T) {
	// No workers started, so the queue never drains.
	bus := NewInMemoryBus(&BusConfig{QueueSize: 1, WorkerCount: 1, HandlerTimeout: time.Second}, nil)

	require.NoError(t, bus.PublishAsync(NewPinSaved(7, 42, 3)))
	err := bus.PublishAsync(NewPinSaved(7, 43, 3))
	require.Error(t, err)

	stats := bus.Stats()
	assert.Equal(t, int64(1), stats.Published)
	assert.Equal(t, int64(1), stats.Dropped)
}

func TestStopDrainsQueuedEvents(t *testing.T) {
	bus := NewInMemoryBus(&BusConfig{QueueSize: 16, WorkerCount: 1, HandlerTimeout: time.Second}, nil)
	rec := &recorder{}
	bus.Subscribe(EventCommentCreated, rec.handler("rec"))

	for i := 0; i < 8; i++ {
		require.NoError(t, bus.PublishAsync(NewCommentCreated(7, 42, int64(i+1))))
	}

	bus.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, bus.Stop(ctx))

	assert.Equal(t, 8, rec.count())
}

func TestHandlerErrorDoesNotStopOthers(t *testing.T) {
	bus := NewInMemoryBus(nil, nil)
	failing := &recorder{err: errors.New("handler broke")}
	healthy := &recorder{}
	bus.Subscribe(EventUserFollowed, failing.handler("failing"))
	bus.Subscribe(EventUserFollowed, healthy.handler("healthy"))

	err := bus.Publish(context.Background(), NewUserFollowed(7, 9))
	require.Error(t, err)
	assert.Equal(t, 1, healthy.count())

	stats := bus.Stats()
	assert.Equal(t, int64(1), stats.Failed)
	assert.Equal(t, int64(1), stats.Processed)
}

func TestPanickingHandlerIsContained(t *testing.T) {
	bus := NewInMemoryBus(nil, nil)
	bus.Subscribe(EventPinCreated, HandlerFunc{
		ID:   "panics",
		Func: func(ctx context.Context, event Event) error { panic("boom") },
	})
	rec := &recorder{}
	bus.Subscribe(EventPinCreated, rec.handler("rec"))

	err := bus.Publish(context.Background(), NewPinCreated(7, 42, nil))
	require.Error(t, err)
	assert.Equal(t, 1, rec.count())
}

func TestStatsCountsHandlers(t *testing.T) {
	bus := NewInMemoryBus(nil, nil)
	rec := &recorder{}
	bus.Subscribe(EventPinCreated, rec.handler("a"))
	bus.Subscribe(EventPinLiked, rec.handler("b"))

	assert.Equal(t, 2, bus.Stats().Handlers)
}

func TestDomainEventConstructors(t *testing.T) {
	category := "sewing"

	tests := []struct {
		name      string
		event     Event
		eventType string
		userID    int64
	}{
		{"pin created targets creator", NewPinCreated(1, 10, &category), EventPinCreated, 1},
		{"pin liked targets owner", NewPinLiked(2, 10, 99), EventPinLiked, 2},
		{"pin saved targets saver", NewPinSaved(3, 10, 5), EventPinSaved, 3},
		{"comment created targets commenter", NewCommentCreated(4, 10, 7), EventCommentCreated, 4},
		{"user followed targets followed", NewUserFollowed(5, 99), EventUserFollowed, 5},
		{"badge check targets requested user", NewBadgeCheckRequested(6), EventBadgeCheckRequested, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.eventType, tt.event.GetEventType())
			assert.Equal(t, tt.userID, tt.event.GetUserID())
			assert.False(t, tt.event.GetTimestamp().IsZero())
		})
	}
}
