package events

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Event represents a domain event
type Event interface {
	GetEventType() string
	GetUserID() int64
	GetTimestamp() time.Time
}

// EventHandler processes events of a subscribed type
type EventHandler interface {
	Handle(ctx context.Context, event Event) error
	GetHandlerID() string
}

// HandlerFunc adapts a function to the EventHandler interface
type HandlerFunc struct {
	ID   string
	Func func(ctx context.Context, event Event) error
}

// Handle implements EventHandler
func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f.Func(ctx, event)
}

// GetHandlerID implements EventHandler
func (f HandlerFunc) GetHandlerID() string {
	return f.ID
}

// Bus defines event publishing and subscription.
//
// PublishAsync is fire-and-forget: delivery happens on a worker goroutine
// with its own timeout and error boundary, so a publisher's request never
// blocks on (or observes failures from) its side effects.
type Bus interface {
	Publish(ctx context.Context, event Event) error
	PublishAsync(event Event) error
	Subscribe(eventType string, handler EventHandler)

	Start()
	Stop(ctx context.Context) error
	Stats() BusStats
}

// BusStats reports event bus counters
type BusStats struct {
	Published int64 `json:"published"`
	Processed int64 `json:"processed"`
	Failed    int64 `json:"failed"`
	Dropped   int64 `json:"dropped"`
	Handlers  int   `json:"handlers"`
}

// BusConfig holds configuration for the in-memory bus
type BusConfig struct {
	QueueSize      int
	WorkerCount    int
	HandlerTimeout time.Duration
}

// DefaultBusConfig returns default configuration
func DefaultBusConfig() *BusConfig {
	return &BusConfig{
		QueueSize:      1000,
		WorkerCount:    4,
		HandlerTimeout: 10 * time.Second,
	}
}

type inMemoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]EventHandler

	queue          chan Event
	handlerTimeout time.Duration
	workerCount    int

	logger *zap.Logger
	wg     sync.WaitGroup
	done   chan struct{}

	published int64
	processed int64
	failed    int64
	dropped   int64
}

// NewInMemoryBus creates a new in-memory event bus
func NewInMemoryBus(cfg *BusConfig, logger *zap.Logger) Bus {
	if cfg == nil {
		cfg = DefaultBusConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &inMemoryBus{
		handlers:       make(map[string][]EventHandler),
		queue:          make(chan Event, cfg.QueueSize),
		handlerTimeout: cfg.HandlerTimeout,
		workerCount:    cfg.WorkerCount,
		logger:         logger,
		done:           make(chan struct{}),
	}
}

// Subscribe registers a handler for an event type
func (b *inMemoryBus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	b.logger.Info("Event handler subscribed",
		zap.String("event_type", eventType),
		zap.String("handler_id", handler.GetHandlerID()),
	)
}

// Publish delivers an event synchronously on the caller's goroutine
func (b *inMemoryBus) Publish(ctx context.Context, event Event) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}

	atomic.AddInt64(&b.published, 1)
	return b.dispatch(ctx, event)
}

// PublishAsync enqueues an event for background delivery. A full queue
// drops the event rather than blocking the publisher; the badge engine
// self-heals on the user's next qualifying action.
func (b *inMemoryBus) PublishAsync(event Event) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}

	select {
	case b.queue <- event:
		atomic.AddInt64(&b.published, 1)
		return nil
	default:
		atomic.AddInt64(&b.dropped, 1)
		b.logger.Warn("Event queue full, dropping event",
			zap.String("event_type", event.GetEventType()),
			zap.Int64("user_id", event.GetUserID()),
		)
		return fmt.Errorf("event queue is full")
	}
}

// Start launches the worker pool
func (b *inMemoryBus) Start() {
	for i := 0; i < b.workerCount; i++ {
		b.wg.Add(1)
		go b.worker()
	}

	b.logger.Info("Event bus started", zap.Int("workers", b.workerCount))
}

// Stop drains workers, waiting up to the context deadline
func (b *inMemoryBus) Stop(ctx context.Context) error {
	close(b.done)

	finished := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		b.logger.Info("Event bus stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("event bus shutdown timed out: %w", ctx.Err())
	}
}

// Stats returns current counters
func (b *inMemoryBus) Stats() BusStats {
	b.mu.RLock()
	handlerCount := 0
	for _, hs := range b.handlers {
		handlerCount += len(hs)
	}
	b.mu.RUnlock()

	return BusStats{
		Published: atomic.LoadInt64(&b.published),
		Processed: atomic.LoadInt64(&b.processed),
		Failed:    atomic.LoadInt64(&b.failed),
		Dropped:   atomic.LoadInt64(&b.dropped),
		Handlers:  handlerCount,
	}
}

func (b *inMemoryBus) worker() {
	defer b.wg.Done()

	for {
		select {
		case <-b.done:
			// Drain whatever is already queued before exiting.
			for {
				select {
				case event := <-b.queue:
					b.deliverWithTimeout(event)
				default:
					return
				}
			}
		case event := <-b.queue:
			b.deliverWithTimeout(event)
		}
	}
}

func (b *inMemoryBus) deliverWithTimeout(event Event) {
	ctx, cancel := context.WithTimeout(context.Background(), b.handlerTimeout)
	defer cancel()

	if err := b.dispatch(ctx, event); err != nil {
		b.logger.Error("Event delivery failed",
			zap.String("event_type", event.GetEventType()),
			zap.Int64("user_id", event.GetUserID()),
			zap.Error(err),
		)
	}
}

func (b *inMemoryBus) dispatch(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.GetEventType()]
	b.mu.RUnlock()

	var firstErr error
	for _, handler := range handlers {
		if err := b.invoke(ctx, handler, event); err != nil {
			atomic.AddInt64(&b.failed, 1)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		atomic.AddInt64(&b.processed, 1)
	}

	return firstErr
}

func (b *inMemoryBus) invoke(ctx context.Context, handler EventHandler, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler %s panicked: %v", handler.GetHandlerID(), r)
		}
	}()

	return handler.Handle(ctx, event)
}
