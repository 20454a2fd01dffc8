package audit

import (
	"context"
	"sync"
	"time"

	"workflowhub/internal/logger"

	"go.uber.org/zap"
)

type queued struct {
	ctx   context.Context
	entry Entry
}

// AsyncRecorder hands entries to a single background writer so a mutation never
// waits on its audit write. Entries are written in the order they were recorded.
// When the queue is full the entry is dropped and logged.
type AsyncRecorder struct {
	sync   *SyncRecorder
	queue  chan queued
	done   chan struct{}
	mu     sync.RWMutex
	closed bool
}

func NewAsyncRecorder(store Store, size int) *AsyncRecorder {
	if size <= 0 {
		size = 1
	}
	r := &AsyncRecorder{
		sync:  NewRecorder(store),
		queue: make(chan queued, size),
		done:  make(chan struct{}),
	}
	go r.run()
	return r
}

func (r *AsyncRecorder) Record(ctx context.Context, entry Entry) {
	if entry.At.IsZero() {
		entry.At = time.Now()
	}
	// the request context is cancelled once the response is written
	item := queued{ctx: context.WithoutCancel(ctx), entry: entry}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		_ = r.sync.write(item.ctx, item.entry)
		return
	}

	select {
	case r.queue <- item:
	default:
		logger.Warn("Audit: queue full, dropping activity record", entryFields(entry)...)
	}
}

func (r *AsyncRecorder) run() {
	defer close(r.done)
	for item := range r.queue {
		func() {
			defer func() {
				if p := recover(); p != nil {
					logger.Warn("Audit: writer panic", zap.Any("panic", p))
				}
			}()
			_ = r.sync.write(item.ctx, item.entry)
		}()
	}
}

// Close stops accepting queued entries and waits until the backlog is written
// or ctx expires. Entries recorded after Close are written synchronously.
func (r *AsyncRecorder) Close(ctx context.Context) error {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.queue)
	}
	r.mu.Unlock()

	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
