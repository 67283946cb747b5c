package common

import (
	"sync"
	"time"
)

type QueueProcessor[V any] func(items []V)

// QueueHandler collects items and hands them to the processor in chunks
// from a single background goroutine.
type QueueHandler[V any] struct {
	mu        sync.Mutex
	queue     []V
	processor QueueProcessor[V]
	chunkSize int
	interval  time.Duration
	wake      chan struct{}
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

func NewQueueHandler[V any](processor QueueProcessor[V], chunkSize int, interval time.Duration) *QueueHandler[V] {
	if chunkSize <= 0 {
		chunkSize = 1
	}
	if interval <= 0 {
		interval = time.Second
	}
	q := &QueueHandler[V]{
		processor: processor,
		chunkSize: chunkSize,
		interval:  interval,
		wake:      make(chan struct{}, 1),
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}
	go q.processQueue()
	return q
}

// Add queues items. A full chunk wakes the processor early.
func (h *QueueHandler[V]) Add(items ...V) {
	h.mu.Lock()
	h.queue = append(h.queue, items...)
	full := len(h.queue) >= h.chunkSize
	h.mu.Unlock()
	if full {
		select {
		case h.wake <- struct{}{}:
		default:
		}
	}
}

func (h *QueueHandler[V]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.queue)
}

// Close processes everything still queued and stops the goroutine. Items
// added after Close are dropped.
func (h *QueueHandler[V]) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
	})
	<-h.stopped
}

func (h *QueueHandler[V]) next() []V {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.queue) == 0 {
		return nil
	}
	items := h.queue[:min(h.chunkSize, len(h.queue)):min(h.chunkSize, len(h.queue))]
	h.queue = h.queue[len(items):]
	return items
}

func (h *QueueHandler[V]) drain() {
	for items := h.next(); items != nil; items = h.next() {
		h.processor(items)
	}
}

func (h *QueueHandler[V]) processQueue() {
	defer close(h.stopped)
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		select {
		case <-h.done:
			h.drain()
			return
		case <-ticker.C:
			h.drain()
		case <-h.wake:
			h.drain()
		}
	}
}
