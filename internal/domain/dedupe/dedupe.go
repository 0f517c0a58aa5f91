// Package dedupe tracks which input files have already been queued so a
// dataset directory scanned twice does not produce duplicate batches.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"
)

// Deduper records seen file keys to ensure each file is processed at most
// once per run.
type Deduper interface {
	// SeenAndRecord atomically checks whether key was seen and records it
	// if not. Returns true if key was already seen.
	SeenAndRecord(ctx context.Context, key string) bool

	// Unrecord forgets a key so the file can be retried, e.g. after the
	// queue rejected the job.
	Unrecord(ctx context.Context, key string)

	Size() int64
}

// inMemoryDeduper keeps seen keys in a map. When maxSize > 0 the most
// recently recorded keys are evicted first once the cap is hit; a run over a
// fixed dataset list rarely needs eviction at all, so the cap is a safety
// valve rather than a working-set bound.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	order   []string // insertion order, only maintained in bounded mode
	maxSize int
	size    atomic.Int64
}

// NewInMemoryDeduper creates an in-memory deduper. Without options the
// deduper is unbounded.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		seen: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[key]; ok {
		return true
	}

	if d.maxSize > 0 {
		if len(d.seen) >= d.maxSize {
			d.evictNewest()
		}
		d.order = append(d.order, key)
	}
	d.seen[key] = struct{}{}
	d.size.Add(1)
	return false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[key]; !ok {
		return
	}
	delete(d.seen, key)
	for i := len(d.order) - 1; i >= 0; i-- {
		if d.order[i] == key {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	d.size.Add(-1)
}

// evictNewest drops the most recently recorded key. Caller holds d.mu.
func (d *inMemoryDeduper) evictNewest() {
	if len(d.order) == 0 {
		return
	}
	last := d.order[len(d.order)-1]
	d.order = d.order[:len(d.order)-1]
	delete(d.seen, last)
	d.size.Add(-1)
}

func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}
