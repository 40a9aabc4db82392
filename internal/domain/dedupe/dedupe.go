// Package dedupe remembers which uploaded replay files a session has seen,
// keyed by a digest of their bytes, so the exact same file is imported once.
//
// Equal bytes are the only thing detected here. Two different recordings of
// the same game are merged by the match package, not dropped.
package dedupe

import (
	"container/list"
	"context"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
)

const defaultMaxSize = 10_000

// Deduper records seen upload digests.
type Deduper interface {
	// SeenAndRecord atomically checks if key was seen and records it if not.
	// Returns true if key was already seen.
	SeenAndRecord(ctx context.Context, key string) bool

	// Unrecord forgets key, used when an upload was recorded but its import
	// failed and may be retried.
	Unrecord(ctx context.Context, key string)

	Size() int64
}

// Digest returns the key of an uploaded file's content.
func Digest(content []byte) string {
	return strconv.FormatUint(xxhash.Sum64(content), 16)
}

// digestSet is a Deduper keeping keys in insertion order for eviction.
type digestSet struct {
	mu      sync.Mutex
	maxSize int
	order   *list.List // front is oldest
	index   map[string]*list.Element
}

// NewInMemoryDeduper creates an in-memory Deduper.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &digestSet{
		maxSize: defaultMaxSize,
		order:   list.New(),
		index:   make(map[string]*list.Element),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *digestSet) SeenAndRecord(_ context.Context, key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.index[key]; ok {
		return true
	}
	if d.maxSize > 0 && len(d.index) >= d.maxSize {
		d.evictOldest()
	}
	d.index[key] = d.order.PushBack(key)
	return false
}

func (d *digestSet) Unrecord(_ context.Context, key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.index[key]; ok {
		d.order.Remove(el)
		delete(d.index, key)
	}
}

func (d *digestSet) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(len(d.index))
}

// evictOldest must be called with d.mu held.
func (d *digestSet) evictOldest() {
	oldest := d.order.Front()
	if oldest == nil {
		return
	}
	d.order.Remove(oldest)
	delete(d.index, oldest.Value.(string))
}
