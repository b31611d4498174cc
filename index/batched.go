package index

import (
	"sort"

	tdc "github.com/marcelmaltry/tdc"
)

// Indexer is the common surface of BitsetIndex and ListIndex that
// BatchedIndex needs to flush into. It is not used for dispatch inside
// either index's own hot path (spec §9) — only here, one layer up, where
// a single buffering wrapper is worth sharing across both bucket
// representations.
type Indexer interface {
	Insert(k uint64)
	Predecessor(x uint64) tdc.PredResult
	Size() uint64
}

// BatchedIndex wraps an Indexer and defers inserts into an unbounded
// buffer, sorting and streaming them into the inner index on flush (spec
// §4.F), amortizing repeated top-layer updates for clustered inserts.
type BatchedIndex[T Indexer] struct {
	inner T
	buf   []uint64

	// FlushThreshold, if non-zero, triggers an automatic flush once the
	// buffer reaches this many pending keys.
	FlushThreshold int
}

// NewBatchedIndex wraps inner with a deferred-insert buffer.
func NewBatchedIndex[T Indexer](inner T) *BatchedIndex[T] {
	return &BatchedIndex[T]{inner: inner}
}

// Insert buffers k; it is not visible to Predecessor/Size until a flush.
func (b *BatchedIndex[T]) Insert(k uint64) {
	b.buf = append(b.buf, k)
	if b.FlushThreshold > 0 && len(b.buf) >= b.FlushThreshold {
		b.Flush()
	}
}

// Flush sorts the pending buffer ascending and streams it into the inner
// index, then empties the buffer.
func (b *BatchedIndex[T]) Flush() {
	if len(b.buf) == 0 {
		return
	}
	sort.Slice(b.buf, func(i, j int) bool { return b.buf[i] < b.buf[j] })
	for _, k := range b.buf {
		b.inner.Insert(k)
	}
	b.buf = b.buf[:0]
}

// Predecessor flushes any pending inserts, then delegates to the inner
// index (spec §4.F: "queries force a flush first").
func (b *BatchedIndex[T]) Predecessor(x uint64) tdc.PredResult {
	b.Flush()
	return b.inner.Predecessor(x)
}

// Size flushes, then reports the inner index's key count.
func (b *BatchedIndex[T]) Size() uint64 {
	b.Flush()
	return b.inner.Size()
}
