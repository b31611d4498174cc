// Package index implements the Sampling Index (spec §4.E): a two-level,
// universe-partitioned predecessor structure over a dense top array `xf`
// (a step function from key prefix to the bucket responsible for it) and a
// linked list of occupied buckets, plus a Batched Index wrapper (§4.F) that
// defers inserts into a sorted flush.
//
// Bucket representation is a compile-time choice between two non-generic
// types, BitsetIndex and ListIndex, rather than an interface with virtual
// dispatch on the hot path (spec §9 Design Notes permits either; the
// teacher corpus makes the identical call for its Node64/Node128/Node256,
// whose getChild bodies are "identical except for the node type").
package index

import (
	tdc "github.com/marcelmaltry/tdc"
	"github.com/marcelmaltry/tdc/internal/wordops"
)

type bitsetBucket struct {
	prefix   uint64
	prevPred uint64
	bits     *wordops.Bitset
	next     *bitsetBucket
}

// BitsetIndex is the Sampling Index with a bitset bucket: within a bucket,
// predecessor is a downward bit scan (spec §4.E bitset bucket).
type BitsetIndex struct {
	s      uint8
	xf     []*bitsetBucket
	first  *bitsetBucket
	last   *bitsetBucket
	mMin   uint64
	mMax   uint64
	hasMin bool
	size   uint64
}

// NewBitsetIndex returns an empty index with sampling parameter s (the
// number of low bits of each key routed to within-bucket storage). s must
// be in [1, 40] (spec §6 configuration options).
func NewBitsetIndex(s uint8) *BitsetIndex {
	if s < 1 || s > 40 {
		panic("index: sampling parameter s must be in [1, 40]")
	}
	return &BitsetIndex{s: s}
}

// Size returns the number of distinct keys inserted.
func (ix *BitsetIndex) Size() uint64 { return ix.size }

func (ix *BitsetIndex) split(k uint64) (pre, suf uint64) {
	return k >> ix.s, k & ((uint64(1) << ix.s) - 1)
}

func newBitsetBucket(prefix, prevPred uint64, s uint8) *bitsetBucket {
	return &bitsetBucket{prefix: prefix, prevPred: prevPred, bits: wordops.NewBitset(uint(1) << s)}
}

// Insert adds k to the index (spec §4.E insert, Cases A-E).
func (ix *BitsetIndex) Insert(k uint64) {
	pre, suf := ix.split(k)

	switch {
	case len(ix.xf) == 0:
		// Case A: first insert ever.
		b := newBitsetBucket(pre, 0, ix.s)
		b.bits.Set(uint(suf))
		ix.first, ix.last = b, b
		ix.xf = make([]*bitsetBucket, pre+1)
		ix.xf[pre] = b
		ix.size = 1

	case pre >= uint64(len(ix.xf)):
		// Case B: k extends the universe upward.
		oldLast := ix.last
		b := newBitsetBucket(pre, ix.mMax, ix.s)
		b.bits.Set(uint(suf))
		oldLast.next = b
		ix.last = b
		grown := make([]*bitsetBucket, pre+1)
		copy(grown, ix.xf)
		for i := uint64(len(ix.xf)); i < pre; i++ {
			grown[i] = oldLast
		}
		ix.xf = grown
		ix.xf[pre] = b
		ix.size++

	case pre < ix.first.prefix:
		// Case C: k precedes every existing bucket.
		oldFirst := ix.first
		b := newBitsetBucket(pre, 0, ix.s)
		b.bits.Set(uint(suf))
		oldFirst.prevPred = k
		b.next = oldFirst
		ix.first = b
		for i := pre + 1; i < oldFirst.prefix; i++ {
			ix.xf[i] = b
		}
		ix.xf[pre] = b
		ix.size++

	case ix.xf[pre] != nil && ix.xf[pre].prefix == pre:
		// Case D: exact bucket already exists at xf[pre].
		b := ix.xf[pre]
		if !b.bits.Get(uint(suf)) {
			b.bits.Set(uint(suf))
			ix.size++
		}
		if b.next != nil && k > b.next.prevPred {
			b.next.prevPred = k
		}

	default:
		// Case E: xf[pre] names a bucket with a smaller prefix (a gap).
		g := ix.xf[pre]
		oldNext := g.next
		b := newBitsetBucket(pre, oldNext.prevPred, ix.s)
		b.bits.Set(uint(suf))
		oldNext.prevPred = k
		g.next = b
		b.next = oldNext
		for i := pre; i < oldNext.prefix && ix.xf[i] == g; i++ {
			ix.xf[i] = b
		}
		ix.xf[pre] = b
		ix.size++
	}

	if !ix.hasMin || k < ix.mMin {
		ix.mMin, ix.hasMin = k, true
	}
	if k > ix.mMax {
		ix.mMax = k
	}
}

// Predecessor answers max{y in S : y <= x} (spec §4.E predecessor).
func (ix *BitsetIndex) Predecessor(x uint64) tdc.PredResult {
	if !ix.hasMin {
		return tdc.PredResult{Exists: false, Pos: 1}
	}
	if x < ix.mMin {
		return tdc.NotFound
	}
	if x >= ix.mMax {
		return tdc.PredResult{Exists: true, Pos: ix.mMax}
	}
	pre, suf := ix.split(x)
	b := ix.xf[pre]
	if j, ok := b.bits.PrevSet(uint(suf)); ok {
		return tdc.PredResult{Exists: true, Pos: (b.prefix << ix.s) | uint64(j)}
	}
	return tdc.PredResult{Exists: true, Pos: b.prevPred}
}

// Stats reports structural counts for diagnostics (spec §4.G); never
// affects query results.
func (ix *BitsetIndex) Stats() Stats {
	st := Stats{Keys: ix.size, Representation: "bitset"}
	for b := ix.first; b != nil; b = b.next {
		st.Buckets++
		if b.prefix > st.MaxPrefix {
			st.MaxPrefix = b.prefix
		}
	}
	return st
}

func (ix *BitsetIndex) String() string { return ix.Stats().String() }
