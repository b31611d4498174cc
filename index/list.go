package index

import tdc "github.com/marcelmaltry/tdc"

type listBucket struct {
	prefix   uint64
	prevPred uint64
	sufs     []uint64 // suffix values; spec describes them as 16-bit, widened here to stay correct for any configured s, not just s<=16
	next     *listBucket
}

// ListIndex is the Sampling Index with a sorted-list-free bucket: within a
// bucket, predecessor is a linear scan for the largest suffix <= the
// query's suffix (spec §4.E list bucket). Re-inserting an already-present
// key appends a duplicate suffix rather than being a no-op, exactly the
// documented caveat of spec §6.
type ListIndex struct {
	s      uint8
	xf     []*listBucket
	first  *listBucket
	last   *listBucket
	mMin   uint64
	mMax   uint64
	hasMin bool
	size   uint64
}

// NewListIndex returns an empty index with sampling parameter s. s must be
// in [1, 40] (spec §6 configuration options).
func NewListIndex(s uint8) *ListIndex {
	if s < 1 || s > 40 {
		panic("index: sampling parameter s must be in [1, 40]")
	}
	return &ListIndex{s: s}
}

// Size returns the number of insert calls that added a key (duplicates
// into a list bucket each count, per the documented caveat).
func (ix *ListIndex) Size() uint64 { return ix.size }

func (ix *ListIndex) split(k uint64) (pre, suf uint64) {
	return k >> ix.s, k & ((uint64(1) << ix.s) - 1)
}

func newListBucket(prefix, prevPred uint64) *listBucket {
	return &listBucket{prefix: prefix, prevPred: prevPred}
}

// Insert adds k to the index (spec §4.E insert, Cases A-E).
func (ix *ListIndex) Insert(k uint64) {
	pre, suf := ix.split(k)

	switch {
	case len(ix.xf) == 0:
		b := newListBucket(pre, 0)
		b.sufs = append(b.sufs, suf)
		ix.first, ix.last = b, b
		ix.xf = make([]*listBucket, pre+1)
		ix.xf[pre] = b
		ix.size = 1

	case pre >= uint64(len(ix.xf)):
		oldLast := ix.last
		b := newListBucket(pre, ix.mMax)
		b.sufs = append(b.sufs, suf)
		oldLast.next = b
		ix.last = b
		grown := make([]*listBucket, pre+1)
		copy(grown, ix.xf)
		for i := uint64(len(ix.xf)); i < pre; i++ {
			grown[i] = oldLast
		}
		ix.xf = grown
		ix.xf[pre] = b
		ix.size++

	case pre < ix.first.prefix:
		oldFirst := ix.first
		b := newListBucket(pre, 0)
		b.sufs = append(b.sufs, suf)
		oldFirst.prevPred = k
		b.next = oldFirst
		ix.first = b
		for i := pre + 1; i < oldFirst.prefix; i++ {
			ix.xf[i] = b
		}
		ix.xf[pre] = b
		ix.size++

	case ix.xf[pre] != nil && ix.xf[pre].prefix == pre:
		b := ix.xf[pre]
		b.sufs = append(b.sufs, suf)
		ix.size++
		if b.next != nil && k > b.next.prevPred {
			b.next.prevPred = k
		}

	default:
		g := ix.xf[pre]
		oldNext := g.next
		b := newListBucket(pre, oldNext.prevPred)
		b.sufs = append(b.sufs, suf)
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

// Predecessor answers max{y in S : y <= x} (spec §4.E predecessor). The
// source's list-bucket pred routine is flagged in spec §9 as doing two
// inconsistent-termination passes; this standardises on "maximum suffix
// <= suf(x), else prev_pred", the behaviour §9 asks implementations to
// verify against the end-to-end scenario.
func (ix *ListIndex) Predecessor(x uint64) tdc.PredResult {
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
	best, found := uint64(0), false
	for _, s := range b.sufs {
		if s <= suf && (!found || s > best) {
			best, found = s, true
		}
	}
	if found {
		return tdc.PredResult{Exists: true, Pos: (b.prefix << ix.s) | best}
	}
	return tdc.PredResult{Exists: true, Pos: b.prevPred}
}

// Stats reports structural counts for diagnostics (spec §4.G).
func (ix *ListIndex) Stats() Stats {
	st := Stats{Keys: ix.size, Representation: "list"}
	for b := ix.first; b != nil; b = b.next {
		st.Buckets++
		if b.prefix > st.MaxPrefix {
			st.MaxPrefix = b.prefix
		}
	}
	return st
}

func (ix *ListIndex) String() string { return ix.Stats().String() }
