package fusion

import (
	"sort"

	tdc "github.com/marcelmaltry/tdc"
)

// Node owns a tiny (<=8-element) sorted set of 64-bit keys plus the
// word-parallel summary built over them (spec §4.C). It is the unit the
// Octrie's internal nodes embed, and is also usable standalone.
type Node struct {
	keys    [MaxKeys]uint64
	n       int
	summary summary
}

// NewNode returns an empty Fusion Node.
func NewNode() *Node {
	return &Node{}
}

// NewNodeFromSorted builds a Fusion Node directly from a sorted, duplicate-free
// key slice of length 1..8 (bulk construction). Panics if keys is empty,
// longer than MaxKeys, or not strictly ascending (precondition-violated,
// spec §7).
func NewNodeFromSorted(keys []uint64) *Node {
	if len(keys) == 0 {
		panic("fusion: NewNodeFromSorted requires at least one key")
	}
	if len(keys) > MaxKeys {
		panic("fusion: NewNodeFromSorted requires at most 8 keys")
	}
	nd := &Node{n: len(keys)}
	copy(nd.keys[:], keys)
	nd.summary = buildSummary(nd.keys[:], nd.n)
	return nd
}

// Len reports how many keys the node currently holds.
func (nd *Node) Len() int { return nd.n }

// Keys returns the node's keys in ascending order. The returned slice
// aliases the node's internal storage and must not be mutated.
func (nd *Node) Keys() []uint64 { return nd.keys[:nd.n] }

// Insert adds x in sorted position and rebuilds the summary. Panics if the
// node is already at capacity (precondition-violated, spec §7) or if x is
// already present (Fusion Nodes hold distinct keys only; duplicate
// insertion is the caller's bug, mirroring the Octrie's no-duplicates
// contract one layer down).
func (nd *Node) Insert(x uint64) {
	if nd.n == MaxKeys {
		panic("fusion: Insert on a full Fusion Node")
	}
	i := sort.Search(nd.n, func(i int) bool { return nd.keys[i] >= x })
	if i < nd.n && nd.keys[i] == x {
		panic("fusion: Insert of duplicate key")
	}
	copy(nd.keys[i+1:nd.n+1], nd.keys[i:nd.n])
	nd.keys[i] = x
	nd.n++
	nd.summary = buildSummary(nd.keys[:], nd.n)
}

// Remove deletes x if present, rebuilding the summary, and reports whether
// it was found.
func (nd *Node) Remove(x uint64) bool {
	i := sort.Search(nd.n, func(i int) bool { return nd.keys[i] >= x })
	if i >= nd.n || nd.keys[i] != x {
		return false
	}
	copy(nd.keys[i:nd.n-1], nd.keys[i+1:nd.n])
	nd.n--
	if nd.n > 0 {
		nd.summary = buildSummary(nd.keys[:], nd.n)
	} else {
		nd.summary = summary{}
	}
	return true
}

// Predecessor answers a predecessor query over the node's own key set
// (spec §4.B), returning the actual key value. Exists is false if the
// node is empty or x is smaller than every key the node holds.
func (nd *Node) Predecessor(x uint64) tdc.PredResult {
	idx, ok := nd.PredecessorIndex(x)
	if !ok {
		return tdc.NotFound
	}
	return tdc.PredResult{Exists: true, Pos: nd.keys[idx]}
}

// PredecessorIndex is the index-returning form used by the Octrie to pick
// which child to descend into (spec §4.B step 5, §4.D step 1).
func (nd *Node) PredecessorIndex(x uint64) (idx int, ok bool) {
	if nd.n == 0 {
		return -1, false
	}
	return predecessorIndex(nd.keys[:nd.n], x, &nd.summary)
}
