// Package octrie implements the Dynamic Octrie (spec §4.D): a B-tree of
// branching factor 9 whose internal nodes use a Fusion Node (package
// fusion) to find the responsible child in O(1) instead of a binary or
// linear search over up to 8 keys.
//
// The teacher corpus's ART nodes use live Go pointers for parent/child
// links, which is fine for a tree that only grows. An Octrie also shrinks
// (merge on underflow) and the spec's own DESIGN NOTES flag raw parent
// pointers as something that needs re-architecting: this package instead
// addresses nodes by a handle (an int32 index into an arena slice), so the
// node a merge empties can be released by returning its handle to a free
// list without depending on GC reachability of a pointer cycle.
package octrie

import "github.com/marcelmaltry/tdc/fusion"

// handle addresses a node within an Octrie's arena. nilHandle (-1) marks
// "no node"; the zero value is a valid handle that addresses the arena's
// first slot.
type handle int32

const nilHandle handle = -1

const (
	branchFactor = 9 // B: max children of an internal node
	maxKeys      = 8 // keys-per-node cap
	minKeys      = 4 // ceil(B/2)-1, minimum occupancy for non-root nodes
)

// node is one Octrie node. Keys live in a plain array with one spare slot
// (capacity 9) to hold the transient 9th key between "insert overflows"
// and "split resolves it"; a Fusion Node summary (fn) is only ever built
// over the stable <=8-key state; overflow never persists.
type node struct {
	keys        [maxKeys + 1]uint64
	nKeys       int8
	fn          *fusion.Node // nil only while nKeys == 0 (a freshly allocated root)
	children    [branchFactor + 1]handle
	nChildren   int8
	leaf        bool
	parent      handle
	idxInParent int8 // this node's index within parent.children
}

func (n *node) rebuildSummary() {
	if n.nKeys == 0 {
		n.fn = nil
		return
	}
	n.fn = fusion.NewNodeFromSorted(n.keys[:n.nKeys])
}

// predecessorIndex finds the in-node predecessor lane, or ok=false if x is
// smaller than every key the node holds.
func (n *node) predecessorIndex(x uint64) (idx int, ok bool) {
	if n.fn == nil {
		return -1, false
	}
	return n.fn.PredecessorIndex(x)
}

// arena owns all node storage for one Octrie instance and is released as
// a unit when the Octrie is discarded (no per-node destructor is needed:
// dropping the arena slice drops every node at once, mirroring the
// "scoped acquisition ... guaranteed release on destruction" resource
// policy spec §5 asks for).
//
// nodes stores *node rather than node by value: alloc() can grow the
// slice via append at any time, and split/merge hold *node pointers
// across calls that may themselves allocate. Storing pointers means a
// slice reallocation never invalidates a *node obtained earlier, only
// indirect []*node storage would need to change, which handles abstract
// away from every caller.
type arena struct {
	nodes []*node
	free  []handle
}

func (a *arena) alloc() handle {
	if n := len(a.free); n > 0 {
		h := a.free[n-1]
		a.free = a.free[:n-1]
		*a.nodes[h] = node{parent: nilHandle}
		return h
	}
	a.nodes = append(a.nodes, &node{parent: nilHandle})
	return handle(len(a.nodes) - 1)
}

func (a *arena) release(h handle) {
	*a.nodes[h] = node{parent: nilHandle}
	a.free = append(a.free, h)
}

func (a *arena) get(h handle) *node {
	return a.nodes[h]
}
