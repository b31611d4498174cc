package octrie

import (
	"sort"

	tdc "github.com/marcelmaltry/tdc"
)

// Octrie is a B-tree of branching factor 9 whose internal nodes carry a
// Fusion Node summary of their keys, so finding the child responsible for
// a query is O(1) rather than O(log B) (spec §4.D). Keys live at whatever
// level they were promoted to by a split, exactly as in a classic B-tree
// (not a B+tree): an internal node's keys are real members of the set,
// not separator copies.
type Octrie struct {
	a    arena
	root handle
	size uint64
}

// New returns an empty Octrie.
func New() *Octrie {
	return &Octrie{root: nilHandle}
}

// Size returns the number of keys currently stored.
func (t *Octrie) Size() uint64 { return t.size }

// Insert adds x to the set. Re-inserting an existing key is a no-op
// (spec §6, §8 property 4).
func (t *Octrie) Insert(x uint64) {
	if t.root == nilHandle {
		h := t.a.alloc()
		r := t.a.get(h)
		r.leaf = true
		r.parent = nilHandle
		r.nKeys = 1
		r.keys[0] = x
		r.rebuildSummary()
		t.root = h
		t.size = 1
		return
	}

	cur := t.root
	for {
		n := t.a.get(cur)
		idx, ok := n.predecessorIndex(x)
		if ok && n.keys[idx] == x {
			return // duplicate: no-op
		}
		if n.leaf {
			t.insertIntoLeaf(cur, x)
			return
		}
		childIdx := 0
		if ok {
			childIdx = idx + 1
		}
		cur = n.children[childIdx]
	}
}

func (t *Octrie) insertIntoLeaf(h handle, x uint64) {
	n := t.a.get(h)
	i := sort.Search(int(n.nKeys), func(i int) bool { return n.keys[i] >= x })
	copy(n.keys[i+1:n.nKeys+1], n.keys[i:n.nKeys])
	n.keys[i] = x
	n.nKeys++
	t.size++
	if n.nKeys <= maxKeys {
		n.rebuildSummary()
		return
	}
	t.splitUp(h)
}

// splitUp resolves a 9-key overflow at h (spec §4.D step 4), cascading
// upward through parents and allocating a new root if the cascade reaches
// the top.
func (t *Octrie) splitUp(h handle) {
	for {
		n := t.a.get(h)
		if n.nKeys <= maxKeys {
			n.rebuildSummary()
			return
		}

		median := n.keys[4]
		var leftKeys, rightKeys [maxKeys / 2]uint64
		copy(leftKeys[:], n.keys[0:4])
		copy(rightKeys[:], n.keys[5:9])
		wasLeaf := n.leaf
		var leftChildren, rightChildren [5]handle
		if !wasLeaf {
			copy(leftChildren[:], n.children[0:5])
			copy(rightChildren[:], n.children[5:10])
		}
		parent := n.parent
		idxInParent := int(n.idxInParent)
		wasRoot := parent == nilHandle

		rh := t.a.alloc()
		n = t.a.get(h) // alloc() may grow the arena's node slice
		rn := t.a.get(rh)

		n.nKeys = 4
		copy(n.keys[:4], leftKeys[:])
		n.leaf = wasLeaf
		if !wasLeaf {
			n.nChildren = 5
			copy(n.children[:5], leftChildren[:])
			t.reindexChildren(h, n)
		}
		n.rebuildSummary()

		rn.nKeys = 4
		copy(rn.keys[:4], rightKeys[:])
		rn.leaf = wasLeaf
		if !wasLeaf {
			rn.nChildren = 5
			copy(rn.children[:5], rightChildren[:])
			t.reindexChildren(rh, rn)
		}
		rn.rebuildSummary()

		if wasRoot {
			newRootH := t.a.alloc()
			n = t.a.get(h)
			rn = t.a.get(rh)
			root := t.a.get(newRootH)
			root.leaf = false
			root.parent = nilHandle
			root.nKeys = 1
			root.keys[0] = median
			root.nChildren = 2
			root.children[0] = h
			root.children[1] = rh
			root.rebuildSummary()
			n.parent = newRootH
			n.idxInParent = 0
			rn.parent = newRootH
			rn.idxInParent = 1
			t.root = newRootH
			return
		}

		p := t.a.get(parent)
		insertKeyAndChildIntoParent(p, idxInParent, median, rh)
		t.reindexChildren(parent, p)
		h = parent
	}
}

// insertKeyAndChildIntoParent inserts key at index childIdx of p.keys and
// rightChild immediately after p.children[childIdx], shifting whatever
// followed to the right. Parent/idx bookkeeping for the shifted children
// is the caller's job (via reindexChildren) since it needs the arena.
func insertKeyAndChildIntoParent(p *node, childIdx int, key uint64, rightChild handle) {
	copy(p.keys[childIdx+1:int(p.nKeys)+1], p.keys[childIdx:int(p.nKeys)])
	p.keys[childIdx] = key
	p.nKeys++

	copy(p.children[childIdx+2:int(p.nChildren)+1], p.children[childIdx+1:int(p.nChildren)])
	p.children[childIdx+1] = rightChild
	p.nChildren++
}

// reindexChildren fixes every direct child's parent handle and
// idxInParent after p's children array was rearranged. O(branchFactor),
// i.e. O(1).
func (t *Octrie) reindexChildren(pHandle handle, p *node) {
	for i := int8(0); i < p.nChildren; i++ {
		c := t.a.get(p.children[i])
		c.parent = pHandle
		c.idxInParent = i
	}
}

// Predecessor answers max{y in S : y <= x} (spec §4.D predecessor, §8
// property 1-3).
func (t *Octrie) Predecessor(x uint64) tdc.PredResult {
	if t.root == nilHandle || t.size == 0 {
		return tdc.PredResult{Exists: false, Pos: 1}
	}
	best := tdc.NotFound
	cur := t.root
	for {
		n := t.a.get(cur)
		idx, ok := n.predecessorIndex(x)
		var nextChild int
		if ok {
			best = tdc.PredResult{Exists: true, Pos: n.keys[idx]}
			nextChild = idx + 1
		} else {
			nextChild = 0
		}
		if n.leaf {
			return best
		}
		cur = n.children[nextChild]
	}
}

// Remove deletes x if present and reports whether it was found (spec
// §4.D "Deletions are supported symmetrically").
func (t *Octrie) Remove(x uint64) bool {
	if t.root == nilHandle {
		return false
	}
	if !t.removeFrom(t.root, x) {
		return false
	}
	t.size--
	t.fixRootCollapse()
	return true
}

// removeFrom removes x from the subtree rooted at h, fixing any
// resulting underflow on the way back up. Returns whether x was found.
func (t *Octrie) removeFrom(h handle, x uint64) bool {
	n := t.a.get(h)
	idx, ok := n.predecessorIndex(x)

	if ok && n.keys[idx] == x {
		if n.leaf {
			t.removeKeyAt(h, idx)
		} else {
			// Classic B-tree substitution: replace with the in-order
			// predecessor (max of the left child subtree), then delete
			// that key from the leaf it actually lives in.
			predHandle := n.children[idx]
			predKey := t.maxKey(predHandle)
			n.keys[idx] = predKey
			n.rebuildSummary()
			t.removeFrom(predHandle, predKey)
		}
		t.fixUnderflow(h)
		return true
	}

	if n.leaf {
		return false
	}
	childIdx := 0
	if ok {
		childIdx = idx + 1
	}
	found := t.removeFrom(n.children[childIdx], x)
	if found {
		t.fixUnderflow(h)
	}
	return found
}

func (t *Octrie) maxKey(h handle) uint64 {
	n := t.a.get(h)
	for !n.leaf {
		n = t.a.get(n.children[n.nChildren-1])
	}
	return n.keys[n.nKeys-1]
}

func (t *Octrie) removeKeyAt(h handle, idx int) {
	n := t.a.get(h)
	copy(n.keys[idx:n.nKeys-1], n.keys[idx+1:n.nKeys])
	n.nKeys--
	n.rebuildSummary()
}

// fixUnderflow restores the minKeys invariant at h (non-root only) by
// borrowing a key from a sibling through the parent, or merging with a
// sibling when neither has a key to spare.
func (t *Octrie) fixUnderflow(h handle) {
	n := t.a.get(h)
	if h == t.root || n.nKeys >= minKeys {
		return
	}
	parent := n.parent
	p := t.a.get(parent)
	i := int(n.idxInParent)

	if i > 0 {
		leftSib := t.a.get(p.children[i-1])
		if int(leftSib.nKeys) > minKeys {
			t.borrowFromLeft(p, i)
			return
		}
	}
	if i < int(p.nChildren)-1 {
		rightSib := t.a.get(p.children[i+1])
		if int(rightSib.nKeys) > minKeys {
			t.borrowFromRight(p, i)
			return
		}
	}
	if i > 0 {
		t.mergeChildren(parent, i-1)
	} else {
		t.mergeChildren(parent, i)
	}
	t.fixUnderflow(parent)
}

// borrowFromLeft rotates: left sibling's last key moves up into the
// parent's separator, and the old separator moves down to become n's new
// first key (with the sibling's last child, if internal, following it).
func (t *Octrie) borrowFromLeft(p *node, i int) {
	nH := p.children[i]
	n := t.a.get(nH)
	leftH := p.children[i-1]
	left := t.a.get(leftH)

	copy(n.keys[1:n.nKeys+1], n.keys[0:n.nKeys])
	n.keys[0] = p.keys[i-1]
	n.nKeys++
	p.keys[i-1] = left.keys[left.nKeys-1]
	left.nKeys--

	if !n.leaf {
		movedChild := left.children[left.nChildren-1]
		left.nChildren--
		copy(n.children[1:n.nChildren+1], n.children[0:n.nChildren])
		n.children[0] = movedChild
		n.nChildren++
		t.reindexChildren(nH, n)
	}

	left.rebuildSummary()
	n.rebuildSummary()
	p.rebuildSummary()
}

func (t *Octrie) borrowFromRight(p *node, i int) {
	nH := p.children[i]
	n := t.a.get(nH)
	rightH := p.children[i+1]
	right := t.a.get(rightH)

	n.keys[n.nKeys] = p.keys[i]
	n.nKeys++
	p.keys[i] = right.keys[0]
	copy(right.keys[0:right.nKeys-1], right.keys[1:right.nKeys])
	right.nKeys--

	if !n.leaf {
		movedChild := right.children[0]
		copy(right.children[0:right.nChildren-1], right.children[1:right.nChildren])
		right.nChildren--
		n.children[n.nChildren] = movedChild
		n.nChildren++
		t.reindexChildren(nH, n)
		t.reindexChildren(rightH, right)
	}

	right.rebuildSummary()
	n.rebuildSummary()
	p.rebuildSummary()
}

// mergeChildren merges p.children[i] and p.children[i+1], pulling down
// p.keys[i] as the separator between their key ranges, and frees the
// right sibling's arena slot.
func (t *Octrie) mergeChildren(parent handle, i int) {
	p := t.a.get(parent)
	leftH := p.children[i]
	rightH := p.children[i+1]
	left := t.a.get(leftH)
	right := t.a.get(rightH)

	left.keys[left.nKeys] = p.keys[i]
	left.nKeys++
	copy(left.keys[left.nKeys:left.nKeys+right.nKeys], right.keys[0:right.nKeys])
	left.nKeys += right.nKeys

	if !left.leaf {
		copy(left.children[left.nChildren:left.nChildren+right.nChildren], right.children[0:right.nChildren])
		left.nChildren += right.nChildren
		t.reindexChildren(leftH, left)
	}
	left.rebuildSummary()

	copy(p.keys[i:p.nKeys-1], p.keys[i+1:p.nKeys])
	p.nKeys--
	copy(p.children[i+1:p.nChildren-1], p.children[i+2:p.nChildren])
	p.nChildren--
	t.reindexChildren(parent, p)
	if p.nKeys > 0 {
		p.rebuildSummary()
	}

	t.a.release(rightH)
}

// fixRootCollapse replaces the root with its sole child when the root
// has been emptied down to zero keys by a merge (spec §4.D).
func (t *Octrie) fixRootCollapse() {
	r := t.a.get(t.root)
	if r.nKeys > 0 || r.leaf {
		return
	}
	oldRoot := t.root
	newRoot := r.children[0]
	nr := t.a.get(newRoot)
	nr.parent = nilHandle
	t.root = newRoot
	t.a.release(oldRoot)
	if t.size == 0 {
		// degenerate: tree now empty, leave root handle as-is (it still
		// addresses a valid, empty leaf node) — see New()'s nilHandle
		// convention only applies before the first insert.
	}
}
