package fusion

import "github.com/marcelmaltry/tdc/internal/wordops"

// predecessorIndex implements spec §4.B's Predecessor algorithm over the
// owned, sorted key array keys[:s.n]. It returns the index of the
// predecessor within the array, or ok=false if x is smaller than every
// key the node holds (the caller must look further left/up the Octrie).
func predecessorIndex(keys []uint64, x uint64, s *summary) (idx int, ok bool) {
	n := s.n

	// Step 1: compress x the same way the stored keys were compressed.
	shift := uint(0)
	if s.bits < 8 {
		shift = uint(8 - s.bits)
	}
	sx := byte(wordops.Pext(x, s.mask)) << shift

	// Step 2: count how many branch lanes are strictly below sx via a
	// single word-parallel comparison, identifying a candidate lane in O(1).
	g := wordops.PcmpGtU8(wordops.Broadcast(sx), branchWord(s))
	j := wordops.Popcount(g) / 8
	if j > n {
		j = n
	}
	candidate := j - 1 // -1 means "smaller than every stored key"

	// Steps 3-4: the compressed comparison can be off by a small, bounded
	// amount when x diverges from the stored keys at a non-distinguishing
	// bit rather than at one of the mask's branching positions. Resolve
	// exactly by comparing x's real bits against its immediate neighbours
	// and correcting the candidate index, which is still O(1) because
	// n <= MaxKeys.
	resolved := candidate
	for resolved+1 < n && keys[resolved+1] <= x {
		resolved++
	}
	for resolved >= 0 && keys[resolved] > x {
		resolved--
	}

	if resolved < 0 {
		return -1, false
	}
	return resolved, true
}

func branchWord(s *summary) uint64 {
	var w uint64
	for i := 0; i < MaxKeys; i++ {
		w |= uint64(s.branch[i]) << (uint(i) * 8)
	}
	return w
}
