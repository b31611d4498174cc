// Package testutil holds helpers for this module's index test suite: a
// trivial linear-scan reference predecessor and a "seen" set for the
// round-trip property test (spec §8 property 7), which inserts a few
// thousand uint64 keys per run.
package testutil

import (
	set3 "github.com/TomTonic/Set3"
)

// SeenSet is a minimal presence-only set over uint64. It only ever answers
// "have I seen this key", never stores a value alongside it, so it is not
// the generic hash-map collaborator spec.md §1 places out of scope — that
// collaborator stores arbitrary values; this is a property-test helper.
// Backed by Set3 rather than a bare map; this is the module's only use of
// Set3.
type SeenSet struct {
	s *set3.Set3[uint64]
}

// NewSeenSet returns an empty set. capacity is accepted for API
// compatibility with the map-backed callers that sized their set up front;
// Set3 grows on its own as keys are added.
func NewSeenSet(capacity int) *SeenSet {
	_ = capacity
	return &SeenSet{s: set3.Empty[uint64]()}
}

// Add records k and reports whether it was already present.
func (s *SeenSet) Add(k uint64) (alreadyPresent bool) {
	alreadyPresent = s.s.Contains(k)
	s.s.Add(k)
	return alreadyPresent
}

// Contains reports whether k was previously added.
func (s *SeenSet) Contains(k uint64) bool {
	return s.s.Contains(k)
}

// Len reports the number of distinct keys added.
func (s *SeenSet) Len() int { return int(s.s.Len()) }

// LinearPredecessor is the trivial O(n) reference the index tests check
// both bucket representations against (spec §8 properties 1-3).
func LinearPredecessor(sorted []uint64, x uint64) (uint64, bool) {
	best, found := uint64(0), false
	for _, k := range sorted {
		if k > x {
			break
		}
		best, found = k, true
	}
	return best, found
}
