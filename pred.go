// Package tdc provides dynamic predecessor data structures over 64-bit
// integer keys: a constant-size Fusion Node primitive, a Fusion-Node-indexed
// B-tree (Octrie), and a two-level universe-partitioned index (Sampling
// Index, plain or batched). See the fusion, octrie and index subpackages.
package tdc

// Key is the universe element type shared by every structure in this
// module. All structures store and query unsigned 64-bit integers; the
// Index variants further restrict the effective universe to 40 bits
// (see the index package).
type Key = uint64

// PredResult is the uniform answer shape for a predecessor query:
// the largest key y in the structure's set with y <= the query, if any.
type PredResult struct {
	Exists bool
	Pos    uint64
}

// NotFound is the canonical "no predecessor" result. A fusion.Node returns
// it when x is below every key it holds, and the top-level structures
// return it as their below-minimum answer for a non-empty set (an empty set
// answers {false, 1} instead).
var NotFound = PredResult{Exists: false, Pos: 0}
