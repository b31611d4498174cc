package octrie

import (
	"math/rand"
	"sort"
	"testing"
)

func linearPredecessor(sorted []uint64, x uint64) (uint64, bool) {
	best := uint64(0)
	found := false
	for _, k := range sorted {
		if k <= x {
			best = k
			found = true
		} else {
			break
		}
	}
	return best, found
}

func TestOctrieBoundaryScenarios(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		tr := New()
		got := tr.Predecessor(0)
		if got.Exists {
			t.Fatalf("expected no predecessor on empty tree, got %+v", got)
		}
		if got.Pos != 1 {
			t.Fatalf("empty-query result Pos = %d, want 1 (distinct from below-minimum's 0)", got.Pos)
		}
	})

	t.Run("single key", func(t *testing.T) {
		tr := New()
		tr.Insert(5)
		cases := []struct {
			x      uint64
			exists bool
			want   uint64
		}{
			{4, false, 0},
			{5, true, 5},
			{6, true, 5},
		}
		for _, c := range cases {
			got := tr.Predecessor(c.x)
			if got.Exists != c.exists || (c.exists && got.Pos != c.want) {
				t.Fatalf("Predecessor(%d) = %+v, want {%v %d}", c.x, got, c.exists, c.want)
			}
		}
	})

	t.Run("five keys", func(t *testing.T) {
		tr := New()
		for _, k := range []uint64{1, 3, 7, 15, 31} {
			tr.Insert(k)
		}
		cases := []struct {
			x      uint64
			exists bool
			want   uint64
		}{
			{10, true, 7},
			{31, true, 31},
			{100, true, 31},
		}
		for _, c := range cases {
			got := tr.Predecessor(c.x)
			if got.Exists != c.exists || (c.exists && got.Pos != c.want) {
				t.Fatalf("Predecessor(%d) = %+v, want {%v %d}", c.x, got, c.exists, c.want)
			}
		}
	})
}

func TestOctrieEndToEndScenario(t *testing.T) {
	seq := []uint64{17, 3, 29, 11, 41, 5, 23, 37, 13, 19, 31, 7, 43, 47, 2, 53, 61, 59, 67, 71}
	tr := New()
	var inserted []uint64
	for _, k := range seq {
		tr.Insert(k)
		inserted = append(inserted, k)
	}
	sorted := append([]uint64{}, inserted...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	for x := uint64(0); x <= 80; x++ {
		wantKey, wantOK := linearPredecessor(sorted, x)
		got := tr.Predecessor(x)
		if got.Exists != wantOK {
			t.Fatalf("x=%d: Exists=%v want %v", x, got.Exists, wantOK)
		}
		if wantOK && got.Pos != wantKey {
			t.Fatalf("x=%d: Pos=%d want %d", x, got.Pos, wantKey)
		}
	}
	if tr.Size() != uint64(len(seq)) {
		t.Fatalf("Size() = %d, want %d", tr.Size(), len(seq))
	}
}

func TestOctrieDuplicateInsertIsNoOp(t *testing.T) {
	tr := New()
	for _, k := range []uint64{10, 20, 30, 10, 20} {
		tr.Insert(k)
	}
	if tr.Size() != 3 {
		t.Fatalf("Size() = %d, want 3 after duplicate inserts", tr.Size())
	}
}

func TestOctrieStressRandomInsertDeleteAgainstReference(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tr := New()
	ref := map[uint64]bool{}

	const universe = 5000
	for step := 0; step < 4000; step++ {
		k := uint64(rng.Intn(universe))
		if rng.Intn(3) == 0 && len(ref) > 0 {
			// delete a key that's actually present: whichever key Go's map
			// iteration yields first (that order is randomized per run).
			for cand := range ref {
				k = cand
				break
			}
			wasPresent := ref[k]
			got := tr.Remove(k)
			if got != wasPresent {
				t.Fatalf("step %d: Remove(%d) = %v, want %v", step, k, got, wasPresent)
			}
			delete(ref, k)
		} else {
			tr.Insert(k)
			ref[k] = true
		}

		if step%200 != 0 {
			continue
		}
		var sorted []uint64
		for k := range ref {
			sorted = append(sorted, k)
		}
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
		if tr.Size() != uint64(len(sorted)) {
			t.Fatalf("step %d: Size() = %d, want %d", step, tr.Size(), len(sorted))
		}
		for q := 0; q < 50; q++ {
			x := uint64(rng.Intn(universe + 10))
			wantKey, wantOK := linearPredecessor(sorted, x)
			got := tr.Predecessor(x)
			if got.Exists != wantOK {
				t.Fatalf("step %d x=%d: Exists=%v want %v", step, x, got.Exists, wantOK)
			}
			if wantOK && got.Pos != wantKey {
				t.Fatalf("step %d x=%d: Pos=%d want %d", step, x, got.Pos, wantKey)
			}
		}
	}
}
