package octrie

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Stats is a diagnostic snapshot of an Octrie's shape (spec §4.G); never
// consulted by insert/predecessor/remove.
type Stats struct {
	Nodes  int
	Keys   uint64
	Height int
}

// Stats walks the tree once to report node count, key count, and height.
func (t *Octrie) Stats() Stats {
	if t.root == nilHandle {
		return Stats{}
	}
	st := Stats{Keys: t.size}
	t.countNodes(t.root, &st.Nodes)
	for h := t.root; ; {
		n := t.a.get(h)
		st.Height++
		if n.leaf {
			break
		}
		h = n.children[0]
	}
	return st
}

func (t *Octrie) countNodes(h handle, count *int) {
	*count++
	n := t.a.get(h)
	if n.leaf {
		return
	}
	for i := int8(0); i < n.nChildren; i++ {
		t.countNodes(n.children[i], count)
	}
}

func (s Stats) String() string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("octrie: %d nodes, %d keys, height %d", s.Nodes, s.Keys, s.Height)
}
