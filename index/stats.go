package index

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Stats is a diagnostic snapshot of an index's shape (spec §4.G). It is
// never consulted by insert/predecessor and exists purely for tests and
// ad-hoc debugging, the same role the teacher's Key.String() plays.
type Stats struct {
	Representation string
	Buckets        int
	Keys           uint64
	MaxPrefix      uint64
}

func (s Stats) String() string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%s index: %d buckets, %d keys, max prefix %d", s.Representation, s.Buckets, s.Keys, s.MaxPrefix)
}
