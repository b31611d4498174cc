package wordops

import "math/bits"

// Bitset is a variable-length bit vector backed by 64-bit words, the same
// word/offset scheme the teacher corpus uses for its fixed-256-bit presence
// maps (TomTonic/multimap's bitfield256 and its art.PresenceBitmap),
// generalized here to an arbitrary bit count because the Sampling Index's
// bitset bucket needs one bit per suffix value and the suffix space is
// 2^s bits for a caller-chosen sampling parameter s, not a fixed 256.
type Bitset struct {
	words []uint64
	nbits uint
}

// NewBitset allocates a Bitset able to address bit indices [0, nbits).
func NewBitset(nbits uint) *Bitset {
	return &Bitset{
		words: make([]uint64, (nbits+63)/64),
		nbits: nbits,
	}
}

// Len reports the number of addressable bits.
func (b *Bitset) Len() uint { return b.nbits }

// Set marks bit i.
func (b *Bitset) Set(i uint) {
	b.words[i>>6] |= uint64(1) << (i & 63)
}

// Clear clears bit i.
func (b *Bitset) Clear(i uint) {
	b.words[i>>6] &^= uint64(1) << (i & 63)
}

// Get reports whether bit i is set.
func (b *Bitset) Get(i uint) bool {
	return b.words[i>>6]&(uint64(1)<<(i&63)) != 0
}

// PopCount returns the total number of set bits.
func (b *Bitset) PopCount() int {
	count := 0
	for _, w := range b.words {
		count += bits.OnesCount64(w)
	}
	return count
}

// PrevSet scans downward from i (inclusive) and returns the index of the
// highest set bit <= i, or (0, false) if none exists. This is the bitset
// bucket's core operation (spec §4.E): "scan bits i = suf downward to 0;
// first set bit j".
func (b *Bitset) PrevSet(i uint) (uint, bool) {
	word := i >> 6
	off := i & 63
	// mask off bits above off in the starting word
	w := b.words[word] & BitMask(uint(off+1))
	for {
		if w != 0 {
			top := 63 - bits.LeadingZeros64(w)
			return word*64 + uint(top), true
		}
		if word == 0 {
			return 0, false
		}
		word--
		w = b.words[word]
	}
}
