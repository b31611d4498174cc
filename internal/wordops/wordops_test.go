package wordops

import "testing"

func TestPext(t *testing.T) {
	cases := []struct {
		x, mask, want uint64
	}{
		{0b1011, 0b1111, 0b1011},
		{0b1011, 0b1010, 0b11},
		{0xFFFFFFFFFFFFFFFF, 0, 0},
		{0xFF00, 0xFF00, 0xFF},
		{0x8000000000000000, 0x8000000000000000, 1},
	}
	for _, c := range cases {
		if got := Pext(c.x, c.mask); got != c.want {
			t.Fatalf("Pext(%#x,%#x) = %#x, want %#x", c.x, c.mask, got, c.want)
		}
	}
}

func TestPcmpGtU8(t *testing.T) {
	a := uint64(0x0102030405060708)
	b := uint64(0x0101030406050708)
	got := PcmpGtU8(a, b)
	// lane 0 (lsb): a=0x08 b=0x08 -> eq -> 0x00
	// lane 1: a=0x07 b=0x07 -> eq -> 0x00
	// lane 2: a=0x06 b=0x05 -> gt -> 0xFF
	// lane 3: a=0x05 b=0x06 -> lt -> 0x00
	// lane 4: a=0x04 b=0x04 -> eq -> 0x00
	// lane 5: a=0x03 b=0x03 -> eq -> 0x00
	// lane 6: a=0x02 b=0x01 -> gt -> 0xFF
	// lane 7: a=0x01 b=0x01 -> eq -> 0x00
	want := uint64(0x00FF000000FF0000)
	if got != want {
		t.Fatalf("PcmpGtU8 = %#016x, want %#016x", got, want)
	}
}

func TestPcmpGtU8Unsigned(t *testing.T) {
	// byte 0xFF must be considered greater than 0x7F (unsigned semantics).
	a := uint64(0xFF)
	b := uint64(0x7F)
	got := PcmpGtU8(a, b)
	if got&0xFF != 0xFF {
		t.Fatalf("expected lane 0 set for unsigned 0xFF > 0x7F, got %#x", got)
	}
}

func TestPcmpEqU16AndGt(t *testing.T) {
	a := uint64(0x0001_0005_0003_0002)
	b := uint64(0x0001_0002_0003_0001)
	eq := PcmpEqU16(a, b)
	gt := PcmpGtU16(a, b)
	if eq != 0xFFFF_0000_FFFF_0000 {
		t.Fatalf("PcmpEqU16 = %#016x", eq)
	}
	if gt != 0x0000_FFFF_0000_FFFF {
		t.Fatalf("PcmpGtU16 = %#016x", gt)
	}
}

func TestBitMask(t *testing.T) {
	if BitMask(0) != 0 {
		t.Fatalf("BitMask(0) should be 0")
	}
	if BitMask(8) != 0xFF {
		t.Fatalf("BitMask(8) should be 0xFF, got %#x", BitMask(8))
	}
	if BitMask(64) != ^uint64(0) {
		t.Fatalf("BitMask(64) should saturate to all-ones")
	}
	if BitMask(100) != ^uint64(0) {
		t.Fatalf("BitMask(100) should saturate to all-ones")
	}
}

func TestLzcountPopcount(t *testing.T) {
	if Lzcount(0) != 64 {
		t.Fatalf("Lzcount(0) should be 64")
	}
	if Lzcount(1) != 63 {
		t.Fatalf("Lzcount(1) should be 63, got %d", Lzcount(1))
	}
	if Popcount(0xFF) != 8 {
		t.Fatalf("Popcount(0xFF) should be 8")
	}
}

func TestBroadcast(t *testing.T) {
	got := Broadcast(0xAB)
	want := uint64(0xABABABABABABABAB)
	if got != want {
		t.Fatalf("Broadcast(0xAB) = %#016x, want %#016x", got, want)
	}
}

func TestBitsetGetSetClear(t *testing.T) {
	b := NewBitset(256)
	indices := []uint{0, 63, 64, 127, 128, 191, 192, 255}
	for _, i := range indices {
		if b.Get(i) {
			t.Fatalf("bit %d should be clear initially", i)
		}
	}
	for _, i := range indices {
		b.Set(i)
		if !b.Get(i) {
			t.Fatalf("bit %d should be set after Set()", i)
		}
	}
	for _, i := range []uint{1, 2, 60, 65, 129, 254} {
		if b.Get(i) {
			t.Fatalf("bit %d should remain clear", i)
		}
	}
	for _, i := range indices {
		b.Clear(i)
		if b.Get(i) {
			t.Fatalf("bit %d should be clear after Clear()", i)
		}
	}
}

func TestBitsetPopCount(t *testing.T) {
	b := NewBitset(128)
	for _, i := range []uint{0, 1, 2, 64, 127} {
		b.Set(i)
	}
	if got := b.PopCount(); got != 5 {
		t.Fatalf("PopCount() = %d, want 5", got)
	}
}

func TestBitsetPrevSet(t *testing.T) {
	b := NewBitset(130)
	b.Set(5)
	b.Set(64)
	b.Set(129)

	cases := []struct {
		i        uint
		wantOK   bool
		wantBit  uint
	}{
		{0, false, 0},
		{4, false, 0},
		{5, true, 5},
		{10, true, 5},
		{63, true, 5},
		{64, true, 64},
		{100, true, 64},
		{129, true, 129},
	}
	for _, c := range cases {
		bit, ok := b.PrevSet(c.i)
		if ok != c.wantOK {
			t.Fatalf("PrevSet(%d) ok = %v, want %v", c.i, ok, c.wantOK)
		}
		if ok && bit != c.wantBit {
			t.Fatalf("PrevSet(%d) = %d, want %d", c.i, bit, c.wantBit)
		}
	}
}
