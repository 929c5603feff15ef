package palette

import "testing"

func TestClosestIdentity(t *testing.T) {
	for i, c := range Colors {
		if got := Closest(c); got != i {
			t.Errorf("Closest(palette[%d]) = %d", i, got)
		}
	}
}

func TestConfidenceExactMatch(t *testing.T) {
	for i, c := range Colors {
		if got := Confidence(c); got != 1 {
			t.Errorf("Confidence(palette[%d]) = %v, want 1", i, got)
		}
	}
}

func TestConfidenceDegrades(t *testing.T) {
	near := Colors[0]
	near.R += 10
	if conf := Confidence(near); conf <= 0 || conf >= 1 {
		t.Errorf("near-match confidence = %v, want in (0, 1)", conf)
	}

	// A color far from every entry bottoms out at zero rather than
	// going negative.
	if conf := Confidence(Color{0, 0, 0}); conf < 0 {
		t.Errorf("far-match confidence = %v, want >= 0", conf)
	}
}

func TestClosestTieBreaksLow(t *testing.T) {
	// Equidistant from entries 0 and 1 under the weighted metric the
	// argmin must settle on the lower index. Midpoint of two entries
	// is equidistant when the rounding is exact.
	mid := Color{25, 75, 45}
	d0 := Weighted(mid, Colors[0])
	d1 := Weighted(mid, Colors[1])
	if d0 != d1 {
		t.Skipf("midpoint not exactly equidistant (%v vs %v)", d0, d1)
	}
	if got := Closest(mid); got != 0 {
		t.Errorf("tie resolved to %d, want 0", got)
	}
}

func TestDistances(t *testing.T) {
	a := Color{0, 0, 0}
	b := Color{3, 4, 0}
	if got := Euclidean(a, b); got != 5 {
		t.Errorf("Euclidean = %v, want 5", got)
	}
	if Euclidean(a, a) != 0 || Weighted(a, a) != 0 {
		t.Error("distance of a color to itself is not zero")
	}
	if Weighted(a, b) >= Euclidean(a, b) {
		t.Error("weighted distance should shrink against unit weights")
	}
}

func TestNibbleRoundTrip(t *testing.T) {
	for b := 0; b < 256; b++ {
		hi, lo := SplitByte(byte(b))
		if hi > 0xF || lo > 0xF {
			t.Fatalf("nibble out of range for byte %#02x: %d, %d", b, hi, lo)
		}
		if got := JoinNibbles(hi, lo); got != byte(b) {
			t.Fatalf("nibble round trip: %#02x -> %#02x", b, got)
		}
	}
}

func TestSplitByteOrder(t *testing.T) {
	hi, lo := SplitByte(0xA3)
	if hi != 0xA || lo != 0x3 {
		t.Errorf("SplitByte(0xA3) = %#x, %#x, want 0xa, 0x3", hi, lo)
	}
}
