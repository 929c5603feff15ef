package band

import (
	"errors"
	"testing"

	"github.com/tuomas-lb/auroralink/internal/frame"
)

func testFrame() frame.Frame {
	return frame.New(1, 6, 0xCAFE, [frame.ChunkSize]byte{0x41, 0x42, 0x43})
}

func TestFromFrameOrder(t *testing.T) {
	f := testFrame()
	indices := FromFrame(f)

	if len(indices) != Count {
		t.Fatalf("got %d indices, want %d", len(indices), Count)
	}
	raw := f.Serialize()
	for i, b := range raw {
		if indices[2*i] != b>>4 {
			t.Errorf("band %d = %#x, want high nibble of byte %d (%#02x)", 2*i, indices[2*i], i, b)
		}
		if indices[2*i+1] != b&0xF {
			t.Errorf("band %d = %#x, want low nibble of byte %d (%#02x)", 2*i+1, indices[2*i+1], i, b)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	f := testFrame()
	raw, err := ToBytes(FromFrame(f))
	if err != nil {
		t.Fatalf("ToBytes failed: %v", err)
	}

	got, err := frame.Deserialize(raw[:])
	if err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}
	if got != f {
		t.Errorf("round trip mismatch: %+v != %+v", got, f)
	}
}

func TestToBytesLength(t *testing.T) {
	_, err := ToBytes(make([]byte, Count-1))
	if !errors.Is(err, ErrBandCount) {
		t.Errorf("got err %v, want ErrBandCount", err)
	}
}

func TestIsSync(t *testing.T) {
	sync := frame.New(0, 5, 1, [frame.ChunkSize]byte{})
	if !IsSync(sync) {
		t.Error("frame 0 not recognized as sync")
	}
	if IsSync(testFrame()) {
		t.Error("frame 1 recognized as sync")
	}
}
