// Package band maps frames onto the 32-band strip: each serialized
// frame byte becomes two palette indices, high nibble first, rendered
// left to right.
package band

import (
	"errors"

	"github.com/tuomas-lb/auroralink/internal/frame"
	"github.com/tuomas-lb/auroralink/internal/palette"
)

// Count is the number of bands in the strip, two per frame byte.
const Count = frame.Size * 2

// ErrBandCount indicates an index slice of the wrong length.
var ErrBandCount = errors.New("band: expected 32 band indices")

// FromFrame expands a frame's 16 wire bytes into 32 palette indices.
func FromFrame(f frame.Frame) []byte {
	raw := f.Serialize()
	indices := make([]byte, 0, Count)
	for _, b := range raw {
		hi, lo := palette.SplitByte(b)
		indices = append(indices, hi, lo)
	}
	return indices
}

// ToBytes reassembles the 16 wire bytes from 32 band indices.
func ToBytes(indices []byte) ([frame.Size]byte, error) {
	var raw [frame.Size]byte
	if len(indices) != Count {
		return raw, ErrBandCount
	}
	for i := 0; i < frame.Size; i++ {
		raw[i] = palette.JoinNibbles(indices[2*i], indices[2*i+1])
	}
	return raw, nil
}

// IsSync reports whether f is the packet's sync frame. The renderer
// may mark it visually; receivers treat it like any other frame.
func IsSync(f frame.Frame) bool {
	return f.Index == 0
}
