package auroralink

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/tuomas-lb/auroralink/internal/frame"
	"github.com/tuomas-lb/auroralink/internal/reedsolomon"
)

// Decoder accumulates validated frames for one packet and recovers the
// message once enough have arrived. Frames may arrive in any order and
// duplicates are idempotent; a frame from a different sequence resets
// the decoder onto the new packet. Not safe for concurrent use.
type Decoder struct {
	state *packetState
}

// packetState exists only while a packet is being collected; a nil
// state means the decoder is uninitialized.
type packetState struct {
	sequence     uint16
	total        int
	dataFrames   int
	parityFrames int
	frames       map[uint8]frame.Frame
}

// NewDecoder returns an empty decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// dataFramesFor inverts the sender's sizing rule. totalFrames is
// strictly increasing in the data frame count, so at most one count
// matches; totals no sender produces report !ok.
func dataFramesFor(total int) (int, bool) {
	for d := 1; d <= total; d++ {
		dd, pp := packetShape(d * frame.ChunkSize)
		if dd+pp == total {
			return dd, true
		}
		if dd+pp > total {
			break
		}
	}
	return 0, false
}

// AddFrame offers a frame to the decoder. It returns false when the
// frame cannot belong to any packet: its index is outside its own
// frame count, or its frame count is one no sender produces.
func (d *Decoder) AddFrame(f Frame) bool {
	if f.Index >= f.Total {
		return false
	}
	dataFrames, ok := dataFramesFor(int(f.Total))
	if !ok {
		return false
	}
	if d.state == nil || f.Sequence != d.state.sequence {
		d.state = &packetState{
			sequence:     f.Sequence,
			total:        int(f.Total),
			dataFrames:   dataFrames,
			parityFrames: int(f.Total) - dataFrames,
			frames:       make(map[uint8]frame.Frame),
		}
	}
	if int(f.Index) >= d.state.total {
		return false
	}
	d.state.frames[f.Index] = f
	return true
}

// Sequence returns the sequence id of the packet being collected and
// whether one has been adopted.
func (d *Decoder) Sequence() (uint16, bool) {
	if d.state == nil {
		return 0, false
	}
	return d.state.sequence, true
}

// Collected returns the number of distinct frames held.
func (d *Decoder) Collected() int {
	if d.state == nil {
		return 0
	}
	return len(d.state.frames)
}

// Required returns the number of frames needed before decoding can
// succeed.
func (d *Decoder) Required() int {
	if d.state == nil {
		return 0
	}
	return d.state.dataFrames
}

// CanDecode reports whether enough frames have been collected.
func (d *Decoder) CanDecode() bool {
	return d.state != nil && len(d.state.frames) >= d.state.dataFrames
}

// Missing lists the frame indices not yet collected.
func (d *Decoder) Missing() []int {
	if d.state == nil {
		return nil
	}
	var missing []int
	for r := 0; r < d.state.total; r++ {
		if _, ok := d.state.frames[uint8(r)]; !ok {
			missing = append(missing, r)
		}
	}
	return missing
}

// Reset discards any partially collected packet.
func (d *Decoder) Reset() {
	d.state = nil
}

// Decode erasure-decodes each of the 10 byte columns down the frame
// list, reassembles the data rows, trims zero padding, and returns the
// message. On success the decoder resets. The payload must be valid
// UTF-8; anything else is rejected.
func (d *Decoder) Decode() (string, error) {
	if !d.CanDecode() {
		return "", fmt.Errorf("%w: have %d of %d, missing %v",
			ErrInsufficientFrames, d.Collected(), d.Required(), d.Missing())
	}
	st := d.state

	received := make([]byte, st.total)
	erased := make([]bool, st.total)
	for r := 0; r < st.total; r++ {
		_, ok := st.frames[uint8(r)]
		erased[r] = !ok
	}

	data := make([]byte, st.dataFrames*frame.ChunkSize)
	for c := 0; c < frame.ChunkSize; c++ {
		for r := 0; r < st.total; r++ {
			if f, ok := st.frames[uint8(r)]; ok {
				received[r] = f.Chunk[c]
			} else {
				received[r] = 0
			}
		}
		col, err := reedsolomon.DecodeErasures(received, erased, st.dataFrames, st.parityFrames)
		if err != nil {
			return "", fmt.Errorf("column %d: %w", c, err)
		}
		for r, b := range col {
			data[r*frame.ChunkSize+c] = b
		}
	}

	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	if !utf8.Valid(data) {
		return "", ErrInvalidUTF8
	}

	d.state = nil
	return string(data), nil
}
