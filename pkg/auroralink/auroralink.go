// Package auroralink is the public surface of the aurora visual data
// channel: it turns short text messages into packets of
// forward-error-corrected frames for the renderer, and recovers
// messages from frames reconstructed off camera rasters.
package auroralink

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/tuomas-lb/auroralink/internal/band"
	"github.com/tuomas-lb/auroralink/internal/detect"
	"github.com/tuomas-lb/auroralink/internal/frame"
	"github.com/tuomas-lb/auroralink/internal/palette"
	"github.com/tuomas-lb/auroralink/internal/reedsolomon"
)

var (
	// ErrEmptyMessage indicates an empty input message.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrMessageTooLong indicates the message does not fit one packet.
	ErrMessageTooLong = errors.New("message too long for a single packet")
	// ErrInsufficientFrames indicates decode was attempted before
	// enough frames were collected.
	ErrInsufficientFrames = errors.New("insufficient frames to decode")
	// ErrInvalidUTF8 indicates the recovered payload is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("recovered payload is not valid UTF-8")
)

const (
	// BandCount is the number of bands the renderer draws per frame.
	BandCount = band.Count
	// MaxMessageBytes is the largest UTF-8 payload a packet can carry:
	// 204 data frames of 10 bytes each keeps totalFrames within the
	// 8-bit header.
	MaxMessageBytes = 2040
)

// Frame is one 16-byte record of a packet.
type Frame = frame.Frame

// Packet is the full set of frames encoding one message.
type Packet struct {
	// Sequence identifies the packet on the air.
	Sequence uint16
	// DataFrames and ParityFrames partition the frame list.
	DataFrames   int
	ParityFrames int
	// PayloadLen is the unpadded UTF-8 byte length.
	PayloadLen int
	// Frames holds the DataFrames+ParityFrames frames in index order.
	Frames []Frame
}

// packetShape returns the data/parity frame counts for a payload of
// length n: one data frame per 10 bytes, parity at a 4:1 ratio with a
// floor of 4.
func packetShape(n int) (dataFrames, parityFrames int) {
	dataFrames = (n + frame.ChunkSize - 1) / frame.ChunkSize
	parityFrames = (dataFrames + 3) / 4
	if parityFrames < 4 {
		parityFrames = 4
	}
	return dataFrames, parityFrames
}

// EncodeMessage encodes a UTF-8 message into a packet of frames. The
// payload is padded to whole frames, each of the 10 byte columns is
// Reed-Solomon encoded down the frame list, and every frame carries a
// freshly drawn 16-bit sequence id.
func EncodeMessage(s string) (*Packet, error) {
	raw := []byte(s)
	if len(raw) == 0 {
		return nil, ErrEmptyMessage
	}
	if len(raw) > MaxMessageBytes {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrMessageTooLong, len(raw), MaxMessageBytes)
	}

	dataFrames, parityFrames := packetShape(len(raw))
	total := dataFrames + parityFrames
	if total > 255 {
		return nil, fmt.Errorf("%w: %d frames, limit 255", ErrMessageTooLong, total)
	}

	padded := make([]byte, dataFrames*frame.ChunkSize)
	copy(padded, raw)

	// RS runs down each byte column: column c of every data frame is
	// one codeword of length dataFrames+parityFrames.
	chunks := make([][frame.ChunkSize]byte, total)
	col := make([]byte, dataFrames)
	for c := 0; c < frame.ChunkSize; c++ {
		for r := 0; r < dataFrames; r++ {
			col[r] = padded[r*frame.ChunkSize+c]
		}
		code := reedsolomon.Encode(col, parityFrames)
		for r := 0; r < total; r++ {
			chunks[r][c] = code[r]
		}
	}

	sequence := uint16(rand.Uint32())
	frames := make([]Frame, total)
	for r := 0; r < total; r++ {
		frames[r] = frame.New(uint8(r), uint8(total), sequence, chunks[r])
	}

	return &Packet{
		Sequence:     sequence,
		DataFrames:   dataFrames,
		ParityFrames: parityFrames,
		PayloadLen:   len(raw),
		Frames:       frames,
	}, nil
}

// FrameBands returns the 32 palette indices the renderer draws for f,
// left to right.
func FrameBands(f Frame) []byte {
	return band.FromFrame(f)
}

// IsSyncFrame reports whether f is the packet's visual sync marker.
func IsSyncFrame(f Frame) bool {
	return band.IsSync(f)
}

// PaletteColors returns the renderer's color table indexed by symbol.
func PaletteColors() [palette.Size][3]uint8 {
	var out [palette.Size][3]uint8
	for i, c := range palette.Colors {
		out[i] = [3]uint8{c.R, c.G, c.B}
	}
	return out
}

// Detection re-exports, so hosts can run the detector without
// reaching into internal packages.

// Detector reconstructs candidate frames from camera rasters.
type Detector = detect.Detector

// DetectorConfig holds the detector's tunable thresholds.
type DetectorConfig = detect.Config

// DetectionResult is the tagged outcome of one detection attempt.
type DetectionResult = detect.Result

// DetectionStatus classifies a detection attempt.
type DetectionStatus = detect.Status

const (
	DetectNoRegion         = detect.NoRegion
	DetectLowConfidence    = detect.LowConfidence
	DetectChecksumMismatch = detect.ChecksumMismatch
	DetectOK               = detect.OK
)

// NewDetector returns a detector using cfg.
func NewDetector(cfg DetectorConfig) *Detector {
	return detect.New(cfg)
}

// DefaultDetectorConfig returns the reference detector thresholds.
func DefaultDetectorConfig() DetectorConfig {
	return detect.DefaultConfig()
}

// ParseDetectorConfig loads detector thresholds from a YAML document.
func ParseDetectorConfig(data []byte) (DetectorConfig, error) {
	return detect.ParseConfig(data)
}
