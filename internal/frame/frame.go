// Package frame implements the 16-byte frame record carried by one
// display tick: a 4-byte header, 10 data bytes, a CRC-8 checksum and a
// reserved trailing byte.
package frame

import (
	"encoding/binary"
	"errors"

	"github.com/sigurn/crc8"
)

const (
	// Size is the serialized frame length in bytes.
	Size = 16
	// ChunkSize is the number of data bytes per frame.
	ChunkSize = 10
)

// Byte layout:
//   0:      frame index
//   1:      total frames in the packet
//   2-3:    sequence id, big-endian
//   4-13:   data chunk
//   14:     CRC-8 of the data chunk
//   15:     reserved, zero on write, ignored on read

var (
	// ErrShortBuffer indicates fewer than Size bytes were supplied.
	ErrShortBuffer = errors.New("frame: buffer shorter than frame size")
)

// crcTable uses CRC-8-CCITT parameters: poly 0x07, init 0x00, no
// reflection, no xor-out.
var crcTable = crc8.MakeTable(crc8.CRC8)

// Checksum returns the CRC-8 of data.
func Checksum(data []byte) byte {
	return crc8.Checksum(data, crcTable)
}

// Frame is one 16-byte record of a packet.
type Frame struct {
	Index    uint8
	Total    uint8
	Sequence uint16
	Chunk    [ChunkSize]byte
	Checksum uint8
}

// New builds a frame over chunk with the checksum filled in.
func New(index, total uint8, sequence uint16, chunk [ChunkSize]byte) Frame {
	return Frame{
		Index:    index,
		Total:    total,
		Sequence: sequence,
		Chunk:    chunk,
		Checksum: Checksum(chunk[:]),
	}
}

// Valid reports whether the checksum matches the chunk and the index
// is inside the packet.
func (f Frame) Valid() bool {
	return f.Checksum == Checksum(f.Chunk[:]) && f.Index < f.Total
}

// Serialize renders the frame into its 16-byte wire form. The reserved
// byte is always written as zero.
func (f Frame) Serialize() [Size]byte {
	var out [Size]byte
	out[0] = f.Index
	out[1] = f.Total
	binary.BigEndian.PutUint16(out[2:4], f.Sequence)
	copy(out[4:14], f.Chunk[:])
	out[14] = f.Checksum
	return out
}

// Deserialize parses a frame from buf without validating the checksum;
// callers decide what to do with invalid frames.
func Deserialize(buf []byte) (Frame, error) {
	if len(buf) < Size {
		return Frame{}, ErrShortBuffer
	}
	f := Frame{
		Index:    buf[0],
		Total:    buf[1],
		Sequence: binary.BigEndian.Uint16(buf[2:4]),
		Checksum: buf[14],
	}
	copy(f.Chunk[:], buf[4:14])
	return f, nil
}
