package encoding

import (
	"encoding/binary"

	"github.com/arloliu/bitfield/segment"
)

// alignedWidth returns the byte width of a segment that starts on a byte
// boundary and spans exactly 1, 2, 4 or 8 whole bytes, or 0 for any other
// segment. Such segments are plain big-endian integers in the buffer.
func alignedWidth(d segment.Descriptor) int {
	if d.StartBit()%8 != 0 {
		return 0
	}

	switch d.BitLength() {
	case 8, 16, 32, 64:
		return d.BitLength() / 8
	default:
		return 0
	}
}

func getAligned(b []byte, width int) uint64 {
	switch width {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(binary.BigEndian.Uint16(b))
	case 4:
		return uint64(binary.BigEndian.Uint32(b))
	default:
		return binary.BigEndian.Uint64(b)
	}
}

func putAligned(b []byte, width int, v uint64) {
	switch width {
	case 1:
		b[0] = byte(v)
	case 2:
		binary.BigEndian.PutUint16(b, uint16(v))
	case 4:
		binary.BigEndian.PutUint32(b, uint32(v))
	default:
		binary.BigEndian.PutUint64(b, v)
	}
}
