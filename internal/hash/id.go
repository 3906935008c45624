package hash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Digest accumulates a layout description into a single xxHash64 value.
//
// Strings are length-prefixed so that adjacent values cannot run into each
// other ("ab"+"c" and "a"+"bc" hash differently).
type Digest struct {
	d       *xxhash.Digest
	scratch [8]byte
}

// NewDigest returns an empty digest.
func NewDigest() *Digest {
	return &Digest{d: xxhash.New()}
}

// WriteString adds a length-prefixed string.
func (d *Digest) WriteString(s string) {
	d.WriteInt(len(s))
	_, _ = d.d.WriteString(s)
}

// WriteInt adds an integer as 8 little-endian bytes.
func (d *Digest) WriteInt(v int) {
	binary.LittleEndian.PutUint64(d.scratch[:], uint64(v))
	_, _ = d.d.Write(d.scratch[:])
}

// WriteBool adds a single byte, 1 for true.
func (d *Digest) WriteBool(v bool) {
	if v {
		_, _ = d.d.Write([]byte{1})
		return
	}
	_, _ = d.d.Write([]byte{0})
}

// Sum64 returns the current hash value.
func (d *Digest) Sum64() uint64 {
	return d.d.Sum64()
}
