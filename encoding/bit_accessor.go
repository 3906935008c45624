package encoding

import (
	"fmt"
	"math"

	"github.com/arloliu/bitfield/errs"
	"github.com/arloliu/bitfield/segment"
)

// Get reads the bits covered by d as an unsigned integer.
//
// No sign interpretation is applied; see GetInt.
//
// Returns:
//   - uint64: Value in [0, d.RawMax()]
//   - error: ErrInvalidSegment if d is malformed or does not fit buf
func Get(buf []byte, d segment.Descriptor) (uint64, error) {
	if err := checkBounds(buf, d); err != nil {
		return 0, err
	}

	return get(buf, d), nil
}

// GetInt reads the bits covered by d as a signed integer.
//
// Signed segments are decoded as two's complement over d.BitLength() bits.
// Unsigned segments are returned as-is, which fails for 64-bit patterns above
// math.MaxInt64.
//
// Returns:
//   - int64: Value in [d.MinValue(), d.MaxValue()]
//   - error: ErrInvalidSegment for bad descriptors, ErrValueOutOfRange if the
//     unsigned value does not fit int64
func GetInt(buf []byte, d segment.Descriptor) (int64, error) {
	if err := checkBounds(buf, d); err != nil {
		return 0, err
	}

	raw := get(buf, d)
	if d.IsSigned() {
		return SignExtend(raw, d.BitLength()), nil
	}

	if raw > math.MaxInt64 {
		return 0, fmt.Errorf("%w: segment %q holds %d which does not fit int64",
			errs.ErrValueOutOfRange, d.Name(), raw)
	}

	return int64(raw), nil
}

// Set writes v into the bits covered by d.
//
// Parameters:
//   - buf: Buffer to modify in place
//   - d: Target segment
//   - v: Value, must not exceed d.MaxValue()
//
// Returns:
//   - error: ErrInvalidSegment for bad descriptors, ErrValueOutOfRange if v is too large
func Set(buf []byte, d segment.Descriptor, v uint64) error {
	if err := checkBounds(buf, d); err != nil {
		return err
	}

	if v > d.MaxValue() {
		return fmt.Errorf("%w: value %d is larger than segment %q can hold (max value %d)",
			errs.ErrValueOutOfRange, v, d.Name(), d.MaxValue())
	}

	put(buf, d, v)

	return nil
}

// SetInt writes v into the bits covered by d, encoding negative values as
// two's complement.
//
// Returns:
//   - error: ErrValueOutOfRange if v lies outside [d.MinValue(), d.MaxValue()]
func SetInt(buf []byte, d segment.Descriptor, v int64) error {
	if err := checkBounds(buf, d); err != nil {
		return err
	}

	if v < d.MinValue() || (v > 0 && uint64(v) > d.MaxValue()) {
		return fmt.Errorf("%w: value %d is outside segment %q range [%d, %d]",
			errs.ErrValueOutOfRange, v, d.Name(), d.MinValue(), d.MaxValue())
	}

	put(buf, d, uint64(v)&d.RawMax())

	return nil
}

// SetRaw writes the bit pattern v regardless of signedness.
//
// This is how bit strings reach the buffer: "111" stored in a signed 3-bit
// segment reads back as -1 through GetInt.
//
// Returns:
//   - error: ErrValueOutOfRange if v needs more than d.BitLength() bits
func SetRaw(buf []byte, d segment.Descriptor, v uint64) error {
	if err := checkBounds(buf, d); err != nil {
		return err
	}

	if v > d.RawMax() {
		return fmt.Errorf("%w: pattern %#b is wider than segment %q (max value %d)",
			errs.ErrValueOutOfRange, v, d.Name(), d.RawMax())
	}

	put(buf, d, v)

	return nil
}

// SetBytes interprets b as a big-endian unsigned integer and writes it through Set.
// Leading zero bytes are ignored, so a value may be given wider than the segment
// as long as it fits.
func SetBytes(buf []byte, d segment.Descriptor, b []byte) error {
	i := 0
	for i < len(b) && b[i] == 0 {
		i++
	}
	b = b[i:]

	if len(b) > 8 {
		if err := checkBounds(buf, d); err != nil {
			return err
		}

		return fmt.Errorf("%w: value 0x%x is larger than segment %q can hold (max value %d)",
			errs.ErrValueOutOfRange, b, d.Name(), d.MaxValue())
	}

	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}

	return Set(buf, d, v)
}

// SignExtend interprets the low n bits of raw as a two's complement integer.
func SignExtend(raw uint64, n int) int64 {
	if n <= 0 {
		return 0
	}
	if n >= 64 {
		return int64(raw)
	}

	shift := uint(64 - n)

	return int64(raw<<shift) >> shift
}

func checkBounds(buf []byte, d segment.Descriptor) error {
	if err := d.Validate(); err != nil {
		return err
	}

	if !d.Fits(len(buf)) {
		return fmt.Errorf("%w: segment %s does not fit a %d-byte buffer",
			errs.ErrInvalidSegment, d, len(buf))
	}

	return nil
}

// get reads a segment whose bounds the caller has checked.
func get(buf []byte, d segment.Descriptor) uint64 {
	if w := alignedWidth(d); w > 0 {
		return getAligned(buf[d.StartByte():], w)
	}

	return getBits(buf, d)
}

// put writes a segment whose bounds the caller has checked.
func put(buf []byte, d segment.Descriptor, v uint64) {
	if w := alignedWidth(d); w > 0 {
		putAligned(buf[d.StartByte():], w, v)
		return
	}

	putBits(buf, d, v)
}

// getBits accumulates bits MSB-first.
func getBits(buf []byte, d segment.Descriptor) uint64 {
	var v uint64
	for bit := d.StartBit(); bit < d.EndBit(); bit++ {
		v = v<<1 | uint64(buf[bit/8]>>(7-uint(bit%8))&1)
	}

	return v
}

// putBits writes the low d.BitLength() bits of v MSB-first, staging one byte
// at a time so that bits outside the segment keep their values.
func putBits(buf []byte, d segment.Descriptor, v uint64) {
	n := d.BitLength()
	cur := d.StartByte()
	staging := buf[cur]

	for i := range n {
		bit := d.StartBit() + i
		if bit/8 != cur {
			buf[cur] = staging
			cur = bit / 8
			staging = buf[cur]
		}

		mask := byte(1) << (7 - uint(bit%8))
		if (v>>uint(n-1-i))&1 == 1 {
			staging |= mask
		} else {
			staging &^= mask
		}
	}

	buf[cur] = staging
}
