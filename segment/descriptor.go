package segment

import (
	"fmt"
	"math"

	"github.com/arloliu/bitfield/errs"
	"github.com/arloliu/bitfield/internal/options"
)

// MaxBitLength is the widest segment supported; every value fits a 64-bit word.
const MaxBitLength = 64

// Descriptor describes one named bit range.
type Descriptor struct {
	name      string
	help      string
	startBit  int
	bitLength int
	signed    bool
}

// Option configures optional descriptor attributes.
type Option = options.Option[*Descriptor]

// Signed marks the segment as a two's complement signed integer.
func Signed() Option {
	return options.NoError(func(d *Descriptor) {
		d.signed = true
	})
}

// WithSigned sets signedness explicitly, convenient when it comes from data.
func WithSigned(signed bool) Option {
	return options.NoError(func(d *Descriptor) {
		d.signed = signed
	})
}

// WithHelp attaches help text returned by layout help lookups.
func WithHelp(text string) Option {
	return options.NoError(func(d *Descriptor) {
		d.help = text
	})
}

// New creates a validated descriptor.
//
// Parameters:
//   - name: Segment name, unique within a layout
//   - startBit: 0-based buffer-wide position of the segment's most significant bit
//   - bitLength: Number of bits, between 1 and MaxBitLength
//   - opts: Optional attributes (Signed, WithHelp)
//
// Returns:
//   - Descriptor: The new descriptor
//   - error: ErrInvalidSegment if any attribute is out of bounds
func New(name string, startBit, bitLength int, opts ...Option) (Descriptor, error) {
	d := Descriptor{
		name:      name,
		startBit:  startBit,
		bitLength: bitLength,
	}

	if err := options.Apply(&d, opts...); err != nil {
		return Descriptor{}, err
	}

	if err := d.Validate(); err != nil {
		return Descriptor{}, err
	}

	return d, nil
}

// Must is like New but panics on error. Intended for package-level schema tables.
func Must(name string, startBit, bitLength int, opts ...Option) Descriptor {
	d, err := New(name, startBit, bitLength, opts...)
	if err != nil {
		panic(err)
	}

	return d
}

// Validate checks the descriptor's own bounds. It does not know the buffer size;
// see Fits for that.
func (d Descriptor) Validate() error {
	if d.name == "" {
		return fmt.Errorf("%w: empty segment name", errs.ErrInvalidSegment)
	}
	if d.startBit < 0 {
		return fmt.Errorf("%w: segment %q has negative start bit %d", errs.ErrInvalidSegment, d.name, d.startBit)
	}
	if d.bitLength <= 0 {
		return fmt.Errorf("%w: segment %q has non-positive bit length %d", errs.ErrInvalidSegment, d.name, d.bitLength)
	}
	if d.bitLength > MaxBitLength {
		return fmt.Errorf("%w: segment %q is %d bits wide, max %d",
			errs.ErrInvalidSegment, d.name, d.bitLength, MaxBitLength)
	}
	if d.startBit > math.MaxInt-d.bitLength {
		return fmt.Errorf("%w: segment %q end bit overflows", errs.ErrInvalidSegment, d.name)
	}

	return nil
}

// Name returns the segment name.
func (d Descriptor) Name() string { return d.name }

// Help returns the segment help text.
func (d Descriptor) Help() string { return d.help }

// StartBit returns the buffer-wide index of the segment's first (most significant) bit.
func (d Descriptor) StartBit() int { return d.startBit }

// BitLength returns the number of bits in the segment.
func (d Descriptor) BitLength() int { return d.bitLength }

// IsSigned reports whether values are two's complement signed.
func (d Descriptor) IsSigned() bool { return d.signed }

// EndBit returns the exclusive end of the bit range.
func (d Descriptor) EndBit() int { return d.startBit + d.bitLength }

// StartByte returns the index of the byte holding the first bit.
func (d Descriptor) StartByte() int { return d.startBit / 8 }

// EndByte returns (StartBit+BitLength)/8.
//
// When the segment ends on a byte boundary this is one past the last byte the
// segment touches; LastByte gives the inclusive index.
func (d Descriptor) EndByte() int { return d.EndBit() / 8 }

// NumBytes returns EndByte-StartByte+1.
func (d Descriptor) NumBytes() int { return d.EndByte() - d.StartByte() + 1 }

// LastByte returns the index of the byte holding the last bit.
func (d Descriptor) LastByte() int { return (d.EndBit() - 1) / 8 }

// RawMax returns the largest bit pattern the segment can hold, 2^BitLength-1.
func (d Descriptor) RawMax() uint64 {
	if d.bitLength >= 64 {
		return math.MaxUint64
	}

	return 1<<uint(d.bitLength) - 1
}

// MaxValue returns the largest representable value.
// Unsigned: 2^BitLength-1. Signed: 2^(BitLength-1)-1.
func (d Descriptor) MaxValue() uint64 {
	if d.signed {
		return d.RawMax() >> 1
	}

	return d.RawMax()
}

// MinValue returns the smallest representable value.
// Unsigned: 0. Signed: -2^(BitLength-1).
func (d Descriptor) MinValue() int64 {
	if !d.signed || d.bitLength <= 0 {
		return 0
	}

	return int64(math.MinInt64) >> uint(64-d.bitLength)
}

// Contains reports whether the buffer-wide bit index lies inside the segment.
func (d Descriptor) Contains(bit int) bool {
	return bit >= d.startBit && bit < d.EndBit()
}

// Overlaps reports whether two segments share at least one bit.
func (d Descriptor) Overlaps(other Descriptor) bool {
	return d.startBit < other.EndBit() && other.startBit < d.EndBit()
}

// Fits reports whether the segment lies entirely within a buffer of size bytes.
func (d Descriptor) Fits(size int) bool {
	return d.startBit >= 0 && d.bitLength > 0 && d.EndBit() <= size*8
}

// String renders the descriptor as name[start:end), with an "s" suffix for signed segments.
func (d Descriptor) String() string {
	if d.signed {
		return fmt.Sprintf("%s[%d:%d)s", d.name, d.startBit, d.EndBit())
	}

	return fmt.Sprintf("%s[%d:%d)", d.name, d.startBit, d.EndBit())
}
