package layout

import (
	"fmt"
	"slices"

	"github.com/arloliu/bitfield/encoding"
	"github.com/arloliu/bitfield/errs"
	"github.com/arloliu/bitfield/internal/options"
	"github.com/arloliu/bitfield/segment"
)

// Instance is a fixed-size byte buffer viewed through a Type.
//
// Instances are not safe for concurrent use: setters perform unguarded
// read-modify-write cycles on the buffer.
type Instance struct {
	typ   *Type
	buf   []byte
	codec encoding.BitString
}

func (t *Type) newInstance(buf []byte) *Instance {
	return &Instance{
		typ:   t,
		buf:   buf,
		codec: encoding.BitString{GroupSize: t.groupSize, Separator: t.separator},
	}
}

// Type returns the type the instance was created from.
func (in *Instance) Type() *Type { return in.typ }

// Bytes returns the underlying buffer. It is the wire format: exactly
// Type().Size() bytes with no framing. Modifying it modifies the instance.
func (in *Instance) Bytes() []byte { return in.buf }

// Clone returns an instance with its own copy of the buffer and the same grouping.
func (in *Instance) Clone() *Instance {
	return &Instance{
		typ:   in.typ,
		buf:   slices.Clone(in.buf),
		codec: in.codec,
	}
}

// Reset zeroes the buffer.
func (in *Instance) Reset() {
	clear(in.buf)
}

// Grouping returns the bit-string codec used by this instance.
func (in *Instance) Grouping() encoding.BitString { return in.codec }

// SetGrouping overrides the bit-string grouping of this instance only.
func (in *Instance) SetGrouping(groupSize int, separator string) error {
	cfg := newTypeConfig()
	if err := options.Apply(cfg, WithGroupSize(groupSize), WithGroupSeparator(separator)); err != nil {
		return err
	}
	in.codec = encoding.BitString{GroupSize: cfg.groupSize, Separator: cfg.separator}

	return nil
}

// Get returns the raw unsigned value of a segment.
func (in *Instance) Get(name string) (uint64, error) {
	seg, err := in.typ.Segment(name)
	if err != nil {
		return 0, err
	}

	return encoding.Get(in.buf, seg)
}

// GetInt returns the value of a segment, decoding signed segments as two's complement.
func (in *Instance) GetInt(name string) (int64, error) {
	seg, err := in.typ.Segment(name)
	if err != nil {
		return 0, err
	}

	return encoding.GetInt(in.buf, seg)
}

// Set stores v in a segment.
//
// Returns:
//   - error: ErrUnknownField, or ErrValueOutOfRange if v exceeds the segment's max value
func (in *Instance) Set(name string, v uint64) error {
	seg, err := in.typ.Segment(name)
	if err != nil {
		return err
	}

	return encoding.Set(in.buf, seg, v)
}

// SetInt stores a possibly negative value in a segment.
func (in *Instance) SetInt(name string, v int64) error {
	seg, err := in.typ.Segment(name)
	if err != nil {
		return err
	}

	return encoding.SetInt(in.buf, seg, v)
}

// SetBytes stores a big-endian unsigned integer given as raw bytes.
func (in *Instance) SetBytes(name string, b []byte) error {
	seg, err := in.typ.Segment(name)
	if err != nil {
		return err
	}

	return encoding.SetBytes(in.buf, seg, b)
}

// Bits returns a segment rendered as a bit string. The segment name and its
// bit-string alias are both accepted.
func (in *Instance) Bits(name string) (string, error) {
	seg, _, ok := in.typ.resolve(name)
	if !ok {
		return "", in.typ.unknown(name)
	}

	return in.bits(seg), nil
}

// SetBits parses a bit string such as "110010" or "1111_0000" and stores its
// bit pattern in a segment.
//
// Returns:
//   - error: ErrMalformedBitString for non-binary text, ErrValueOutOfRange if
//     the pattern is wider than the segment
func (in *Instance) SetBits(name string, s string) error {
	seg, _, ok := in.typ.resolve(name)
	if !ok {
		return in.typ.unknown(name)
	}

	return in.setBits(seg, s)
}

// Help returns the help text of a segment by segment or alias name.
func (in *Instance) Help(name string) (string, error) {
	return in.typ.Help(name)
}

// Value reads a field by accessor name. "<name>" yields int64 for signed
// segments and uint64 otherwise; "<name>_as_bits" yields the bit string.
func (in *Instance) Value(accessor string) (any, error) {
	seg, isBits, ok := in.typ.resolve(accessor)
	if !ok {
		return nil, in.typ.unknown(accessor)
	}

	if isBits {
		return in.bits(seg), nil
	}

	if seg.IsSigned() {
		return encoding.GetInt(in.buf, seg)
	}

	return encoding.Get(in.buf, seg)
}

// SetValue writes a field by accessor name.
//
// The integer accessor accepts any Go integer type or a []byte holding a
// big-endian value. The bit-string accessor accepts a string.
//
// Returns:
//   - error: ErrUnknownField, ErrUnsupportedType, ErrMalformedBitString or ErrValueOutOfRange
func (in *Instance) SetValue(accessor string, value any) error {
	seg, isBits, ok := in.typ.resolve(accessor)
	if !ok {
		return in.typ.unknown(accessor)
	}

	if isBits {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: accessor %q takes a bit string, got %T", errs.ErrUnsupportedType, accessor, value)
		}

		return in.setBits(seg, s)
	}

	switch v := value.(type) {
	case int:
		return encoding.SetInt(in.buf, seg, int64(v))
	case int8:
		return encoding.SetInt(in.buf, seg, int64(v))
	case int16:
		return encoding.SetInt(in.buf, seg, int64(v))
	case int32:
		return encoding.SetInt(in.buf, seg, int64(v))
	case int64:
		return encoding.SetInt(in.buf, seg, v)
	case uint:
		return encoding.Set(in.buf, seg, uint64(v))
	case uint8:
		return encoding.Set(in.buf, seg, uint64(v))
	case uint16:
		return encoding.Set(in.buf, seg, uint64(v))
	case uint32:
		return encoding.Set(in.buf, seg, uint64(v))
	case uint64:
		return encoding.Set(in.buf, seg, v)
	case []byte:
		return encoding.SetBytes(in.buf, seg, v)
	default:
		return fmt.Errorf("%w: accessor %q takes an integer or []byte, got %T", errs.ErrUnsupportedType, accessor, value)
	}
}

// bits renders a segment; segment bounds were checked when the type was built.
func (in *Instance) bits(seg segment.Descriptor) string {
	v, _ := encoding.Get(in.buf, seg)
	return in.codec.Encode(v, seg.BitLength())
}

func (in *Instance) setBits(seg segment.Descriptor, s string) error {
	v, err := in.codec.Decode(s)
	if err != nil {
		return fmt.Errorf("segment %q: %w", seg.Name(), err)
	}

	return encoding.SetRaw(in.buf, seg, v)
}
