// Package layout builds named bit-field types over fixed-size byte buffers.
//
// A Type is built once from an ordered list of segment descriptors and then
// used to create any number of Instances, each owning (or wrapping) a buffer of
// exactly Type.Size() bytes.
//
// # Defining a Type
//
//	typ, err := layout.NewType("mini_header", []segment.Descriptor{
//	    segment.Must("first_6", 0, 6, segment.WithHelp("first_6 help string")),
//	    segment.Must("cross", 6, 6),
//	    segment.Must("long", 16, 32),
//	}, layout.WithGroupSize(4), layout.WithGroupSeparator("_"))
//
// The buffer size defaults to the smallest number of bytes covering every
// segment. Segments may overlap to alias sub-ranges of each other; names must
// be unique.
//
// # Accessing Fields
//
// Every segment "x" has two accessors: the integer accessor "x" and the
// bit-string accessor "x_as_bits".
//
//	rec, err := typ.Parse([]byte{0xde, 0x7e, 0x57, 0xab, 0x1e, 0x01})
//	v, err := rec.Get("cross")              // 39
//	err = rec.Set("first_6", 1)
//	s, err := rec.Bits("long")              // "0101_0111_1010_1011_0001_1110_0000_0001"
//	err = rec.SetBits("first_6", "111111")
//
//	// Dictionary-style access by accessor name
//	val, err := rec.Value("cross_as_bits")
//	err = rec.SetValue("cross", 12)
//
// For hot paths, resolve an Accessor or BitsAccessor once from the Type and
// reuse it across instances.
//
// # Inspecting
//
// Help returns the help text of a segment by either accessor name.
// FormatDetails lists all accessors with their current values and DumpBytes
// renders the raw buffer as a grid of binary bytes.
//
// # Errors
//
// All failures wrap a sentinel from package errs: ErrSizeMismatch,
// ErrInvalidSegment, ErrValueOutOfRange, ErrMalformedBitString,
// ErrUnknownField, ErrDuplicateField, ErrUnsupportedType, ErrInvalidOption.
// A setter that fails leaves the buffer unchanged.
//
// # Thread Safety
//
// Type is immutable and safe for concurrent use. Instance has no internal
// locking; guard an instance externally if it is shared between goroutines.
package layout
