// Package bitfield provides named, typed views over fixed-size byte buffers.
//
// A bit-field type is declared once as an ordered list of segments, each a
// contiguous run of bits identified by a start bit and a length. Instances of
// the type wrap a buffer of exactly the type's size and read or write each
// segment by name, either as an integer or as a bit string such as "1011_0010".
// Bits are numbered MSB-first: bit 0 is the most significant bit of byte 0.
//
// # Core Features
//
//   - Segments may cross byte boundaries and may overlap
//   - Unsigned and two's complement signed segments up to 64 bits wide
//   - "<name>_as_bits" accessors with configurable digit grouping
//   - Range checks that leave the buffer untouched on failure
//   - Human-readable dumps of field values and raw bytes
//   - Layout definitions in HCL schema files
//   - Stable 64-bit layout fingerprints (xxHash64)
//
// # Basic Usage
//
// Declaring a type and reading a buffer:
//
//	import "github.com/arloliu/bitfield"
//
//	header, _ := bitfield.NewType("header", []segment.Descriptor{
//	    segment.Must("version", 0, 4),
//	    segment.Must("flags", 4, 4),
//	    segment.Must("offset", 8, 8, segment.Signed()),
//	})
//
//	rec, _ := header.Parse([]byte{0x2a, 0xfd})
//	version, _ := rec.Get("version")    // 2
//	offset, _ := rec.GetInt("offset")   // -3
//	flags, _ := rec.Bits("flags_as_bits") // "1010"
//
// Loading types from schema files:
//
//	set, _ := bitfield.LoadSchema("schemas/")
//	header, _ := set.Type("header")
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the segment,
// layout and schema packages. Use those packages directly for fine-grained
// control.
package bitfield

import (
	"github.com/arloliu/bitfield/errs"
	"github.com/arloliu/bitfield/internal/hash"
	"github.com/arloliu/bitfield/layout"
	"github.com/arloliu/bitfield/schema"
	"github.com/arloliu/bitfield/segment"
)

// Default grouping applied by NewGroupedType.
const (
	DefaultGroupSize      = 4
	DefaultGroupSeparator = "_"
)

// Errors returned by the bitfield packages. Match them with errors.Is.
var (
	ErrSizeMismatch       = errs.ErrSizeMismatch
	ErrInvalidSegment     = errs.ErrInvalidSegment
	ErrValueOutOfRange    = errs.ErrValueOutOfRange
	ErrMalformedBitString = errs.ErrMalformedBitString
	ErrUnknownField       = errs.ErrUnknownField
	ErrDuplicateField     = errs.ErrDuplicateField
	ErrUnsupportedType    = errs.ErrUnsupportedType
	ErrInvalidOption      = errs.ErrInvalidOption
	ErrInvalidSchema      = errs.ErrInvalidSchema
)

var defaultGroupedOptions = []layout.TypeOption{
	layout.WithGroupSize(DefaultGroupSize),
	layout.WithGroupSeparator(DefaultGroupSeparator),
}

// Segment creates an unsigned segment descriptor.
//
// Parameters:
//   - name: Segment name, unique within a type
//   - startBit: Offset of the first bit, counted MSB-first from byte 0
//   - bitLength: Number of bits, 1 to 64
//   - opts: Optional configuration (see segment.Option)
//
// Returns:
//   - segment.Descriptor: The descriptor
//   - error: ErrInvalidSegment if the descriptor is malformed
func Segment(name string, startBit, bitLength int, opts ...segment.Option) (segment.Descriptor, error) {
	return segment.New(name, startBit, bitLength, opts...)
}

// SignedSegment creates a segment read and written as a two's complement integer.
func SignedSegment(name string, startBit, bitLength int, opts ...segment.Option) (segment.Descriptor, error) {
	return segment.New(name, startBit, bitLength, append(opts[:len(opts):len(opts)], segment.Signed())...)
}

// NewType builds a bit-field type.
//
// Available options:
//   - layout.WithGroupSize(n) / layout.WithGroupSeparator(sep)
//   - layout.WithSize(n) / layout.WithLastSegmentSizing()
//   - layout.WithLogger(logger)
//
// Example:
//
//	typ, err := bitfield.NewType("status", segments,
//	    layout.WithGroupSize(4),
//	    layout.WithGroupSeparator("_"),
//	)
func NewType(name string, segments []segment.Descriptor, opts ...layout.TypeOption) (*layout.Type, error) {
	return layout.NewType(name, segments, opts...)
}

// NewGroupedType builds a bit-field type whose bit strings are grouped in
// nibbles separated by underscores, e.g. "1010_0001". Options given by the
// caller take precedence.
func NewGroupedType(name string, segments []segment.Descriptor, opts ...layout.TypeOption) (*layout.Type, error) {
	allOpts := append(append([]layout.TypeOption{}, defaultGroupedOptions...), opts...)
	return layout.NewType(name, segments, allOpts...)
}

// LoadSchema reads HCL schema files, and every .hcl file below the given
// directories, into one set of types.
func LoadSchema(paths ...string) (*schema.Set, error) {
	return schema.Load(paths...)
}

// ParseSchema decodes HCL schema source held in memory.
//
// Example:
//
//	set, err := bitfield.ParseSchema(src, "header.hcl",
//	    schema.WithVariable("base", 16),
//	)
func ParseSchema(src []byte, filename string, opts ...schema.Option) (*schema.Set, error) {
	return schema.Parse(src, filename, opts...)
}

// FieldID returns the xxHash64 of a field or type name, suitable as a compact
// map key.
func FieldID(name string) uint64 {
	return hash.ID(name)
}
