// Package encoding translates between integer values and bit ranges of a byte buffer.
//
// It is the stateless core under the layout package: every function takes the
// buffer and a segment.Descriptor and touches only the bits that descriptor covers.
//
// # Bit Order
//
// Bits are numbered MSB-first across the whole buffer. For the two bytes
// 0xDE 0x7E the bit positions are:
//
//	| 0 | 1 | 2 | 3 | 4 | 5 | 6 | 7 || 8 | 9 | A | B | C | D | E | F |
//	+===+===+===+===+===+===+===+===++===+===+===+===+===+===+===+===+
//	| 1 | 1 | 0 | 1 | 1 | 1 | 1 | 0 || 0 | 1 | 1 | 1 | 1 | 1 | 1 | 0 |
//
// A segment starting at bit 6 with length 6 reads bits 6..11, giving 0b100111.
// The first bit of a segment becomes the most significant bit of its value.
//
// # Reading and Writing
//
//	v, err := encoding.Get(buf, seg)       // raw unsigned pattern
//	i, err := encoding.GetInt(buf, seg)    // two's complement when seg is signed
//	err = encoding.Set(buf, seg, 39)       // checked against seg.MaxValue()
//	err = encoding.SetInt(buf, seg, -1)    // checked against [MinValue, MaxValue]
//
// Writes are read-modify-write per byte, so bits of other segments sharing a
// byte are preserved. Every setter validates before touching the buffer: a
// setter that returns an error leaves the buffer unchanged.
//
// Segments that start on a byte boundary and span exactly 1, 2, 4 or 8 bytes
// are plain big-endian integers and are copied with encoding/binary instead of
// bit by bit.
//
// # Bit Strings
//
// BitString renders values as zero-padded binary text with optional grouping,
// and parses such text back:
//
//	codec := encoding.BitString{GroupSize: 4, Separator: "_"}
//	codec.Encode(1, 12)            // "0000_0000_0001"
//	v, err := codec.Decode("1111_0000")
//
// # Thread Safety
//
// Functions in this package hold no state. Concurrent reads of one buffer are
// safe; a write must not run concurrently with any other access to the same
// buffer.
package encoding
