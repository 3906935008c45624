// Package segment describes named bit ranges inside a fixed-size byte buffer.
//
// A Descriptor is an immutable value: a name, a buffer-wide start bit, a bit
// length, a signedness flag and free-form help text. Bits are numbered
// MSB-first: bit 0 is the most significant bit of byte 0, bit 8 the most
// significant bit of byte 1, and so on.
//
//	first6, err := segment.New("first_6", 0, 6, segment.WithHelp("leading flags"))
//	delta, err := segment.New("delta", 16, 12, segment.Signed())
//
// Descriptors may overlap freely; only their names must be unique within a
// layout. From the start bit and length a descriptor derives its byte span
// (StartByte, EndByte, NumBytes) and its value bounds (MinValue, MaxValue).
// Signed descriptors use standard two's complement over BitLength bits.
package segment
