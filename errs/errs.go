// Package errs defines the sentinel errors returned by the bitfield packages.
//
// Call sites wrap these values with context using fmt.Errorf and the %w verb,
// so callers should match them with errors.Is rather than comparing directly:
//
//	if errors.Is(err, errs.ErrValueOutOfRange) {
//	    // handle
//	}
package errs

import "errors"

var (
	// ErrSizeMismatch is returned when a buffer handed to a layout does not have
	// exactly the layout's byte size.
	ErrSizeMismatch = errors.New("buffer size mismatch")

	// ErrInvalidSegment is returned for a malformed segment descriptor: empty name,
	// negative start bit, non-positive or oversized bit length, or a bit range that
	// does not fit the layout's buffer.
	ErrInvalidSegment = errors.New("invalid segment")

	// ErrValueOutOfRange is returned when a value cannot be represented by a segment.
	ErrValueOutOfRange = errors.New("value out of range")

	// ErrMalformedBitString is returned when a bit string contains characters other
	// than '0', '1' and the recognized group separators.
	ErrMalformedBitString = errors.New("malformed bit string")

	// ErrUnknownField is returned when a field or accessor name is not part of a layout.
	ErrUnknownField = errors.New("unknown field")

	// ErrDuplicateField is returned when two segments, or a segment and another
	// segment's bit-string accessor, share a name.
	ErrDuplicateField = errors.New("duplicate field")

	// ErrUnsupportedType is returned when a dynamically typed value cannot be stored
	// through the requested accessor.
	ErrUnsupportedType = errors.New("unsupported value type")

	// ErrInvalidOption is returned when an option carries an unusable value.
	ErrInvalidOption = errors.New("invalid option")

	// ErrInvalidSchema is returned when a schema file cannot be parsed or decoded.
	ErrInvalidSchema = errors.New("invalid schema")
)
