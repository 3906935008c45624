package encoding

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/bitfield/errs"
)

// DefaultGroupSize is the group width used when no grouping is configured.
const DefaultGroupSize = 8

// DefaultBitString groups by 8 with an empty separator, which renders as one
// unbroken run of digits.
var DefaultBitString = BitString{GroupSize: DefaultGroupSize}

// BitString renders and parses fixed-width binary text.
//
// GroupSize <= 0 or an empty Separator disables grouping. Groups are counted
// from the left, so a 6-bit value with GroupSize 4 renders as "1101_11".
type BitString struct {
	GroupSize int
	Separator string
}

// Encode renders the low bitLength bits of v as binary digits, most significant
// first, zero-padded to exactly bitLength digits before grouping.
func (c BitString) Encode(v uint64, bitLength int) string {
	if bitLength <= 0 {
		return ""
	}
	if bitLength < 64 {
		v &= 1<<uint(bitLength) - 1
	}

	digits := strconv.FormatUint(v, 2)
	if pad := bitLength - len(digits); pad > 0 {
		digits = strings.Repeat("0", pad) + digits
	}

	if !c.grouped() || c.GroupSize >= len(digits) {
		return digits
	}

	var sb strings.Builder
	sb.Grow(len(digits) + (len(digits)/c.GroupSize)*len(c.Separator))
	for i := 0; i < len(digits); i += c.GroupSize {
		if i > 0 {
			sb.WriteString(c.Separator)
		}
		end := min(i+c.GroupSize, len(digits))
		sb.WriteString(digits[i:end])
	}

	return sb.String()
}

// Decode parses binary text produced by Encode, or typed by hand.
//
// The configured separator and '_' are ignored wherever they appear.
//
// Returns:
//   - uint64: Parsed value
//   - error: ErrMalformedBitString for empty input or characters other than
//     '0' and '1'; ErrValueOutOfRange for more than 64 significant bits
func (c BitString) Decode(s string) (uint64, error) {
	digits := s
	if c.Separator != "" {
		digits = strings.ReplaceAll(digits, c.Separator, "")
	}
	digits = strings.ReplaceAll(digits, "_", "")

	if digits == "" {
		return 0, fmt.Errorf("%w: %q has no binary digits; use a literal bit string like \"110010\" or \"1111_0000\"",
			errs.ErrMalformedBitString, s)
	}

	for i := 0; i < len(digits); i++ {
		if digits[i] != '0' && digits[i] != '1' {
			return 0, fmt.Errorf("%w: %q contains %q; use a literal bit string like \"110010\" or \"1111_0000\"",
				errs.ErrMalformedBitString, s, digits[i])
		}
	}

	significant := strings.TrimLeft(digits, "0")
	if len(significant) > 64 {
		return 0, fmt.Errorf("%w: %q has %d significant bits, max 64",
			errs.ErrValueOutOfRange, s, len(significant))
	}

	var v uint64
	for i := 0; i < len(significant); i++ {
		v = v<<1 | uint64(significant[i]-'0')
	}

	return v, nil
}

func (c BitString) grouped() bool {
	return c.GroupSize > 0 && c.Separator != ""
}
