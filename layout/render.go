package layout

import (
	"fmt"
	"strconv"

	"github.com/arloliu/bitfield/encoding"
	"github.com/arloliu/bitfield/format"
	"github.com/arloliu/bitfield/internal/pool"
	"github.com/arloliu/bitfield/segment"
)

// DefaultBytesPerLine is the row width DumpBytes uses for non-positive arguments.
const DefaultBytesPerLine = 10

// FormatDetails renders every accessor and its current value, one per line.
//
// The output starts with a "== <type> Details ==" header. Each following line
// is tab-indented and holds the accessor name padded to the longest accessor
// name, a colon and the value. Integer accessors are rendered in the given radix
// (hex values carry a 0x prefix, negative ones -0x); bit-string accessors are
// rendered with the instance's grouping.
//
// Parameters:
//   - order: DeclarationOrder lists each segment's integer accessor followed by
//     its bit-string accessor, segment by segment; AlphabeticOrder sorts all names.
//     Unknown values fall back to DeclarationOrder.
//   - radix: Decimal or Hex; unknown values fall back to Decimal.
func (in *Instance) FormatDetails(order format.Order, radix format.Radix) string {
	bb := pool.GetTextBuffer()
	defer pool.PutTextBuffer(bb)

	fmt.Fprintf(bb, "== %s Details ==\n", in.typ.name)

	names := in.typ.accessors
	if order == format.AlphabeticOrder {
		names = in.typ.sorted
	}

	for _, name := range names {
		seg, isBits, _ := in.typ.resolve(name)

		var value string
		if isBits {
			value = in.bits(seg)
		} else {
			value = in.formatInt(seg, radix)
		}

		fmt.Fprintf(bb, "\t%-*s: %s\n", in.typ.nameWidth, name, value)
	}

	return bb.String()
}

// DumpBytes renders the buffer as rows of binary bytes for visual inspection.
//
// Each byte is written as 8 binary digits, bytes in a row are separated by a
// space and every row ends with a newline.
//
// Parameters:
//   - bytesPerLine: Bytes per row; values <= 0 use DefaultBytesPerLine
func (in *Instance) DumpBytes(bytesPerLine int) string {
	if bytesPerLine <= 0 {
		bytesPerLine = DefaultBytesPerLine
	}

	bb := pool.GetTextBuffer()
	defer pool.PutTextBuffer(bb)

	for i, b := range in.buf {
		fmt.Fprintf(bb, "%08b", b)
		if (i+1)%bytesPerLine == 0 || i == len(in.buf)-1 {
			_ = bb.WriteByte('\n')
		} else {
			_ = bb.WriteByte(' ')
		}
	}

	return bb.String()
}

// formatInt renders a segment's integer value; bounds were checked when the
// type was built.
func (in *Instance) formatInt(seg segment.Descriptor, radix format.Radix) string {
	if !seg.IsSigned() {
		v, _ := encoding.Get(in.buf, seg)
		if radix == format.Hex {
			return "0x" + strconv.FormatUint(v, 16)
		}

		return strconv.FormatUint(v, 10)
	}

	v, _ := encoding.GetInt(in.buf, seg)
	if radix != format.Hex {
		return strconv.FormatInt(v, 10)
	}
	if v < 0 {
		// -(v+1)+1 avoids overflowing on math.MinInt64.
		return "-0x" + strconv.FormatUint(uint64(-(v+1))+1, 16)
	}

	return "0x" + strconv.FormatUint(uint64(v), 16)
}
