// Package format holds the display enums shared by the layout renderers.
package format

type (
	Order uint8
	Radix uint8
)

const (
	DeclarationOrder Order = 0x1 // DeclarationOrder lists fields in the order their segments were declared.
	AlphabeticOrder  Order = 0x2 // AlphabeticOrder lists every accessor name sorted lexically.

	Decimal Radix = 0x1 // Decimal renders integer fields in base 10.
	Hex     Radix = 0x2 // Hex renders integer fields in base 16 with a 0x prefix.
)

func (o Order) String() string {
	switch o {
	case DeclarationOrder:
		return "Declaration"
	case AlphabeticOrder:
		return "Alphabetic"
	default:
		return "Unknown"
	}
}

// IsValid reports whether o is a known order.
func (o Order) IsValid() bool {
	return o == DeclarationOrder || o == AlphabeticOrder
}

func (r Radix) String() string {
	switch r {
	case Decimal:
		return "Decimal"
	case Hex:
		return "Hex"
	default:
		return "Unknown"
	}
}

// IsValid reports whether r is a known radix.
func (r Radix) IsValid() bool {
	return r == Decimal || r == Hex
}
