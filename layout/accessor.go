package layout

import (
	"fmt"

	"github.com/arloliu/bitfield/encoding"
	"github.com/arloliu/bitfield/errs"
	"github.com/arloliu/bitfield/segment"
)

// Accessor is an integer accessor bound to one segment of one Type.
//
// Resolve accessors once and reuse them to skip the name lookup of the
// Instance methods:
//
//	long, _ := typ.Accessor("long")
//	for _, rec := range records {
//	    v, _ := long.Get(rec)
//	}
//
// The zero Accessor is not usable.
type Accessor struct {
	typ *Type
	seg segment.Descriptor
}

// Name returns the accessor name, which is the segment name.
func (a Accessor) Name() string { return a.seg.Name() }

// Segment returns the bound descriptor.
func (a Accessor) Segment() segment.Descriptor { return a.seg }

// Get returns the raw unsigned value.
func (a Accessor) Get(in *Instance) (uint64, error) {
	if err := a.check(in); err != nil {
		return 0, err
	}

	return encoding.Get(in.buf, a.seg)
}

// GetInt returns the value, decoding signed segments as two's complement.
func (a Accessor) GetInt(in *Instance) (int64, error) {
	if err := a.check(in); err != nil {
		return 0, err
	}

	return encoding.GetInt(in.buf, a.seg)
}

// Set stores v.
func (a Accessor) Set(in *Instance, v uint64) error {
	if err := a.check(in); err != nil {
		return err
	}

	return encoding.Set(in.buf, a.seg, v)
}

// SetInt stores a possibly negative value.
func (a Accessor) SetInt(in *Instance, v int64) error {
	if err := a.check(in); err != nil {
		return err
	}

	return encoding.SetInt(in.buf, a.seg, v)
}

// SetBytes stores a big-endian unsigned integer given as raw bytes.
func (a Accessor) SetBytes(in *Instance, b []byte) error {
	if err := a.check(in); err != nil {
		return err
	}

	return encoding.SetBytes(in.buf, a.seg, b)
}

func (a Accessor) check(in *Instance) error {
	return checkOwner(a.typ, a.seg, in)
}

// BitsAccessor is a bit-string accessor bound to one segment of one Type.
type BitsAccessor struct {
	typ *Type
	seg segment.Descriptor
}

// Name returns the accessor name, "<segment>_as_bits".
func (a BitsAccessor) Name() string { return a.seg.Name() + BitsSuffix }

// Segment returns the bound descriptor.
func (a BitsAccessor) Segment() segment.Descriptor { return a.seg }

// Get renders the segment with the instance's grouping.
func (a BitsAccessor) Get(in *Instance) (string, error) {
	if err := checkOwner(a.typ, a.seg, in); err != nil {
		return "", err
	}

	return in.bits(a.seg), nil
}

// Set parses s and stores its bit pattern.
func (a BitsAccessor) Set(in *Instance, s string) error {
	if err := checkOwner(a.typ, a.seg, in); err != nil {
		return err
	}

	return in.setBits(a.seg, s)
}

func checkOwner(typ *Type, seg segment.Descriptor, in *Instance) error {
	if typ == nil {
		return fmt.Errorf("%w: unbound accessor", errs.ErrUnknownField)
	}
	if in == nil || in.typ != typ {
		return fmt.Errorf("%w: accessor %q belongs to type %q", errs.ErrUnknownField, seg.Name(), typ.name)
	}

	return nil
}
