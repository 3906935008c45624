package layout

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/bitfield/errs"
)

func TestInstance_GetterSetter(t *testing.T) {
	typ := MustNewType("test_name", crossByteSegments())

	// 1101_1110_0111_1110_0101_0111_1010_1011_0001_1110_0000_0001
	rec, err := typ.Parse([]byte{0xde, 0x7e, 0x57, 0xab, 0x1e, 0x01})
	require.NoError(t, err)

	requireUint := func(name string, want uint64) {
		t.Helper()
		got, err := rec.Get(name)
		require.NoError(t, err)
		require.Equal(t, want, got, name)
	}
	requireBits := func(name string, want string) {
		t.Helper()
		got, err := rec.Bits(name)
		require.NoError(t, err)
		require.Equal(t, want, got, name)
	}

	requireUint("first_6", 0b1101_11)
	requireBits("first_6", "110111")
	requireUint("cross", 0b10_0111)
	requireBits("cross", "100111")
	requireUint("long", 0b0101_0111_1010_1011_0001_1110_0000_0001)
	requireBits("long", "01010111101010110001111000000001")

	require.NoError(t, rec.Set("first_6", 1))
	requireUint("first_6", 1)
	requireBits("first_6", "000001")
	require.Equal(t, byte(0b000001_10), rec.Bytes()[0])

	require.NoError(t, rec.Set("first_6", 2))
	require.Equal(t, byte(0b000010_10), rec.Bytes()[0])

	require.NoError(t, rec.Set("long", 1))
	requireUint("long", 1)
	requireBits("long", "00000000000000000000000000000001")
	require.Equal(t, []byte{0x00, 0x00, 0x00, 0x01}, rec.Bytes()[2:6])

	require.NoError(t, rec.Set("long", 0xa))
	requireUint("long", 0xa)
	requireBits("long", "00000000000000000000000000001010")
	require.Equal(t, []byte{0x00, 0x00, 0x00, 0x0a}, rec.Bytes()[2:6])

	// Setting from bit strings
	require.NoError(t, rec.SetBits("first_6_as_bits", "111111"))
	requireUint("first_6", 0b1111_11)
	requireBits("first_6_as_bits", "111111")
	require.Equal(t, byte(0b111111_10), rec.Bytes()[0])

	require.NoError(t, rec.SetBits("long", "0000_0000_0000_0000_0000_0000_0000_0001"))
	requireUint("long", 1)
	requireBits("long", "00000000000000000000000000000001")
	require.Equal(t, []byte{0x00, 0x00, 0x00, 0x01}, rec.Bytes()[2:6])

	require.NoError(t, rec.SetBytes("long", []byte{0x57, 0xab, 0x1e, 0x01}))
	requireUint("long", 0x57ab1e01)
}

func TestInstance_Grouping(t *testing.T) {
	typ := MustNewType("test_name", crossByteSegments())
	rec := typ.New()
	require.NoError(t, rec.Set("long", 1))

	bits, err := rec.Bits("long")
	require.NoError(t, err)
	require.Equal(t, "00000000000000000000000000000001", bits)

	require.NoError(t, rec.SetGrouping(4, "_"))
	bits, err = rec.Bits("long_as_bits")
	require.NoError(t, err)
	require.Equal(t, "0000_0000_0000_0000_0000_0000_0000_0001", bits)

	other := typ.New()
	bits, err = other.Bits("long")
	require.NoError(t, err)
	require.Equal(t, "00000000000000000000000000000000", bits, "grouping is per instance")

	require.ErrorIs(t, rec.SetGrouping(-1, "_"), errs.ErrInvalidOption)
	require.ErrorIs(t, rec.SetGrouping(4, "1"), errs.ErrInvalidOption)
	require.Equal(t, 4, rec.Grouping().GroupSize, "failed SetGrouping keeps previous grouping")

	grouped := MustNewType("grouped", crossByteSegments(), WithGroupSize(4), WithGroupSeparator(" "))
	g := grouped.New()
	require.NoError(t, g.SetBits("cross", "1001 11"))
	bits, _ = g.Bits("cross")
	require.Equal(t, "1001 11", bits)
}

func TestInstance_BoundaryChecks(t *testing.T) {
	typ := MustNewType("test_name", crossByteSegments())

	t.Run("8-bit value into 6-bit field", func(t *testing.T) {
		rec := typ.New()
		err := rec.Set("first_6", 0b1111_1111)
		require.ErrorIs(t, err, errs.ErrValueOutOfRange)
		require.Equal(t, make([]byte, 6), rec.Bytes())
	})

	t.Run("8-bit string into 6-bit field", func(t *testing.T) {
		rec := typ.New()
		err := rec.SetBits("first_6_as_bits", "11111111")
		require.ErrorIs(t, err, errs.ErrValueOutOfRange)
		require.Equal(t, make([]byte, 6), rec.Bytes())
	})

	t.Run("malformed bit string", func(t *testing.T) {
		rec := typ.New()
		err := rec.SetBits("first_6", "blah blah blah")
		require.ErrorIs(t, err, errs.ErrMalformedBitString)
		require.Contains(t, err.Error(), `"first_6"`)
		require.Equal(t, make([]byte, 6), rec.Bytes())
	})

	t.Run("unknown fields", func(t *testing.T) {
		rec := typ.New()

		_, err := rec.Get("missing")
		require.ErrorIs(t, err, errs.ErrUnknownField)
		_, err = rec.GetInt("missing")
		require.ErrorIs(t, err, errs.ErrUnknownField)
		require.ErrorIs(t, rec.Set("missing", 1), errs.ErrUnknownField)
		require.ErrorIs(t, rec.SetInt("missing", 1), errs.ErrUnknownField)
		require.ErrorIs(t, rec.SetBytes("missing", []byte{1}), errs.ErrUnknownField)
		_, err = rec.Bits("missing")
		require.ErrorIs(t, err, errs.ErrUnknownField)
		require.ErrorIs(t, rec.SetBits("missing", "1"), errs.ErrUnknownField)
		_, err = rec.Help("missing")
		require.ErrorIs(t, err, errs.ErrUnknownField)
		_, err = rec.Value("missing")
		require.ErrorIs(t, err, errs.ErrUnknownField)
		require.ErrorIs(t, rec.SetValue("missing", 1), errs.ErrUnknownField)

		_, err = rec.Get("first_6_as_bits")
		require.ErrorIs(t, err, errs.ErrUnknownField, "integer accessors take segment names only")
	})
}

func TestInstance_OverlappingSegments(t *testing.T) {
	typ := MustNewType("test_name", overlappingSegments())
	rec := typ.New()
	require.Equal(t, make([]byte, 2), rec.Bytes())

	require.NoError(t, rec.Set("start", 12))
	require.Equal(t, []byte{0x0c, 0x00}, rec.Bytes())

	v, _ := rec.Get("start2")
	require.Equal(t, uint64(12), v)
	bits, _ := rec.Bits("start2_as_bits")
	require.Equal(t, "00001100", bits)
	v, _ = rec.Get("middle")
	require.Equal(t, uint64(0b0011_0000), v)
	bits, _ = rec.Bits("middle_as_bits")
	require.Equal(t, "00110000", bits)
	v, _ = rec.Get("end")
	require.Equal(t, uint64(0), v)

	// should be 00_11111111_000000
	require.NoError(t, rec.Set("middle", 0b11111111))
	require.Equal(t, []byte{0b00_111111, 0b11_000000}, rec.Bytes())
	v, _ = rec.Get("start")
	require.Equal(t, uint64(0b00_111111), v)
	v, _ = rec.Get("start2")
	require.Equal(t, uint64(0b00_111111), v)
	v, _ = rec.Get("end")
	require.Equal(t, uint64(0b1111_0000), v)

	require.NoError(t, rec.SetBits("start2_as_bits", "11_00"))
	v, _ = rec.Get("start")
	require.Equal(t, uint64(0b1100), v)
	v, _ = rec.Get("middle")
	require.Equal(t, uint64(0b0011_0011), v)
}

func TestInstance_SignedSegments(t *testing.T) {
	typ := MustNewType("negative_field", signedSegments())
	rec := typ.New()

	require.NoError(t, rec.SetInt("shifted", -1))
	i, err := rec.GetInt("shifted")
	require.NoError(t, err)
	require.Equal(t, int64(-1), i)

	bits, err := rec.Bits("shifted_as_bits")
	require.NoError(t, err)
	require.Equal(t, "111", bits)

	require.NoError(t, rec.SetBits("end_as_bits", "10000000"))
	i, err = rec.GetInt("end")
	require.NoError(t, err)
	require.Equal(t, int64(-128), i)

	require.ErrorIs(t, rec.Set("end", 128), errs.ErrValueOutOfRange)
	require.ErrorIs(t, rec.SetInt("end", -129), errs.ErrValueOutOfRange)
	require.ErrorIs(t, rec.SetInt("first_5_bits", -1), errs.ErrValueOutOfRange)
}

func TestInstance_ValueDispatch(t *testing.T) {
	typ := MustNewType("negative_field", signedSegments())
	rec := typ.New()

	t.Run("integer types", func(t *testing.T) {
		for _, v := range []any{int(-1), int8(-1), int16(-1), int32(-1), int64(-1)} {
			rec.Reset()
			require.NoError(t, rec.SetValue("shifted", v), "%T", v)
			got, err := rec.Value("shifted")
			require.NoError(t, err)
			require.Equal(t, int64(-1), got)
		}

		for _, v := range []any{uint(3), uint8(3), uint16(3), uint32(3), uint64(3)} {
			require.NoError(t, rec.SetValue("first_5_bits", v), "%T", v)
			got, err := rec.Value("first_5_bits")
			require.NoError(t, err)
			require.Equal(t, uint64(3), got)
		}
	})

	t.Run("bytes", func(t *testing.T) {
		require.NoError(t, rec.SetValue("first_5_bits", []byte{0x1f}))
		got, _ := rec.Value("first_5_bits")
		require.Equal(t, uint64(31), got)
	})

	t.Run("bit strings", func(t *testing.T) {
		require.NoError(t, rec.SetValue("end_as_bits", "0111_1111"))
		got, err := rec.Value("end")
		require.NoError(t, err)
		require.Equal(t, int64(127), got)

		s, err := rec.Value("end_as_bits")
		require.NoError(t, err)
		require.Equal(t, "01111111", s)
	})

	t.Run("unsupported types", func(t *testing.T) {
		require.ErrorIs(t, rec.SetValue("end_as_bits", 5), errs.ErrUnsupportedType)
		require.ErrorIs(t, rec.SetValue("end", "0101"), errs.ErrUnsupportedType)
		require.ErrorIs(t, rec.SetValue("end", 1.5), errs.ErrUnsupportedType)
		require.ErrorIs(t, rec.SetValue("end", nil), errs.ErrUnsupportedType)
	})

	t.Run("out of range", func(t *testing.T) {
		require.ErrorIs(t, rec.SetValue("shifted", 4), errs.ErrValueOutOfRange)
		require.ErrorIs(t, rec.SetValue("first_5_bits", -1), errs.ErrValueOutOfRange)
		require.ErrorIs(t, rec.SetValue("first_5_bits", uint8(32)), errs.ErrValueOutOfRange)
	})
}

func TestInstance_CloneReset(t *testing.T) {
	typ := MustNewType("test_name", crossByteSegments())
	rec, err := typ.Parse([]byte{0xde, 0x7e, 0x57, 0xab, 0x1e, 0x01})
	require.NoError(t, err)
	require.NoError(t, rec.SetGrouping(4, "_"))

	clone := rec.Clone()
	require.Equal(t, rec.Bytes(), clone.Bytes())
	require.Equal(t, rec.Grouping(), clone.Grouping())

	rec.Reset()
	require.Equal(t, make([]byte, 6), rec.Bytes())

	v, err := clone.Get("cross")
	require.NoError(t, err)
	require.Equal(t, uint64(39), v, "clone owns its buffer")
}

func TestInstance_Help(t *testing.T) {
	typ := MustNewType("test_name", crossByteSegments())
	rec := typ.New()

	a, err := rec.Help("first_6")
	require.NoError(t, err)
	b, err := rec.Help("first_6_as_bits")
	require.NoError(t, err)
	require.Equal(t, "first_6 help string", a)
	require.Equal(t, a, b)
}
