package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/arloliu/bitfield/errs"
	"github.com/arloliu/bitfield/layout"
	"github.com/arloliu/bitfield/segment"
)

const variableSchema = `
layout "vars" {
  group_size      = var.group
  group_separator = " "

  segment "head" {
    start_bit  = 0
    bit_length = var.base
  }

  segment "tail" {
    start_bit  = var.base + 6
    bit_length = var.width
  }
}
`

func TestParse(t *testing.T) {
	t.Run("Variables", func(t *testing.T) {
		set, err := Parse([]byte(variableSchema), "vars.hcl",
			WithVariable("base", 10),
			WithVariables(map[string]cty.Value{
				"width": cty.NumberIntVal(32),
				"group": cty.NumberIntVal(4),
			}),
		)
		require.NoError(t, err)
		require.Equal(t, []string{"vars"}, set.Names())

		typ, err := set.Type("vars")
		require.NoError(t, err)
		require.Equal(t, 6, typ.Size())
		require.Equal(t, 4, typ.GroupSize())
		require.Equal(t, " ", typ.GroupSeparator())

		tail, err := typ.Segment("tail")
		require.NoError(t, err)
		require.Equal(t, 16, tail.StartBit())
		require.Equal(t, 32, tail.BitLength())
	})

	t.Run("Undefined variable", func(t *testing.T) {
		_, err := Parse([]byte(variableSchema), "vars.hcl", WithVariable("base", 10))
		require.ErrorIs(t, err, errs.ErrInvalidSchema)
		require.Contains(t, err.Error(), "vars.hcl")
	})

	t.Run("Sizing", func(t *testing.T) {
		src := `
layout "last" {
  sizing = "last_segment"
  segment "a" {
    start_bit  = 0
    bit_length = 4
  }
  segment "b" {
    start_bit  = 4
    bit_length = 12
  }
}
`
		set, err := Parse([]byte(src), "sizing.hcl")
		require.NoError(t, err)
		typ, _ := set.Type("last")
		require.Equal(t, 2, typ.Size())

		_, err = Parse([]byte(`layout "bad" {
  sizing = "smallest"
  segment "a" {
    start_bit  = 0
    bit_length = 4
  }
}`), "sizing.hcl")
		require.ErrorIs(t, err, errs.ErrInvalidSchema)
		require.Contains(t, err.Error(), `"smallest"`)
	})

	t.Run("Syntax error", func(t *testing.T) {
		_, err := Parse([]byte(`layout "broken" {`), "broken.hcl")
		require.ErrorIs(t, err, errs.ErrInvalidSchema)
	})

	t.Run("Missing attribute", func(t *testing.T) {
		_, err := Parse([]byte(`layout "missing" {
  segment "a" {
    bit_length = 4
  }
}`), "missing.hcl")
		require.ErrorIs(t, err, errs.ErrInvalidSchema)
	})

	t.Run("Invalid segment", func(t *testing.T) {
		_, err := Parse([]byte(`layout "zero" {
  segment "a" {
    start_bit  = 0
    bit_length = 0
  }
}`), "zero.hcl")
		require.ErrorIs(t, err, errs.ErrInvalidSegment)
		require.Contains(t, err.Error(), "zero.hcl")
	})

	t.Run("Duplicate segment", func(t *testing.T) {
		_, err := Parse([]byte(`layout "dup" {
  segment "a" {
    start_bit  = 0
    bit_length = 4
  }
  segment "a" {
    start_bit  = 4
    bit_length = 4
  }
}`), "dup.hcl")
		require.ErrorIs(t, err, errs.ErrDuplicateField)
	})

	t.Run("Duplicate layout", func(t *testing.T) {
		layoutSrc := `layout "twice" {
  segment "a" {
    start_bit  = 0
    bit_length = 4
  }
}
`
		_, err := Parse([]byte(layoutSrc+layoutSrc), "twice.hcl")
		require.ErrorIs(t, err, errs.ErrDuplicateField)
	})

	t.Run("Invalid options", func(t *testing.T) {
		_, err := Parse([]byte(variableSchema), "vars.hcl", WithVariable("1st", 1))
		require.ErrorIs(t, err, errs.ErrInvalidOption)

		_, err = Parse([]byte(variableSchema), "vars.hcl",
			WithVariables(map[string]cty.Value{"base": cty.NullVal(cty.Number)}))
		require.ErrorIs(t, err, errs.ErrInvalidOption)

		_, err = Parse([]byte(variableSchema), "vars.hcl", WithLogger(nil))
		require.ErrorIs(t, err, errs.ErrInvalidOption)
	})
}

func TestLoad(t *testing.T) {
	t.Run("Directory", func(t *testing.T) {
		set, err := Load("testdata")
		require.NoError(t, err)
		require.Equal(t, []string{"test_name", "negative_field", "overlap"}, set.Names())
		require.Equal(t, 3, set.Len())
		require.Len(t, set.Types(), 3)

		overlap, err := set.Type("overlap")
		require.NoError(t, err)
		require.Equal(t, 4, overlap.Size())

		_, err = set.Type("nope")
		require.ErrorIs(t, err, errs.ErrUnknownField)
	})

	t.Run("Single file", func(t *testing.T) {
		set, err := Load(filepath.Join("testdata", "nested", "overlap.hcl"))
		require.NoError(t, err)
		require.Equal(t, []string{"overlap"}, set.Names())
	})

	t.Run("Duplicate across files", func(t *testing.T) {
		file := filepath.Join("testdata", "headers.hcl")
		_, err := Load(file, file)
		require.ErrorIs(t, err, errs.ErrDuplicateField)
	})

	t.Run("Missing path", func(t *testing.T) {
		_, err := Load(filepath.Join("testdata", "does-not-exist"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("Empty directory", func(t *testing.T) {
		logger, hook := logtest.NewNullLogger()
		loader, err := NewLoader(WithLogger(logger))
		require.NoError(t, err)

		set, err := loader.Load(t.TempDir())
		require.NoError(t, err)
		require.Zero(t, set.Len())
		require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	})
}

func TestLoad_MatchesCodeDefinition(t *testing.T) {
	set, err := Load("testdata")
	require.NoError(t, err)

	loaded, err := set.Type("test_name")
	require.NoError(t, err)

	built := layout.MustNewType("test_name", []segment.Descriptor{
		segment.Must("first_6", 0, 6),
		segment.Must("cross", 6, 6),
		segment.Must("long", 16, 32),
	})
	require.Equal(t, built.Fingerprint(), loaded.Fingerprint())

	rec, err := loaded.Parse([]byte{0xde, 0x7e, 0x57, 0xab, 0x1e, 0x01})
	require.NoError(t, err)
	v, err := rec.Get("cross")
	require.NoError(t, err)
	require.Equal(t, uint64(39), v)

	help, err := rec.Help("long_as_bits")
	require.NoError(t, err)
	require.Equal(t, "this crosses multiple bytes", help)

	signed, err := set.Type("negative_field")
	require.NoError(t, err)
	neg := signed.New()
	require.NoError(t, neg.SetInt("end", -128))
	bits, err := neg.Bits("end_as_bits")
	require.NoError(t, err)
	require.Equal(t, "1000_0000", bits)
}

func TestLoader_Logging(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	loader, err := NewLoader(WithLogger(logger))
	require.NoError(t, err)

	_, err = loader.Load(filepath.Join("testdata", "nested"))
	require.NoError(t, err)

	var messages []string
	for _, entry := range hook.AllEntries() {
		messages = append(messages, entry.Message)
	}
	require.Equal(t, []string{
		"loading schema file",
		"bit-field type built",
		"schema layout loaded",
	}, messages)

	last := hook.LastEntry()
	require.Equal(t, "overlap", last.Data["layout"])
	require.Equal(t, 4, last.Data["size"])
}
