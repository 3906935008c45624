package layout

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/arloliu/bitfield/encoding"
	"github.com/arloliu/bitfield/errs"
	"github.com/arloliu/bitfield/internal/options"
)

// sizingMode selects how a type derives its buffer size from its segments.
type sizingMode uint8

const (
	sizeFromWidestSegment sizingMode = iota
	sizeFromLastSegment
)

// typeConfig collects the options of NewType before the type is built.
type typeConfig struct {
	logger    logrus.FieldLogger
	separator string
	groupSize int
	size      int
	sizing    sizingMode
}

// TypeOption configures a Type at construction time.
type TypeOption = options.Option[*typeConfig]

func newTypeConfig() *typeConfig {
	return &typeConfig{
		logger:    logrus.StandardLogger(),
		groupSize: encoding.DefaultGroupSize,
	}
}

// WithGroupSize sets how many bits each group of a bit string holds.
// Zero disables grouping. Instances can override it with SetGrouping.
func WithGroupSize(n int) TypeOption {
	return options.New(func(c *typeConfig) error {
		if n < 0 {
			return fmt.Errorf("%w: negative group size %d", errs.ErrInvalidOption, n)
		}
		c.groupSize = n

		return nil
	})
}

// WithGroupSeparator sets the text placed between bit-string groups.
// The default is empty, which renders bit strings as one run of digits.
func WithGroupSeparator(sep string) TypeOption {
	return options.New(func(c *typeConfig) error {
		for _, r := range sep {
			if r == '0' || r == '1' {
				return fmt.Errorf("%w: group separator %q contains a binary digit", errs.ErrInvalidOption, sep)
			}
		}
		c.separator = sep

		return nil
	})
}

// WithSize fixes the buffer size in bytes instead of deriving it.
//
// Every segment must fit within size bytes; NewType fails with
// ErrInvalidSegment otherwise. Trailing bytes not covered by any segment are
// allowed and preserved untouched.
func WithSize(size int) TypeOption {
	return options.New(func(c *typeConfig) error {
		if size <= 0 {
			return fmt.Errorf("%w: non-positive size %d", errs.ErrInvalidOption, size)
		}
		c.size = size

		return nil
	})
}

// WithLastSegmentSizing derives the buffer size from the last declared segment
// only, ceil((start+length)/8), instead of the widest one.
//
// Schemas written for that convention declare the segment that ends the buffer
// last. NewType rejects any segment reaching past it with ErrInvalidSegment.
func WithLastSegmentSizing() TypeOption {
	return options.NoError(func(c *typeConfig) {
		c.sizing = sizeFromLastSegment
	})
}

// WithLogger sets the logger used for build diagnostics.
// The default is logrus.StandardLogger().
func WithLogger(logger logrus.FieldLogger) TypeOption {
	return options.New(func(c *typeConfig) error {
		if logger == nil {
			return fmt.Errorf("%w: nil logger", errs.ErrInvalidOption)
		}
		c.logger = logger

		return nil
	})
}
