package schema

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/arloliu/bitfield/errs"
	"github.com/arloliu/bitfield/layout"
	"github.com/arloliu/bitfield/segment"
)

// Values accepted by the sizing attribute of a layout block.
const (
	SizingWidest      = "widest"
	SizingLastSegment = "last_segment"
)

// fileSpec is the top-level structure of a schema file.
type fileSpec struct {
	Layouts []*layoutSpec `hcl:"layout,block"`
}

type layoutSpec struct {
	Name           string         `hcl:"name,label"`
	GroupSize      *int           `hcl:"group_size,optional"`
	GroupSeparator *string        `hcl:"group_separator,optional"`
	Size           *int           `hcl:"size,optional"`
	Sizing         *string        `hcl:"sizing,optional"`
	Segments       []*segmentSpec `hcl:"segment,block"`
}

type segmentSpec struct {
	Name      string  `hcl:"name,label"`
	StartBit  int     `hcl:"start_bit"`
	BitLength int     `hcl:"bit_length"`
	Signed    *bool   `hcl:"signed,optional"`
	Help      *string `hcl:"help,optional"`
}

// build turns a decoded layout block into a layout type.
func (s *layoutSpec) build(filename string, logger logrus.FieldLogger) (*layout.Type, error) {
	segments := make([]segment.Descriptor, 0, len(s.Segments))
	for _, spec := range s.Segments {
		var opts []segment.Option
		if spec.Signed != nil {
			opts = append(opts, segment.WithSigned(*spec.Signed))
		}
		if spec.Help != nil {
			opts = append(opts, segment.WithHelp(*spec.Help))
		}

		seg, err := segment.New(spec.Name, spec.StartBit, spec.BitLength, opts...)
		if err != nil {
			return nil, fmt.Errorf("%s: layout %q: %w", filename, s.Name, err)
		}
		segments = append(segments, seg)
	}

	opts := []layout.TypeOption{layout.WithLogger(logger)}
	if s.GroupSize != nil {
		opts = append(opts, layout.WithGroupSize(*s.GroupSize))
	}
	if s.GroupSeparator != nil {
		opts = append(opts, layout.WithGroupSeparator(*s.GroupSeparator))
	}
	if s.Size != nil {
		opts = append(opts, layout.WithSize(*s.Size))
	}
	if s.Sizing != nil {
		switch *s.Sizing {
		case SizingWidest:
		case SizingLastSegment:
			opts = append(opts, layout.WithLastSegmentSizing())
		default:
			return nil, fmt.Errorf("%w: %s: layout %q: unknown sizing %q (want %q or %q)",
				errs.ErrInvalidSchema, filename, s.Name, *s.Sizing, SizingWidest, SizingLastSegment)
		}
	}

	t, err := layout.NewType(s.Name, segments, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	return t, nil
}
