package layout

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/arloliu/bitfield/errs"
	"github.com/arloliu/bitfield/internal/collision"
	"github.com/arloliu/bitfield/internal/hash"
	"github.com/arloliu/bitfield/internal/options"
	"github.com/arloliu/bitfield/segment"
)

// BitsSuffix is appended to a segment name to form its bit-string accessor name.
const BitsSuffix = "_as_bits"

// Type is an immutable bit-field definition: an ordered set of segments over a
// buffer of fixed size.
//
// A Type is safe for concurrent use. Instances created from it are not.
type Type struct {
	index       map[string]int // segment name → position in segments
	name        string
	separator   string
	segments    []segment.Descriptor
	accessors   []string // declaration order: name, name_as_bits, ...
	sorted      []string // accessors sorted lexically
	size        int
	groupSize   int
	nameWidth   int
	fingerprint uint64
}

// NewType builds a bit-field type from an ordered list of segments.
//
// Declaration order matters: it is the order used by FormatDetails and Fields.
// Segments may overlap, but names must be unique and must not collide with
// another segment's "<name>_as_bits" accessor.
//
// By default the buffer size is ceil(max(start+length)/8) over all segments.
// See WithSize and WithLastSegmentSizing for alternatives.
//
// Parameters:
//   - name: Type name, used in dumps and fingerprints
//   - segments: Segment descriptors in declaration order
//   - opts: Optional configuration
//
// Returns:
//   - *Type: The new type
//   - error: ErrInvalidSegment, ErrDuplicateField, ErrInvalidOption or ErrInvalidSchema
func NewType(name string, segments []segment.Descriptor, opts ...TypeOption) (*Type, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty type name", errs.ErrInvalidSchema)
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: type %q has no segments", errs.ErrInvalidSegment, name)
	}

	cfg := newTypeConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, fmt.Errorf("type %q: %w", name, err)
	}

	tracker := collision.NewTracker(BitsSuffix)
	for _, seg := range segments {
		if err := seg.Validate(); err != nil {
			return nil, fmt.Errorf("type %q: %w", name, err)
		}
		if err := tracker.Track(seg.Name()); err != nil {
			return nil, fmt.Errorf("type %q: %w", name, err)
		}
	}

	size, err := deriveSize(name, segments, cfg)
	if err != nil {
		return nil, err
	}

	t := &Type{
		name:      name,
		size:      size,
		segments:  slices.Clone(segments),
		index:     make(map[string]int, len(segments)),
		accessors: make([]string, 0, len(segments)*2),
		groupSize: cfg.groupSize,
		separator: cfg.separator,
	}

	for i, seg := range t.segments {
		t.index[seg.Name()] = i
		t.accessors = append(t.accessors, seg.Name(), seg.Name()+BitsSuffix)
	}
	for _, accessor := range t.accessors {
		t.nameWidth = max(t.nameWidth, len(accessor))
	}
	t.sorted = slices.Clone(t.accessors)
	slices.Sort(t.sorted)
	t.fingerprint = fingerprint(t)

	cfg.logger.WithFields(logrus.Fields{
		"type":        t.name,
		"size":        t.size,
		"segments":    len(t.segments),
		"fingerprint": fmt.Sprintf("%016x", t.fingerprint),
	}).Debug("bit-field type built")

	return t, nil
}

// MustNewType is like NewType but panics on error.
func MustNewType(name string, segments []segment.Descriptor, opts ...TypeOption) *Type {
	t, err := NewType(name, segments, opts...)
	if err != nil {
		panic(err)
	}

	return t
}

func deriveSize(name string, segments []segment.Descriptor, cfg *typeConfig) (int, error) {
	widest := 0
	for _, seg := range segments {
		widest = max(widest, seg.EndBit())
	}
	required := (widest + 7) / 8

	size := required
	if cfg.sizing == sizeFromLastSegment {
		size = (segments[len(segments)-1].EndBit() + 7) / 8
	}
	if cfg.size > 0 {
		size = cfg.size
	}

	if size < required {
		for _, seg := range segments {
			if !seg.Fits(size) {
				return 0, fmt.Errorf("%w: type %q: segment %s does not fit %d bytes",
					errs.ErrInvalidSegment, name, seg, size)
			}
		}
	}

	return size, nil
}

func fingerprint(t *Type) uint64 {
	d := hash.NewDigest()
	d.WriteString(t.name)
	d.WriteInt(t.size)
	d.WriteInt(len(t.segments))
	for _, seg := range t.segments {
		d.WriteString(seg.Name())
		d.WriteInt(seg.StartBit())
		d.WriteInt(seg.BitLength())
		d.WriteBool(seg.IsSigned())
	}

	return d.Sum64()
}

// Name returns the type name.
func (t *Type) Name() string { return t.name }

// Size returns the buffer size in bytes.
func (t *Type) Size() int { return t.size }

// GroupSize returns the default bit-string group size of new instances.
func (t *Type) GroupSize() int { return t.groupSize }

// GroupSeparator returns the default bit-string group separator of new instances.
func (t *Type) GroupSeparator() string { return t.separator }

// Fingerprint returns an xxHash64 of the type name, size and every segment's
// name, position, length and signedness. Help text and display options are
// not included. Two types with equal fingerprints read the same bytes the same way.
func (t *Type) Fingerprint() uint64 { return t.fingerprint }

// Fields returns the segment names in declaration order.
func (t *Type) Fields() []string {
	names := make([]string, len(t.segments))
	for i, seg := range t.segments {
		names[i] = seg.Name()
	}

	return names
}

// AccessorNames returns every accessor name: each segment name followed by its
// bit-string alias, in declaration order.
func (t *Type) AccessorNames() []string {
	return slices.Clone(t.accessors)
}

// Segments returns a copy of the segment descriptors in declaration order.
func (t *Type) Segments() []segment.Descriptor {
	return slices.Clone(t.segments)
}

// Segment returns the descriptor of a segment by its exact name.
func (t *Type) Segment(name string) (segment.Descriptor, error) {
	if i, ok := t.index[name]; ok {
		return t.segments[i], nil
	}

	return segment.Descriptor{}, t.unknown(name)
}

// Has reports whether name is a segment or accessor name of this type.
func (t *Type) Has(name string) bool {
	_, _, ok := t.resolve(name)
	return ok
}

// Help returns the help text of a segment. Both the segment name and its
// bit-string alias are accepted.
func (t *Type) Help(name string) (string, error) {
	seg, _, ok := t.resolve(name)
	if !ok {
		return "", t.unknown(name)
	}

	return seg.Help(), nil
}

// Accessor returns an integer accessor bound to the named segment.
func (t *Type) Accessor(name string) (Accessor, error) {
	seg, err := t.Segment(name)
	if err != nil {
		return Accessor{}, err
	}

	return Accessor{typ: t, seg: seg}, nil
}

// BitsAccessor returns a bit-string accessor bound to the named segment.
// Both the segment name and its bit-string alias are accepted.
func (t *Type) BitsAccessor(name string) (BitsAccessor, error) {
	seg, _, ok := t.resolve(name)
	if !ok {
		return BitsAccessor{}, t.unknown(name)
	}

	return BitsAccessor{typ: t, seg: seg}, nil
}

// New returns a zero-filled instance.
func (t *Type) New() *Instance {
	return t.newInstance(make([]byte, t.size))
}

// Wrap returns an instance operating directly on buf; writes through the
// instance modify buf.
//
// Returns:
//   - *Instance: Instance backed by buf
//   - error: ErrSizeMismatch if len(buf) != Size()
func (t *Type) Wrap(buf []byte) (*Instance, error) {
	if len(buf) != t.size {
		return nil, fmt.Errorf("%w: type %q expects %d bytes, got %d",
			errs.ErrSizeMismatch, t.name, t.size, len(buf))
	}

	return t.newInstance(buf), nil
}

// Parse returns an instance holding a copy of data.
//
// Returns:
//   - *Instance: Instance backed by a private copy
//   - error: ErrSizeMismatch if len(data) != Size()
func (t *Type) Parse(data []byte) (*Instance, error) {
	if len(data) != t.size {
		return nil, fmt.Errorf("%w: type %q expects %d bytes, got %d",
			errs.ErrSizeMismatch, t.name, t.size, len(data))
	}

	return t.newInstance(slices.Clone(data)), nil
}

// String renders the type as name{seg[start:end), ...} (N bytes).
func (t *Type) String() string {
	parts := make([]string, len(t.segments))
	for i, seg := range t.segments {
		parts[i] = seg.String()
	}

	return fmt.Sprintf("%s{%s} (%d bytes)", t.name, strings.Join(parts, ", "), t.size)
}

// resolve maps a segment or accessor name to its descriptor and reports
// whether the name refers to the bit-string accessor.
func (t *Type) resolve(name string) (segment.Descriptor, bool, bool) {
	if i, ok := t.index[name]; ok {
		return t.segments[i], false, true
	}

	if base, found := strings.CutSuffix(name, BitsSuffix); found {
		if i, ok := t.index[base]; ok {
			return t.segments[i], true, true
		}
	}

	return segment.Descriptor{}, false, false
}

func (t *Type) unknown(name string) error {
	return fmt.Errorf("%w: %q is not a field of type %q", errs.ErrUnknownField, name, t.name)
}
