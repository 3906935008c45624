package collision

import (
	"fmt"

	"github.com/arloliu/bitfield/errs"
)

// Tracker records segment names and the accessor aliases derived from them,
// detecting any two accessors that would end up with the same name.
//
// Each tracked segment claims two accessor names: the segment name itself and
// the segment name followed by the alias suffix.
type Tracker struct {
	suffix string
	owners map[string]string // accessor name → owning segment name
	names  []string          // segment names in tracking order
}

// NewTracker creates a tracker that derives aliases with the given suffix.
func NewTracker(aliasSuffix string) *Tracker {
	return &Tracker{
		suffix: aliasSuffix,
		owners: make(map[string]string),
		names:  make([]string, 0),
	}
}

// Track claims the accessor names of a segment.
// Returns error if:
// - The name is empty (ErrInvalidSegment)
// - The name or its alias is already claimed (ErrDuplicateField)
//
// Nothing is recorded when an error is returned.
func (t *Tracker) Track(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty segment name", errs.ErrInvalidSegment)
	}

	alias := name + t.suffix
	for _, accessor := range []string{name, alias} {
		owner, exists := t.owners[accessor]
		if !exists {
			continue
		}
		if owner == name {
			return fmt.Errorf("%w: segment %q declared twice", errs.ErrDuplicateField, name)
		}

		return fmt.Errorf("%w: accessor %q of segment %q collides with segment %q",
			errs.ErrDuplicateField, accessor, name, owner)
	}

	t.owners[name] = name
	t.owners[alias] = name
	t.names = append(t.names, name)

	return nil
}

// Owner returns the segment that owns an accessor name.
func (t *Tracker) Owner(accessor string) (string, bool) {
	owner, ok := t.owners[accessor]
	return owner, ok
}

// Names returns the tracked segment names in tracking order.
func (t *Tracker) Names() []string {
	return t.names
}

// Count returns the number of tracked segments.
func (t *Tracker) Count() int {
	return len(t.names)
}

// Reset clears all tracked names so the tracker can be reused.
func (t *Tracker) Reset() {
	clear(t.owners)
	t.names = t.names[:0]
}
