package schema

import (
	"fmt"
	"slices"

	"github.com/arloliu/bitfield/errs"
	"github.com/arloliu/bitfield/layout"
)

// Set is a collection of layout types keyed by name.
type Set struct {
	types map[string]*layout.Type
	names []string
}

func newSet() *Set {
	return &Set{types: make(map[string]*layout.Type)}
}

func (s *Set) add(t *layout.Type) error {
	if _, ok := s.types[t.Name()]; ok {
		return fmt.Errorf("%w: layout %q declared twice", errs.ErrDuplicateField, t.Name())
	}
	s.types[t.Name()] = t
	s.names = append(s.names, t.Name())

	return nil
}

// Type returns the layout with the given name.
func (s *Set) Type(name string) (*layout.Type, error) {
	if t, ok := s.types[name]; ok {
		return t, nil
	}

	return nil, fmt.Errorf("%w: no layout named %q", errs.ErrUnknownField, name)
}

// Names returns the layout names in the order they were declared.
func (s *Set) Names() []string { return slices.Clone(s.names) }

// Len returns the number of layouts.
func (s *Set) Len() int { return len(s.names) }

// Types returns the layouts in declaration order.
func (s *Set) Types() []*layout.Type {
	types := make([]*layout.Type, len(s.names))
	for i, name := range s.names {
		types[i] = s.types[name]
	}

	return types
}
