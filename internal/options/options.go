// Package options implements the generic functional option pattern used by the
// segment, layout and schema constructors.
package options

import (
	"errors"
	"fmt"

	"github.com/arloliu/bitfield/errs"
)

// Option configures a target of type T.
type Option[T any] interface {
	apply(T) error
}

// Func adapts a plain function to the Option interface.
type Func[T any] struct {
	fn func(T) error
}

func (f *Func[T]) apply(target T) error {
	return f.fn(target)
}

// New creates an option from a function that may reject its input.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{fn: fn}
}

// NoError creates an option from a function that cannot fail.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		fn: func(target T) error {
			fn(target)
			return nil
		},
	}
}

// Apply applies opts to target in order and stops at the first failure.
//
// Errors that do not already wrap a sentinel from package errs are wrapped with
// errs.ErrInvalidOption, so callers can always classify an option failure.
// Nil options are skipped.
func Apply[T any](target T, opts ...Option[T]) error {
	for i, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt.apply(target); err != nil {
			if isClassified(err) {
				return err
			}

			return fmt.Errorf("%w: option %d: %w", errs.ErrInvalidOption, i, err)
		}
	}

	return nil
}

func isClassified(err error) bool {
	for _, sentinel := range []error{
		errs.ErrInvalidOption,
		errs.ErrInvalidSegment,
		errs.ErrValueOutOfRange,
		errs.ErrDuplicateField,
		errs.ErrInvalidSchema,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}

	return false
}
