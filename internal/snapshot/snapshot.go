// Package snapshot makes deep copies of values that must not change after
// they cross an API boundary, such as override maps handed to a holder or
// the contents of a property store.
package snapshot

import (
	"github.com/pkg/errors"
	"github.com/tiendc/go-deepcopy"
)

// Copy returns a deep copy of *src. A nil src yields (nil, nil).
func Copy[T any](src *T) (*T, error) {
	if src == nil {
		return nil, nil
	}

	var dst T
	if err := deepcopy.Copy(&dst, *src); err != nil {
		return nil, errors.Wrapf(err, "failed to deep copy %T", src)
	}
	return &dst, nil
}

// MustCopy is Copy for values whose types are known to be copyable.
// It panics if the copy fails.
func MustCopy[T any](src *T) *T {
	dst, err := Copy(src)
	if err != nil {
		panic(errors.Wrap(err, "failed to take snapshot"))
	}
	return dst
}
