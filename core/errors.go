// SPDX-License-Identifier: MIT

package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for core factor-graph primitives.
// Every message is prefixed with "core:"; match with errors.Is.
var (
	// ErrNilVariable indicates that a nil *Variable was passed where one is required.
	ErrNilVariable = errors.New("core: variable is nil")

	// ErrNoVariables indicates that a factor was constructed over zero variables.
	ErrNoVariables = errors.New("core: factor has no variables")

	// ErrBadWhitening indicates a nil or non-square whitening matrix, or one whose
	// row count disagrees with the factor's error dimension.
	ErrBadWhitening = errors.New("core: invalid whitening matrix")

	// ErrDuplicateVariable indicates that a variable was registered twice in one layout.
	ErrDuplicateVariable = errors.New("core: duplicate variable")

	// ErrUnknownVariable indicates that a variable is not present in the layout.
	ErrUnknownVariable = errors.New("core: unknown variable")

	// ErrDimensionMismatch indicates incompatible lengths between a value and its type.
	ErrDimensionMismatch = errors.New("core: dimension mismatch")

	// ErrUnregisteredType indicates a registry lookup for a type that was never registered.
	ErrUnregisteredType = errors.New("core: value type not registered")

	// ErrDuplicateType indicates a second registration under the same type name.
	ErrDuplicateType = errors.New("core: value type already registered")

	// ErrLayoutMismatch indicates that two assignment stores are not over the same
	// variables in the same order.
	ErrLayoutMismatch = errors.New("core: layout mismatch")

	// ErrNotEuclidean indicates that an affine factor was built over a manifold variable.
	ErrNotEuclidean = errors.New("core: variable type is not Euclidean")
)

// coreErrorf wraps err with an operation tag, keeping the sentinel matchable via errors.Is.
func coreErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
