// SPDX-License-Identifier: MIT

package linear

import "errors"

var (
	// ErrDimensionMismatch indicates a vector whose length disagrees with the operator.
	ErrDimensionMismatch = errors.New("linear: dimension mismatch")

	// ErrBlockOutOfRange indicates a Jacobian block that extends past the matrix bounds.
	ErrBlockOutOfRange = errors.New("linear: block out of range")
)
