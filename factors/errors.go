// SPDX-License-Identifier: MIT

package factors

import "errors"

var (
	// ErrTypeMismatch indicates that a Between factor links variables of different types.
	ErrTypeMismatch = errors.New("factors: variable types differ")

	// ErrParameterDim indicates a prior mean or relative delta of the wrong length.
	ErrParameterDim = errors.New("factors: parameter has wrong dimension")
)
