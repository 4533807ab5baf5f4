// Package core provides the building blocks of a factor graph: manifold-valued
// variables, factors with whitened residuals, their linearized (affine) form,
// and the flat assignment store that holds the value of every variable.
//
// The model G = (V, F) is bipartite:
//
//   - Variables (V) are unknowns on a manifold. A VariableType describes the
//     storage (ambient) dimension, the local (tangent) dimension and the two
//     manifold operations Retract (x ⊕ Δ) and LocalSubtract (a ⊖ b).
//   - Factors (F) constrain an ordered tuple of variables and contribute a
//     whitened residual W·e(x) to the objective ½‖r‖².
//
// Why a flat store?
//
//   - Assignments keep every variable in one contiguous []float64, indexed by a
//     shared, immutable Layout (storage offsets + tangent offsets).
//   - Solver updates never mutate a store: Retract and WithValue return a new
//     Assignments that shares the Layout of the original.
//   - Batched evaluation in package graph resolves offsets once and then reads
//     straight from the buffer.
//
// Linearization:
//
//	Linearize(f, values) → *LinearFactor
//	  A_i = W · ∂e/∂δ_i   (local coordinates of variable i, never storage coordinates)
//	  b   = −W · e(x)
//
// Jacobians come from the factor itself when it implements JacobianFactor, or
// from central finite differences (gonum diff/fd) in tangent space otherwise.
// A LinearFactor used as a graph factor is already affine and is never
// differentiated.
//
// Value registry:
//
//	Registry maps VariableType.Name() to a ValueCodec that flattens typed values
//	(e.g. geometry.SE2) into storage and back. It is built once, passed by
//	reference, and read-only afterwards.
//
// Errors:
//
//	ErrNilVariable        – nil variable passed to a constructor
//	ErrNoVariables        – factor constructed without variables
//	ErrBadWhitening       – whitening is nil, non-square or does not match error dim
//	ErrDuplicateVariable  – variable listed twice in a layout
//	ErrUnknownVariable    – variable not present in a layout
//	ErrDimensionMismatch  – slice or matrix length disagrees with a declared dimension
//	ErrUnregisteredType   – typed value requested for a type missing from the Registry
//	ErrLayoutMismatch     – assignment stores over different variables or orders
//	ErrNotEuclidean       – LinearFactor built over a non-Euclidean variable
package core
