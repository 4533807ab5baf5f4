// SPDX-License-Identifier: MIT

package core

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// KindLinear is the factor tag of LinearFactor.
const KindLinear = "Linear"

// LinearFactor is the affine residual
//
//	r = (Σ_i A_i·x_i) − b
//
// with identity whitening. It appears in two roles:
//   - as a user factor over Euclidean variables (NewLinearFactor), and
//   - as the ephemeral linearized form of any factor, produced by Linearize,
//     where x_i are tangent deltas of possibly non-Euclidean variables.
//
// The A_i blocks are never mutated after construction and may be shared.
type LinearFactor struct {
	FactorBase
	blocks []*mat.Dense // A_i: ErrorDim × LocalDim(var i)
	b      []float64
}

// NewLinearFactor builds a user-level affine factor.
//
// Errors:
//   - ErrNoVariables / ErrNilVariable from the variable tuple.
//   - ErrNotEuclidean      if a variable's type is not Euclidean.
//   - ErrDimensionMismatch if len(blocks) != len(vars), a block's row count is
//     not len(b), or its column count is not the variable's dimension.
func NewLinearFactor(vars []*Variable, blocks []*mat.Dense, b []float64) (*LinearFactor, error) {
	for _, v := range vars {
		if v == nil {
			return nil, coreErrorf("NewLinearFactor", ErrNilVariable)
		}
		if e, ok := v.Type().(Euclidean); !ok || !e.IsEuclidean() {
			return nil, coreErrorf("NewLinearFactor", ErrNotEuclidean)
		}
	}

	return newLinearFactor(vars, blocks, b, "NewLinearFactor")
}

// newLinearFactor validates shapes and copies b; blocks are shared.
func newLinearFactor(vars []*Variable, blocks []*mat.Dense, b []float64, op string) (*LinearFactor, error) {
	if len(b) == 0 {
		return nil, coreErrorf(op, ErrDimensionMismatch)
	}
	base, err := NewFactorBase(vars, IdentityWhitening(len(b)))
	if err != nil {
		return nil, coreErrorf(op, err)
	}
	if len(blocks) != len(vars) {
		return nil, coreErrorf(op, ErrDimensionMismatch)
	}
	for i, a := range blocks {
		if a == nil {
			return nil, coreErrorf(op, ErrDimensionMismatch)
		}
		r, c := a.Dims()
		if r != len(b) || c != vars[i].Type().LocalDim() {
			return nil, coreErrorf(op, ErrDimensionMismatch)
		}
	}
	owned := make([]float64, len(b))
	copy(owned, b)
	shared := make([]*mat.Dense, len(blocks))
	copy(shared, blocks)

	return &LinearFactor{FactorBase: base, blocks: shared, b: owned}, nil
}

// Kind returns KindLinear.
func (f *LinearFactor) Kind() string { return KindLinear }

// Block returns A_i. Callers must not mutate it.
func (f *LinearFactor) Block(i int) *mat.Dense { return f.blocks[i] }

// Offset returns a copy of b.
func (f *LinearFactor) Offset() []float64 {
	out := make([]float64, len(f.b))
	copy(out, f.b)

	return out
}

// Apply writes Σ_i A_i·x[i] into dst (len ErrorDim).
// Complexity: O(ErrorDim · Σ LocalDim).
func (f *LinearFactor) Apply(dst []float64, x [][]float64) {
	for k := range dst {
		dst[k] = 0
	}
	for i, a := range f.blocks {
		r, _ := a.Dims()
		for row := 0; row < r; row++ {
			dst[row] += floats.Dot(a.RawRowView(row), x[i])
		}
	}
}

// ApplyTranspose writes A_iᵀ·y into dst[i] for every variable.
// Complexity: O(ErrorDim · Σ LocalDim).
func (f *LinearFactor) ApplyTranspose(dst [][]float64, y []float64) {
	for i, a := range f.blocks {
		out := dst[i]
		for k := range out {
			out[k] = 0
		}
		r, _ := a.Dims()
		for row := 0; row < r; row++ {
			floats.AddScaled(out, y[row], a.RawRowView(row))
		}
	}
}

// UnwhitenedError writes (Σ A_i x_i) − b.
func (f *LinearFactor) UnwhitenedError(dst []float64, values [][]float64) {
	f.Apply(dst, values)
	floats.Sub(dst, f.b)
}

// LocalJacobians copies A_i into dst[i]; an affine factor is its own Jacobian.
func (f *LinearFactor) LocalJacobians(dst []*mat.Dense, _ [][]float64) {
	for i, a := range f.blocks {
		dst[i].Copy(a)
	}
}

// Compile-time capability check.
var _ JacobianFactor = (*LinearFactor)(nil)
