// SPDX-License-Identifier: MIT

package factors

import (
	"fmt"

	"github.com/katalvlaran/factorgraph/core"
	"gonum.org/v1/gonum/mat"
)

// KindBetween is the factor tag of Between.
const KindBetween = "Between"

// Between constrains the relative transform from Before to After:
//
//	e = (x_before ⊕ δ) ⊖ x_after
//
// δ lives in the tangent space of Before's type.
type Between struct {
	core.FactorBase
	delta []float64
}

// NewBetween builds a relative constraint. A nil w selects identity whitening.
//
// Errors:
//   - core.ErrNilVariable  if either variable is nil.
//   - ErrTypeMismatch      if the variables' type names differ.
//   - ErrParameterDim      if len(delta) != LocalDim.
//   - core.ErrBadWhitening if w is not LocalDim × LocalDim lower-triangular.
func NewBetween(before, after *core.Variable, delta []float64, w *mat.TriDense) (*Between, error) {
	if before == nil || after == nil {
		return nil, fmt.Errorf("NewBetween: %w", core.ErrNilVariable)
	}
	t := before.Type()
	if t.Name() != after.Type().Name() {
		return nil, fmt.Errorf("NewBetween: %s vs %s: %w", t.Name(), after.Type().Name(), ErrTypeMismatch)
	}
	if len(delta) != t.LocalDim() {
		return nil, fmt.Errorf("NewBetween: %w", ErrParameterDim)
	}
	base, err := newBase([]*core.Variable{before, after}, t, w)
	if err != nil {
		return nil, fmt.Errorf("NewBetween: %w", err)
	}
	owned := make([]float64, len(delta))
	copy(owned, delta)

	return &Between{FactorBase: base, delta: owned}, nil
}

// Kind returns KindBetween.
func (f *Between) Kind() string { return KindBetween }

// Delta returns a copy of δ.
func (f *Between) Delta() []float64 {
	out := make([]float64, len(f.delta))
	copy(out, f.delta)

	return out
}

// UnwhitenedError writes (x_before ⊕ δ) ⊖ x_after.
func (f *Between) UnwhitenedError(dst []float64, values [][]float64) {
	t := f.Variable(0).Type()
	predicted := make([]float64, t.StorageDim())
	t.Retract(predicted, values[0], f.delta)
	t.LocalSubtract(dst, predicted, values[1])
}

// UnwhitenedErrorBatch evaluates a span of Between factors through one
// prediction buffer.
func (f *Between) UnwhitenedErrorBatch(dst [][]float64, group []core.Factor, values [][][]float64) {
	t := f.Variable(0).Type()
	predicted := make([]float64, t.StorageDim())
	for k, g := range group {
		b, ok := g.(*Between)
		if !ok {
			g.UnwhitenedError(dst[k], values[k])
			continue
		}
		t.Retract(predicted, values[k][0], b.delta)
		t.LocalSubtract(dst[k], predicted, values[k][1])
	}
}
