// SPDX-License-Identifier: MIT

package factors

import (
	"fmt"

	"github.com/katalvlaran/factorgraph/core"
	"gonum.org/v1/gonum/mat"
)

// KindPrior is the factor tag of Prior.
const KindPrior = "Prior"

// Prior anchors one variable to a mean μ (given in storage coordinates).
type Prior struct {
	core.FactorBase
	mu []float64
}

// NewPrior builds a prior on v with mean mu. A nil w selects identity whitening.
//
// Errors:
//   - core.ErrNilVariable  if v is nil.
//   - ErrParameterDim      if len(mu) != StorageDim of v's type.
//   - core.ErrBadWhitening if w is not LocalDim × LocalDim lower-triangular.
func NewPrior(v *core.Variable, mu []float64, w *mat.TriDense) (*Prior, error) {
	if v == nil {
		return nil, fmt.Errorf("NewPrior: %w", core.ErrNilVariable)
	}
	t := v.Type()
	if len(mu) != t.StorageDim() {
		return nil, fmt.Errorf("NewPrior: %w", ErrParameterDim)
	}
	base, err := newBase([]*core.Variable{v}, t, w)
	if err != nil {
		return nil, fmt.Errorf("NewPrior: %w", err)
	}
	owned := make([]float64, len(mu))
	copy(owned, mu)

	return &Prior{FactorBase: base, mu: owned}, nil
}

// Kind returns KindPrior.
func (f *Prior) Kind() string { return KindPrior }

// Mean returns a copy of μ.
func (f *Prior) Mean() []float64 {
	out := make([]float64, len(f.mu))
	copy(out, f.mu)

	return out
}

// UnwhitenedError writes x ⊖ μ.
func (f *Prior) UnwhitenedError(dst []float64, values [][]float64) {
	f.Variable(0).Type().LocalSubtract(dst, values[0], f.mu)
}

// UnwhitenedErrorBatch evaluates a span of Prior factors.
func (f *Prior) UnwhitenedErrorBatch(dst [][]float64, group []core.Factor, values [][][]float64) {
	t := f.Variable(0).Type()
	for k, g := range group {
		p, ok := g.(*Prior)
		if !ok {
			g.UnwhitenedError(dst[k], values[k])
			continue
		}
		t.LocalSubtract(dst[k], values[k][0], p.mu)
	}
}

// newBase checks that w fits type t and builds the shared factor state.
func newBase(vars []*core.Variable, t core.VariableType, w *mat.TriDense) (core.FactorBase, error) {
	if w == nil {
		w = core.IdentityWhitening(t.LocalDim())
	}
	if n, _ := w.Triangle(); n != t.LocalDim() {
		return core.FactorBase{}, core.ErrBadWhitening
	}

	return core.NewFactorBase(vars, w)
}
