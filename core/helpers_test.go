package core_test

import (
	"github.com/katalvlaran/factorgraph/core"
	"gonum.org/v1/gonum/mat"
)

// quadFactor is e(x) = [x0², x0·x1] − target over one RealVector(2).
type quadFactor struct {
	core.FactorBase
	target [2]float64
}

func newQuadFactor(v *core.Variable, target [2]float64, w *mat.TriDense) *quadFactor {
	base, err := core.NewFactorBase([]*core.Variable{v}, w)
	if err != nil {
		panic(err)
	}

	return &quadFactor{FactorBase: base, target: target}
}

func (f *quadFactor) Kind() string { return "Quad" }

func (f *quadFactor) UnwhitenedError(dst []float64, values [][]float64) {
	x := values[0]
	dst[0] = x[0]*x[0] - f.target[0]
	dst[1] = x[0]*x[1] - f.target[1]
}

// analyticQuad adds closed-form Jacobians to quadFactor.
type analyticQuad struct{ *quadFactor }

func (f analyticQuad) LocalJacobians(dst []*mat.Dense, values [][]float64) {
	x := values[0]
	dst[0].Set(0, 0, 2*x[0])
	dst[0].Set(0, 1, 0)
	dst[0].Set(1, 0, x[1])
	dst[0].Set(1, 1, x[0])
}
