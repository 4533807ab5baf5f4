package solver_test

import (
	"math"

	"github.com/katalvlaran/factorgraph/core"
)

// atanFactor is e(x) = atan(x) on RealVector(1): GN overshoots from |x| > 1.4.
type atanFactor struct{ core.FactorBase }

func newAtanFactor(v *core.Variable) *atanFactor {
	base, err := core.NewFactorBase([]*core.Variable{v}, core.IdentityWhitening(1))
	if err != nil {
		panic(err)
	}

	return &atanFactor{FactorBase: base}
}

func (f *atanFactor) Kind() string { return "Atan" }

func (f *atanFactor) UnwhitenedError(dst []float64, values [][]float64) {
	dst[0] = math.Atan(values[0][0])
}
