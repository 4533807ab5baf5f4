package core_test

import (
	"testing"

	"github.com/katalvlaran/factorgraph/core"
	"github.com/stretchr/testify/require"
)

func TestRealVector_Basics(t *testing.T) {
	typ := core.RealVector(3)
	require.Equal(t, "RealVector3", typ.Name())
	require.Equal(t, 3, typ.StorageDim())
	require.Equal(t, 3, typ.LocalDim())
	require.True(t, typ.IsEuclidean())

	dst := []float64{9, 9, 9}
	typ.Default(dst)
	require.Equal(t, []float64{0, 0, 0}, dst)

	x := []float64{1, 2, 3}
	typ.Retract(dst, x, []float64{0.5, -1, 0})
	require.Equal(t, []float64{1.5, 1, 3}, dst)

	d := make([]float64, 3)
	typ.LocalSubtract(d, dst, x)
	require.Equal(t, []float64{0.5, -1, 0}, d)

	require.Panics(t, func() { core.RealVector(0) })
}

func TestVariable_IdentityAndString(t *testing.T) {
	a := core.NewVariable(core.RealVector(2))
	b := core.NewVariable(core.RealVector(2))
	require.NotSame(t, a, b)
	require.Equal(t, "", a.Label())

	named := core.NewNamedVariable("x0", core.RealVector(2))
	require.Equal(t, "RealVector2(x0)", named.String())
	require.Equal(t, "<nil>", (*core.Variable)(nil).String())

	require.Panics(t, func() { core.NewVariable(nil) })
}

func TestIsZero(t *testing.T) {
	require.True(t, core.IsZero(nil))
	require.True(t, core.IsZero([]float64{0, 0}))
	require.False(t, core.IsZero([]float64{0, 1e-300}))
}
