package core_test

import (
	"testing"

	"github.com/katalvlaran/factorgraph/core"
	"github.com/stretchr/testify/require"
)

// pairCodec stores [2]float64 values.
type pairCodec struct{}

func (pairCodec) StorageDim() int { return 2 }

func (pairCodec) Flatten(value any, dst []float64) error {
	p, ok := value.([2]float64)
	if !ok {
		return core.ErrDimensionMismatch
	}
	copy(dst, p[:])

	return nil
}

func (pairCodec) Unflatten(src []float64) (any, error) { return [2]float64{src[0], src[1]}, nil }

func TestRegistry_RegisterLookup(t *testing.T) {
	reg := core.NewRegistry()
	require.NoError(t, reg.Register("RealVector2", pairCodec{}))
	require.ErrorIs(t, reg.Register("RealVector2", pairCodec{}), core.ErrDuplicateType)
	require.Equal(t, []string{"RealVector2"}, reg.Names())

	_, ok := reg.Lookup("SE2")
	require.False(t, ok)
	var nilReg *core.Registry
	_, ok = nilReg.Lookup("RealVector2")
	require.False(t, ok)
}

func TestRegistry_TypedAssignments(t *testing.T) {
	reg := core.NewRegistry()
	require.NoError(t, reg.Register("RealVector2", pairCodec{}))

	v := core.NewVariable(core.RealVector(2))
	vals, err := core.NewAssignmentsFromValues([]*core.Variable{v},
		map[*core.Variable]any{v: [2]float64{4, 5}}, reg)
	require.NoError(t, err)

	got, err := vals.TypedValue(reg, v)
	require.NoError(t, err)
	require.Equal(t, [2]float64{4, 5}, got)

	all, err := vals.TypedStackedValues(reg, core.RealVector(2))
	require.NoError(t, err)
	require.Equal(t, []any{[2]float64{4, 5}}, all)

	_, err = vals.TypedValue(core.NewRegistry(), v)
	require.ErrorIs(t, err, core.ErrUnregisteredType)
	require.ErrorIs(t, reg.Flatten("RealVector2", [2]float64{}, make([]float64, 3)), core.ErrDimensionMismatch)
}
