package core_test

import (
	"testing"

	"github.com/katalvlaran/factorgraph/core"
	"github.com/stretchr/testify/require"
)

func TestLayout_PackingInvariants(t *testing.T) {
	a := core.NewVariable(core.RealVector(2))
	b := core.NewVariable(core.RealVector(3))
	c := core.NewVariable(core.RealVector(2))
	l, err := core.NewLayout([]*core.Variable{a, b, c})
	require.NoError(t, err)

	require.Equal(t, 3, l.Len())
	require.Equal(t, 7, l.StorageDim())
	require.Equal(t, 7, l.LocalDim())
	twos := l.VariablesOfType("RealVector2")
	require.Len(t, twos, 2)
	require.Same(t, a, twos[0])
	require.Same(t, c, twos[1])

	// Offsets are contiguous and follow insertion order.
	want := []int{0, 2, 5}
	for i, v := range []*core.Variable{a, b, c} {
		idx, err := l.Index(v)
		require.NoError(t, err)
		require.Equal(t, i, idx)
		off, err := l.StorageOffset(v)
		require.NoError(t, err)
		require.Equal(t, want[i], off)
		loff, err := l.LocalOffset(v)
		require.NoError(t, err)
		require.Equal(t, want[i], loff)
	}

	_, err = l.Index(core.NewVariable(core.RealVector(1)))
	require.ErrorIs(t, err, core.ErrUnknownVariable)
}

func TestLayout_Errors(t *testing.T) {
	a := core.NewVariable(core.RealVector(2))
	_, err := core.NewLayout([]*core.Variable{a, a})
	require.ErrorIs(t, err, core.ErrDuplicateVariable)
	_, err = core.NewLayout([]*core.Variable{a, nil})
	require.ErrorIs(t, err, core.ErrNilVariable)
}

func TestLayout_FingerprintIsShapeOnly(t *testing.T) {
	l1, err := core.NewLayout([]*core.Variable{
		core.NewVariable(core.RealVector(2)), core.NewVariable(core.RealVector(1)),
	})
	require.NoError(t, err)
	l2, err := core.NewLayout([]*core.Variable{
		core.NewVariable(core.RealVector(2)), core.NewVariable(core.RealVector(1)),
	})
	require.NoError(t, err)
	l3, err := core.NewLayout([]*core.Variable{
		core.NewVariable(core.RealVector(1)), core.NewVariable(core.RealVector(2)),
	})
	require.NoError(t, err)

	require.Equal(t, l1.Fingerprint(), l2.Fingerprint())
	require.NotEqual(t, l1.Fingerprint(), l3.Fingerprint())
}

func TestAssignments_ValueObject(t *testing.T) {
	a := core.NewVariable(core.RealVector(2))
	b := core.NewVariable(core.RealVector(1))
	vals, err := core.NewAssignments([]*core.Variable{a, b})
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0, 0}, vals.Storage())

	next, err := vals.WithValue(a, []float64{1, 2})
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0, 0}, vals.Storage(), "receiver untouched")
	got, err := next.Value(a)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2}, got)

	// Value returns a copy.
	got[0] = 42
	again, err := next.Value(a)
	require.NoError(t, err)
	require.Equal(t, 1.0, again[0])

	_, err = vals.WithValue(a, []float64{1})
	require.ErrorIs(t, err, core.ErrDimensionMismatch)
	_, err = vals.Value(core.NewVariable(core.RealVector(1)))
	require.ErrorIs(t, err, core.ErrUnknownVariable)
}

func TestAssignments_RetractAndSubtract(t *testing.T) {
	a := core.NewVariable(core.RealVector(2))
	b := core.NewVariable(core.RealVector(1))
	vals, err := core.NewAssignmentsFromValues([]*core.Variable{a, b}, map[*core.Variable]any{
		a: []float64{1, 2},
		b: []float64{3},
	}, nil)
	require.NoError(t, err)

	moved, err := vals.Retract([]float64{0.5, 0.5, -1})
	require.NoError(t, err)
	require.Equal(t, []float64{1.5, 2.5, 2}, moved.Storage())
	require.Same(t, vals.Layout(), moved.Layout())

	diff, err := moved.LocalSubtract(vals)
	require.NoError(t, err)
	require.Equal(t, []float64{0.5, 0.5, -1}, diff)

	// Equal shape over other variables is not the same store.
	foreign, err := core.NewAssignments([]*core.Variable{
		core.NewVariable(core.RealVector(2)), core.NewVariable(core.RealVector(1)),
	})
	require.NoError(t, err)
	require.Equal(t, vals.Layout().Fingerprint(), foreign.Layout().Fingerprint())
	_, err = moved.LocalSubtract(foreign)
	require.ErrorIs(t, err, core.ErrLayoutMismatch)

	// A fresh layout over the same variables is accepted.
	again, err := core.NewAssignments(vals.Layout().Variables())
	require.NoError(t, err)
	_, err = moved.LocalSubtract(again)
	require.NoError(t, err)

	same, err := vals.Retract([]float64{0, 0, 0})
	require.NoError(t, err)
	require.Equal(t, vals.Storage(), same.Storage())

	_, err = vals.Retract([]float64{1})
	require.ErrorIs(t, err, core.ErrDimensionMismatch)
}

func TestAssignments_StackedValues(t *testing.T) {
	a := core.NewVariable(core.RealVector(1))
	b := core.NewVariable(core.RealVector(2))
	c := core.NewVariable(core.RealVector(1))
	vals, err := core.NewAssignmentsFromValues([]*core.Variable{a, b, c}, map[*core.Variable]any{
		a: []float64{1},
		c: []float64{3},
	}, nil)
	require.NoError(t, err)

	require.Equal(t, [][]float64{{1}, {3}}, vals.StackedValues(core.RealVector(1)))
	require.Equal(t, [][]float64{{0, 0}}, vals.StackedValues(core.RealVector(2)))
	require.Empty(t, vals.StackedValues(core.RealVector(5)))
}

func TestAssignmentsFromValues_Errors(t *testing.T) {
	a := core.NewVariable(core.RealVector(1))
	stranger := core.NewVariable(core.RealVector(1))

	_, err := core.NewAssignmentsFromValues([]*core.Variable{a},
		map[*core.Variable]any{stranger: []float64{1}}, nil)
	require.ErrorIs(t, err, core.ErrUnknownVariable)

	_, err = core.NewAssignmentsFromValues([]*core.Variable{a},
		map[*core.Variable]any{a: []float64{1, 2}}, nil)
	require.ErrorIs(t, err, core.ErrDimensionMismatch)

	_, err = core.NewAssignmentsFromValues([]*core.Variable{a},
		map[*core.Variable]any{a: "not a vector"}, core.NewRegistry())
	require.ErrorIs(t, err, core.ErrUnregisteredType)
}

func TestAssignmentsFromStorage(t *testing.T) {
	l, err := core.NewLayout([]*core.Variable{core.NewVariable(core.RealVector(2))})
	require.NoError(t, err)

	buf := []float64{1, 2}
	vals, err := core.NewAssignmentsFromStorage(l, buf)
	require.NoError(t, err)
	buf[0] = 99
	require.Equal(t, []float64{1, 2}, vals.Storage())

	_, err = core.NewAssignmentsFromStorage(l, []float64{1})
	require.ErrorIs(t, err, core.ErrDimensionMismatch)
}
