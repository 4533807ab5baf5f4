package initialize_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/katalvlaran/factorgraph/core"
	"github.com/katalvlaran/factorgraph/factors"
	"github.com/katalvlaran/factorgraph/geometry"
	"github.com/katalvlaran/factorgraph/graph"
	"github.com/katalvlaran/factorgraph/initialize"
	"github.com/katalvlaran/factorgraph/solver"
	"github.com/stretchr/testify/require"
)

func cost(t *testing.T, g *graph.Graph, a *core.Assignments) float64 {
	t.Helper()
	s, err := g.Prepare(a.Layout())
	require.NoError(t, err)
	c, err := s.Cost(a)
	require.NoError(t, err)

	return c
}

func TestSpanningTree_ChainHasZeroCost(t *testing.T) {
	reg := geometry.NewRegistry()
	vars := make([]*core.Variable, 6)
	for i := range vars {
		vars[i] = core.NewVariable(geometry.SE2Type{})
	}
	origin := geometry.SE2FromXYTheta(1, 2, 0.3)
	p, err := factors.NewPrior(vars[0], origin.Parameters(), nil)
	require.NoError(t, err)
	fs := []core.Factor{p}
	step := [3]float64{1, 0.2, 0.4}
	for i := 0; i+1 < len(vars); i++ {
		// Odd edges point backwards so both tree directions are exercised.
		from, to, d := vars[i], vars[i+1], step[:]
		if i%2 == 1 {
			inv := geometry.SE2Exp(step).Inverse().Log()
			from, to, d = vars[i+1], vars[i], inv[:]
		}
		b, err := factors.NewBetween(from, to, d, nil)
		require.NoError(t, err)
		fs = append(fs, b)
	}
	g, err := graph.New(fs...)
	require.NoError(t, err)
	init, err := g.NewAssignments()
	require.NoError(t, err)
	before := init.Storage()

	seeded, err := initialize.SpanningTree(g, init)
	require.NoError(t, err)
	require.Equal(t, before, init.Storage(), "input is not mutated")
	require.Less(t, cost(t, g, seeded), 1e-20)
	require.Greater(t, cost(t, g, init), 1.0)

	want := origin
	for _, v := range vars {
		got, err := seeded.TypedValue(reg, v)
		require.NoError(t, err)
		pose := got.(geometry.SE2)
		require.InDelta(t, want.X, pose.X, 1e-9)
		require.InDelta(t, want.Y, pose.Y, 1e-9)
		require.InDelta(t, want.Rotation.Log(), pose.Rotation.Log(), 1e-9)
		want = want.Compose(geometry.SE2Exp(step))
	}

	res, err := solver.NewGaussNewton().Solve(mustPrepare(t, g, seeded), seeded)
	require.NoError(t, err)
	require.Equal(t, 1, res.Iterations)
}

func mustPrepare(t *testing.T, g *graph.Graph, a *core.Assignments) *graph.Stacked {
	t.Helper()
	s, err := g.Prepare(a.Layout())
	require.NoError(t, err)

	return s
}

func TestSpanningTree_UnanchoredComponentKeepsRoot(t *testing.T) {
	x := core.NewNamedVariable("x", core.RealVector(2))
	y := core.NewNamedVariable("y", core.RealVector(2))
	b, err := factors.NewBetween(x, y, []float64{3, -1}, nil)
	require.NoError(t, err)
	g, err := graph.New(b)
	require.NoError(t, err)
	init, err := core.NewAssignmentsFromValues(g.Variables(), map[*core.Variable]any{
		x: []float64{10, 10},
	}, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	seeded, err := initialize.SpanningTree(g, init, initialize.WithLogger(logger))
	require.NoError(t, err)

	vx, err := seeded.Value(x)
	require.NoError(t, err)
	vy, err := seeded.Value(y)
	require.NoError(t, err)
	require.Equal(t, []float64{10, 10}, vx)
	require.Equal(t, []float64{13, 9}, vy)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "WARN", entry["level"])
	require.Equal(t, "component without prior", entry["msg"])
	require.EqualValues(t, 2, entry["variables"])
}

func TestSpanningTree_Errors(t *testing.T) {
	x := core.NewVariable(core.RealVector(1))
	p, err := factors.NewPrior(x, []float64{1}, nil)
	require.NoError(t, err)
	g, err := graph.New(p)
	require.NoError(t, err)

	_, err = initialize.SpanningTree(nil, nil)
	require.ErrorIs(t, err, initialize.ErrNilInput)

	other, err := core.NewAssignments([]*core.Variable{core.NewVariable(core.RealVector(1))})
	require.NoError(t, err)
	_, err = initialize.SpanningTree(g, other)
	require.ErrorIs(t, err, core.ErrUnknownVariable)
}
