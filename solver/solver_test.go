package solver_test

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/katalvlaran/factorgraph/core"
	"github.com/katalvlaran/factorgraph/factors"
	"github.com/katalvlaran/factorgraph/geometry"
	"github.com/katalvlaran/factorgraph/graph"
	"github.com/katalvlaran/factorgraph/linear"
	"github.com/katalvlaran/factorgraph/solver"
	"github.com/stretchr/testify/require"
)

func solvers() map[string]*solver.Solver {
	return map[string]*solver.Solver{
		"gauss_newton":        solver.NewGaussNewton(),
		"levenberg_marquardt": solver.NewLevenbergMarquardt(),
	}
}

// prepare builds the graph, default assignments and the stacked graph.
func prepare(t *testing.T, fs ...core.Factor) (*graph.Stacked, *core.Assignments) {
	t.Helper()
	g, err := graph.New(fs...)
	require.NoError(t, err)
	a, err := g.NewAssignments()
	require.NoError(t, err)
	s, err := g.Prepare(a.Layout())
	require.NoError(t, err)

	return s, a
}

func TestSolve_ZeroPriorsStopAfterOneIteration(t *testing.T) {
	a := core.NewVariable(geometry.SE2Type{})
	b := core.NewVariable(geometry.SO3Type{})
	pa, err := factors.NewPrior(a, geometry.SE2Identity().Parameters(), nil)
	require.NoError(t, err)
	pb, err := factors.NewPrior(b, geometry.SO3Identity().Parameters(), nil)
	require.NoError(t, err)

	for name, s := range solvers() {
		g, init := prepare(t, pa, pb)
		res, err := s.Solve(g, init)
		require.NoError(t, err, name)
		require.Equal(t, solver.Converged, res.State, name)
		require.Equal(t, 1, res.Iterations, name)
		require.Equal(t, 0.0, res.Cost, name)
		require.Equal(t, init.Storage(), res.Assignments.Storage(), name)
	}
}

// twoPoses is the two-pose example: priors at (0,0,0) and (2,0,0) and a unit
// between constraint, all with identity whitening.
func twoPoses(t *testing.T) (*graph.Stacked, *core.Assignments, *core.Variable, *core.Variable) {
	t.Helper()
	reg := geometry.NewRegistry()
	a := core.NewNamedVariable("A", geometry.SE2Type{})
	b := core.NewNamedVariable("B", geometry.SE2Type{})
	pa, err := factors.NewPrior(a, geometry.SE2FromXYTheta(0, 0, 0).Parameters(), nil)
	require.NoError(t, err)
	pb, err := factors.NewPrior(b, geometry.SE2FromXYTheta(2, 0, 0).Parameters(), nil)
	require.NoError(t, err)
	ab, err := factors.NewBetween(a, b, []float64{1, 0, 0}, nil)
	require.NoError(t, err)

	g, err := graph.New(pa, pb, ab)
	require.NoError(t, err)
	init, err := core.NewAssignmentsFromValues(g.Variables(), map[*core.Variable]any{
		a: geometry.SE2FromXYTheta(0, 0, 0),
		b: geometry.SE2FromXYTheta(2, 0, 0),
	}, reg)
	require.NoError(t, err)
	s, err := g.Prepare(init.Layout())
	require.NoError(t, err)

	return s, init, a, b
}

// mismatch returns ‖(B − A) − (1, 0, 0)‖ in translation.
func mismatch(t *testing.T, x *core.Assignments, a, b *core.Variable) float64 {
	t.Helper()
	reg := geometry.NewRegistry()
	va, err := x.TypedValue(reg, a)
	require.NoError(t, err)
	vb, err := x.TypedValue(reg, b)
	require.NoError(t, err)
	pa, pb := va.(geometry.SE2), vb.(geometry.SE2)

	return math.Hypot(pb.X-pa.X-1, pb.Y-pa.Y)
}

func TestSolve_TwoPoses(t *testing.T) {
	for name, s := range solvers() {
		g, init, a, b := twoPoses(t)
		res, err := s.Solve(g, init)
		require.NoError(t, err, name)
		require.Equal(t, solver.Converged, res.State, name)

		require.InDelta(t, 0.5, res.InitialCost, 1e-12, name)
		require.Less(t, res.Cost, res.InitialCost, name)
		require.InDelta(t, 1.0/6, res.Cost, 1e-5, name)
		require.Less(t, mismatch(t, res.Assignments, a, b), mismatch(t, init, a, b), name)

		pa, err := res.Assignments.Value(a)
		require.NoError(t, err)
		pb, err := res.Assignments.Value(b)
		require.NoError(t, err)
		require.InDelta(t, 1.0/3, pa[0], 1e-4, name)
		require.InDelta(t, 5.0/3, pb[0], 1e-4, name)

		// init is a value object and stays untouched.
		require.Equal(t, []float64{0, 0, 1, 0, 2, 0, 1, 0}, init.Storage(), name)
	}
}

func TestSolve_Idempotent(t *testing.T) {
	for name, s := range solvers() {
		g, init, _, _ := twoPoses(t)
		first, err := s.Solve(g, init)
		require.NoError(t, err, name)
		second, err := s.Solve(g, first.Assignments)
		require.NoError(t, err, name)
		require.InDeltaSlice(t, first.Assignments.Storage(), second.Assignments.Storage(), 1e-6, name)
		require.InDelta(t, first.Cost, second.Cost, 1e-9, name)
	}
}

// squareLoop is four SE2 poses around a unit square, with a noisy start.
func squareLoop(t *testing.T) (*graph.Stacked, *core.Assignments) {
	t.Helper()
	vars := make([]*core.Variable, 4)
	for i := range vars {
		vars[i] = core.NewVariable(geometry.SE2Type{})
	}
	prior, err := factors.NewPrior(vars[0], geometry.SE2Identity().Parameters(), core.ScaledWhitening(3, 10))
	require.NoError(t, err)
	fs := []core.Factor{prior}
	for i := range vars {
		f, err := factors.NewBetween(vars[i], vars[(i+1)%4], []float64{1, 0, math.Pi / 2}, nil)
		require.NoError(t, err)
		fs = append(fs, f)
	}
	g, err := graph.New(fs...)
	require.NoError(t, err)

	init, err := core.NewAssignmentsFromValues(vars, map[*core.Variable]any{
		vars[0]: geometry.SE2FromXYTheta(0.1, -0.1, 0.1),
		vars[1]: geometry.SE2FromXYTheta(1.2, 0.1, 1.3),
		vars[2]: geometry.SE2FromXYTheta(0.8, 1.2, 3.0),
		vars[3]: geometry.SE2FromXYTheta(-0.2, 0.9, -1.4),
	}, geometry.NewRegistry())
	require.NoError(t, err)
	s, err := g.Prepare(init.Layout(), graph.WithWorkers(2))
	require.NoError(t, err)

	return s, init
}

func TestSolve_SquareLoopConverges(t *testing.T) {
	for name, s := range solvers() {
		g, init := squareLoop(t)
		res, err := s.Solve(g, init)
		require.NoError(t, err, name)
		require.Equal(t, solver.Converged, res.State, name)
		require.Less(t, res.Cost, 1e-8, name)
		require.LessOrEqual(t, len(res.CostHistory), res.Iterations+1, name)
	}
}

func TestLevenbergMarquardt_NeverIncreasesCost(t *testing.T) {
	g, init := squareLoop(t)
	res, err := solver.NewLevenbergMarquardt().Solve(g, init)
	require.NoError(t, err)
	for i := 1; i < len(res.CostHistory); i++ {
		require.LessOrEqual(t, res.CostHistory[i], res.CostHistory[i-1])
	}
}

func TestLevenbergMarquardt_RecoversWhereGaussNewtonOvershoots(t *testing.T) {
	v := core.NewVariable(core.RealVector(1))
	f := newAtanFactor(v)
	g, _ := prepare(t, f)
	init, err := core.NewAssignmentsFromStorage(g.Layout(), []float64{2})
	require.NoError(t, err)

	lm := solver.NewLevenbergMarquardt(solver.WithLambda(1e-8, 10, 1e-12, 1e12))
	res, err := lm.Solve(g, init)
	require.NoError(t, err)
	require.Equal(t, solver.Converged, res.State)
	x, err := res.Assignments.Value(v)
	require.NoError(t, err)
	require.InDelta(t, 0, x[0], 1e-3)
	for i := 1; i < len(res.CostHistory); i++ {
		require.LessOrEqual(t, res.CostHistory[i], res.CostHistory[i-1])
	}

	gn, err := solver.NewGaussNewton(solver.WithMaxIterations(3)).Solve(g, init)
	require.NoError(t, err)
	require.Greater(t, gn.CostHistory[1], gn.CostHistory[0], "first GN step overshoots")
}

func TestSolve_MaxIterationsReached(t *testing.T) {
	g, init := squareLoop(t)
	s := solver.NewGaussNewton(
		solver.WithMaxIterations(1),
		solver.WithCostTolerance(0),
		solver.WithGradientTolerance(0),
		solver.WithParameterTolerance(0),
	)
	res, err := s.Solve(g, init)
	require.NoError(t, err)
	require.Equal(t, solver.MaxIterationsReached, res.State)
	require.Equal(t, 1, res.Iterations)
	require.Less(t, res.Cost, res.InitialCost)
}

func TestSolve_Errors(t *testing.T) {
	g, init, _, _ := twoPoses(t)
	s := solver.NewGaussNewton()

	_, err := s.Solve(nil, init)
	require.ErrorIs(t, err, solver.ErrNilGraph)
	_, err = solver.Solve(g, nil, s)
	require.ErrorIs(t, err, solver.ErrNilAssignments)

	other, _, _, _ := twoPoses(t)
	_, err = s.Solve(other, init)
	require.ErrorIs(t, err, graph.ErrLayoutMismatch)
}

func TestSolve_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	g, init, _, _ := twoPoses(t)

	_, err := solver.NewLevenbergMarquardt(solver.WithLogger(logger)).Solve(g, init)
	require.NoError(t, err)
	out := buf.String()
	require.Contains(t, out, `"msg":"solve start"`)
	require.Contains(t, out, `"msg":"iteration"`)
	require.Contains(t, out, `"msg":"solve finished"`)
	require.Contains(t, out, `"solver":"levenberg_marquardt"`)
	require.Contains(t, out, `"state":"converged"`)
}

func TestOptions(t *testing.T) {
	o := solver.DefaultOptions()
	require.Equal(t, 100, o.MaxIterations)
	require.Equal(t, 1e-5, o.CostTolerance)
	require.Equal(t, 1e-9, o.GradientTolerance)
	require.Equal(t, 1e-7, o.ParameterTolerance)
	require.Equal(t, 0.1, o.InexactStepEta)
	require.Equal(t, 0, o.CGMaxIterations)
	require.Equal(t, linear.Jacobi, o.Preconditioner)
	require.NotNil(t, o.Logger)

	s := solver.NewLevenbergMarquardt(solver.WithLambda(1, 3, 0.5, 10), solver.WithMaxRejections(2),
		solver.WithPreconditioner(linear.NoPreconditioner), solver.WithLogger(nil))
	got := s.Options()
	require.Equal(t, 1.0, got.LambdaInitial)
	require.Equal(t, 3.0, got.LambdaFactor)
	require.Equal(t, 2, got.MaxRejections)
	require.Equal(t, linear.NoPreconditioner, got.Preconditioner)
	require.NotNil(t, got.Logger)

	require.Panics(t, func() { solver.NewGaussNewton(solver.WithMaxIterations(0)) })
	require.Panics(t, func() { solver.NewGaussNewton(solver.WithCostTolerance(-1)) })
	require.Panics(t, func() { solver.NewGaussNewton(solver.WithInexactStepEta(0)) })
	require.Panics(t, func() { solver.NewGaussNewton(solver.WithCGMaxIterations(-1)) })
	require.Panics(t, func() { solver.NewLevenbergMarquardt(solver.WithLambda(1, 1, 0.5, 10)) })
	require.Panics(t, func() { solver.NewLevenbergMarquardt(solver.WithLambda(20, 2, 0.5, 10)) })
	require.Panics(t, func() { solver.NewLevenbergMarquardt(solver.WithMaxRejections(-1)) })

	require.Equal(t, "max_iterations_reached", solver.MaxIterationsReached.String())
}
