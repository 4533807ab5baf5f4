// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/factorgraph/core"
	"github.com/katalvlaran/factorgraph/graph"
	"github.com/katalvlaran/factorgraph/linear"
	"gonum.org/v1/gonum/floats"
)

// Solver is a configured nonlinear least-squares solver. It is immutable.
type Solver struct {
	opts   Options
	damped bool
	name   string
}

// NewGaussNewton returns an undamped solver that accepts every step.
func NewGaussNewton(opts ...Option) *Solver {
	return newSolver("gauss_newton", false, opts)
}

// NewLevenbergMarquardt returns a damped solver with step acceptance.
func NewLevenbergMarquardt(opts ...Option) *Solver {
	return newSolver("levenberg_marquardt", true, opts)
}

func newSolver(name string, damped bool, opts []Option) *Solver {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Solver{opts: o, damped: damped, name: name}
}

// Options returns a copy of the solver configuration.
func (s *Solver) Options() Options { return s.opts }

// Solve runs s on g from init. See Solver.Solve.
func Solve(g *graph.Stacked, init *core.Assignments, s *Solver) (*Result, error) {
	return s.Solve(g, init)
}

// iterate is the mutable state of one solve.
type iterate struct {
	x      *core.Assignments
	cost   float64
	lambda float64
}

// linearization is everything one outer iteration reuses across LM retries.
type linearization struct {
	jac     *linear.BlockJacobian
	b       []float64
	negGrad []float64 // Jᵀb
}

// verdict is the outcome of one LM attempt.
type verdict int

const (
	accepted verdict = iota
	rejected         // λ grew; retry
	stalled          // rejected with λ already at LambdaMax
)

// attempt is one proposed step.
type attempt struct {
	x     *core.Assignments
	cost  float64
	delta []float64
}

// Solve runs MAP inference and returns the final estimate. init is not modified.
//
// Errors:
//   - ErrNilGraph, ErrNilAssignments.
//   - graph.ErrLayoutMismatch if init does not match the prepared layout.
//
// Complexity: O(iterations · (linearization + CG iterations · nnz(J))).
func (s *Solver) Solve(g *graph.Stacked, init *core.Assignments) (*Result, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if init == nil {
		return nil, ErrNilAssignments
	}
	log := s.opts.Logger.With(slog.String("solver", s.name))

	cost, err := g.Cost(init)
	if err != nil {
		return nil, fmt.Errorf("Solve: %w", err)
	}
	st := &iterate{x: init, cost: cost}
	if s.damped {
		st.lambda = s.opts.LambdaInitial
	}
	res := &Result{State: Initialized, InitialCost: cost, CostHistory: []float64{cost}}
	log.Debug("solve start", slog.Int("factors", g.Len()), slog.Int("residual_dim", g.Rows()),
		slog.Int("tangent_dim", init.Layout().LocalDim()), slog.Float64("cost", cost))

	res.State = Iterating
	for k := 0; k < s.opts.MaxIterations; k++ {
		lin, err := s.linearize(g, st.x)
		if err != nil {
			return nil, fmt.Errorf("Solve: iteration %d: %w", k, err)
		}

		var (
			step attempt
			v    verdict
		)
		for rejections := 0; ; rejections++ {
			step, v, err = s.try(g, st, lin, k)
			if err != nil {
				return nil, fmt.Errorf("Solve: iteration %d: %w", k, err)
			}
			if v == accepted {
				break
			}
			log.Debug("step rejected", slog.Int("iteration", k), slog.Float64("cost", st.cost),
				slog.Float64("proposed_cost", step.cost), slog.Float64("lambda", st.lambda),
				slog.Bool("stalled", v == stalled))
			if v == stalled || rejections >= s.opts.MaxRejections {
				break
			}
		}
		res.Iterations = k + 1
		if v != accepted {
			res.State = Converged
			break
		}

		done := s.converged(st, step, lin)
		prev := st.cost
		st.x, st.cost = step.x, step.cost
		res.CostHistory = append(res.CostHistory, st.cost)
		log.Debug("iteration", slog.Int("iteration", k), slog.Float64("cost", st.cost),
			slog.Float64("cost_change", prev-st.cost), slog.Float64("step_norm", floats.Norm(step.delta, 2)),
			slog.Float64("lambda", st.lambda))
		if done {
			res.State = Converged
			break
		}
	}
	if res.State == Iterating {
		res.State = MaxIterationsReached
	}

	res.Assignments, res.Cost, res.Lambda = st.x, st.cost, st.lambda
	log.Info("solve finished", slog.String("state", res.State.String()), slog.Int("iterations", res.Iterations),
		slog.Float64("initial_cost", res.InitialCost), slog.Float64("cost", res.Cost))

	return res, nil
}

// linearize builds J, b and the negative gradient Jᵀb at x.
func (s *Solver) linearize(g *graph.Stacked, x *core.Assignments) (*linearization, error) {
	jac, b, err := g.Linearize(x)
	if err != nil {
		return nil, err
	}
	negGrad := make([]float64, jac.Cols())
	jac.ApplyTranspose(negGrad, b)

	return &linearization{jac: jac, b: b, negGrad: negGrad}, nil
}

// try solves for one step at the current damping and decides acceptance.
// A rejection leaves st.x and st.cost untouched and strictly grows st.lambda;
// when st.lambda is already at LambdaMax it is left as is and the attempt
// stalls. An acceptance shrinks st.lambda (LM only) but does not move st.x.
func (s *Solver) try(g *graph.Stacked, st *iterate, lin *linearization, k int) (attempt, verdict, error) {
	cg := linear.CGOptions{
		MaxIterations:  s.opts.CGMaxIterations,
		Tolerance:      linear.InexactTolerance(s.opts.InexactStepEta, k),
		AbsTolerance:   s.opts.CGAbsTolerance,
		Preconditioner: s.opts.Preconditioner,
	}
	sol, err := linear.SolveNormal(lin.jac, lin.b, st.lambda, cg)
	if err != nil {
		return attempt{}, rejected, err
	}
	x, err := st.x.Retract(sol.X)
	if err != nil {
		return attempt{}, rejected, err
	}
	cost, err := g.Cost(x)
	if err != nil {
		return attempt{}, rejected, err
	}
	step := attempt{x: x, cost: cost, delta: sol.X}

	if !s.damped {
		return step, accepted, nil
	}
	if cost <= st.cost {
		st.lambda = math.Max(st.lambda/s.opts.LambdaFactor, s.opts.LambdaMin)
		return step, accepted, nil
	}
	if st.lambda >= s.opts.LambdaMax {
		return step, stalled, nil
	}
	st.lambda = math.Min(st.lambda*s.opts.LambdaFactor, s.opts.LambdaMax)

	return step, rejected, nil
}

// converged applies the cost, gradient and parameter tests to an accepted step.
func (s *Solver) converged(st *iterate, step attempt, lin *linearization) bool {
	if st.cost == 0 || math.Abs(step.cost-st.cost)/st.cost <= s.opts.CostTolerance {
		return true
	}

	moved, err := st.x.Retract(lin.negGrad)
	if err == nil {
		cur, next := st.x.StorageView(), moved.StorageView()
		maxAbs := 0.0
		for i := range cur {
			maxAbs = math.Max(maxAbs, math.Abs(cur[i]-next[i]))
		}
		if maxAbs <= s.opts.GradientTolerance {
			return true
		}
	}

	ptol := s.opts.ParameterTolerance
	return floats.Norm(step.delta, 2) <= (floats.Norm(st.x.StorageView(), 2)+ptol)*ptol
}
