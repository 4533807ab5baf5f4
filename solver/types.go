// SPDX-License-Identifier: MIT

package solver

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/factorgraph/core"
)

// Sentinel errors returned by Solve.
var (
	// ErrNilGraph indicates that a nil prepared graph was passed.
	ErrNilGraph = errors.New("solver: graph is nil")

	// ErrNilAssignments indicates that nil initial assignments were passed.
	ErrNilAssignments = errors.New("solver: initial assignments are nil")
)

// State is the lifecycle of a solve.
type State int

const (
	// Initialized means no iteration has run yet.
	Initialized State = iota

	// Iterating means the solve is in progress.
	Iterating

	// Converged means a termination criterion was met (or LM could not find
	// a non-increasing step within MaxRejections).
	Converged

	// MaxIterationsReached means the iteration cap stopped the solve.
	MaxIterationsReached
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case Iterating:
		return "iterating"
	case Converged:
		return "converged"
	case MaxIterationsReached:
		return "max_iterations_reached"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Result is the outcome of Solve.
type Result struct {
	Assignments *core.Assignments // final estimate
	State       State
	Iterations  int       // accepted steps plus the final stalled attempt, if any
	InitialCost float64   // ½‖r(x₀)‖²
	Cost        float64   // ½‖r(x)‖² at Assignments
	CostHistory []float64 // cost after every accepted step, starting with InitialCost
	Lambda      float64   // damping at exit (0 for Gauss-Newton)
}
