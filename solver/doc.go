// Package solver runs MAP inference on a prepared factor graph with
// Gauss-Newton or Levenberg-Marquardt iterations and inexact CG steps.
//
// Each iteration:
//
//  1. Linearizes the graph at x: J, b = −r(x).
//  2. Solves (JᵀJ + λI)·Δ = Jᵀb by preconditioned CG, with relative
//     tolerance eta/(k+1) (inexact Newton).
//  3. Retracts x ⊕ Δ and evaluates the new cost ½‖r‖².
//  4. Gauss-Newton (λ = 0) always accepts. Levenberg-Marquardt accepts when
//     the cost does not increase and then shrinks λ; otherwise it keeps x,
//     grows λ and re-solves with the same linearization.
//  5. After an accepted step, stops when any of
//
//     |Δcost| / cost_prev            ≤ CostTolerance      (cost_prev == 0 counts as converged)
//     max|x − (x ⊕ Jᵀb)|             ≤ GradientTolerance
//     ‖Δ‖₂ ≤ (‖x‖₂ + ParameterTolerance)·ParameterTolerance
//
// The only bound on a solve is MaxIterations; reaching it yields state
// MaxIterationsReached and is not an error. A Solver holds configuration only,
// so the same Solver and prepared graph may be used for repeated or
// concurrent solves.
//
// Logging goes through log/slog: Debug per iteration (and per rejected LM
// step), Info once on termination. The default logger discards everything.
package solver
