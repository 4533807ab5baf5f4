// Package factorgraph is an in-memory toolkit for nonlinear least-squares
// (MAP) inference over factor graphs: pose graphs, sensor fusion and any
// problem written as a sum of whitened squared residuals.
//
// 🚀 What is factorgraph?
//
//	A small, composable library that brings together:
//		• Variables: Euclidean vectors and SO2/SE2/SO3/SE3 manifold types
//		• Factors: priors, relative-transform (between) and affine factors
//		• Graphs: copy-on-write factor collections batched by structure
//		• Linear algebra: block-sparse Jacobians + preconditioned CG
//		• Solvers: Gauss–Newton and Levenberg–Marquardt
//		• Checkpoints: compressed, checksummed snapshots of assignments
//		• Tooling: connectivity checks, tree initialization, synthetic datasets
//
// ✨ How a solve flows
//
//   - Build variables, factors and initial Assignments.
//   - graph.New(factors...) partitions factors into structural groups.
//   - Prepare(layout) freezes a Stacked plan: offsets and row ranges.
//   - solver.Solve linearizes, solves JᵀJ·Δ = Jᵀb matrix-free with CG,
//     retracts x ← x ⊕ Δ and repeats until a convergence test fires.
//
// Everything is organized under these subpackages:
//
//	core/       - variables, layouts, assignments, factors, whitening, linearization
//	geometry/   - SO2, SE2, SO3, SE3 groups and their variable types
//	factors/    - Prior and Between factors
//	graph/      - Graph (copy-on-write) and Stacked (prepared evaluation plan)
//	linear/     - BlockJacobian, normal operator, conjugate gradient
//	solver/     - Gauss–Newton / Levenberg–Marquardt with functional options
//	checkpoint/ - binary snapshots (none, zstd, s2, lz4)
//	bfs/        - traversal and connected components over variables
//	initialize/ - spanning-tree pose initialization
//	builder/    - synthetic Path, Cycle and Grid pose graphs
//
// Quick ASCII example (a 2-pose graph):
//
//	  prior        between        prior
//	 [■]──(A)──────[■]──────(B)──[■]
//
// Two anchored poses and one relative measurement; the solver settles
// A and B where all three residuals balance.
//
//	go get github.com/katalvlaran/factorgraph
package factorgraph
