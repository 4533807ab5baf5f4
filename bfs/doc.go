// Package bfs provides breadth-first search over the variables of a
// graph.Graph, where two variables are adjacent when some factor references
// both of them.
//
// What
//
//   - Explore variables in non-decreasing hop count from a start variable.
//   - Returns a Result containing:
//   - Order:  visit sequence
//   - Depth:  variable → hops from the start
//   - Parent: variable → its predecessor in the BFS tree
//   - Via:    variable → the factor that discovered it
//   - Hooks: OnVisit (may abort with an error) and FilterFactor (skip edges
//     contributed by a factor).
//   - Honors MaxDepth (d>0) or explicit "no limit" (d==0).
//   - Components partitions every variable into connected components.
//
// Why
//
//	A connected component with no unary factor (e.g. a prior) has a gauge
//	freedom: the normal equations are singular along it and only damping keeps
//	a solve well-posed. Components makes that visible before solving, and the
//	BFS tree is the scaffold the initialize package composes relative
//	measurements along.
//
// Determinism
//
//	Factors are scanned in graph handle order and their variables in tuple
//	order, so the visit sequence is fully reproducible.
//
// Complexity (V = |variables|, F = |factors|, k = max arity)
//
//   - Time:   O(V + F·k)
//   - Memory: O(V)
package bfs
