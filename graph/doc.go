// Package graph holds the factor graph of a MAP problem and its prepared,
// batch-evaluable form.
//
// Graph:
//
//	A Graph is an arena of factors addressed by dense handles, plus two
//	indices kept as Roaring bitmaps of handles:
//
//	    groups:     GroupKey  → factors sharing (Kind, argument types, ErrorDim)
//	    byVariable: *Variable → factors that reference the variable
//
//	Every factor sits in exactly one group, and byVariable is exactly the
//	inverse of the factor → variables relation.
//
// Ownership:
//
//	Graphs are never changed in place. WithFactors and WithoutFactors return a
//	new Graph and consume the receiver: any further WithFactors, WithoutFactors
//	or Prepare call on it returns ErrGraphConsumed. Queries on a consumed graph
//	still answer from its (unchanged) snapshot. A call that fails with a
//	structural error consumes nothing.
//
// Stacked:
//
//	Prepare fixes the evaluation plan of a Graph against a core.Layout: group
//	order, per-factor storage and tangent offsets, residual row offsets and
//	Jacobian block slots. A Stacked graph is immutable and safe for concurrent
//	use; it evaluates residuals, cost and the block Jacobian of any assignment
//	store built over a compatible layout. Each group is evaluated in spans of
//	consecutive factors; when a group's factors implement core.BatchFactor a
//	span's residuals come from one UnwhitenedErrorBatch call. With
//	WithWorkers(n) the spans hold at most ceil(len/n) factors and run
//	concurrently through an errgroup; factors must then tolerate concurrent
//	evaluation.
//
// Errors (sentinel):
//
//	– ErrNilFactor        a nil factor was supplied.
//	– ErrDuplicateFactor  a factor is already in the graph (or listed twice).
//	– ErrFactorNotFound   removal of a factor that is not in the graph.
//	– ErrGraphConsumed    the graph was already handed to WithFactors/WithoutFactors.
//	– ErrUnknownVariable  a factor references a variable missing from the layout.
//	– ErrLayoutMismatch   an assignment store does not match the prepared layout.
package graph
