// Package initialize seeds assignments for a pose-graph solve from the
// graph's own measurements.
//
// SpanningTree walks every connected component breadth-first along Between
// factors, starting at a variable anchored by a Prior (placed at the prior
// mean) or, when the component has no prior, at its first variable (kept at
// its current value). Each newly reached variable is placed exactly where
// the discovering measurement predicts it:
//
//	after  = before ⊕ δ        (reached forward)
//	before = after  ⊕ (−δ)     (reached backward)
//
// The tree edges then carry zero residual, so the solver starts from a
// consistent odometry chain instead of the type defaults.
package initialize
