package bfs

import (
	"github.com/katalvlaran/factorgraph/core"
	"github.com/katalvlaran/factorgraph/graph"
)

// Component is one connected set of variables.
type Component struct {
	// Variables in BFS order from the component's first variable.
	Variables []*core.Variable

	// Anchored reports whether some unary factor touches the component.
	Anchored bool
}

// Components partitions g's variables into connected components, ordered by
// first appearance in g.Variables().
// Complexity: O(V + F·k).
func Components(g *graph.Graph) ([]Component, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	seen := make(map[*core.Variable]bool)
	var out []Component
	for _, v := range g.Variables() {
		if seen[v] {
			continue
		}
		res, err := BFS(g, v)
		if err != nil {
			return nil, err
		}
		c := Component{Variables: res.Order}
		for _, u := range res.Order {
			seen[u] = true
			if !c.Anchored {
				c.Anchored = hasUnary(g, u)
			}
		}
		out = append(out, c)
	}

	return out, nil
}

func hasUnary(g *graph.Graph, v *core.Variable) bool {
	for _, f := range g.FactorsOf(v) {
		if len(f.Variables()) == 1 {
			return true
		}
	}

	return false
}
