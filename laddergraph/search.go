package laddergraph

import (
	"math"

	"github.com/pkg/errors"

	"github.com/smith-doug/descartes-light/referenceframe"
)

// SolvePath finds the minimum-total-cost path visiting one node per rung, by dynamic
// programming backwards from the last rung. It returns the chosen joint sample per rung and
// the total path cost.
func (g *LadderGraph) SolvePath() ([][]referenceframe.Input, float64, error) {
	if len(g.rungs) == 0 {
		return nil, 0, errors.New("cannot search an empty ladder graph")
	}
	for i, rung := range g.rungs {
		if len(rung.Nodes) == 0 {
			return nil, 0, errors.Errorf("rung %d has no nodes", i)
		}
	}

	// costToGo[i][j] is the cheapest completion from node j of rung i to the last rung;
	// next[i][j] is the node on rung i+1 achieving it
	costToGo := make([][]float64, len(g.rungs))
	next := make([][]int, len(g.rungs))
	last := len(g.rungs) - 1
	costToGo[last] = make([]float64, len(g.rungs[last].Nodes))

	for i := last - 1; i >= 0; i-- {
		rung := g.rungs[i]
		costToGo[i] = make([]float64, len(rung.Nodes))
		next[i] = make([]int, len(rung.Nodes))
		for j, node := range rung.Nodes {
			best := math.Inf(1)
			bestNext := -1
			for _, edge := range node.Edges {
				if total := edge.Cost + costToGo[i+1][edge.Next]; total < best {
					best = total
					bestNext = edge.Next
				}
			}
			if bestNext < 0 {
				return nil, 0, errors.Errorf("node %d of rung %d has no outgoing edges", j, i)
			}
			costToGo[i][j] = best
			next[i][j] = bestNext
		}
	}

	start := 0
	for j := range costToGo[0] {
		if costToGo[0][j] < costToGo[0][start] {
			start = j
		}
	}

	path := make([][]referenceframe.Input, 0, len(g.rungs))
	for i, j := 0, start; ; i, j = i+1, next[i][j] {
		path = append(path, g.rungs[i].Nodes[j].Sample)
		if i == last {
			break
		}
	}
	return path, costToGo[0][start], nil
}
