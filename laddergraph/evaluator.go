package laddergraph

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/smith-doug/descartes-light/referenceframe"
)

// EdgeEvaluator scores the transitions between two adjacent rungs. The returned slice has one
// edge list per node of the from rung; ok reports whether at least one edge was produced.
type EdgeEvaluator interface {
	Evaluate(from, to *Rung) (edges [][]Edge, ok bool)
}

// EuclideanDistanceEdgeEvaluator scores an edge by the squared Euclidean distance between the
// joint samples it connects.
type EuclideanDistanceEdgeEvaluator struct{}

// Evaluate produces the full bipartite edge set between the two rungs.
func (EuclideanDistanceEdgeEvaluator) Evaluate(from, to *Rung) ([][]Edge, bool) {
	edges := make([][]Edge, len(from.Nodes))
	for i, start := range from.Nodes {
		for j, end := range to.Nodes {
			cost := 0.0
			for k := range start.Sample {
				d := end.Sample[k].Value - start.Sample[k].Value
				cost += d * d
			}
			edges[i] = append(edges[i], Edge{Cost: cost, Next: j})
		}
	}
	for _, list := range edges {
		if len(list) > 0 {
			return edges, true
		}
	}
	return edges, false
}

// AddRungSamples appends a rung populated with the given joint samples. Samples must match the
// graph's joint dimension.
func (g *LadderGraph) AddRungSamples(samples [][]referenceframe.Input) error {
	rung := Rung{ID: uuid.New()}
	for _, sample := range samples {
		if len(sample) != g.dof {
			return errors.Errorf("sample has %d joints, graph expects %d", len(sample), g.dof)
		}
		rung.Nodes = append(rung.Nodes, Node{Sample: sample})
	}
	g.rungs = append(g.rungs, rung)
	return nil
}

// BuildEdges runs the evaluator over every adjacent rung pair, storing the resulting edges on
// the from-side nodes. It fails if any interior rung produces no outgoing edges, since no path
// can cross it; the graph summary is included for diagnosis.
func (g *LadderGraph) BuildEdges(evaluator EdgeEvaluator) error {
	for i := 0; i+1 < len(g.rungs); i++ {
		edges, ok := evaluator.Evaluate(&g.rungs[i], &g.rungs[i+1])
		if !ok {
			return errors.Errorf("no valid edges between rungs %d and %d:%s", i, i+1, g.String())
		}
		for j := range g.rungs[i].Nodes {
			g.rungs[i].Nodes[j].Edges = edges[j]
		}
	}
	return nil
}
