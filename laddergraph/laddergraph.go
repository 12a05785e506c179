// Package laddergraph builds a rung-and-node graph over per-waypoint joint samples and searches
// it with dynamic programming. It serves as a cheap discrete refinement of a stationary seed
// trajectory before the continuous optimizer runs.
package laddergraph

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/smith-doug/descartes-light/referenceframe"
)

// Edge connects a node to a node on the next rung, weighted by the evaluator's cost.
type Edge struct {
	Cost float64
	// Next is the index of the destination node within the following rung.
	Next int
}

// Node is one joint sample at a waypoint, with its outgoing edges.
type Node struct {
	Sample []referenceframe.Input
	Edges  []Edge
}

// Rung holds all candidate joint samples for one waypoint.
type Rung struct {
	ID    uuid.UUID
	Nodes []Node
}

// NumEdges returns the total outgoing edge count across the rung's nodes.
func (r *Rung) NumEdges() int {
	count := 0
	for _, node := range r.Nodes {
		count += len(node.Edges)
	}
	return count
}

// LadderGraph is a directed layered graph: one rung per waypoint, edges only between adjacent
// rungs. A path visits exactly one node per rung.
type LadderGraph struct {
	dof   int
	rungs []Rung
}

// NewLadderGraph creates an empty graph for chains with the given degrees of freedom.
func NewLadderGraph(dof int) *LadderGraph {
	return &LadderGraph{dof: dof}
}

// DoF returns the joint dimension all samples in the graph must have.
func (g *LadderGraph) DoF() int {
	return g.dof
}

// Resize grows or shrinks the graph to hold n rungs, preserving existing rungs.
func (g *LadderGraph) Resize(n int) {
	if n <= len(g.rungs) {
		g.rungs = g.rungs[:n]
		return
	}
	for len(g.rungs) < n {
		g.rungs = append(g.rungs, Rung{ID: uuid.New()})
	}
}

// Size returns the number of rungs.
func (g *LadderGraph) Size() int {
	return len(g.rungs)
}

// Rung returns a pointer to the rung at the given index.
func (g *LadderGraph) Rung(index int) *Rung {
	return &g.rungs[index]
}

// RungSize returns the number of nodes on the rung at the given index.
func (g *LadderGraph) RungSize(index int) int {
	return len(g.rungs[index].Nodes)
}

// NumVertices returns the total node count across all rungs.
func (g *LadderGraph) NumVertices() int {
	count := 0
	for _, rung := range g.rungs {
		count += len(rung.Nodes)
	}
	return count
}

// IndexOf returns the index of the rung with the given ID, and whether it was found.
func (g *LadderGraph) IndexOf(id uuid.UUID) (int, bool) {
	for i, rung := range g.rungs {
		if rung.ID == id {
			return i, true
		}
	}
	return 0, false
}

// IsFirst reports whether the index names the first rung.
func (g *LadderGraph) IsFirst(index int) bool {
	return index == 0
}

// IsLast reports whether the index names the last rung.
func (g *LadderGraph) IsLast(index int) bool {
	return index+1 == len(g.rungs)
}

// RemoveRung deletes the rung at the given index.
func (g *LadderGraph) RemoveRung(index int) {
	g.rungs = append(g.rungs[:index], g.rungs[index+1:]...)
}

// InsertRung inserts an empty rung at the given index.
func (g *LadderGraph) InsertRung(index int) {
	g.rungs = append(g.rungs, Rung{})
	copy(g.rungs[index+1:], g.rungs[index:])
	g.rungs[index] = Rung{ID: uuid.New()}
}

// ClearNodes removes all nodes from the rung at the given index.
func (g *LadderGraph) ClearNodes(index int) {
	g.rungs[index].Nodes = nil
}

// ClearEdges removes the outgoing edges from every node on the rung at the given index.
func (g *LadderGraph) ClearEdges(index int) {
	for i := range g.rungs[index].Nodes {
		g.rungs[index].Nodes[i].Edges = nil
	}
}

// Clear removes all rungs.
func (g *LadderGraph) Clear() {
	g.rungs = nil
}

// String summarizes rung sizes and outgoing edge counts, reporting any interior rung whose
// nodes all failed to connect to the next rung.
func (g *LadderGraph) String() string {
	var sb strings.Builder
	sb.WriteString("\nRung\t(Nodes)\t|# Outgoing Edges|\n")

	var failed []int
	for i, rung := range g.rungs {
		fmt.Fprintf(&sb, "%d\t(%d)\t|%d|\n", i, len(rung.Nodes), rung.NumEdges())
		if rung.NumEdges() == 0 && len(rung.Nodes) > 0 && i < len(g.rungs)-1 {
			failed = append(failed, i)
		}
	}

	if len(failed) > 0 {
		sb.WriteString("\nFailed edges:\n")
		for _, index := range failed {
			from, to := g.rungs[index], g.rungs[index+1]
			if len(from.Nodes) == 0 || len(to.Nodes) == 0 {
				continue
			}
			fmt.Fprintf(&sb, "Rung # %d\n", index)
			a, b := from.Nodes[0].Sample, to.Nodes[0].Sample
			for j := 0; j < len(a) && j < len(b); j++ {
				fmt.Fprintf(&sb, "\t%.4f\t|\t%.4f\n", a[j].Value, b[j].Value)
			}
		}
	}
	return sb.String()
}
