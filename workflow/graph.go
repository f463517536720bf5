// Copyright 2020-2021, DataCube, Inc.

package workflow

import (
	"github.com/datacube-org/cubeclient/proto"
)

// node is one vertex in the ephemeral dependency graph built for a single
// cycle check. Edges are task indexes; consumed edges are tracked in bitsets
// so the arena is never mutated in place.
type node struct {
	index       int
	in          []int // indexes of tasks this task depends on
	out         []int // indexes of tasks depending on this task
	inConsumed  []bool
	outConsumed []bool
	inLive      int
	outLive     int
}

// isDAG runs Kahn's topological sort over the resolved dependency edges.
// Each processed node consumes its out-edges together with the matching
// in-edges of its targets; a target whose live in-degree drains to zero
// joins the frontier. If any edge is still live when the frontier empties,
// the graph retains a cycle. This catches disjoint cyclic components too:
// they are never reachable from a zero-in-degree node, so their edges are
// never consumed.
//
// Precondition: Validate's cross-reference pass has resolved TaskIndex and
// DependentsIndexes on tasks.
func isDAG(tasks []*proto.Task) bool {
	nodes := make([]*node, len(tasks))
	for i, t := range tasks {
		n := &node{index: i}
		for _, dep := range t.Dependencies {
			n.in = append(n.in, dep.TaskIndex)
		}
		n.out = append(n.out, t.DependentsIndexes...)
		n.inConsumed = make([]bool, len(n.in))
		n.outConsumed = make([]bool, len(n.out))
		n.inLive = len(n.in)
		n.outLive = len(n.out)
		nodes[i] = n
	}

	var frontier []*node
	for _, n := range nodes {
		if n.inLive == 0 {
			frontier = append(frontier, n)
		}
	}

	for len(frontier) > 0 {
		n := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		for ei, mi := range n.out {
			if n.outConsumed[ei] {
				continue
			}
			n.outConsumed[ei] = true
			n.outLive--

			// Consume the matching live in-edge of the target.
			m := nodes[mi]
			for ej, pi := range m.in {
				if !m.inConsumed[ej] && pi == n.index {
					m.inConsumed[ej] = true
					m.inLive--
					break
				}
			}
			if m.inLive == 0 {
				frontier = append(frontier, m)
			}
		}
	}

	for _, n := range nodes {
		if n.inLive != 0 || n.outLive != 0 {
			return false
		}
	}
	return true
}
