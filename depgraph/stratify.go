package depgraph

import (
	"fmt"

	"github.com/elektrokombinacija/swarmweld/swerr"
)

const (
	white = iota
	gray
	black
)

// generations computes, for every node, its longest path length from any
// root — generation 0 is every root. A back-edge during the DFS means the
// graph is not acyclic.
func (g *Graph) generations() (map[NodeID]int, error) {
	gen := make(map[NodeID]int, len(g.order))
	state := make(map[NodeID]int, len(g.order))

	var visit func(n NodeID) error
	visit = func(n NodeID) error {
		switch state[n] {
		case gray:
			return fmt.Errorf("depgraph: node %v: %w", n, swerr.ErrCycleDetected)
		case black:
			return nil
		}
		state[n] = gray
		best := 0
		for _, p := range g.parents[n] {
			if err := visit(p); err != nil {
				return err
			}
			if gen[p]+1 > best {
				best = gen[p] + 1
			}
		}
		gen[n] = best
		state[n] = black
		return nil
	}

	for _, n := range g.order {
		if err := visit(n); err != nil {
			return nil, err
		}
	}
	return gen, nil
}

// Stratify groups nodes into buckets of delta consecutive topological
// generations (generation i holds nodes whose longest path from any root is
// i) and returns one induced subgraph per bucket, in generation order. Edges
// crossing a bucket boundary are dropped — this is a coarse partition for
// parallelism, not a correctness-preserving decomposition: callers plan each
// stratum independently and merge.
func (g *Graph) Stratify(delta int) ([]*Graph, error) {
	if delta < 1 {
		delta = 1
	}
	gen, err := g.generations()
	if err != nil {
		return nil, err
	}

	maxGen := 0
	for _, v := range gen {
		if v > maxGen {
			maxGen = v
		}
	}

	nBuckets := maxGen/delta + 1
	buckets := make([][]NodeID, nBuckets)
	for _, n := range g.order {
		b := gen[n] / delta
		buckets[b] = append(buckets[b], n)
	}

	out := make([]*Graph, 0, nBuckets)
	for _, nodes := range buckets {
		if len(nodes) > 0 {
			out = append(out, g.induce(nodes))
		}
	}
	return out, nil
}

// Batch partitions nodes into greedy fixed-size groups of at most maxNodes,
// in node-insertion order, and returns one induced subgraph per group. Edges
// crossing a group boundary are dropped for the same reason as Stratify.
func (g *Graph) Batch(maxNodes int) []*Graph {
	if maxNodes < 1 {
		maxNodes = 1
	}
	var out []*Graph
	for i := 0; i < len(g.order); i += maxNodes {
		end := i + maxNodes
		if end > len(g.order) {
			end = len(g.order)
		}
		out = append(out, g.induce(g.order[i:end]))
	}
	return out
}

// induce builds the subgraph restricted to nodes, keeping only edges whose
// both endpoints are in the set and carrying over completion state.
func (g *Graph) induce(nodes []NodeID) *Graph {
	set := make(map[NodeID]struct{}, len(nodes))
	for _, n := range nodes {
		set[n] = struct{}{}
	}

	sub := New()
	for _, n := range nodes {
		var parents []NodeID
		for _, p := range g.parents[n] {
			if _, ok := set[p]; ok {
				parents = append(parents, p)
			}
		}
		sub.AddNode(n, parents...)
		if _, ok := g.completed[n]; ok {
			sub.completed[n] = struct{}{}
		}
	}
	return sub
}
