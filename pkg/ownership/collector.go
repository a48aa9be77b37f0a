// Package ownership reduces raw bounded-depth path sets into the two shapes
// the UI consumes: a flattened, depth-ordered ownership chain and a
// deduplicated renderable graph. All state is request-local; nothing here
// touches a store.
package ownership

import "github.com/claidex/backend/pkg/common"

// PathSet is the deduplicated view of one traversal: unique nodes, unique
// edges, the minimum hop distance each node was seen at, and the edge that
// produced that minimum-depth occurrence.
type PathSet struct {
	Seed common.Node

	nodes  map[string]common.Node
	depth  map[string]int
	origin map[string]common.Edge
	edges  map[string]common.Edge

	// first-seen orders, so downstream sorts have a stable starting point
	nodeOrder []string
	edgeOrder []string
}

// Collect folds raw paths into a PathSet. Nodes dedupe by variant+id, edges
// by (from, to, relation); when a node is reachable at several depths the
// shortest wins, and at equal depth the first-encountered edge wins.
//
// Input paths are already depth-bounded by the adapter, so no cycle
// detection is needed; a node repeating inside a single path (self-referential
// edge data) is treated as already visited and that occurrence is not
// expanded further.
func Collect(seed common.Node, paths []common.RawPath) *PathSet {
	set := &PathSet{
		Seed:   seed,
		nodes:  make(map[string]common.Node),
		depth:  make(map[string]int),
		origin: make(map[string]common.Edge),
		edges:  make(map[string]common.Edge),
	}
	set.addNode(seed, 0, nil)

	for _, path := range paths {
		depth := 0
		onPath := map[string]bool{seed.Ref.Key(): true}
		for _, step := range path {
			depth++
			set.addEdge(step.Edge)

			key := step.Node.Ref.Key()
			if onPath[key] {
				set.addNode(step.Node, depth, &step.Edge)
				break
			}
			onPath[key] = true
			set.addNode(step.Node, depth, &step.Edge)
		}
	}

	return set
}

// Len reports the number of distinct nodes, seed included.
func (s *PathSet) Len() int {
	return len(s.nodes)
}

// MaxObservedDepth reports the deepest minimum-depth across all nodes.
func (s *PathSet) MaxObservedDepth() int {
	max := 0
	for _, d := range s.depth {
		if d > max {
			max = d
		}
	}
	return max
}

func (s *PathSet) addNode(node common.Node, depth int, via *common.Edge) {
	key := node.Ref.Key()
	current, seen := s.depth[key]
	if !seen {
		s.nodes[key] = node
		s.depth[key] = depth
		s.nodeOrder = append(s.nodeOrder, key)
		if via != nil {
			s.origin[key] = *via
		}
		return
	}
	if depth < current {
		s.depth[key] = depth
		if via != nil {
			s.origin[key] = *via
		}
	}
}

func (s *PathSet) addEdge(edge common.Edge) {
	key := edge.Key()
	if _, seen := s.edges[key]; seen {
		return
	}
	s.edges[key] = edge
	s.edgeOrder = append(s.edgeOrder, key)
}
