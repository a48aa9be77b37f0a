package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/claidex/backend/pkg/common"
	"github.com/claidex/backend/pkg/store"
)

// Store is an in-memory adjacency-list implementation of store.GraphQuery.
// It backs the test suite and small single-tenant deployments where running
// Neo4j is not worth it; the traversal semantics mirror the Cypher query
// (all paths of length 1..depth, either edge direction, MaxPaths cap).
type Store struct {
	mu    sync.RWMutex
	nodes map[string]common.Node
	// adjacency is keyed by node key; each entry holds the edges incident to
	// that node (both directions) in insertion order, which makes traversal
	// order and therefore truncation deterministic.
	adjacency map[string][]common.Edge
}

// NewStore returns an empty in-memory graph.
func NewStore() *Store {
	return &Store{
		nodes:     make(map[string]common.Node),
		adjacency: make(map[string][]common.Edge),
	}
}

// AddNode registers a node, replacing any previous node with the same
// variant+id.
func (s *Store) AddNode(node common.Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes[node.Ref.Key()] = node
}

// AddEdge registers a directed edge. Both endpoints must have been added
// first so traversal can materialize full nodes.
func (s *Store) AddEdge(edge common.Edge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.nodes[edge.From.Key()]; !ok {
		return fmt.Errorf("edge source %s not in graph", edge.From.Key())
	}
	if _, ok := s.nodes[edge.To.Key()]; !ok {
		return fmt.Errorf("edge target %s not in graph", edge.To.Key())
	}
	s.adjacency[edge.From.Key()] = append(s.adjacency[edge.From.Key()], edge)
	s.adjacency[edge.To.Key()] = append(s.adjacency[edge.To.Key()], edge)
	return nil
}

// FindOwnershipPaths enumerates every simple path of 1..maxDepth hops from
// the seed along OWNS/CONTROLLED_BY edges in either direction, stopping once
// store.MaxPaths paths have been collected.
func (s *Store) FindOwnershipPaths(ctx context.Context, seed common.NodeRef, maxDepth int) (*store.OwnershipPaths, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	seedNode, ok := s.nodes[seed.Key()]
	if !ok {
		return nil, fmt.Errorf("seed %s: %w", seed.Key(), common.ErrNotFound)
	}

	depth := store.ClampDepth(maxDepth)

	paths := make([]common.RawPath, 0)
	visited := map[string]bool{seed.Key(): true}
	s.walk(seed, nil, visited, depth, &paths)

	truncated := len(paths) >= store.MaxPaths
	if truncated {
		paths = paths[:store.MaxPaths]
	}

	return &store.OwnershipPaths{
		Seed:      seedNode,
		Paths:     paths,
		Truncated: truncated,
	}, nil
}

func (s *Store) walk(at common.NodeRef, prefix common.RawPath, visited map[string]bool, remaining int, out *[]common.RawPath) {
	if remaining == 0 || len(*out) >= store.MaxPaths {
		return
	}
	for _, edge := range s.adjacency[at.Key()] {
		if edge.Relation != common.RelationOwns && edge.Relation != common.RelationControlledBy {
			continue
		}
		next := edge.To
		if next.Key() == at.Key() {
			next = edge.From
		}
		if visited[next.Key()] {
			continue
		}

		step := common.PathStep{Edge: edge, Node: s.nodes[next.Key()]}
		path := make(common.RawPath, len(prefix), len(prefix)+1)
		copy(path, prefix)
		path = append(path, step)

		*out = append(*out, path)
		if len(*out) >= store.MaxPaths {
			return
		}

		visited[next.Key()] = true
		s.walk(next, path, visited, remaining-1, out)
		delete(visited, next.Key())
	}
}
