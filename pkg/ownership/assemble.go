package ownership

import (
	"sort"

	"github.com/claidex/backend/pkg/common"
)

// Assemble converts a path set into the renderable node/edge graph. Node and
// edge identity follows the underlying entity ids, not path occurrence, so a
// node reachable via two distinct paths appears once. Output order is fixed
// (nodes by type then id, edges by id) so assembling the same input twice
// yields byte-identical JSON.
//
// Cycles are passed through untouched; the UI renderer handles them
// visually.
func Assemble(set *PathSet) common.GraphProjection {
	nodes := make([]common.GraphNode, 0, len(set.nodeOrder))
	for _, key := range set.nodeOrder {
		node := set.nodes[key]
		nodes = append(nodes, common.GraphNode{
			ID:    node.Ref.ID,
			Type:  node.Ref.Variant,
			Label: nodeLabel(node.Attributes, node.Ref.Variant, node.Ref.ID),
			Data:  node.Attributes,
		})
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Type != nodes[j].Type {
			return nodes[i].Type < nodes[j].Type
		}
		return nodes[i].ID < nodes[j].ID
	})

	edges := make([]common.GraphEdge, 0, len(set.edgeOrder))
	for _, key := range set.edgeOrder {
		edge := set.edges[key]
		edges = append(edges, common.GraphEdge{
			ID:       edgeID(edge),
			Source:   edge.From.ID,
			Target:   edge.To.ID,
			Relation: edge.Relation,
		})
	}
	sort.Slice(edges, func(i, j int) bool {
		return edges[i].ID < edges[j].ID
	})

	return common.GraphProjection{Nodes: nodes, Edges: edges}
}

// edgeID derives a stable identifier from (source, target, relation).
func edgeID(edge common.Edge) string {
	return edge.From.ID + ":" + edge.Relation + ":" + edge.To.ID
}
