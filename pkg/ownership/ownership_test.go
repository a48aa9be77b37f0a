package ownership

import (
	"encoding/json"
	"testing"

	"github.com/claidex/backend/pkg/common"
)

func provider(npi, name string) common.Node {
	return common.Node{
		Ref:        common.NodeRef{Variant: common.VariantProvider, ID: npi},
		Attributes: map[string]any{"display_name": name},
	}
}

func entity(id, name string) common.Node {
	return common.Node{
		Ref:        common.NodeRef{Variant: common.VariantCorporateEntity, ID: id},
		Attributes: map[string]any{"name": name},
	}
}

func person(id, first, last string) common.Node {
	return common.Node{
		Ref:        common.NodeRef{Variant: common.VariantPerson, ID: id},
		Attributes: map[string]any{"first_name": first, "last_name": last},
	}
}

func owns(from, to common.Node, pct float64, role string) common.Edge {
	return common.Edge{
		From:     from.Ref,
		To:       to.Ref,
		Relation: common.RelationOwns,
		Attributes: map[string]any{
			"ownership_pct": pct,
			"role_code":     "34",
			"role_text":     role,
		},
	}
}

func step(edge common.Edge, node common.Node) common.PathStep {
	return common.PathStep{Edge: edge, Node: node}
}

func TestDirectOwnershipScenario(t *testing.T) {
	seed := provider("1234567890", "SUNRISE CARE LLC")
	e1 := entity("E1", "Sunrise Holdings")
	edge := owns(e1, seed, 60, "DIRECT OWNER")

	set := Collect(seed, []common.RawPath{{step(edge, e1)}})

	chain := ProjectChain(set)
	if len(chain) != 1 {
		t.Fatalf("expected 1 chain entry, got %d", len(chain))
	}
	got := chain[0]
	if got.EntityID != "E1" || got.Depth != 1 || got.EntityType != common.VariantCorporateEntity {
		t.Fatalf("unexpected chain entry: %+v", got)
	}
	if got.OwnershipPct == nil || *got.OwnershipPct != 60 {
		t.Fatalf("expected ownershipPct 60, got %v", got.OwnershipPct)
	}
	if got.RoleText != "DIRECT OWNER" {
		t.Fatalf("expected role text, got %q", got.RoleText)
	}

	graph := Assemble(set)
	if len(graph.Nodes) != 2 {
		t.Fatalf("expected seed + E1 nodes, got %d", len(graph.Nodes))
	}
	if len(graph.Edges) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(graph.Edges))
	}
	if graph.Edges[0].Source != "E1" || graph.Edges[0].Target != "1234567890" || graph.Edges[0].Relation != common.RelationOwns {
		t.Fatalf("unexpected edge: %+v", graph.Edges[0])
	}
}

func TestZeroOwnershipEdges(t *testing.T) {
	seed := provider("1234567890", "SUNRISE CARE LLC")
	set := Collect(seed, nil)

	if chain := ProjectChain(set); len(chain) != 0 {
		t.Fatalf("expected empty chain, got %d entries", len(chain))
	}

	graph := Assemble(set)
	if len(graph.Nodes) != 1 || graph.Nodes[0].ID != "1234567890" {
		t.Fatalf("expected seed-only node set, got %+v", graph.Nodes)
	}
	if len(graph.Edges) != 0 {
		t.Fatalf("expected no edges, got %d", len(graph.Edges))
	}
}

func TestSeedExcludedFromChain(t *testing.T) {
	seed := provider("1234567890", "SUNRISE CARE LLC")
	e1 := entity("E1", "Sunrise Holdings")
	p1 := person("P1", "Jane", "Doe")

	paths := []common.RawPath{
		{step(owns(e1, seed, 100, "OPERATOR"), e1), step(owns(p1, e1, 51, "OFFICER"), p1)},
	}
	chain := ProjectChain(Collect(seed, paths))

	for _, entry := range chain {
		if entry.EntityID == seed.Ref.ID {
			t.Fatalf("seed leaked into its own chain: %+v", entry)
		}
	}
	if len(chain) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(chain))
	}
}

func TestShortestDepthPrecedence(t *testing.T) {
	seed := provider("1234567890", "SUNRISE CARE LLC")
	e1 := entity("E1", "Mid Holdco")
	e2 := entity("E2", "Top Holdco")
	x := entity("X", "Crosslinked Capital")

	direct := owns(x, seed, 10, "SHORT PATH OWNER")
	long := owns(x, e2, 90, "LONG PATH OWNER")

	paths := []common.RawPath{
		// depth 1 via the direct edge
		{step(direct, x)},
		// depth 3 via the holdco chain
		{
			step(owns(e1, seed, 100, "OPERATOR"), e1),
			step(owns(e2, e1, 100, "HOLDING"), e2),
			step(long, x),
		},
	}

	chain := ProjectChain(Collect(seed, paths))
	var got *common.ChainEntry
	for i := range chain {
		if chain[i].EntityID == "X" {
			got = &chain[i]
		}
	}
	if got == nil {
		t.Fatal("entity X missing from chain")
	}
	if got.Depth != 1 {
		t.Fatalf("expected depth 1, got %d", got.Depth)
	}
	if got.OwnershipPct == nil || *got.OwnershipPct != 10 {
		t.Fatalf("expected the depth-1 edge attributes to win, got pct %v", got.OwnershipPct)
	}
	if got.RoleText != "SHORT PATH OWNER" {
		t.Fatalf("expected the depth-1 edge role, got %q", got.RoleText)
	}
}

func TestShortestDepthPrecedenceOrderIndependent(t *testing.T) {
	seed := provider("1234567890", "SUNRISE CARE LLC")
	e1 := entity("E1", "Mid Holdco")
	e2 := entity("E2", "Top Holdco")
	x := entity("X", "Crosslinked Capital")

	direct := owns(x, seed, 10, "SHORT PATH OWNER")
	long := owns(x, e2, 90, "LONG PATH OWNER")

	// Long path first: the later, shallower occurrence must still win.
	paths := []common.RawPath{
		{
			step(owns(e1, seed, 100, "OPERATOR"), e1),
			step(owns(e2, e1, 100, "HOLDING"), e2),
			step(long, x),
		},
		{step(direct, x)},
	}

	chain := ProjectChain(Collect(seed, paths))
	for _, entry := range chain {
		if entry.EntityID == "X" {
			if entry.Depth != 1 || entry.RoleText != "SHORT PATH OWNER" {
				t.Fatalf("shallower occurrence did not win: %+v", entry)
			}
			return
		}
	}
	t.Fatal("entity X missing from chain")
}

func TestChainSortedByDepthThenName(t *testing.T) {
	seed := provider("1234567890", "SUNRISE CARE LLC")
	b := entity("B", "beta partners")
	a := entity("A", "Alpha Partners")
	deep := entity("D", "AAA Deep Holdco")

	paths := []common.RawPath{
		{step(owns(b, seed, 50, "OWNER"), b)},
		{step(owns(a, seed, 50, "OWNER"), a)},
		{step(owns(b, seed, 50, "OWNER"), b), step(owns(deep, b, 100, "HOLDING"), deep)},
	}

	chain := ProjectChain(Collect(seed, paths))
	if len(chain) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(chain))
	}
	// depth 1 sorted case-insensitively, then depth 2
	if chain[0].EntityID != "A" || chain[1].EntityID != "B" || chain[2].EntityID != "D" {
		t.Fatalf("unexpected order: %s, %s, %s", chain[0].EntityID, chain[1].EntityID, chain[2].EntityID)
	}
}

func TestNonOwnershipVariantsExcludedFromChain(t *testing.T) {
	seed := provider("1234567890", "SUNRISE CARE LLC")
	excl := common.Node{
		Ref:        common.NodeRef{Variant: common.VariantExclusion, ID: "EX1"},
		Attributes: map[string]any{},
	}
	leaked := common.Edge{From: seed.Ref, To: excl.Ref, Relation: common.RelationExcludedBy}

	set := Collect(seed, []common.RawPath{{step(leaked, excl)}})

	if chain := ProjectChain(set); len(chain) != 0 {
		t.Fatalf("exclusion node leaked into chain: %+v", chain)
	}
	// The assembler still renders it; only the chain filters variants.
	if graph := Assemble(set); len(graph.Nodes) != 2 {
		t.Fatalf("expected 2 graph nodes, got %d", len(graph.Nodes))
	}
}

func TestRepeatedNodeWithinSinglePath(t *testing.T) {
	seed := provider("1234567890", "SUNRISE CARE LLC")
	e1 := entity("E1", "Loop Holdco")

	// Self-referential edge data: E1 appears twice within one path.
	paths := []common.RawPath{
		{
			step(owns(e1, seed, 60, "OWNER"), e1),
			step(owns(e1, e1, 100, "SELF"), e1),
		},
	}

	set := Collect(seed, paths)
	if set.Len() != 2 {
		t.Fatalf("expected 2 distinct nodes, got %d", set.Len())
	}
	chain := ProjectChain(set)
	if len(chain) != 1 || chain[0].Depth != 1 {
		t.Fatalf("expected single depth-1 entry for E1, got %+v", chain)
	}
}

func TestAssembleIdempotent(t *testing.T) {
	seed := provider("1234567890", "SUNRISE CARE LLC")
	e1 := entity("E1", "Sunrise Holdings")
	p1 := person("P1", "Jane", "Doe")

	paths := []common.RawPath{
		{step(owns(e1, seed, 60, "OWNER"), e1)},
		{step(owns(e1, seed, 60, "OWNER"), e1), step(owns(p1, e1, 51, "OFFICER"), p1)},
	}

	first := Assemble(Collect(seed, paths))
	second := Assemble(Collect(seed, paths))

	a, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	b, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(a) != string(b) {
		t.Fatalf("assembly not idempotent:\n%s\n%s", a, b)
	}
}

func TestEveryEdgeEndpointPresentInNodes(t *testing.T) {
	seed := provider("1234567890", "SUNRISE CARE LLC")
	e1 := entity("E1", "Sunrise Holdings")
	e2 := entity("E2", "Second Holdings")

	paths := []common.RawPath{
		{step(owns(e1, seed, 60, "OWNER"), e1)},
		{step(owns(e2, seed, 40, "OWNER"), e2)},
		{step(owns(e1, seed, 60, "OWNER"), e1), step(owns(e2, e1, 10, "MINORITY"), e2)},
	}

	graph := Assemble(Collect(seed, paths))
	ids := make(map[string]bool, len(graph.Nodes))
	for _, n := range graph.Nodes {
		ids[n.ID] = true
	}
	for _, e := range graph.Edges {
		if !ids[e.Source] || !ids[e.Target] {
			t.Fatalf("edge %s references missing node", e.ID)
		}
	}

	// Parallel duplicate edges seen via multiple paths collapse to one.
	seen := make(map[string]bool, len(graph.Edges))
	for _, e := range graph.Edges {
		if seen[e.ID] {
			t.Fatalf("duplicate edge id %s", e.ID)
		}
		seen[e.ID] = true
	}
	if len(graph.Edges) != 3 {
		t.Fatalf("expected 3 distinct edges, got %d", len(graph.Edges))
	}
}
