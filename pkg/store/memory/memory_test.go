package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/claidex/backend/pkg/common"
	"github.com/claidex/backend/pkg/store"
)

func newEntity(id string) common.Node {
	return common.Node{
		Ref:        common.NodeRef{Variant: common.VariantCorporateEntity, ID: id},
		Attributes: map[string]any{"name": "Entity " + id},
	}
}

func newProvider(npi string) common.Node {
	return common.Node{
		Ref:        common.NodeRef{Variant: common.VariantProvider, ID: npi},
		Attributes: map[string]any{"display_name": "Provider " + npi},
	}
}

func mustAddEdge(t *testing.T, s *Store, from, to common.Node, relation string) {
	t.Helper()
	err := s.AddEdge(common.Edge{
		From:       from.Ref,
		To:         to.Ref,
		Relation:   relation,
		Attributes: map[string]any{"ownership_pct": 100.0},
	})
	if err != nil {
		t.Fatalf("add edge: %v", err)
	}
}

// linearChain builds p -> e1 -> e2 -> ... -> en (each owned by the next).
func linearChain(t *testing.T, s *Store, length int) common.Node {
	t.Helper()
	seed := newProvider("1234567890")
	s.AddNode(seed)
	prev := seed
	for i := 1; i <= length; i++ {
		e := newEntity(fmt.Sprintf("E%d", i))
		s.AddNode(e)
		mustAddEdge(t, s, e, prev, common.RelationOwns)
		prev = e
	}
	return seed
}

func TestUnknownSeed(t *testing.T) {
	s := NewStore()
	_, err := s.FindOwnershipPaths(context.Background(), common.NodeRef{Variant: common.VariantProvider, ID: "0000000000"}, 3)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDepthClamp(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		wantMax   int
	}{
		{"Zero", 0, 1},
		{"Negative", -3, 1},
		{"InRange", 3, 3},
		{"AtCap", 5, 5},
		{"AboveCap", 99, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewStore()
			seed := linearChain(t, s, 7)

			res, err := s.FindOwnershipPaths(context.Background(), seed.Ref, tc.requested)
			if err != nil {
				t.Fatalf("traverse: %v", err)
			}
			longest := 0
			for _, p := range res.Paths {
				if len(p) > longest {
					longest = len(p)
				}
			}
			if longest != tc.wantMax {
				t.Fatalf("requested depth %d: longest path %d, want %d", tc.requested, longest, tc.wantMax)
			}
		})
	}
}

func TestPathCapTruncatesSilently(t *testing.T) {
	s := NewStore()
	seed := newProvider("1234567890")
	s.AddNode(seed)
	for i := 0; i < store.MaxPaths+100; i++ {
		e := newEntity(fmt.Sprintf("E%d", i))
		s.AddNode(e)
		mustAddEdge(t, s, e, seed, common.RelationOwns)
	}

	res, err := s.FindOwnershipPaths(context.Background(), seed.Ref, 2)
	if err != nil {
		t.Fatalf("traverse: %v", err)
	}
	if len(res.Paths) != store.MaxPaths {
		t.Fatalf("expected %d paths, got %d", store.MaxPaths, len(res.Paths))
	}
	if !res.Truncated {
		t.Fatal("expected truncation to be flagged")
	}
}

func TestTraversalWalksBothDirections(t *testing.T) {
	s := NewStore()
	seed := newProvider("1234567890")
	owner := newEntity("OWNER")
	owned := newEntity("SUBSIDIARY")
	s.AddNode(seed)
	s.AddNode(owner)
	s.AddNode(owned)
	// owner -> seed and seed -> owned; both must be reachable from seed.
	mustAddEdge(t, s, owner, seed, common.RelationOwns)
	mustAddEdge(t, s, seed, owned, common.RelationControlledBy)

	res, err := s.FindOwnershipPaths(context.Background(), seed.Ref, 1)
	if err != nil {
		t.Fatalf("traverse: %v", err)
	}
	found := map[string]bool{}
	for _, p := range res.Paths {
		for _, st := range p {
			found[st.Node.Ref.ID] = true
		}
	}
	if !found["OWNER"] || !found["SUBSIDIARY"] {
		t.Fatalf("expected both directions reachable, got %v", found)
	}
}

func TestNonOwnershipRelationsIgnored(t *testing.T) {
	s := NewStore()
	seed := newProvider("1234567890")
	excl := common.Node{Ref: common.NodeRef{Variant: common.VariantExclusion, ID: "EX1"}}
	s.AddNode(seed)
	s.AddNode(excl)
	mustAddEdge(t, s, seed, excl, common.RelationExcludedBy)

	res, err := s.FindOwnershipPaths(context.Background(), seed.Ref, 3)
	if err != nil {
		t.Fatalf("traverse: %v", err)
	}
	if len(res.Paths) != 0 {
		t.Fatalf("expected no ownership paths, got %d", len(res.Paths))
	}
	if res.Seed.Ref != seed.Ref {
		t.Fatalf("expected seed node returned, got %+v", res.Seed.Ref)
	}
}
