package ownership

import (
	"testing"

	"github.com/claidex/backend/pkg/common"
)

func TestSummarize(t *testing.T) {
	seed := provider("1234567890", "SUNRISE CARE LLC")
	e1 := entity("E1", "Sunrise Holdings")
	pe := common.Node{
		Ref: common.NodeRef{Variant: common.VariantCorporateEntity, ID: "PE1"},
		Attributes: map[string]any{
			"name":                "Apex Capital Partners",
			"flag_private_equity": "true",
		},
	}

	paths := []common.RawPath{
		{step(owns(e1, seed, 60, "OWNER"), e1)},
		{step(owns(e1, seed, 60, "OWNER"), e1), step(owns(pe, e1, 80, "HOLDING"), pe)},
	}

	rollup := Summarize(Collect(seed, paths))
	if rollup.OwnerCount != 2 {
		t.Fatalf("expected 2 owners, got %d", rollup.OwnerCount)
	}
	if rollup.MaxDepth != 2 {
		t.Fatalf("expected max depth 2, got %d", rollup.MaxDepth)
	}
	if rollup.MaxOwnershipPct == nil || *rollup.MaxOwnershipPct != 80 {
		t.Fatalf("expected max pct 80, got %v", rollup.MaxOwnershipPct)
	}
	if !rollup.PEFlag {
		t.Fatal("expected PE flag from flagged entity")
	}
}

func TestSummarizeEmptyGraph(t *testing.T) {
	seed := provider("1234567890", "SUNRISE CARE LLC")
	rollup := Summarize(Collect(seed, nil))
	if rollup.OwnerCount != 0 || rollup.MaxDepth != 0 || rollup.PEFlag {
		t.Fatalf("expected zero rollup, got %+v", rollup)
	}
	if rollup.MaxOwnershipPct != nil {
		t.Fatalf("expected nil max pct, got %v", *rollup.MaxOwnershipPct)
	}
}
