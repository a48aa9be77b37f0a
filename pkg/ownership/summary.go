package ownership

import "github.com/claidex/backend/pkg/common"

// Rollup is the denormalized per-provider ownership summary the refresh
// worker persists for dashboard SQL.
type Rollup struct {
	OwnerCount      int
	MaxOwnershipPct *float64
	MaxDepth        int
	PEFlag          bool
}

// Summarize reduces a path set to its rollup: how many distinct owners, the
// largest ownership stake on a minimum-depth edge, the deepest chain level
// reached, and whether any owner is flagged as private equity or an
// investment firm.
func Summarize(set *PathSet) Rollup {
	seedKey := set.Seed.Ref.Key()

	var rollup Rollup
	for _, key := range set.nodeOrder {
		if key == seedKey {
			continue
		}
		node := set.nodes[key]
		if !common.OwnershipVariants[node.Ref.Variant] {
			continue
		}

		rollup.OwnerCount++
		if depth := set.depth[key]; depth > rollup.MaxDepth {
			rollup.MaxDepth = depth
		}
		if edge, ok := set.origin[key]; ok {
			if pct := attrFloat(edge.Attributes, "ownership_pct"); pct != nil {
				if rollup.MaxOwnershipPct == nil || *pct > *rollup.MaxOwnershipPct {
					rollup.MaxOwnershipPct = pct
				}
			}
		}
		if attrBool(node.Attributes, "flag_private_equity") || attrBool(node.Attributes, "flag_investment_firm") {
			rollup.PEFlag = true
		}
	}
	return rollup
}
