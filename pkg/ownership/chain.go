package ownership

import (
	"sort"
	"strings"

	"github.com/claidex/backend/pkg/common"
)

// ProjectChain flattens a path set into the depth-ordered ownership chain.
// Only ownership-relevant variants (Provider, CorporateEntity, Person) are
// projected; the seed itself is excluded since consumers render it as the
// page's own profile header. Each entry's percentage/role/date come from the
// edge of the node's minimum-depth occurrence.
func ProjectChain(set *PathSet) []common.ChainEntry {
	seedKey := set.Seed.Ref.Key()

	entries := make([]common.ChainEntry, 0, len(set.nodeOrder))
	for _, key := range set.nodeOrder {
		if key == seedKey {
			continue
		}
		node := set.nodes[key]
		if !common.OwnershipVariants[node.Ref.Variant] {
			continue
		}

		entry := common.ChainEntry{
			EntityID:   node.Ref.ID,
			Name:       nodeLabel(node.Attributes, node.Ref.Variant, node.Ref.ID),
			EntityType: node.Ref.Variant,
			Depth:      set.depth[key],
		}
		if edge, ok := set.origin[key]; ok {
			entry.OwnershipPct = attrFloat(edge.Attributes, "ownership_pct")
			entry.RoleCode = attrString(edge.Attributes, "role_code")
			entry.RoleText = attrString(edge.Attributes, "role_text")
			entry.AssociationDate = attrString(edge.Attributes, "association_date")
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Depth != entries[j].Depth {
			return entries[i].Depth < entries[j].Depth
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})

	return entries
}
