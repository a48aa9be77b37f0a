package brief

import "github.com/claidex/backend/pkg/common"

// Explicit empty shapes for degraded brief sections. The UI contract is that
// a section with no data is still present with zeroed values, never omitted.

func DefaultPaymentsSummary() common.PaymentsSummary {
	return common.PaymentsSummary{}
}

func DefaultFinancialsSummary() common.FinancialsSummary {
	return common.FinancialsSummary{HasHcrisData: false}
}

func DefaultPoliticalSummary() common.PoliticalSummary {
	return common.PoliticalSummary{TopCommittees: []string{}}
}

func DefaultOwnershipSummary() common.OwnershipSummary {
	return common.OwnershipSummary{
		Chain: []common.ChainEntry{},
		Graph: common.GraphProjection{
			Nodes: []common.GraphNode{},
			Edges: []common.GraphEdge{},
		},
	}
}
