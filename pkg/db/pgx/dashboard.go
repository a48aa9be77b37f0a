package pgdb

import "context"

// DashboardSummary holds the headline aggregates for the landing dashboard.
type DashboardSummary struct {
	TotalProviders    int64    `json:"total_providers"`
	ExcludedProviders int64    `json:"excluded_providers"`
	HighRiskProviders int64    `json:"high_risk_providers"`
	AvgCompositeScore *float64 `json:"avg_composite_score"`
	PEOwnedProviders  int64    `json:"pe_owned_providers"`
}

// GetDashboardSummary computes the dashboard headline numbers in one round
// trip. PE ownership comes from the worker-maintained summary table, not a
// live graph traversal.
func (q *Queries) GetDashboardSummary(ctx context.Context) (*DashboardSummary, error) {
	row := q.conn.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM providers),
		       (SELECT COUNT(*) FROM providers WHERE is_excluded),
		       (SELECT COUNT(*) FROM provider_risk_scores WHERE risk_label = 'High'),
		       (SELECT AVG(composite_score) FROM provider_risk_scores),
		       (SELECT COUNT(*) FROM provider_ownership_summary WHERE pe_flag)`,
	)

	var s DashboardSummary
	err := row.Scan(
		&s.TotalProviders,
		&s.ExcludedProviders,
		&s.HighRiskProviders,
		&s.AvgCompositeScore,
		&s.PEOwnedProviders,
	)
	if err != nil {
		return nil, wrapErr("get dashboard summary", err)
	}
	return &s, nil
}
