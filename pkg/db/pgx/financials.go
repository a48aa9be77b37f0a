package pgdb

import (
	"context"
	"errors"

	"github.com/claidex/backend/pkg/common"

	"github.com/jackc/pgx/v5"
)

// GetFinancials returns the latest HCRIS cost-report metrics for the NPI.
// Most providers never file a cost report, so a missing row is the
// has_hcris_data=false shape, not an error.
func (q *Queries) GetFinancials(ctx context.Context, npi string) (*common.FinancialsSummary, error) {
	row := q.conn.QueryRow(ctx, `
		SELECT year,
		       operating_margin_pct,
		       net_patient_revenue,
		       total_operating_costs
		FROM hcris_financials
		WHERE npi = $1
		ORDER BY year DESC
		LIMIT 1`,
		npi,
	)

	var s common.FinancialsSummary
	err := row.Scan(&s.LatestYear, &s.OperatingMarginPct, &s.NetPatientRevenue, &s.TotalOperatingCosts)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &common.FinancialsSummary{HasHcrisData: false}, nil
		}
		return nil, wrapErr("get financials", err)
	}
	s.HasHcrisData = true
	return &s, nil
}
