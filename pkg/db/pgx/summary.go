package pgdb

import "context"

// OwnershipSummaryRow is the denormalized per-provider ownership rollup the
// worker maintains after each ETL load. Dashboard SQL reads it instead of
// traversing the graph per request.
type OwnershipSummaryRow struct {
	NPI             string
	OwnerCount      int
	MaxOwnershipPct *float64
	MaxDepth        int
	PEFlag          bool
}

// UpsertOwnershipSummary writes one provider's ownership rollup.
func (q *Queries) UpsertOwnershipSummary(ctx context.Context, row OwnershipSummaryRow) error {
	_, err := q.conn.Exec(ctx, `
		INSERT INTO provider_ownership_summary
			(npi, owner_count, max_ownership_pct, max_depth, pe_flag, refreshed_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (npi) DO UPDATE SET
			owner_count       = EXCLUDED.owner_count,
			max_ownership_pct = EXCLUDED.max_ownership_pct,
			max_depth         = EXCLUDED.max_depth,
			pe_flag           = EXCLUDED.pe_flag,
			refreshed_at      = EXCLUDED.refreshed_at`,
		row.NPI, row.OwnerCount, row.MaxOwnershipPct, row.MaxDepth, row.PEFlag,
	)
	return wrapErr("upsert ownership summary", err)
}
