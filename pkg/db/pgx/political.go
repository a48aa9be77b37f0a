package pgdb

import (
	"context"

	"github.com/claidex/backend/pkg/common"
)

// GetPoliticalSummary aggregates FEC contributions linked to the provider's
// ownership circle (the political_connections table is produced by the ETL
// join of owners against individual contributions).
func (q *Queries) GetPoliticalSummary(ctx context.Context, npi string) (*common.PoliticalSummary, error) {
	row := q.conn.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(amount), 0)
		FROM political_connections
		WHERE npi = $1`,
		npi,
	)

	s := common.PoliticalSummary{TopCommittees: []string{}}
	if err := row.Scan(&s.ContributionCount, &s.TotalAmount); err != nil {
		return nil, wrapErr("get political summary", err)
	}
	if s.ContributionCount == 0 {
		return &s, nil
	}

	rows, err := q.conn.Query(ctx, `
		SELECT committee_name
		FROM political_connections
		WHERE npi = $1
		GROUP BY committee_name
		ORDER BY SUM(amount) DESC
		LIMIT 5`,
		npi,
	)
	if err != nil {
		return nil, wrapErr("get political summary", err)
	}
	defer rows.Close()

	for rows.Next() {
		var committee string
		if err := rows.Scan(&committee); err != nil {
			return nil, wrapErr("get political summary", err)
		}
		s.TopCommittees = append(s.TopCommittees, committee)
	}
	return &s, wrapErr("get political summary", rows.Err())
}
