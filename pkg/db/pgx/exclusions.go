package pgdb

import (
	"context"

	"github.com/claidex/backend/pkg/common"
)

// GetExclusions returns the provider's LEIE exclusion rows, newest first.
// Most providers have none; the empty slice is the normal case.
func (q *Queries) GetExclusions(ctx context.Context, npi string) ([]common.ExclusionRecord, error) {
	rows, err := q.conn.Query(ctx, `
		SELECT exclusion_id,
		       COALESCE(exclusion_type, ''),
		       to_char(exclusion_date, 'YYYY-MM-DD'),
		       to_char(reinstate_date, 'YYYY-MM-DD'),
		       COALESCE(specialty, ''),
		       COALESCE(state, '')
		FROM exclusions
		WHERE npi = $1
		ORDER BY exclusion_date DESC NULLS LAST`,
		npi,
	)
	if err != nil {
		return nil, wrapErr("get exclusions", err)
	}
	defer rows.Close()

	exclusions := make([]common.ExclusionRecord, 0)
	for rows.Next() {
		var e common.ExclusionRecord
		if err := rows.Scan(&e.ExclusionID, &e.ExclusionType, &e.ExclusionDate, &e.ReinstateDate, &e.Specialty, &e.State); err != nil {
			return nil, wrapErr("get exclusions", err)
		}
		exclusions = append(exclusions, e)
	}
	return exclusions, wrapErr("get exclusions", rows.Err())
}
