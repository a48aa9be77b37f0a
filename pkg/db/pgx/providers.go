package pgdb

import (
	"context"

	"github.com/claidex/backend/pkg/common"
)

// GetProvider fetches one provider row by NPI.
func (q *Queries) GetProvider(ctx context.Context, npi string) (*common.Provider, error) {
	row := q.conn.QueryRow(ctx, `
		SELECT npi,
		       COALESCE(display_name, ''),
		       COALESCE(entity_type, ''),
		       COALESCE(city, ''),
		       COALESCE(state, ''),
		       COALESCE(zip, ''),
		       taxonomy_1,
		       COALESCE(is_excluded, false)
		FROM providers
		WHERE npi = $1`,
		npi,
	)

	var p common.Provider
	err := row.Scan(&p.NPI, &p.DisplayName, &p.EntityType, &p.City, &p.State, &p.Zip, &p.Taxonomy, &p.IsExcluded)
	if err != nil {
		return nil, wrapErr("get provider", err)
	}
	return &p, nil
}

// SearchProviders returns providers whose display name matches the query,
// most relevant (exact prefix) first.
func (q *Queries) SearchProviders(ctx context.Context, query string, limit int) ([]common.Provider, error) {
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	rows, err := q.conn.Query(ctx, `
		SELECT npi,
		       COALESCE(display_name, ''),
		       COALESCE(entity_type, ''),
		       COALESCE(city, ''),
		       COALESCE(state, ''),
		       COALESCE(zip, ''),
		       taxonomy_1,
		       COALESCE(is_excluded, false)
		FROM providers
		WHERE display_name ILIKE '%' || $1 || '%' OR npi = $1
		ORDER BY (display_name ILIKE $1 || '%') DESC, display_name
		LIMIT $2`,
		query, limit,
	)
	if err != nil {
		return nil, wrapErr("search providers", err)
	}
	defer rows.Close()

	providers := make([]common.Provider, 0)
	for rows.Next() {
		var p common.Provider
		if err := rows.Scan(&p.NPI, &p.DisplayName, &p.EntityType, &p.City, &p.State, &p.Zip, &p.Taxonomy, &p.IsExcluded); err != nil {
			return nil, wrapErr("search providers", err)
		}
		providers = append(providers, p)
	}
	return providers, wrapErr("search providers", rows.Err())
}
