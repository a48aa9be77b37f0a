package pgdb

import (
	"context"
	"time"
)

// WatchlistRow is one watched provider with the risk context the dashboard
// renders next to it.
type WatchlistRow struct {
	NPI            string     `json:"npi"`
	DisplayName    string     `json:"display_name"`
	State          string     `json:"state"`
	Note           string     `json:"note"`
	CompositeScore *float64   `json:"composite_score"`
	RiskLabel      *string    `json:"risk_label"`
	CreatedAt      *time.Time `json:"created_at"`
}

// GetWatchlist returns the user's watched providers, most recently added
// first.
func (q *Queries) GetWatchlist(ctx context.Context, userID int64) ([]WatchlistRow, error) {
	rows, err := q.conn.Query(ctx, `
		SELECT w.npi,
		       COALESCE(p.display_name, ''),
		       COALESCE(p.state, ''),
		       COALESCE(w.note, ''),
		       r.composite_score,
		       r.risk_label,
		       w.created_at
		FROM watchlist w
		LEFT JOIN providers p ON p.npi = w.npi
		LEFT JOIN provider_risk_scores r ON r.npi = w.npi
		WHERE w.user_id = $1
		ORDER BY w.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, wrapErr("get watchlist", err)
	}
	defer rows.Close()

	watchlist := make([]WatchlistRow, 0)
	for rows.Next() {
		var w WatchlistRow
		if err := rows.Scan(&w.NPI, &w.DisplayName, &w.State, &w.Note, &w.CompositeScore, &w.RiskLabel, &w.CreatedAt); err != nil {
			return nil, wrapErr("get watchlist", err)
		}
		watchlist = append(watchlist, w)
	}
	return watchlist, wrapErr("get watchlist", rows.Err())
}

// AddToWatchlist inserts or updates one watched NPI for the user.
func (q *Queries) AddToWatchlist(ctx context.Context, userID int64, npi string, note string) error {
	_, err := q.conn.Exec(ctx, `
		INSERT INTO watchlist (user_id, npi, note, created_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id, npi) DO UPDATE SET note = EXCLUDED.note`,
		userID, npi, note,
	)
	return wrapErr("add to watchlist", err)
}

// RemoveFromWatchlist deletes one watched NPI; reports whether a row
// actually existed.
func (q *Queries) RemoveFromWatchlist(ctx context.Context, userID int64, npi string) (bool, error) {
	tag, err := q.conn.Exec(ctx, `
		DELETE FROM watchlist
		WHERE user_id = $1 AND npi = $2`,
		userID, npi,
	)
	if err != nil {
		return false, wrapErr("remove from watchlist", err)
	}
	return tag.RowsAffected() > 0, nil
}
