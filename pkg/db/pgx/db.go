// Package pgdb is the hand-written query layer over the Claidex Postgres
// schema (providers, risk scores, payments, exclusions, HCRIS financials,
// FEC political links, plus the serving-side watchlist and ownership
// summary tables).
package pgdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/claidex/backend/pkg/common"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Conn is the subset of pgxpool.Pool the queries need; tests can implement
// it with a fake.
type Conn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, optionsAndArgs ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, optionsAndArgs ...any) pgx.Row
}

// Queries bundles all relational lookups behind one connection handle.
type Queries struct {
	conn Conn
}

func New(conn Conn) *Queries {
	return &Queries{conn: conn}
}

// wrapErr maps pgx errors onto the shared taxonomy: missing rows become
// ErrNotFound and transport-level failures become ErrStoreUnavailable so the
// HTTP layer can distinguish 404 from 503. Server-side SQL errors pass
// through wrapped.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, common.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %v", op, common.ErrStoreUnavailable, err)
}
