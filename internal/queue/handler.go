package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/claidex/backend/internal/util"
	"github.com/claidex/backend/pkg/common"
	pgdb "github.com/claidex/backend/pkg/db/pgx"
	"github.com/claidex/backend/pkg/logger"
	"github.com/claidex/backend/pkg/ownership"
	"github.com/claidex/backend/pkg/store"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RiskRefreshMsg asks the worker to recompute one provider's ownership
// rollup. The ETL publishes one message per touched NPI after a graph load.
type RiskRefreshMsg struct {
	NPI           string `json:"npi"`
	CorrelationID string `json:"correlation_id"`
}

// ProcessRiskRefresh traverses the full-depth ownership neighborhood of the
// given provider and upserts the provider_ownership_summary row the
// dashboard reads. A provider that has disappeared from the graph gets a
// zero rollup rather than an error, so deletions converge too.
func ProcessRiskRefresh(
	ctx context.Context,
	graph store.GraphQuery,
	conn *pgxpool.Pool,
	msgBody string,
) error {
	var data RiskRefreshMsg
	if err := json.Unmarshal([]byte(msgBody), &data); err != nil {
		return fmt.Errorf("invalid risk refresh message: %w", err)
	}
	if data.NPI == "" {
		return errors.New("risk refresh message missing npi")
	}

	logger.Info("[Queue] Refreshing ownership summary", "npi", data.NPI, "correlation_id", data.CorrelationID)

	seed := common.NodeRef{Variant: common.VariantProvider, ID: data.NPI}

	var rollup ownership.Rollup
	result, err := graph.FindOwnershipPaths(ctx, seed, store.MaxDepth)
	switch {
	case errors.Is(err, common.ErrNotFound):
		// provider no longer in the graph, write the empty rollup
	case err != nil:
		return fmt.Errorf("traversal failed for %s: %w", data.NPI, err)
	default:
		rollup = ownership.Summarize(ownership.Collect(result.Seed, result.Paths))
	}

	q := pgdb.New(conn)
	err = util.RetryErrWithContext(ctx, 3, func(ctx context.Context) error {
		return q.UpsertOwnershipSummary(ctx, pgdb.OwnershipSummaryRow{
			NPI:             data.NPI,
			OwnerCount:      rollup.OwnerCount,
			MaxOwnershipPct: rollup.MaxOwnershipPct,
			MaxDepth:        rollup.MaxDepth,
			PEFlag:          rollup.PEFlag,
		})
	})
	if err != nil {
		return fmt.Errorf("failed to store ownership summary for %s: %w", data.NPI, err)
	}

	logger.Info(
		"[Queue] Ownership summary refreshed",
		"npi", data.NPI,
		"owner_count", rollup.OwnerCount,
		"max_depth", rollup.MaxDepth,
		"pe_flag", rollup.PEFlag,
	)
	return nil
}
