// Package brief composes the per-provider risk brief: ownership traversal
// plus the relational summaries (risk score, payments, exclusions,
// financials, political links), fetched concurrently with best-effort
// partial aggregation.
package brief

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/claidex/backend/pkg/common"
	"github.com/claidex/backend/pkg/logger"
	"github.com/claidex/backend/pkg/ownership"
	"github.com/claidex/backend/pkg/store"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// OwnershipDepth is the traversal depth used for the brief's ownership
// section. Deeper chains are available through the dedicated ownership
// endpoint; the brief only needs the immediate corporate circle.
const OwnershipDepth = 3

// Fetchers abstracts the relational lookups a brief needs. The pgx query
// layer implements it; tests substitute fakes.
type Fetchers interface {
	GetProvider(ctx context.Context, npi string) (*common.Provider, error)
	GetRiskScore(ctx context.Context, npi string) (*common.RiskScore, error)
	GetPaymentsSummary(ctx context.Context, npi string) (*common.PaymentsSummary, error)
	GetExclusions(ctx context.Context, npi string) ([]common.ExclusionRecord, error)
	GetFinancials(ctx context.Context, npi string) (*common.FinancialsSummary, error)
	GetPoliticalSummary(ctx context.Context, npi string) (*common.PoliticalSummary, error)
}

// Aggregator builds provider briefs. It is safe for concurrent use; all
// working state is request-local and identical concurrent builds for the
// same NPI collapse into one flight.
type Aggregator struct {
	graph   store.GraphQuery
	data    Fetchers
	timeout time.Duration
	flight  singleflight.Group
}

// NewAggregatorParams configures an Aggregator. Timeout bounds each
// individual sub-fetch, not the brief as a whole.
type NewAggregatorParams struct {
	Graph   store.GraphQuery
	Data    Fetchers
	Timeout time.Duration
}

func NewAggregator(params NewAggregatorParams) *Aggregator {
	timeout := params.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Aggregator{
		graph:   params.Graph,
		data:    params.Data,
		timeout: timeout,
	}
}

// BuildBrief assembles the full brief for one provider. The provider lookup
// is the only hard dependency: an unknown NPI fails with common.ErrNotFound
// and an unreachable store propagates unchanged. Every other section is
// fetched concurrently and degrades to an explicit default shape on failure
// or timeout, with the degraded section names recorded on the brief.
func (a *Aggregator) BuildBrief(ctx context.Context, npi string) (*common.ProviderBrief, error) {
	v, err, _ := a.flight.Do(npi, func() (any, error) {
		return a.build(ctx, npi)
	})
	if err != nil {
		return nil, err
	}
	return v.(*common.ProviderBrief), nil
}

func (a *Aggregator) build(ctx context.Context, npi string) (*common.ProviderBrief, error) {
	providerCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	provider, err := a.data.GetProvider(providerCtx, npi)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("provider %s: %w", npi, common.ErrNotFound)
		}
		return nil, err
	}

	result := &common.ProviderBrief{
		Provider:   *provider,
		Payments:   DefaultPaymentsSummary(),
		Exclusions: []common.ExclusionRecord{},
		Financials: DefaultFinancialsSummary(),
		Political:  DefaultPoliticalSummary(),
		Ownership:  DefaultOwnershipSummary(),
	}

	var mu sync.Mutex
	degrade := func(section string, err error) {
		logger.Warn("[Brief] Section degraded to defaults", "npi", npi, "section", section, "err", err)
		mu.Lock()
		defer mu.Unlock()
		result.Degraded = append(result.Degraded, section)
	}

	// Sections have no ordering dependency on each other; fan out so the
	// brief is bounded by the slowest sub-fetch rather than their sum. The
	// closures swallow their errors into defaults, so the group never
	// cancels siblings.
	eg := errgroup.Group{}

	eg.Go(func() error {
		fetchCtx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()
		res, err := a.graph.FindOwnershipPaths(fetchCtx, common.NodeRef{Variant: common.VariantProvider, ID: npi}, OwnershipDepth)
		if err != nil {
			// A provider absent from the graph just has no known owners.
			if !errors.Is(err, common.ErrNotFound) {
				degrade("ownership", err)
			}
			return nil
		}
		set := ownership.Collect(res.Seed, res.Paths)
		mu.Lock()
		defer mu.Unlock()
		result.Ownership = common.OwnershipSummary{
			Chain:     ownership.ProjectChain(set),
			Graph:     ownership.Assemble(set),
			Truncated: res.Truncated,
		}
		return nil
	})

	eg.Go(func() error {
		fetchCtx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()
		score, err := a.data.GetRiskScore(fetchCtx, npi)
		if err != nil {
			if !errors.Is(err, common.ErrNotFound) {
				degrade("risk_score", err)
			}
			return nil
		}
		mu.Lock()
		defer mu.Unlock()
		result.RiskScore = score
		return nil
	})

	eg.Go(func() error {
		fetchCtx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()
		payments, err := a.data.GetPaymentsSummary(fetchCtx, npi)
		if err != nil {
			degrade("payments", err)
			return nil
		}
		mu.Lock()
		defer mu.Unlock()
		result.Payments = *payments
		return nil
	})

	eg.Go(func() error {
		fetchCtx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()
		exclusions, err := a.data.GetExclusions(fetchCtx, npi)
		if err != nil {
			degrade("exclusions", err)
			return nil
		}
		mu.Lock()
		defer mu.Unlock()
		if exclusions != nil {
			result.Exclusions = exclusions
		}
		return nil
	})

	eg.Go(func() error {
		fetchCtx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()
		financials, err := a.data.GetFinancials(fetchCtx, npi)
		if err != nil {
			degrade("financials", err)
			return nil
		}
		mu.Lock()
		defer mu.Unlock()
		result.Financials = *financials
		return nil
	})

	eg.Go(func() error {
		fetchCtx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()
		political, err := a.data.GetPoliticalSummary(fetchCtx, npi)
		if err != nil {
			degrade("political", err)
			return nil
		}
		mu.Lock()
		defer mu.Unlock()
		result.Political = *political
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}
