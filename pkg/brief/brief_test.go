package brief

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/claidex/backend/pkg/common"
	"github.com/claidex/backend/pkg/store/memory"
)

type fakeFetchers struct {
	provider   func(ctx context.Context, npi string) (*common.Provider, error)
	riskScore  func(ctx context.Context, npi string) (*common.RiskScore, error)
	payments   func(ctx context.Context, npi string) (*common.PaymentsSummary, error)
	exclusions func(ctx context.Context, npi string) ([]common.ExclusionRecord, error)
	financials func(ctx context.Context, npi string) (*common.FinancialsSummary, error)
	political  func(ctx context.Context, npi string) (*common.PoliticalSummary, error)
}

func (f *fakeFetchers) GetProvider(ctx context.Context, npi string) (*common.Provider, error) {
	return f.provider(ctx, npi)
}

func (f *fakeFetchers) GetRiskScore(ctx context.Context, npi string) (*common.RiskScore, error) {
	if f.riskScore == nil {
		return nil, common.ErrNotFound
	}
	return f.riskScore(ctx, npi)
}

func (f *fakeFetchers) GetPaymentsSummary(ctx context.Context, npi string) (*common.PaymentsSummary, error) {
	if f.payments == nil {
		s := DefaultPaymentsSummary()
		return &s, nil
	}
	return f.payments(ctx, npi)
}

func (f *fakeFetchers) GetExclusions(ctx context.Context, npi string) ([]common.ExclusionRecord, error) {
	if f.exclusions == nil {
		return []common.ExclusionRecord{}, nil
	}
	return f.exclusions(ctx, npi)
}

func (f *fakeFetchers) GetFinancials(ctx context.Context, npi string) (*common.FinancialsSummary, error) {
	if f.financials == nil {
		s := DefaultFinancialsSummary()
		return &s, nil
	}
	return f.financials(ctx, npi)
}

func (f *fakeFetchers) GetPoliticalSummary(ctx context.Context, npi string) (*common.PoliticalSummary, error) {
	if f.political == nil {
		s := DefaultPoliticalSummary()
		return &s, nil
	}
	return f.political(ctx, npi)
}

const testNPI = "1234567890"

func knownProvider(ctx context.Context, npi string) (*common.Provider, error) {
	if npi != testNPI {
		return nil, common.ErrNotFound
	}
	return &common.Provider{NPI: npi, DisplayName: "SUNRISE CARE LLC", State: "TX"}, nil
}

func seededGraph(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.NewStore()
	seed := common.Node{
		Ref:        common.NodeRef{Variant: common.VariantProvider, ID: testNPI},
		Attributes: map[string]any{"display_name": "SUNRISE CARE LLC"},
	}
	owner := common.Node{
		Ref:        common.NodeRef{Variant: common.VariantCorporateEntity, ID: "E1"},
		Attributes: map[string]any{"name": "Sunrise Holdings"},
	}
	s.AddNode(seed)
	s.AddNode(owner)
	err := s.AddEdge(common.Edge{
		From:       owner.Ref,
		To:         seed.Ref,
		Relation:   common.RelationOwns,
		Attributes: map[string]any{"ownership_pct": 60.0, "role_text": "DIRECT OWNER"},
	})
	if err != nil {
		t.Fatalf("seed graph: %v", err)
	}
	return s
}

func newTestAggregator(t *testing.T, data Fetchers) *Aggregator {
	t.Helper()
	return NewAggregator(NewAggregatorParams{
		Graph:   seededGraph(t),
		Data:    data,
		Timeout: time.Second,
	})
}

func TestBuildBriefUnknownProvider(t *testing.T) {
	agg := newTestAggregator(t, &fakeFetchers{provider: knownProvider})

	_, err := agg.BuildBrief(context.Background(), "9999999999")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBuildBriefProviderStoreFailurePropagates(t *testing.T) {
	agg := newTestAggregator(t, &fakeFetchers{
		provider: func(ctx context.Context, npi string) (*common.Provider, error) {
			return nil, common.ErrStoreUnavailable
		},
	})

	_, err := agg.BuildBrief(context.Background(), testNPI)
	if !errors.Is(err, common.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestBuildBriefGracefulDegradation(t *testing.T) {
	agg := newTestAggregator(t, &fakeFetchers{
		provider: knownProvider,
		payments: func(ctx context.Context, npi string) (*common.PaymentsSummary, error) {
			return nil, errors.New("payments query blew up")
		},
	})

	b, err := agg.BuildBrief(context.Background(), testNPI)
	if err != nil {
		t.Fatalf("expected degraded brief, got error %v", err)
	}
	if b.Payments.TotalAllPrograms != 0 {
		t.Fatalf("expected zeroed payments summary, got %+v", b.Payments)
	}
	if !slices.Contains(b.Degraded, "payments") {
		t.Fatalf("expected payments in degraded list, got %v", b.Degraded)
	}
	// Other sections still populate.
	if len(b.Ownership.Chain) != 1 {
		t.Fatalf("expected 1 chain entry, got %d", len(b.Ownership.Chain))
	}
}

func TestBuildBriefHappyPath(t *testing.T) {
	score := 72.5
	agg := newTestAggregator(t, &fakeFetchers{
		provider: knownProvider,
		riskScore: func(ctx context.Context, npi string) (*common.RiskScore, error) {
			return &common.RiskScore{NPI: npi, CompositeScore: score, RiskLabel: "High"}, nil
		},
		payments: func(ctx context.Context, npi string) (*common.PaymentsSummary, error) {
			return &common.PaymentsSummary{TotalAllPrograms: 1250000, LastYear: 2023}, nil
		},
	})

	b, err := agg.BuildBrief(context.Background(), testNPI)
	if err != nil {
		t.Fatalf("build brief: %v", err)
	}
	if b.Provider.DisplayName != "SUNRISE CARE LLC" {
		t.Fatalf("unexpected provider: %+v", b.Provider)
	}
	if b.RiskScore == nil || b.RiskScore.CompositeScore != score {
		t.Fatalf("unexpected risk score: %+v", b.RiskScore)
	}
	if b.Payments.TotalAllPrograms != 1250000 {
		t.Fatalf("unexpected payments: %+v", b.Payments)
	}
	if len(b.Degraded) != 0 {
		t.Fatalf("expected no degraded sections, got %v", b.Degraded)
	}
	if len(b.Ownership.Chain) != 1 || b.Ownership.Chain[0].EntityID != "E1" {
		t.Fatalf("unexpected ownership chain: %+v", b.Ownership.Chain)
	}
	if len(b.Ownership.Graph.Nodes) != 2 || len(b.Ownership.Graph.Edges) != 1 {
		t.Fatalf("unexpected ownership graph: %+v", b.Ownership.Graph)
	}
}

func TestBuildBriefProviderMissingFromGraph(t *testing.T) {
	// Provider exists in Postgres but the ETL has not loaded it into the
	// graph yet: the ownership section stays at its default, not degraded.
	agg := NewAggregator(NewAggregatorParams{
		Graph:   memory.NewStore(),
		Data:    &fakeFetchers{provider: knownProvider},
		Timeout: time.Second,
	})

	b, err := agg.BuildBrief(context.Background(), testNPI)
	if err != nil {
		t.Fatalf("build brief: %v", err)
	}
	if len(b.Ownership.Chain) != 0 || len(b.Ownership.Graph.Nodes) != 0 {
		t.Fatalf("expected empty ownership section, got %+v", b.Ownership)
	}
	if slices.Contains(b.Degraded, "ownership") {
		t.Fatalf("graph miss should not mark ownership degraded: %v", b.Degraded)
	}
}
