package pgdb

import (
	"context"

	"github.com/claidex/backend/pkg/common"
)

// GetRiskScore fetches the five-component composite score the ETL upserts
// into provider_risk_scores. Missing rows surface as ErrNotFound; providers
// without payment data simply have no score yet.
func (q *Queries) GetRiskScore(ctx context.Context, npi string) (*common.RiskScore, error) {
	row := q.conn.QueryRow(ctx, `
		SELECT npi,
		       composite_score,
		       COALESCE(risk_label, ''),
		       billing_outlier_score,
		       ownership_risk_score,
		       payment_trajectory_score,
		       exclusion_proximity_score,
		       program_concentration_score,
		       scored_at
		FROM provider_risk_scores
		WHERE npi = $1`,
		npi,
	)

	var s common.RiskScore
	err := row.Scan(
		&s.NPI,
		&s.CompositeScore,
		&s.RiskLabel,
		&s.BillingOutlierScore,
		&s.OwnershipRiskScore,
		&s.PaymentTrajectoryScore,
		&s.ExclusionProximityScore,
		&s.ProgramConcentrationScore,
		&s.ScoredAt,
	)
	if err != nil {
		return nil, wrapErr("get risk score", err)
	}
	return &s, nil
}
