package pgdb

import (
	"context"

	"github.com/claidex/backend/pkg/common"
)

// GetPaymentsSummary aggregates the combined payments table across all
// years and programs for one NPI. A provider with no payment rows yields
// the zeroed shape rather than an error.
func (q *Queries) GetPaymentsSummary(ctx context.Context, npi string) (*common.PaymentsSummary, error) {
	row := q.conn.QueryRow(ctx, `
		SELECT COALESCE(SUM(payments), 0),
		       COALESCE(SUM(payments) FILTER (WHERE program = 'Medicare'), 0),
		       COALESCE(SUM(payments) FILTER (WHERE program = 'Medicaid'), 0),
		       COALESCE(SUM(payments) FILTER (WHERE program = 'MedicarePartD'), 0),
		       COALESCE(SUM(claims), 0),
		       COALESCE(SUM(beneficiaries), 0),
		       COALESCE(MIN(year), 0),
		       COALESCE(MAX(year), 0)
		FROM payments
		WHERE npi = $1`,
		npi,
	)

	var s common.PaymentsSummary
	err := row.Scan(
		&s.TotalAllPrograms,
		&s.TotalMedicare,
		&s.TotalMedicaid,
		&s.TotalPartD,
		&s.TotalClaims,
		&s.TotalBeneficiaries,
		&s.FirstYear,
		&s.LastYear,
	)
	if err != nil {
		return nil, wrapErr("get payments summary", err)
	}
	return &s, nil
}

// GetPaymentsByYear returns the per-year/program detail rows, newest first.
func (q *Queries) GetPaymentsByYear(ctx context.Context, npi string) ([]common.PaymentYear, error) {
	rows, err := q.conn.Query(ctx, `
		SELECT year,
		       program,
		       COALESCE(payments, 0),
		       COALESCE(claims, 0),
		       COALESCE(beneficiaries, 0)
		FROM payments
		WHERE npi = $1
		ORDER BY year DESC, program`,
		npi,
	)
	if err != nil {
		return nil, wrapErr("get payments by year", err)
	}
	defer rows.Close()

	years := make([]common.PaymentYear, 0)
	for rows.Next() {
		var y common.PaymentYear
		if err := rows.Scan(&y.Year, &y.Program, &y.Payments, &y.Claims, &y.Beneficiaries); err != nil {
			return nil, wrapErr("get payments by year", err)
		}
		years = append(years, y)
	}
	return years, wrapErr("get payments by year", rows.Err())
}
