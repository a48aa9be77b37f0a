package routes

import (
	"net/http"

	"github.com/claidex/backend/internal/server/middleware"
	"github.com/claidex/backend/pkg/common"
	pgdb "github.com/claidex/backend/pkg/db/pgx"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

// GetProviderPaymentsHandler returns the payments rollup plus the per-year
// program detail for one NPI.
func GetProviderPaymentsHandler(c echo.Context) error {
	type getPaymentsParams struct {
		NPI string `param:"npi" validate:"required,len=10,numeric"`
	}

	type getPaymentsResponse struct {
		Summary *common.PaymentsSummary `json:"summary"`
		Years   []common.PaymentYear    `json:"years"`
	}

	params := new(getPaymentsParams)
	if err := c.Bind(params); err != nil {
		return writeInvalid(c, "Invalid request params")
	}
	if err := c.Validate(params); err != nil {
		return writeInvalid(c, "npi must be 10 digits")
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := pgdb.New(conn)

	// 404 for unknown NPIs; a known provider with no payment rows gets the
	// zeroed summary instead.
	if _, err := q.GetProvider(ctx, params.NPI); err != nil {
		return writeError(c, err, "Provider not found")
	}

	summary, err := q.GetPaymentsSummary(ctx, params.NPI)
	if err != nil {
		return writeError(c, err, "Failed to load payments")
	}

	years, err := q.GetPaymentsByYear(ctx, params.NPI)
	if err != nil {
		return writeError(c, err, "Failed to load payments")
	}

	return c.JSON(http.StatusOK, getPaymentsResponse{
		Summary: summary,
		Years:   years,
	})
}
