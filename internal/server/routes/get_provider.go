package routes

import (
	"net/http"

	"github.com/claidex/backend/internal/server/middleware"
	"github.com/claidex/backend/pkg/common"
	pgdb "github.com/claidex/backend/pkg/db/pgx"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

// GetProviderHandler returns the base provider record for one NPI.
func GetProviderHandler(c echo.Context) error {
	type getProviderParams struct {
		NPI string `param:"npi" validate:"required,len=10,numeric"`
	}

	params := new(getProviderParams)
	if err := c.Bind(params); err != nil {
		return writeInvalid(c, "Invalid request params")
	}
	if err := c.Validate(params); err != nil {
		return writeInvalid(c, "npi must be 10 digits")
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := pgdb.New(conn)

	provider, err := q.GetProvider(ctx, params.NPI)
	if err != nil {
		return writeError(c, err, "Provider not found")
	}

	return c.JSON(http.StatusOK, provider)
}

// SearchProvidersHandler searches providers by display name or exact NPI.
func SearchProvidersHandler(c echo.Context) error {
	type searchProvidersParams struct {
		Query string `query:"q" validate:"required,min=2"`
		Limit int    `query:"limit"`
	}

	type searchProvidersResponse struct {
		Providers []common.Provider `json:"providers"`
	}

	params := new(searchProvidersParams)
	if err := c.Bind(params); err != nil {
		return writeInvalid(c, "Invalid request params")
	}
	if err := c.Validate(params); err != nil {
		return writeInvalid(c, "q must be at least 2 characters")
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := pgdb.New(conn)

	providers, err := q.SearchProviders(ctx, params.Query, params.Limit)
	if err != nil {
		return writeError(c, err, "Search failed")
	}

	return c.JSON(http.StatusOK, searchProvidersResponse{Providers: providers})
}
