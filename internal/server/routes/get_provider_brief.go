package routes

import (
	"net/http"

	"github.com/claidex/backend/internal/server/middleware"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

// GetProviderBriefHandler returns the composite risk brief for one NPI:
// provider record, risk score, payments, exclusions, financials, political
// links and the ownership neighborhood, assembled concurrently. Sections
// that fail are returned in their default shape and listed under
// "degraded"; only an unknown NPI is a hard failure.
func GetProviderBriefHandler(c echo.Context) error {
	type getBriefParams struct {
		NPI string `param:"npi" validate:"required,len=10,numeric"`
	}

	params := new(getBriefParams)
	if err := c.Bind(params); err != nil {
		return writeInvalid(c, "Invalid request params")
	}
	if err := c.Validate(params); err != nil {
		return writeInvalid(c, "npi must be 10 digits")
	}

	ctx := c.Request().Context()
	briefs := c.(*middleware.AppContext).App.Briefs

	result, err := briefs.BuildBrief(ctx, params.NPI)
	if err != nil {
		return writeError(c, err, "Failed to build provider brief")
	}

	return c.JSON(http.StatusOK, result)
}
