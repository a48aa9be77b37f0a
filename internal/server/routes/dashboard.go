package routes

import (
	"net/http"

	"github.com/claidex/backend/internal/server/middleware"
	pgdb "github.com/claidex/backend/pkg/db/pgx"

	"github.com/labstack/echo/v4"
)

// GetDashboardSummaryHandler returns the headline aggregates for the
// landing dashboard.
func GetDashboardSummaryHandler(c echo.Context) error {
	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := pgdb.New(conn)

	summary, err := q.GetDashboardSummary(ctx)
	if err != nil {
		return writeError(c, err, "Failed to load dashboard summary")
	}

	return c.JSON(http.StatusOK, summary)
}
