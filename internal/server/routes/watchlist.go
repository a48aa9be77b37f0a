package routes

import (
	"net/http"

	"github.com/claidex/backend/internal/queue"
	"github.com/claidex/backend/internal/server/middleware"
	"github.com/claidex/backend/internal/util"
	"github.com/claidex/backend/pkg/common"
	pgdb "github.com/claidex/backend/pkg/db/pgx"
	"github.com/claidex/backend/pkg/logger"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// GetWatchlistHandler returns the caller's watched providers with their
// current risk context.
func GetWatchlistHandler(c echo.Context) error {
	type getWatchlistResponse struct {
		Watchlist []pgdb.WatchlistRow `json:"watchlist"`
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := pgdb.New(conn)

	watchlist, err := q.GetWatchlist(ctx, user.UserID)
	if err != nil {
		return writeError(c, err, "Failed to load watchlist")
	}

	return c.JSON(http.StatusOK, getWatchlistResponse{Watchlist: watchlist})
}

// AddToWatchlistHandler watches one NPI for the caller. Re-adding an already
// watched provider updates the note. A freshly watched provider also gets a
// summary refresh queued so its dashboard rollup is current.
func AddToWatchlistHandler(c echo.Context) error {
	type addToWatchlistBody struct {
		NPI  string `json:"npi" validate:"required,len=10,numeric"`
		Note string `json:"note" validate:"max=2000"`
	}

	type addToWatchlistResponse struct {
		Message string `json:"message"`
	}

	data := new(addToWatchlistBody)
	if err := c.Bind(data); err != nil {
		return writeInvalid(c, "Invalid request body")
	}
	if err := c.Validate(data); err != nil {
		return writeInvalid(c, "npi must be 10 digits")
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := pgdb.New(conn)

	// Watching an unknown NPI would produce a permanently empty row.
	if _, err := q.GetProvider(ctx, data.NPI); err != nil {
		return writeError(c, err, "Provider not found")
	}

	if err := q.AddToWatchlist(ctx, user.UserID, data.NPI, data.Note); err != nil {
		return writeError(c, err, "Failed to update watchlist")
	}

	ch := c.(*middleware.AppContext).App.Queue
	if ch != nil {
		correlationID, _ := gonanoid.New()
		msg := queue.RiskRefreshMsg{NPI: data.NPI, CorrelationID: correlationID}
		if err := queue.PublishFIFO(ch, queue.RiskRefreshQueue, []byte(util.ConvertStructToJson(msg))); err != nil {
			logger.Error("Failed to publish to risk_refresh_queue", "npi", data.NPI, "err", err)
		}
	}

	return c.JSON(http.StatusOK, addToWatchlistResponse{
		Message: "Provider added to watchlist",
	})
}

// RemoveFromWatchlistHandler unwatches one NPI for the caller.
func RemoveFromWatchlistHandler(c echo.Context) error {
	type removeFromWatchlistParams struct {
		NPI string `param:"npi" validate:"required,len=10,numeric"`
	}

	type removeFromWatchlistResponse struct {
		Message string `json:"message"`
	}

	params := new(removeFromWatchlistParams)
	if err := c.Bind(params); err != nil {
		return writeInvalid(c, "Invalid request params")
	}
	if err := c.Validate(params); err != nil {
		return writeInvalid(c, "npi must be 10 digits")
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := pgdb.New(conn)

	removed, err := q.RemoveFromWatchlist(ctx, user.UserID, params.NPI)
	if err != nil {
		return writeError(c, err, "Failed to update watchlist")
	}
	if !removed {
		return writeError(c, common.ErrNotFound, "Provider is not on the watchlist")
	}

	return c.JSON(http.StatusOK, removeFromWatchlistResponse{
		Message: "Provider removed from watchlist",
	})
}
