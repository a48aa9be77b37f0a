package routes

import (
	"errors"
	"net/http"

	"github.com/claidex/backend/internal/util"
	"github.com/claidex/backend/pkg/common"
	"github.com/claidex/backend/pkg/logger"

	"github.com/labstack/echo/v4"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// writeError maps the shared error taxonomy onto HTTP statuses: unknown
// entities are 404, malformed input is 422, unreachable stores are 503 and
// anything else is a 500. The raw error text is only exposed in debug mode.
func writeError(c echo.Context, err error, message string) error {
	status := http.StatusInternalServerError
	code := "internal_error"

	switch {
	case errors.Is(err, common.ErrNotFound):
		status = http.StatusNotFound
		code = "not_found"
	case errors.Is(err, common.ErrInvalidInput):
		status = http.StatusUnprocessableEntity
		code = "invalid_input"
	case errors.Is(err, common.ErrGraphUnavailable), errors.Is(err, common.ErrStoreUnavailable):
		status = http.StatusServiceUnavailable
		code = "unavailable"
	}

	if status == http.StatusInternalServerError {
		logger.Error("[API] Request failed", "path", c.Path(), "err", err)
	}

	body := errorBody{
		Code:    code,
		Message: message,
	}
	if util.GetEnvBool("DEBUG", false) && err != nil {
		body.Detail = err.Error()
	}

	return c.JSON(status, errorResponse{Error: body})
}

func writeInvalid(c echo.Context, message string) error {
	return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: errorBody{
		Code:    "invalid_input",
		Message: message,
	}})
}
