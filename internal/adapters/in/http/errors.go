package http

import (
	"errors"
	"net/http"

	"logistica/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps the error taxonomy onto HTTP. Durable store failures are
// 503 so that clients know a retry may succeed.
func statusFor(err error) int {
	switch {
	case errs.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, errs.ErrDurableStoreFailed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(ctx echo.Context, err error) error {
	status := statusFor(err)

	message := err.Error()
	switch status {
	case http.StatusServiceUnavailable:
		message = "Order store unavailable, try again"
	case http.StatusInternalServerError:
		message = "Internal error"
	}
	if status >= http.StatusInternalServerError {
		ctx.Logger().Error(err)
	}

	return ctx.JSON(status, Error{Code: status, Message: message})
}

func writeBindError(ctx echo.Context) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: "Invalid request body",
	})
}
