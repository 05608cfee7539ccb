package http

import (
	"errors"
	"net/http"

	"steakz/internal/core/application/usecases/commands"
	"steakz/internal/core/domain/model/cart"
	"steakz/internal/core/domain/model/order"
	"steakz/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the JSON body of every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func statusFor(err error) int {
	var remote *errs.RemoteRequestFailedError
	switch {
	case errors.Is(err, errs.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, cart.ErrEmptyCart):
		return http.StatusConflict
	case errors.Is(err, order.ErrTransitionNotAllowed):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.As(err, &remote):
		return http.StatusBadGateway
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, commands.ErrPlaceOrderCommandIsNotConstructed):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// messageFor prefers the server's own text for remote failures.
func messageFor(err error, status int) string {
	var remote *errs.RemoteRequestFailedError
	if errors.As(err, &remote) {
		return remote.Message
	}
	if status == http.StatusInternalServerError {
		return http.StatusText(status)
	}
	return err.Error()
}

func (s *Server) fail(c echo.Context, err error) error {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method, "path", c.Path(), "status", status, "error", err)
	}
	return c.JSON(status, Error{Code: status, Message: messageFor(err, status)})
}
