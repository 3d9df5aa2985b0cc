package http

import (
	"errors"
	"net/http"

	"campusdelivery/internal/core/application/usecases/commands"
	"campusdelivery/internal/core/application/usecases/queries"
	"campusdelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const internalServerErrorMessage = "Internal server error"

// submitErrorStatus maps submission failures to a status code and client message.
// Unrecognised errors are not described to the client.
func submitErrorStatus(err error) (int, Error) {
	var dispatchErr *commands.DispatchError

	switch {
	case errors.Is(err, commands.ErrVendorAndItemsRequired):
		return http.StatusBadRequest, Error{Message: "Vendor and items are required"}
	case errors.Is(err, commands.ErrDropoffLocationRequired):
		return http.StatusBadRequest, Error{Message: "Dropoff location is required"}
	case errors.Is(err, commands.ErrOrderItemsInvalid):
		return http.StatusBadRequest, Error{Message: "Order items are invalid"}
	case errors.Is(err, commands.ErrInvalidDropoffLocation):
		return http.StatusBadRequest, Error{Message: "Invalid dropoff location"}
	case errors.Is(err, commands.ErrInvalidVendor):
		return http.StatusBadRequest, Error{Message: "Invalid vendor"}
	case errors.Is(err, commands.ErrReferenceLookupTimeout):
		return http.StatusGatewayTimeout, Error{Message: "Vendor or location lookup timed out"}
	case errors.Is(err, commands.ErrDispatchTimeout):
		return http.StatusGatewayTimeout, Error{Message: "Order dispatch timed out"}
	case errors.As(err, &dispatchErr):
		return http.StatusInternalServerError, Error{
			Message: "Failed to create order via dispatch",
			Error:   dispatchErr.Message,
		}
	default:
		return http.StatusInternalServerError, Error{Message: internalServerErrorMessage}
	}
}

// readErrorStatus maps order read failures to a status code and client message.
func readErrorStatus(err error) (int, Error) {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, Error{Message: "Order not found"}
	case errors.Is(err, queries.ErrOrderLookupTimeout):
		return http.StatusGatewayTimeout, Error{Message: "Order lookup timed out"}
	case errors.Is(err, queries.ErrOrderItemsLookupFailed):
		return http.StatusInternalServerError, Error{Message: "Failed to fetch order items"}
	case errors.Is(err, queries.ErrDropoffLookupFailed):
		return http.StatusInternalServerError, Error{Message: "Failed to fetch dropoff location"}
	case errors.Is(err, queries.ErrOrderLookupFailed):
		return http.StatusInternalServerError, Error{Message: "Failed to fetch order"}
	default:
		return http.StatusInternalServerError, Error{Message: internalServerErrorMessage}
	}
}

func (s *Server) writeSubmitError(ctx echo.Context, err error) error {
	status, body := submitErrorStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "Order submission failed",
			"status", status,
			"error", err,
		)
	}
	return ctx.JSON(status, body)
}

func (s *Server) writeReadError(ctx echo.Context, orderID int64, err error) error {
	status, body := readErrorStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "Order read failed",
			"order_id", orderID,
			"status", status,
			"error", err,
		)
	}
	return ctx.JSON(status, body)
}

// NewHTTPErrorHandler renders errors that escaped a handler, including recovered
// panics, as an Error body. Server-side failures are reported without detail.
func NewHTTPErrorHandler(s *Server) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		body := Error{Message: internalServerErrorMessage}

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) && httpErr.Code < http.StatusInternalServerError {
			status = httpErr.Code
			body.Message = http.StatusText(httpErr.Code)
			if msg, ok := httpErr.Message.(string); ok && msg != "" {
				body.Message = msg
			}
		} else {
			s.logger.ErrorContext(ctx.Request().Context(), "Unhandled request error",
				"method", ctx.Request().Method,
				"uri", ctx.Request().RequestURI,
				"error", err,
			)
		}

		var writeErr error
		if ctx.Request().Method == http.MethodHead {
			writeErr = ctx.NoContent(status)
		} else {
			writeErr = ctx.JSON(status, body)
		}
		if writeErr != nil {
			s.logger.ErrorContext(ctx.Request().Context(), "Failed to write error response", "error", writeErr)
		}
	}
}
