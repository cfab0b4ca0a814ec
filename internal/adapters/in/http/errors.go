package http

import (
	"errors"
	"net/http"

	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps domain failure codes to HTTP statuses. Codes the table does
// not know fall through to 500.
func statusFor(code string) int {
	switch code {
	case errs.CodeRoadOutOfBounds, errs.CodeInvalidArgument:
		return http.StatusBadRequest
	case errs.CodeRoadAlreadyExists:
		return http.StatusConflict
	case errs.CodeRoadNotFound, errs.CodeOrderNotFound:
		return http.StatusNotFound
	case errs.CodeNoSuppliers, errs.CodeNoStock, errs.CodeRouteUnreachable, errs.CodePlanningFailed:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// handlerErrorResponse writes the uniform error envelope for a failed core
// operation. Errors without a domain code (infrastructure failures during
// snapshot writes, for example) are reported as internal errors.
func handlerErrorResponse(ctx echo.Context, err error) error {
	var de *errs.DomainError
	if errors.As(err, &de) {
		return ctx.JSON(statusFor(de.Code), Error{Code: de.Code, Message: err.Error()})
	}
	return ctx.JSON(http.StatusInternalServerError, Error{
		Code:    errs.CodeUnexpectedException,
		Message: err.Error(),
	})
}

// badRequestResponse reports a malformed or invalid request body.
func badRequestResponse(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    errs.CodeInvalidArgument,
		Message: message,
	})
}
