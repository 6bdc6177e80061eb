package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses by kind. The message of a
// domain error is safe to show; anything else is logged and hidden.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var domainErr *apperror.Error
	if !errors.As(err, &domainErr) {
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
		return
	}

	switch domainErr.Kind() {
	case apperror.KindNotFound:
		NotFound(w, domainErr.Error())
	case apperror.KindConflict:
		Conflict(w, domainErr.Error())
	case apperror.KindInvalidState:
		errorResponse(w, http.StatusBadRequest, string(apperror.KindInvalidState), domainErr.Error(), nil)
	case apperror.KindUnauthorized:
		Unauthorized(w, domainErr.Error())
	case apperror.KindForbidden:
		Forbidden(w, domainErr.Error())
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
