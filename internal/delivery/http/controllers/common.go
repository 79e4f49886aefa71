package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"

	"eventdesk/internal/delivery/http/helpers"
	"eventdesk/internal/domain"
)

// uuidRegex matches a canonical UUID string (8-4-4-4-12 hex).
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// pathID extracts and validates a UUID path value. Writes a 400 and returns
// false when missing or malformed.
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := r.PathValue(name)
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing "+name)
		return "", false
	}
	if !uuidRegex.MatchString(id) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid "+name)
		return "", false
	}
	return id, true
}

// writeDomainError maps domain error kinds onto the API error envelope.
// Unknown errors are logged and surface as 500.
func writeDomainError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrDuplicateBooking):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeDuplicate, err.Error())
	case errors.Is(err, domain.ErrTimeslotTaken):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidTransition):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeInvalidState, err.Error())
	case errors.Is(err, domain.ErrPreconditionFailed):
		helpers.WriteJSONError(w, http.StatusUnprocessableEntity, helpers.ErrCodePreconditionFailed, err.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}
