package http

import (
	"errors"
	"net/http"
	"strings"

	"budzet/internal/core"
	"budzet/internal/log"
)

// User-facing messages, kept in Polish like the rest of the UI.
const (
	msgInvalidData   = "Nieprawidłowe dane"
	msgUserExists    = "Użytkownik już istnieje"
	msgBadLogin      = "Nieprawidłowy login lub hasło"
	msgNotFound      = "Nie znaleziono"
	msgInternalError = "Internal Server Error"
)

// writeError maps the core error taxonomy onto HTTP responses. Forbidden
// access is answered with a redirect to the index, not an error page.
// Client errors are logged at debug, everything else at error.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg, errType := classifyError(err)
	fields := log.NewFields().
		WithErrorType(errType).
		WithHTTPRequest(r.Method, r.URL.Path, "", "", "")

	if status == http.StatusInternalServerError {
		log.NewStructuredLogger(s.log(r)).LogError(r.Context(), "Request failed", err, r.Pattern, fields)
		http.Error(w, msg, status)
		return
	}

	s.log(r).DebugContext(r.Context(), "Request rejected", fields.WithError(err).ToSlice()...)
	if status == http.StatusSeeOther {
		redirect(w, r, "/")
		return
	}
	http.Error(w, msg, status)
}

// classifyError returns the status, user-facing message and log error type
// for err.
func classifyError(err error) (status int, msg, errType string) {
	switch {
	case errors.Is(err, core.ErrValidation):
		return http.StatusUnprocessableEntity, msgInvalidData + ": " + validationDetail(err), log.ErrorTypeValidation
	case errors.Is(err, core.ErrConflict):
		return http.StatusConflict, msgUserExists, log.ErrorTypeConflict
	case errors.Is(err, core.ErrAuth):
		return http.StatusUnauthorized, msgBadLogin, log.ErrorTypeAuth
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound, msgNotFound, log.ErrorTypeNotFound
	case errors.Is(err, core.ErrForbidden):
		return http.StatusSeeOther, "", log.ErrorTypeForbidden
	default:
		return http.StatusInternalServerError, msgInternalError, log.ErrorTypeInternal
	}
}

// validationDetail is the part of a validation error after the sentinel
// text, e.g. "type must be income or expense".
func validationDetail(err error) string {
	msg := err.Error()
	prefix := core.ErrValidation.Error() + ": "
	if i := strings.Index(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return msg
}
