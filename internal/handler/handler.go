package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/LDtito/zend-crud-app/internal/middleware"
	"github.com/LDtito/zend-crud-app/internal/model"

	"github.com/rs/zerolog"
)

// maxRequestBytes caps every request body. Larger bodies fail with 413.
const maxRequestBytes int64 = 32 << 20

// ValidationResponse carries per-field validation messages. Errors is a
// list for productos and a field map for categorias.
type ValidationResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Errors    any    `json:"errors"`
	RequestID string `json:"requestId,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Str("error", code).Str("message", message).Int("status", status).Msg("handler error")

	writeJSON(w, status, model.ErrorResponse{
		Error:     code,
		Message:   message,
		RequestID: middleware.RequestIDFromContext(r.Context()),
	})
}

func writeValidation(w http.ResponseWriter, r *http.Request, status int, code string, errs any) {
	writeJSON(w, status, ValidationResponse{
		Error:     code,
		Message:   "validation failed",
		Errors:    errs,
		RequestID: middleware.RequestIDFromContext(r.Context()),
	})
}

// writeServiceError maps a service error onto a response. Unclassified
// errors are logged in full and answered with a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	var (
		productoErrs  model.ProductoErrors
		categoriaErrs model.CategoriaErrors
		domainErr     *model.DomainError
	)

	switch {
	case errors.As(err, &productoErrs):
		writeValidation(w, r, http.StatusUnprocessableEntity, model.ErrCodeValidationFailed, productoErrs)
	case errors.Is(err, model.ErrConflict) && errors.As(err, &categoriaErrs):
		writeValidation(w, r, http.StatusConflict, model.ErrCodeConflict, categoriaErrs)
	case errors.As(err, &categoriaErrs):
		writeValidation(w, r, http.StatusUnprocessableEntity, model.ErrCodeValidationFailed, categoriaErrs)
	case errors.As(err, &domainErr) && domainErr.Code == model.ErrCodeNotFound:
		writeError(w, r, http.StatusNotFound, domainErr.Code, domainErr.Error(), logger)
	case errors.As(err, &domainErr) && domainErr.Code == model.ErrCodeConflict:
		writeError(w, r, http.StatusConflict, domainErr.Code, domainErr.Error(), logger)
	case errors.As(err, &domainErr) && domainErr.Code == model.ErrCodeInvalidForm:
		writeError(w, r, http.StatusBadRequest, domainErr.Code, domainErr.Error(), logger)
	default:
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("unhandled service error")
		writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
	}
}

// pathID parses the {id} path value. It writes a 400 and reports false
// when the value is not a positive integer.
func pathID(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidForm, "invalid id parameter", logger)
		return 0, false
	}
	return id, true
}

// mediaType returns the request content type without parameters.
func mediaType(r *http.Request) string {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mt
}

// invalidForm builds an INVALID_FORM domain error.
func invalidForm(format string, args ...any) error {
	return model.NewDomainError(model.ErrCodeInvalidForm, fmt.Sprintf(format, args...))
}

// writeBodyError answers a request whose body could not be decoded.
func writeBodyError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	var (
		tooLarge  *http.MaxBytesError
		domainErr *model.DomainError
	)

	switch {
	case errors.As(err, &tooLarge):
		writeError(w, r, http.StatusRequestEntityTooLarge, model.ErrCodeInvalidForm, "request body too large", logger)
	case errors.As(err, &domainErr):
		writeServiceError(w, r, err, logger)
	default:
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidForm, "invalid request body", logger)
	}
}

// checkKeys rejects form keys outside allowed.
func checkKeys(keys map[string][]string, allowed map[string]bool) error {
	for k := range keys {
		if !allowed[k] {
			return invalidForm("campo desconocido: %q", k)
		}
	}
	return nil
}
