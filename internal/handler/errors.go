package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine-readable code, a human-readable
// message and, for validation failures, the violated rule.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Rule    string `json:"rule,omitempty"`
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorBody(w http.ResponseWriter, status int, d ErrorDetail) {
	writeJSON(w, status, ErrorResponse{Error: d})
}

// badRequest reports a request rejected before reaching the service layer,
// such as a malformed path or query parameter.
func badRequest(w http.ResponseWriter, message string) {
	writeErrorBody(w, http.StatusBadRequest, ErrorDetail{Code: "bad_request", Message: message})
}

// fail maps a service error onto the HTTP error contract.
// resource names what was being looked up (e.g. "trip") for 404 messages.
// Anything that is not a domain error is a storage failure: it is logged
// and reported as 500 with the error text.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, resource string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeErrorBody(w, http.StatusUnprocessableEntity, ErrorDetail{Code: "validation_error", Message: verr.Message, Rule: verr.Rule})
	case errors.Is(err, domain.ErrValidation):
		writeErrorBody(w, http.StatusUnprocessableEntity, ErrorDetail{Code: "validation_error", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeErrorBody(w, http.StatusNotFound, ErrorDetail{Code: "not_found", Message: resource + " not found"})
	case errors.Is(err, domain.ErrUnauthorized):
		writeErrorBody(w, http.StatusUnauthorized, ErrorDetail{Code: "unauthorized", Message: "authentication required"})
	default:
		s.log.ErrorContext(r.Context(), "storage error",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeErrorBody(w, http.StatusInternalServerError, ErrorDetail{Code: "storage_error", Message: err.Error()})
	}
}

// decodeBody decodes the JSON request body into dst. Decode failures are
// answered as validation errors (or 413 when the body limit was hit) and
// reported back as false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Body == nil || r.Body == http.NoBody {
		writeErrorBody(w, http.StatusUnprocessableEntity, ErrorDetail{Code: "validation_error", Message: "request body is required"})
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErrorBody(w, http.StatusRequestEntityTooLarge, ErrorDetail{Code: "payload_too_large", Message: "request body too large"})
			return false
		}
		writeErrorBody(w, http.StatusUnprocessableEntity, ErrorDetail{Code: "validation_error", Message: "malformed JSON body: " + err.Error()})
		return false
	}
	return true
}

// session returns the caller's session attached by the auth middleware.
// A missing session yields the zero Session, which every service rejects
// with domain.ErrUnauthorized.
func session(r *http.Request) domain.Session {
	sess, _ := domain.SessionFrom(r.Context())
	return sess
}
