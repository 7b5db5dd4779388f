package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/nvoss/storefront/internal/domain"
	"github.com/nvoss/storefront/internal/service"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleServiceError maps the domain error taxonomy onto stable HTTP status
// categories. Internal failures log the cause and return a generic message
// keyed by the request id, never persistence-layer detail.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *domain.ValidationError

	switch {
	case errors.As(err, &vErr):
		respondError(w, http.StatusBadRequest, "validation_error", vErr.Error())
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrForbidden):
		respondError(w, http.StatusForbidden, "forbidden", "not authorized to access this resource")
	case errors.Is(err, domain.ErrConflict):
		respondError(w, http.StatusConflict, "conflict", "concurrent update conflict, retry the request")
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "invalid_credentials", service.ErrInvalidCredentials.Error())
	default:
		requestID := getRequestID(r.Context())
		slog.Error("internal error", "request_id", requestID, "path", r.URL.Path, "error", err)
		respondJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:   "internal server error",
			Code:    "internal_error",
			Details: "request_id=" + requestID,
		})
	}
}
