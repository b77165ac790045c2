package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pawelkapusta/splitdivision-bill-api/internal/domain"
)

// ErrorResponse is the JSON error envelope returned by every failing endpoint.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// writeError writes an ErrorResponse with the given status, code, and message.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// writeServiceError maps a service-layer error onto a status code and error
// body. notFoundMsg is the message for the 404 case, because the handler is
// the layer that knows what was being looked up.
func writeServiceError(w http.ResponseWriter, err error, notFoundMsg string) {
	var partial *domain.PartialSplitError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", notFoundMsg)
	case errors.As(err, &partial):
		// Some participant rows were persisted before the failure; surface
		// that as a server failure so the caller knows to reconcile.
		slog.Error("partial split", "bill_id", partial.BillID,
			"created", len(partial.Created), "failed", len(partial.Failed), "error", err)
		writeError(w, http.StatusInternalServerError, "partial_split",
			"bill was created but not all participants could be persisted")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "conflict", "duplicate id or participant pair")
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
	default:
		slog.Error("internal error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// unwrapMessage strips the layer-qualified prefixes from a wrapped sentinel
// error, leaving the human-readable part.
// e.g. "service.BillService.Create: validation error: name is required" → "name is required"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, marker := range []string{"validation error: ", "constraint violation: "} {
		if i := strings.LastIndex(msg, marker); i >= 0 {
			return msg[i+len(marker):]
		}
	}
	return msg
}
