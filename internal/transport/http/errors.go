package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/light-bringer/storefront-catalog/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-catalog/internal/logger"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message, detail string) {
	writeJSON(w, status, ErrorResponse{Error: message, Detail: detail})
}

// writeDomainError maps catalog errors to HTTP statuses. Store failures are
// logged with their cause and answered with a generic message.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	var verr *domain.ValidationError
	var qerr *domain.QueryExecutionError

	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, "invalid query parameter", verr.Error())

	case errors.Is(err, domain.ErrUnknownCategory):
		writeError(w, http.StatusNotFound, "category not found", "")

	case errors.Is(err, domain.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "product not found", "")

	case errors.As(err, &qerr) && qerr.Timeout:
		log.Error("catalog query timed out", zap.String("op", qerr.Op), zap.Error(err))
		writeError(w, http.StatusGatewayTimeout, "query timed out", "")

	default:
		log.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error", "")
	}
}
