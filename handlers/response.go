package handlers

import (
	// Go Internal Packages
	"encoding/json"
	"net/http"

	// Local Packages
	errors "pay-stream/errors"

	// External Packages
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeNotFound         = "NOT_FOUND"
	CodeInternal         = "INTERNAL"
	CodeBadRequest       = "BAD_REQUEST"
)

type ErrorResponse struct {
	Code    string   `json:"code"`
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// mapError turns an error into its status code and body. Internal details
// never reach the client.
func mapError(err error) (int, ErrorResponse) {
	switch errors.KindOf(err) {
	case errors.Invalid:
		if ve, ok := errors.Validation(err); ok {
			return http.StatusBadRequest, ErrorResponse{Code: CodeValidationFailed, Error: "validation failed", Details: ve.Messages()}
		}
		return http.StatusBadRequest, ErrorResponse{Code: CodeBadRequest, Error: err.Error()}
	case errors.NotExist:
		return http.StatusNotFound, ErrorResponse{Code: CodeNotFound, Error: err.Error()}
	}
	return http.StatusInternalServerError, ErrorResponse{Code: CodeInternal, Error: "internal server error"}
}

func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	status, body := mapError(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("kind", errors.KindOf(err).String()),
			zap.Error(err))
	}
	writeJSON(w, status, body)
}

// decodeBody decodes the JSON body into dst, writing a 400 when it cannot.
func decodeBody(w http.ResponseWriter, r *http.Request, logger *zap.Logger, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.Debug("undecodable request body",
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err))
		writeError(w, r, logger, errors.InvalidBodyErr())
		return false
	}
	return true
}
