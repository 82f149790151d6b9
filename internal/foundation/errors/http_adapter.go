package errors

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// HTTPErrorAdapter writes errors as JSON for the preview server.
type HTTPErrorAdapter struct {
	logger *slog.Logger
}

// NewHTTPErrorAdapter creates a new HTTP error adapter. A nil logger means slog.Default().
func NewHTTPErrorAdapter(logger *slog.Logger) *HTTPErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPErrorAdapter{logger: logger}
}

// HTTPErrorResponse is the JSON error payload.
type HTTPErrorResponse struct {
	Error     string         `json:"error"`
	Code      string         `json:"code,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	Retryable bool           `json:"retryable,omitempty"`
}

// StatusCodeFor maps err to an HTTP status. Unclassified errors are 500s.
func (a *HTTPErrorAdapter) StatusCodeFor(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if c, ok := AsClassified(err); ok {
		return specFor(c.category).status
	}
	return http.StatusInternalServerError
}

// WriteErrorResponse writes err with its mapped status code.
func (a *HTTPErrorAdapter) WriteErrorResponse(w http.ResponseWriter, err error) {
	resp := HTTPErrorResponse{Error: err.Error()}
	if c, ok := AsClassified(err); ok {
		resp.Error = c.Message()
		resp.Code = string(c.category)
		resp.Retryable = c.CanRetry()
		if len(c.context) > 0 {
			resp.Details = c.context
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(a.StatusCodeFor(err))
	if encErr := json.NewEncoder(w).Encode(resp); encErr != nil {
		a.logger.Error("Failed to encode error response", slog.String("error", encErr.Error()))
	}
}
