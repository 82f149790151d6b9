package server

import (
	"log/slog"
	"net/http"
	"time"

	derrors "git.home.luguber.info/inful/showcase/internal/foundation/errors"
	"git.home.luguber.info/inful/showcase/internal/logfields"
)

// statusRecorder remembers the status code written through it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// chain logs every request at debug level and turns handler panics into a
// JSON 500 response.
func chain(logger *slog.Logger, adapter *derrors.HTTPErrorAdapter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		defer func() {
			if p := recover(); p != nil {
				logger.Error("Preview handler panicked", slog.Any("panic", p), logfields.Path(r.URL.Path))
				adapter.WriteErrorResponse(rec, derrors.InternalError("internal server error").
					WithContext("path", r.URL.Path).
					Build())
			}
			logger.Debug("Served request",
				logfields.Method(r.Method),
				logfields.Path(r.URL.Path),
				logfields.Status(rec.status),
				logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
		}()
		next.ServeHTTP(rec, r)
	})
}
