package http

import (
	"net/http"
	"time"

	"github.com/DRSN-tech/catalog-service/pkg/logger"
	"github.com/google/uuid"
)

// responseWriter оборачивает http.ResponseWriter, чтобы запомнить статус ответа.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// RequestLogger присваивает каждому запросу идентификатор и логирует метод,
// путь, статус и длительность обработки.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", requestID)

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r)

			log.Infof("%s %s %d %s request_id: %s",
				r.Method, r.URL.Path, rw.statusCode, time.Since(start), requestID)
		})
	}
}
