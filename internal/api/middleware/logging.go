package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// RequestLogger пишет в лог каждый обработанный запрос
func RequestLogger(logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			logger.Info("HTTP %s %s - status=%d, duration=%s",
				r.Method, r.URL.Path, rec.status, time.Since(start))
		})
	}
}
