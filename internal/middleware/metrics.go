package middleware

import (
	"net/http"
	"time"

	"github.com/RubachokBoss/driving-test-service/internal/metrics"
	"github.com/go-chi/chi/v5/middleware"
)

func Metrics(m *metrics.Metrics) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.ObserveRequest(r.Method, status, time.Since(start))
		}
		return http.HandlerFunc(fn)
	}
}
