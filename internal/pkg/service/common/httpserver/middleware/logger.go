package middleware

import (
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/keboola/config-features/internal/pkg/log"
)

type responseCapture struct {
	http.ResponseWriter
	StatusCode    int
	ContentLength int
}

func captureResponse(w http.ResponseWriter) *responseCapture {
	return &responseCapture{ResponseWriter: w, StatusCode: http.StatusOK}
}

func (w *responseCapture) WriteHeader(code int) {
	w.StatusCode = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseCapture) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.ContentLength += n
	return n, err
}

// Logger middleware writes the access log.
func Logger(baseLogger log.Logger) Middleware {
	baseLogger = baseLogger.WithComponent("http")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			started := time.Now()
			rw := captureResponse(w)
			next.ServeHTTP(rw, req)

			if !isAccessLogDisabled(req) || rw.StatusCode >= http.StatusInternalServerError {
				baseLogger.
					WithDuration(time.Since(started)).
					With(
						attribute.String("http.method", req.Method),
						attribute.String("http.url", log.Sanitize(req.URL.String())),
						attribute.Int("http.status_code", rw.StatusCode),
						attribute.Int("http.response_length", rw.ContentLength),
						attribute.String("http.user_agent", log.Sanitize(req.UserAgent())),
					).
					Infof(req.Context(), "req %s status=%d", log.Sanitize(req.URL.String()), rw.StatusCode)
			}
		})
	}
}
