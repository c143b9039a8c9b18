package requestlogger

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/mileusna/useragent"
	"github.com/rs/zerolog"
)

// Middleware logs every request, except those with a path in pathFilters.
func Middleware(logger zerolog.Logger, pathFilters ...string) func(next http.Handler) http.Handler {
	filtered := make(map[string]struct{}, len(pathFilters))
	for _, f := range pathFilters {
		filtered[f] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			if _, ok := filtered[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			t1 := time.Now()
			defer func() {
				t2 := time.Now()

				bytesIn := r.ContentLength
				if bytesIn < 0 {
					bytesIn = 0
				}

				requestID := middleware.GetReqID(r.Context())
				if requestID == "" {
					requestID = "n/a"
				}

				logger.Info().Timestamp().Fields(map[string]interface{}{
					"request_id": requestID,
					"remote_ip":  r.RemoteAddr,
					"request":    fmt.Sprintf("%s %s (response_code: %d)", r.Method, r.URL.Path, ww.Status()),
					"proto":      r.Proto,
					"browser":    browser(r.Header.Get("User-Agent")),
					"latency_ms": float64(t2.Sub(t1).Nanoseconds()) / 1000000.0,
					"bytes_in":   bytesIn,
					"bytes_out":  ww.BytesWritten(),
				}).Msg("incoming_request")
			}()

			next.ServeHTTP(ww, r)
		}

		return http.HandlerFunc(fn)
	}
}

func browser(userAgent string) string {
	if userAgent == "" {
		return "unknown"
	}

	ua := useragent.Parse(userAgent)
	if ua.Name == "" {
		return "unknown"
	}

	if ua.OS == "" {
		return ua.Name
	}

	return fmt.Sprintf("%s (%s)", ua.Name, ua.OS)
}
