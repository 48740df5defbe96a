package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"rdtlog/internal/platform/config"
	"rdtlog/internal/platform/net/middleware"
)

// CommonStack returns the baseline middleware for the API, read from cfg
// (usually the "API_" scope): CORS_*, MAX_INFLIGHT, REQUEST_TIMEOUT and SLOW_REQUEST
func CommonStack(cfg config.Conf) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// correlation
		middleware.RequestID(),
		middleware.RealIP(),

		middleware.RecoverJSON,
		middleware.NoCache(),
		middleware.AccessLogZerolog(middleware.AccessLogOptions{
			Slow: cfg.MayDuration("SLOW_REQUEST", time.Second),
		}),

		middleware.CORS(middleware.CORSFromConfig(cfg)),
		middleware.Throttle(cfg.MayInt("MAX_INFLIGHT", 64)),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Timeout(cfg.MayDuration("REQUEST_TIMEOUT", 30*time.Second)),
	}
}
