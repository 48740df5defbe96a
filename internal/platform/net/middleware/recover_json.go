package middleware

import (
	stdhttp "net/http"
	"runtime/debug"
	"strings"

	perr "rdtlog/internal/platform/errors"
	"rdtlog/internal/platform/logger"
	pnet "rdtlog/internal/platform/net"
	phttp "rdtlog/internal/platform/net/http"
)

// RecoverJSON converts panics into a JSON 500 envelope and logs the stack
func RecoverJSON(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == stdhttp.ErrAbortHandler {
				panic(v)
			}
			stack := strings.ReplaceAll(string(debug.Stack()), "\n", "\n\t")
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Msgf("panic recovered\n%s", stack)

			status, body := pnet.Error(perr.PanicErrf("panic recovered"), pnet.RequestID(r.Context()))
			phttp.JSON(w, status, body)
		}()
		next.ServeHTTP(w, r)
	})
}
