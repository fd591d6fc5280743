package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	perr "postpilot/internal/platform/errors"
	"postpilot/internal/platform/logger"
	pnet "postpilot/internal/platform/net"
)

// RecoverJSON turns a panic into a 500 envelope and logs the stack with the request id
// http.ErrAbortHandler is re-panicked so net/http can drop the connection
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}

			reqID := pnet.RequestID(r.Context())
			logger.C(r.Context()).Error().
				Str("request_id", reqID).
				Interface("panic", v).
				Str("path", r.URL.Path).
				Msgf("panic recovered\n%s", debug.Stack())

			if reqID != "" {
				w.Header().Set("X-Request-ID", reqID)
			}
			status, body := pnet.Error(perr.PanicErrf("panic recovered"), reqID)
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(body)
		}()
		next.ServeHTTP(w, r)
	})
}
