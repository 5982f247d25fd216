package providers

import (
	"net/http"
	"runtime/debug"
	"survey/internal/envelope"
)

// RecoverMiddleware turns a panic in a handler into a 500 envelope.
func RecoverMiddleware(logger Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.Errorf(TypeApp, "panic serving %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
			envelope.Failure(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		}()
		next.ServeHTTP(w, r)
	})
}
