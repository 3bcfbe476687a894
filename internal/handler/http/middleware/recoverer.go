package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/emporia-hr/emporia-backend-go/internal/handler/http/response"
)

// Recoverer turns a handler panic into the JSON error envelope.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}
				stack := debug.Stack()
				slog.Error("panic recovered", "panic", rvr, "method", r.Method, "path", r.URL.Path, "stack", string(stack))
				response.Panic(w, rvr, stack)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
