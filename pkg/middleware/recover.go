// Package middleware provides the HTTP middleware stack.
package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/766ms/Glam-rent-v1/pkg/logger"
	"github.com/766ms/Glam-rent-v1/pkg/response"
)

// Recovery catches any panic in downstream handlers, logs the stack trace,
// and returns a plain 500 to the client. Stack traces never reach the
// response body.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered",
					"error", fmt.Sprintf("%v", err),
					"stack", string(debug.Stack()),
					"method", r.Method,
					"path", r.URL.Path,
				)
				response.Error(w, http.StatusInternalServerError, "Internal Server Error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
