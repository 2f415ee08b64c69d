package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/phrazzld/shop-api/internal/api/shared"
	"github.com/phrazzld/shop-api/internal/platform/logger"
)

// Recoverer turns a handler panic into a JSON 500 response.
// http.ErrAbortHandler is re-panicked so net/http can abort the connection.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}

			logger.FromContext(r.Context()).Error("panic while serving request",
				slog.String("panic", fmt.Sprint(rec)),
				slog.String("stack", string(debug.Stack())))

			if r.Header.Get("Connection") != "Upgrade" {
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
