package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/sevigo/code-critic/internal/api"
	"github.com/sevigo/code-critic/internal/logger"
	"github.com/sevigo/code-critic/internal/server/handler"
)

// recoverJSON turns a handler panic into a 500 JSON response instead of a
// dropped connection.
func recoverJSON(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				log.Error("panic while serving request",
					"panic", rvr,
					"method", r.Method,
					"path", r.URL.Path,
					"request_id", middleware.GetReqID(r.Context()),
					"stack", string(debug.Stack()),
				)
				handler.WriteJSON(w, http.StatusInternalServerError, api.InternalErrorResponse{
					Error:     "Internal server error",
					Message:   fmt.Sprint(rvr),
					Timestamp: api.FormatTimestamp(time.Now()),
				})
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// requestScopedLogger stores a logger tagged with the request ID in the
// request context.
func requestScopedLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scoped := log.With("request_id", middleware.GetReqID(r.Context()))
			next.ServeHTTP(w, r.WithContext(logger.WithContext(r.Context(), scoped)))
		})
	}
}
