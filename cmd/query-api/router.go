package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fplchat/query-engine/cmd/query-api/handlers"
	"github.com/fplchat/query-engine/internal/observability"
	"github.com/fplchat/query-engine/internal/snapshot"
	"github.com/fplchat/query-engine/pkg/engine"
)

func newRouter(eng *engine.Engine, refresher *snapshot.Refresher, logger *observability.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(traceIDMiddleware)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware)
	r.Use(middleware.Timeout(30 * time.Second))

	qh := handlers.NewQueryHandler(eng, logger)
	ah := handlers.NewAdminHandler(eng, refresher, logger)

	r.Get("/health", ah.Health)
	r.Get("/ready", ah.Ready)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/query", qh.Query)
		r.Post("/answer", qh.RecordAnswer)
		r.Delete("/sessions/{sessionID}", qh.ClearSession)
		r.Post("/refresh", ah.Refresh)
	})

	return r
}

// traceIDMiddleware carries chi's request id into the context so handler
// logs share one trace id per request.
func traceIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if reqID := middleware.GetReqID(r.Context()); reqID != "" {
			r = r.WithContext(observability.ContextWithTraceID(r.Context(), reqID))
		}
		next.ServeHTTP(w, r)
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
