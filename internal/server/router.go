package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/cosmonaut-api/internal/app"
	"github.com/cosmonaut-api/internal/handlers"
	"github.com/cosmonaut-api/internal/metrics"
)

// NewRouter binds the cosmonaut routes and the middleware chain.
func NewRouter(a *app.App) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(a.Log, a.Metrics))
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		handlers.WriteError(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		handlers.WriteError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	h := handlers.NewCosmonautHandler(a)
	r.Get("/cosmonauts/", h.List)
	r.Post("/cosmonauts/create", h.Create)
	r.Delete("/cosmonauts/{id}", h.Delete)
	r.Put("/cosmonauts/{id}", h.Update)
	r.Get("/cosmonauts", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/cosmonauts/", http.StatusTemporaryRedirect)
	})

	return r
}

// requestLogger logs one line per request and feeds the request metrics.
func requestLogger(log *zap.SugaredLogger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				elapsed := time.Since(start)
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				route := "unmatched"
				if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
					route = rctx.RoutePattern()
				}
				m.ObserveRequest(route, r.Method, status, elapsed)
				log.Infow("request",
					"method", r.Method,
					"path", r.URL.Path,
					"route", route,
					"status", status,
					"bytes", ww.BytesWritten(),
					"duration", elapsed,
					"requestID", middleware.GetReqID(r.Context()),
					"remote", r.RemoteAddr,
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
