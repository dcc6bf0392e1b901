package server

import (
	"net/http"
	"time"

	"github.com/cosmonaut-api/internal/app"
	"github.com/cosmonaut-api/internal/httpserve"
)

// New returns the public API server for a, listening on addr once started.
func New(addr string, a *app.App) *httpserve.Server {
	return httpserve.New("api", &http.Server{
		Addr:              addr,
		Handler:           NewRouter(a),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	})
}
