// Package httpserve runs an http.Server on a listener that is bound before
// serving starts, so address conflicts surface to the caller and the real
// port is known when it is logged.
package httpserve

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

type Server struct {
	name string
	srv  *http.Server
	ln   net.Listener
}

// New wraps srv. name prefixes every error the server reports.
func New(name string, srv *http.Server) *Server {
	return &Server{name: name, srv: srv}
}

// Start binds srv.Addr and serves in the background. A bind failure is
// returned directly. The channel receives a serve error, if any, and is
// closed when serving stops.
func (s *Server) Start() (<-chan error, error) {
	addr := s.srv.Addr
	if addr == "" {
		addr = ":http"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%s server: %w", s.name, err)
	}
	s.ln = ln

	errCh := make(chan error, 1)
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("%s server: %w", s.name, err)
		}
		close(errCh)
	}()
	return errCh, nil
}

// Addr is the bound address once Start succeeded, the configured one before.
func (s *Server) Addr() string {
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return s.srv.Addr
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
