package httpserve

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hello() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "hello")
	})
}

func TestServer_ServesOnceStarted(t *testing.T) {
	s := New("test", &http.Server{Addr: "127.0.0.1:0", Handler: hello(), ReadHeaderTimeout: time.Second})
	assert.Equal(t, "127.0.0.1:0", s.Addr())

	errCh, err := s.Start()
	require.NoError(t, err)
	assert.NotEqual(t, "127.0.0.1:0", s.Addr())

	// Bound before Start returned, so the first request must succeed.
	resp, err := http.Get("http://" + s.Addr() + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))

	for err := range errCh {
		require.NoError(t, err)
	}
}

func TestServer_BindConflictReturnedFromStart(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	s := New("test", &http.Server{Addr: ln.Addr().String(), Handler: hello(), ReadHeaderTimeout: time.Second})
	errCh, err := s.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test server")
	assert.Nil(t, errCh)
}
