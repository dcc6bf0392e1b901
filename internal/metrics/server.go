package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/cosmonaut-api/internal/httpserve"
)

// Handler serves reg at /metrics and a liveness check at /health. Scrapes
// of /metrics are themselves counted in reg under promhttp_metric_handler_*.
func Handler(reg *prometheus.Registry, log *zap.SugaredLogger) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.InstrumentMetricHandler(reg, promhttp.HandlerFor(reg, promhttp.HandlerOpts{
		ErrorLog:          zap.NewStdLog(log.Desugar()),
		Registry:          reg,
		EnableOpenMetrics: true,
	})))
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// NewServer returns the operational server for METRICS_ADDR.
func NewServer(addr string, reg *prometheus.Registry, log *zap.SugaredLogger) *httpserve.Server {
	return httpserve.New("metrics", &http.Server{
		Addr:              addr,
		Handler:           Handler(reg, log),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
	})
}
