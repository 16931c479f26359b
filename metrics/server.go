package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// StartPrometheusServer starts a Prometheus HTTP server, listening for metrics
// collectors on addr.
func StartPrometheusServer(addr string, reg prometheus.Registerer, gatherer prometheus.Gatherer, logger *zap.Logger) *http.Server {
	srv := &http.Server{
		Addr: addr,
		Handler: promhttp.InstrumentMetricHandler(
			reg, promhttp.HandlerFor(
				gatherer,
				promhttp.HandlerOpts{},
			),
		),
		ReadHeaderTimeout: time.Minute,
	}
	go func() {
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			// Error starting or closing listener:
			logger.Error("Prometheus HTTP server ListenAndServe", zap.Error(err))
		}
	}()
	return srv
}

// StopPrometheusServer shuts srv down, waiting at most timeout for open requests.
func StopPrometheusServer(srv *http.Server, timeout time.Duration, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("failed to shut down metrics server", zap.Error(err))
	}
}
