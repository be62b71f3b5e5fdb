package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kilianp07/smarthospital/infra/logger"
)

// NewServeMux returns a mux exposing gatherer on /metrics plus the extra
// routes. A nil gatherer selects the default Prometheus registry.
func NewServeMux(gatherer prometheus.Gatherer, routes map[string]http.Handler) *http.ServeMux {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	for pattern, h := range routes {
		mux.Handle(pattern, h)
	}
	return mux
}

// StartPromServer serves handler on addr until ctx is canceled.
func StartPromServer(ctx context.Context, addr string, handler http.Handler) error {
	log := logger.New("metrics-server")
	srv := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("metrics server shutdown: %v", err)
		}
		cancel()
	}()
	log.Infof("serving metrics on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
