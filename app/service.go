// Package app wires the city network, dispatch manager and ambient services
// from configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/kilianp07/smarthospital/api/admissions"
	"github.com/kilianp07/smarthospital/config"
	"github.com/kilianp07/smarthospital/core/city"
	"github.com/kilianp07/smarthospital/core/dispatch"
	"github.com/kilianp07/smarthospital/core/dispatch/logging"
	"github.com/kilianp07/smarthospital/core/events"
	coremetrics "github.com/kilianp07/smarthospital/core/metrics"
	coremon "github.com/kilianp07/smarthospital/core/monitoring"
	"github.com/kilianp07/smarthospital/core/queue"
	"github.com/kilianp07/smarthospital/core/snapshot"
	"github.com/kilianp07/smarthospital/infra/logger"
	"github.com/kilianp07/smarthospital/infra/metrics"
	"github.com/kilianp07/smarthospital/infra/monitoring"
	"github.com/kilianp07/smarthospital/internal/eventbus"
)

// ErrNoLogStore is returned when the admission log is disabled.
var ErrNoLogStore = errors.New("app: admission log disabled")

// Service orchestrates the dispatch manager and its supporting services.
type Service struct {
	Config  *config.Config
	Network *city.Network
	Manager *dispatch.Manager
	store   logging.LogStore
	bus     *eventbus.Bus[events.Event]
	log     logger.Logger
}

// New loads the city snapshot named by the configuration and builds a
// Service around it.
func New(cfg *config.Config) (*Service, error) {
	net, err := snapshot.LoadFile(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("load database: %w", err)
	}
	return NewWithNetwork(cfg, net)
}

// NewWithNetwork builds a Service around an already loaded network.
func NewWithNetwork(cfg *config.Config, net *city.Network) (*Service, error) {
	if err := logger.SetGlobalLevel(cfg.Log.Level); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	logg := logger.New("service")

	mon, err := monitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}
	coremon.Init(mon)

	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	bus := eventbus.New[events.Event](0)
	manager, err := dispatch.NewManager(net, queue.New(cfg.Dispatch.QueueCapacity), cfg.Dispatch, sink, bus, logger.New("dispatch"))
	if err != nil {
		return nil, fmt.Errorf("dispatch manager: %w", err)
	}

	svc := &Service{Config: cfg, Network: net, Manager: manager, bus: bus, log: logg}
	if cfg.Logging.Enabled() {
		store, err := logging.NewStore(cfg.Logging.Module())
		if err != nil {
			_ = manager.Close()
			return nil, fmt.Errorf("admission log: %w", err)
		}
		manager.SetLogStore(store)
		svc.store = store
	}
	manager.RecordOccupancy()
	logg.Infof("loaded %d areas and %d hospitals", net.NumAreas(), net.NumHospitals())
	return svc, nil
}

// LogStore returns the admission log store.
func (s *Service) LogStore() (logging.LogStore, error) {
	if s.store == nil {
		return nil, ErrNoLogStore
	}
	return s.store, nil
}

// Start launches the background services: the metrics server when an
// address is configured and an event tap logging bus traffic at debug level.
// They stop when ctx is canceled.
func (s *Service) Start(ctx context.Context) {
	go s.watchEvents(ctx, s.bus.Subscribe())
	addr := s.Config.Metrics.Address
	if addr == "" {
		return
	}
	go func() {
		defer coremon.Recover()
		if err := metrics.StartPromServer(ctx, addr, s.Handler()); err != nil {
			s.log.Errorf("metrics server: %v", err)
		}
	}()
}

// Handler returns the HTTP handler serving /metrics and, when the admission
// log is enabled, the read-only log endpoint.
func (s *Service) Handler() http.Handler {
	routes := map[string]http.Handler{}
	if s.store != nil {
		routes[admissions.Route] = admissions.NewLogHandler(s.store, s.Config.Server.Token)
	}
	return metrics.NewServeMux(nil, routes)
}

func (s *Service) watchEvents(ctx context.Context, sub <-chan events.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub:
			if !ok {
				return
			}
			switch e := ev.(type) {
			case events.ReportEvent:
				s.log.Debugw("event", map[string]any{"kind": e.Kind(), "patient_id": e.Patient.ID, "queue_depth": e.QueueDepth})
			case events.AdmissionEvent:
				s.log.Debugw("event", map[string]any{"kind": e.Kind(), "patient_id": e.Patient.ID, "outcome": string(e.Outcome)})
			}
		}
	}
}

// Save writes the network back to the configured snapshot file.
func (s *Service) Save() error {
	if err := snapshot.SaveFile(s.Config.Database.Path, s.Network); err != nil {
		return fmt.Errorf("save database: %w", err)
	}
	s.log.Infof("database saved to %s", s.Config.Database.Path)
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	err := s.Manager.Close()
	coremon.Flush(2 * time.Second)
	return err
}
