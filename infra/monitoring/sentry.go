// Package monitoring adapts Sentry to the core monitoring interface.
//
// Dispatch reports invariant violations with "module", "patient_id" and
// "hospital" tags. Events carrying a hospital tag are fingerprinted per
// hospital so a misbehaving bed pool shows up as its own issue.
package monitoring

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/kilianp07/smarthospital/config"
	coremon "github.com/kilianp07/smarthospital/core/monitoring"
)

// NewSentryMonitor initializes Sentry using the provided configuration and
// returns a Monitor implementation. An empty DSN yields a NopMonitor.
func NewSentryMonitor(cfg config.SentryConfig) (coremon.Monitor, error) {
	if cfg.DSN == "" {
		return coremon.NopMonitor{}, nil
	}
	if err := sentry.Init(clientOptions(cfg)); err != nil {
		return nil, err
	}
	return &sentryMonitor{}, nil
}

func clientOptions(cfg config.SentryConfig) sentry.ClientOptions {
	return sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		TracesSampleRate: cfg.TracesSampleRate,
		Release:          cfg.Release,
		ServerName:       "smarthospital",
	}
}

type sentryMonitor struct{}

func (s *sentryMonitor) CaptureException(err error, tags map[string]string) {
	if err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		applyTags(scope, tags)
		sentry.CaptureException(err)
	})
}

func applyTags(scope *sentry.Scope, tags map[string]string) {
	scope.SetLevel(sentry.LevelError)
	for k, v := range tags {
		scope.SetTag(k, v)
	}
	if h, ok := tags["hospital"]; ok {
		scope.SetFingerprint([]string{"{{ default }}", "hospital", h})
	}
}

func (s *sentryMonitor) Recover() {
	if r := recover(); r != nil {
		sentry.CurrentHub().Recover(r)
		sentry.Flush(2 * time.Second)
		panic(r)
	}
}

func (s *sentryMonitor) Flush(timeout time.Duration) { sentry.Flush(timeout) }
