// Package monitoring exposes a process-wide error reporter. Dispatch code
// reports invariant violations here; the Sentry adapter in infra/monitoring
// is installed with Init when a DSN is configured.
package monitoring

import (
	"sync"
	"time"
)

// Monitor defines methods used for error reporting.
type Monitor interface {
	CaptureException(err error, tags map[string]string)
	Recover()
	Flush(timeout time.Duration)
}

type NopMonitor struct{}

func (NopMonitor) CaptureException(error, map[string]string) {}
func (NopMonitor) Recover()                                  {}
func (NopMonitor) Flush(time.Duration)                       {}

var (
	mu      sync.RWMutex
	current Monitor = NopMonitor{}
)

// Init sets the global monitor implementation. A nil monitor is ignored.
func Init(m Monitor) {
	if m == nil {
		return
	}
	mu.Lock()
	current = m
	mu.Unlock()
}

// Current returns the installed monitor.
func Current() Monitor {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// CaptureException records the error with optional tags.
func CaptureException(err error, tags map[string]string) {
	if err == nil {
		return
	}
	Current().CaptureException(err, tags)
}

// Recover captures panics. It must be deferred directly.
func Recover() {
	Current().Recover()
}

// Flush flushes buffered events.
func Flush(d time.Duration) {
	Current().Flush(d)
}
