package monitoring

import (
	"errors"
	"testing"

	"github.com/getsentry/sentry-go"

	"github.com/kilianp07/smarthospital/config"
	coremon "github.com/kilianp07/smarthospital/core/monitoring"
)

func TestNewSentryMonitor_EmptyDSN(t *testing.T) {
	mon, err := NewSentryMonitor(config.SentryConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := mon.(coremon.NopMonitor); !ok {
		t.Fatalf("expected NopMonitor, got %T", mon)
	}
}

func TestNewSentryMonitor_InvalidDSN(t *testing.T) {
	if _, err := NewSentryMonitor(config.SentryConfig{DSN: "not a dsn"}); err == nil {
		t.Fatalf("expected error for invalid dsn")
	}
}

func TestSentryMonitor_CaptureTagsAndFingerprint(t *testing.T) {
	var got []*sentry.Event
	opts := clientOptions(config.SentryConfig{DSN: "https://public@example.com/1", Environment: "test"})
	opts.BeforeSend = func(ev *sentry.Event, _ *sentry.EventHint) *sentry.Event {
		got = append(got, ev)
		return nil
	}
	if err := sentry.Init(opts); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() { _ = sentry.Init(sentry.ClientOptions{}) })

	mon := &sentryMonitor{}
	mon.CaptureException(nil, nil)
	mon.CaptureException(errors.New("allocation failed"), map[string]string{
		"module":     "dispatch_manager",
		"patient_id": "1001",
		"hospital":   "2",
	})
	mon.CaptureException(errors.New("plain"), nil)

	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	ev := got[0]
	if ev.Level != sentry.LevelError {
		t.Errorf("level: %s", ev.Level)
	}
	if ev.Tags["hospital"] != "2" || ev.Tags["patient_id"] != "1001" {
		t.Errorf("tags: %v", ev.Tags)
	}
	want := []string{"{{ default }}", "hospital", "2"}
	if len(ev.Fingerprint) != len(want) {
		t.Fatalf("fingerprint: %v", ev.Fingerprint)
	}
	for i := range want {
		if ev.Fingerprint[i] != want[i] {
			t.Fatalf("fingerprint: %v", ev.Fingerprint)
		}
	}
	if len(got[1].Fingerprint) != 0 {
		t.Errorf("untagged event fingerprinted: %v", got[1].Fingerprint)
	}
	if ev.ServerName != "smarthospital" {
		t.Errorf("server name: %q", ev.ServerName)
	}
}
