package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/smarthospital/core/metrics"
	"github.com/kilianp07/smarthospital/core/model"
)

type bodyRecorder struct {
	mu     sync.Mutex
	bodies []string
}

func (b *bodyRecorder) server(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.bodies = append(b.bodies, strings.TrimSpace(string(data)))
		b.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func lineProtocol(p *write.Point) string {
	return strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))
}

func TestInfluxSink_RecordAdmission(t *testing.T) {
	rec := &bodyRecorder{}
	srv := rec.server(t)
	sink := NewInfluxSink(srv.URL, "token", "org", "bucket")
	defer func() { _ = sink.Close() }()

	now := time.Now()
	res := coremetrics.AdmissionResult{
		PatientID:     1001,
		Severity:      model.SeverityCritical,
		Area:          "North",
		HospitalIndex: 2,
		Hospital:      "General",
		Outcome:       model.OutcomeAdmitted,
		Distance:      5,
		WaitTime:      20 * time.Millisecond,
		ProcessedAt:   now,
	}
	if err := sink.RecordAdmission(res); err != nil {
		t.Fatalf("record error: %v", err)
	}
	p := write.NewPointWithMeasurement("admission").
		AddTag("outcome", "admitted").
		AddTag("severity", "critical").
		AddTag("area", "North").
		AddTag("hospital", "General").
		AddTag("hospital_index", "2").
		AddField("patient_id", 1001).
		AddField("distance", 5).
		AddField("wait_ms", int64(20)).
		SetTime(now)
	if len(rec.bodies) != 1 || rec.bodies[0] != lineProtocol(p) {
		t.Errorf("unexpected bodies: %#v", rec.bodies)
	}
}

func TestInfluxSink_RecordOccupancy(t *testing.T) {
	rec := &bodyRecorder{}
	srv := rec.server(t)
	sink := NewInfluxSink(srv.URL+"/api/v2/write", "token", "org", "bucket")
	defer func() { _ = sink.Close() }()

	now := time.Now()
	samples := []coremetrics.OccupancySample{
		{HospitalIndex: 0, Hospital: "A", TotalBeds: 2, FreeBeds: 1, Time: now},
		{HospitalIndex: 1, Hospital: "B", TotalBeds: 3, FreeBeds: 0, Time: now},
	}
	if err := sink.RecordOccupancy(samples); err != nil {
		t.Fatalf("record error: %v", err)
	}
	if err := sink.RecordOccupancy(nil); err != nil {
		t.Fatalf("empty record error: %v", err)
	}
	if len(rec.bodies) != 1 {
		t.Fatalf("expected one batched write, got %d", len(rec.bodies))
	}
	lines := strings.Split(rec.bodies[0], "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 points, got %q", rec.bodies[0])
	}
	exp := write.NewPointWithMeasurement("hospital_occupancy").
		AddTag("hospital", "A").
		AddTag("hospital_index", "0").
		AddField("total_beds", 2).
		AddField("free_beds", 1).
		SetTime(now)
	if lines[0] != lineProtocol(exp) {
		t.Errorf("unexpected line: %s", lines[0])
	}
}

func TestInfluxSink_RecordQueueDepth(t *testing.T) {
	rec := &bodyRecorder{}
	srv := rec.server(t)
	sink := NewInfluxSink(srv.URL, "token", "org", "bucket")
	defer func() { _ = sink.Close() }()
	if err := sink.RecordQueueDepth(3); err != nil {
		t.Fatalf("record error: %v", err)
	}
	if len(rec.bodies) != 1 || !strings.HasPrefix(rec.bodies[0], "patient_queue depth=3i") {
		t.Errorf("unexpected bodies: %#v", rec.bodies)
	}
}

func TestNewInfluxSinkWithFallback(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			called = true
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}))
	defer srv.Close()

	sink := NewInfluxSinkWithFallback(srv.URL+"/api/v2/write", "tok", "org", "bucket")
	if _, ok := sink.(*InfluxSink); ok {
		t.Fatalf("expected NopSink on failing health check")
	}
	if !called {
		t.Fatalf("health endpoint not called")
	}
}
