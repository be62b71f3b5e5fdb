package scenarios

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kilianp07/smarthospital/core/dispatch"
	"github.com/kilianp07/smarthospital/core/model"
	"github.com/kilianp07/smarthospital/core/queue"
	"github.com/kilianp07/smarthospital/infra/logger"
	"github.com/kilianp07/smarthospital/infra/metrics"
)

// RunScenario replays sc step by step and reports every mismatch.
//
//gocyclo:ignore
func RunScenario(t *testing.T, sc *Scenario) {
	t.Helper()
	net, err := sc.Network()
	if err != nil {
		t.Fatalf("network: %v", err)
	}
	reg := prometheus.NewRegistry()
	sink, err := metrics.NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("prom sink: %v", err)
	}
	dispatch.ResetMetrics(nil)
	t.Cleanup(func() { dispatch.ResetMetrics(nil) })
	mgr, err := dispatch.NewManager(net, queue.New(0), dispatch.Config{}, sink, nil, logger.NopLogger{})
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	defer func() { _ = mgr.Close() }()

	hospitalName := func(h int) string {
		if hosp, err := net.Hospital(h); err == nil {
			return hosp.Name
		}
		return ""
	}

	admitted := 0
	for i, step := range sc.Steps {
		for _, r := range step.Reports {
			if _, err := mgr.Report(r.Area, r.Name, model.ParseSeverity(r.Severity)); err != nil {
				t.Fatalf("step %d: report %+v: %v", i, r, err)
			}
		}
		got := mgr.Drain()
		if len(got) != len(step.Expect) {
			t.Fatalf("step %d: expected %d admissions, got %d", i, len(step.Expect), len(got))
		}
		for j, want := range step.Expect {
			adm := got[j]
			if adm.Patient.Name != want.Patient {
				t.Errorf("step %d #%d: expected patient %s, got %s", i, j, want.Patient, adm.Patient.Name)
			}
			if adm.Outcome != want.Outcome {
				t.Errorf("step %d #%d: %s expected outcome %s, got %s (%v)", i, j, want.Patient, want.Outcome, adm.Outcome, adm.Err)
				continue
			}
			if adm.Outcome != model.OutcomeAdmitted {
				continue
			}
			admitted++
			if name := hospitalName(adm.Hospital); name != want.Hospital {
				t.Errorf("step %d #%d: %s expected hospital %s, got %s", i, j, want.Patient, want.Hospital, name)
			}
			if want.Bed != 0 && adm.Bed != want.Bed {
				t.Errorf("step %d #%d: %s expected bed %d, got %d", i, j, want.Patient, want.Bed, adm.Bed)
			}
			if adm.Distance != want.Distance {
				t.Errorf("step %d #%d: %s expected distance %d, got %d", i, j, want.Patient, want.Distance, adm.Distance)
			}
		}
	}

	for name, want := range sc.FinalFreeBeds {
		found := false
		for _, h := range net.Hospitals() {
			if h.Name != name {
				continue
			}
			found = true
			if free := h.FreeBeds(); free != want {
				t.Errorf("hospital %s: expected %d free beds, got %d", name, want, free)
			}
		}
		if !found {
			t.Errorf("unknown hospital %s in final_free_beds", name)
		}
	}

	total := 0.0
	for _, h := range net.Hospitals() {
		total += testutil.ToFloat64(sink.AdmissionCounter(h.ID, h.Name, model.OutcomeAdmitted))
	}
	if int(total) != admitted {
		t.Errorf("scenario %s: prometheus counted %v admissions, expected %d", sc.Name, total, admitted)
	}
}
