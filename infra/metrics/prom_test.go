package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/kilianp07/smarthospital/core/metrics"
	"github.com/kilianp07/smarthospital/core/model"
)

func TestPromSink_RecordAdmission(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	_ = sink.RecordAdmission(coremetrics.AdmissionResult{
		PatientID: 1001,
		Severity:  model.SeverityCritical,
		Hospital:  "General",
		Outcome:   model.OutcomeAdmitted,
		Distance:  5,
		WaitTime:  time.Millisecond,
	})
	_ = sink.RecordAdmission(coremetrics.AdmissionResult{
		PatientID:     1002,
		Severity:      model.SeverityNormal,
		HospitalIndex: -1,
		Outcome:       model.OutcomeNoCapacity,
	})
	if v := testutil.ToFloat64(sink.admissions.WithLabelValues("0", "General", "admitted")); v != 1 {
		t.Errorf("admitted counter expected 1 got %f", v)
	}
	if v := testutil.ToFloat64(sink.admissions.WithLabelValues("-1", "none", "no_capacity")); v != 1 {
		t.Errorf("no_capacity counter expected 1 got %f", v)
	}
	if n := testutil.CollectAndCount(sink.distance); n != 1 {
		t.Errorf("expected one distance series, got %d", n)
	}
}

func TestPromSink_RecordOccupancy(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	_ = sink.RecordOccupancy([]coremetrics.OccupancySample{{Hospital: "General", TotalBeds: 10, FreeBeds: 4}})
	if v := testutil.ToFloat64(sink.occupied.WithLabelValues("0", "General")); v != 6 {
		t.Errorf("occupied expected 6 got %f", v)
	}
	if v := testutil.ToFloat64(sink.totalBeds.WithLabelValues("0", "General")); v != 10 {
		t.Errorf("total expected 10 got %f", v)
	}
}

func TestPromSink_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("first sink: %v", err)
	}
	second, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("second sink: %v", err)
	}
	_ = first.RecordAdmission(coremetrics.AdmissionResult{Hospital: "A", Outcome: model.OutcomeAdmitted})
	if v := testutil.ToFloat64(second.admissions.WithLabelValues("0", "A", "admitted")); v != 1 {
		t.Errorf("collectors not shared: %f", v)
	}
}

func TestPromSink_SameNameHospitalsKeepSeparateSeries(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	_ = sink.RecordOccupancy([]coremetrics.OccupancySample{
		{HospitalIndex: 0, Hospital: "General", TotalBeds: 4, FreeBeds: 1},
		{HospitalIndex: 1, Hospital: "General", TotalBeds: 2, FreeBeds: 2},
	})
	if v := testutil.ToFloat64(sink.occupied.WithLabelValues("0", "General")); v != 3 {
		t.Errorf("hospital 0 occupied expected 3 got %f", v)
	}
	if v := testutil.ToFloat64(sink.occupied.WithLabelValues("1", "General")); v != 0 {
		t.Errorf("hospital 1 occupied expected 0 got %f", v)
	}
	if n := testutil.CollectAndCount(sink.totalBeds); n != 2 {
		t.Errorf("expected two capacity series, got %d", n)
	}

	_ = sink.RecordAdmission(coremetrics.AdmissionResult{HospitalIndex: 1, Hospital: "General", Outcome: model.OutcomeAdmitted})
	if v := testutil.ToFloat64(sink.AdmissionCounter(1, "General", model.OutcomeAdmitted)); v != 1 {
		t.Errorf("hospital 1 admissions expected 1 got %f", v)
	}
	if v := testutil.ToFloat64(sink.AdmissionCounter(0, "General", model.OutcomeAdmitted)); v != 0 {
		t.Errorf("hospital 0 admissions expected 0 got %f", v)
	}
}
