package metrics

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/smarthospital/core/metrics"
	"github.com/kilianp07/smarthospital/infra/logger"
)

// InfluxSink writes admission and occupancy points to an InfluxDB instance
// using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordAdmission writes one "admission" point per processed patient.
func (s *InfluxSink) RecordAdmission(res coremetrics.AdmissionResult) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("admission").
		AddTag("outcome", string(res.Outcome)).
		AddTag("severity", res.Severity.String()).
		AddTag("area", res.Area)
	if res.Hospital != "" && res.HospitalIndex >= 0 {
		p = p.AddTag("hospital", res.Hospital).
			AddTag("hospital_index", strconv.Itoa(res.HospitalIndex))
	}
	p = p.AddField("patient_id", res.PatientID).
		AddField("distance", res.Distance).
		AddField("wait_ms", res.WaitTime.Milliseconds()).
		SetTime(res.ProcessedAt)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordOccupancy writes one "hospital_occupancy" point per hospital.
func (s *InfluxSink) RecordOccupancy(samples []coremetrics.OccupancySample) error {
	if len(samples) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	points := make([]*write.Point, 0, len(samples))
	for _, o := range samples {
		points = append(points, write.NewPointWithMeasurement("hospital_occupancy").
			AddTag("hospital", o.Hospital).
			AddTag("hospital_index", strconv.Itoa(o.HospitalIndex)).
			AddField("total_beds", o.TotalBeds).
			AddField("free_beds", o.FreeBeds).
			SetTime(o.Time))
	}
	return s.writeAPI.WritePoint(ctx, points...)
}

// RecordQueueDepth writes the number of waiting patients.
func (s *InfluxSink) RecordQueueDepth(depth int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("patient_queue").
		AddField("depth", depth).
		SetTime(time.Now())
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the HTTP client.
func (s *InfluxSink) Close() error {
	s.client.Close()
	return nil
}
