// Package metrics defines the sinks that observe admissions. Implementations
// such as the Prometheus and InfluxDB sinks live in infra/metrics and
// register themselves with RegisterMetricsSink; NewMetricsSink combines
// several configured sinks into a MultiSink.
package metrics
