package metrics

import "io"

// MultiSink fans records out to several sinks, returning the first error.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordAdmission forwards the result to all sinks.
func (m *MultiSink) RecordAdmission(res AdmissionResult) error {
	for _, s := range m.Sinks {
		if err := s.RecordAdmission(res); err != nil {
			return err
		}
	}
	return nil
}

// RecordOccupancy forwards samples to sinks supporting occupancy.
func (m *MultiSink) RecordOccupancy(samples []OccupancySample) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(OccupancyRecorder); ok {
			if err := rec.RecordOccupancy(samples); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordQueueDepth forwards the depth to sinks supporting it.
func (m *MultiSink) RecordQueueDepth(depth int) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(QueueDepthRecorder); ok {
			if err := rec.RecordQueueDepth(depth); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close closes every sink that holds resources.
func (m *MultiSink) Close() error {
	var first error
	for _, s := range m.Sinks {
		if c, ok := s.(io.Closer); ok {
			if err := c.Close(); err != nil && first == nil {
				first = err
			}
		}
	}
	return first
}
