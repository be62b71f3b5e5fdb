// Package events defines the dispatch events emitted on the event bus.
//
// Available event types:
//   - ReportEvent: a patient report entered the queue
//   - AdmissionEvent: a queued patient was processed
package events
