// Package queue orders pending patients for admission.
package queue

import (
	"errors"

	"github.com/kilianp07/smarthospital/core/model"
)

// ErrNilPatient is returned when pushing a nil patient.
var ErrNilPatient = errors.New("queue: nil patient")

// PatientQueue is a binary min-heap of pending patients. It may hold any
// number of patients across pushes; the backing slice grows as needed.
type PatientQueue struct {
	items []*model.Patient
}

// New returns an empty queue with room for capacity patients.
func New(capacity int) *PatientQueue {
	if capacity <= 0 {
		capacity = 8
	}
	return &PatientQueue{items: make([]*model.Patient, 0, capacity)}
}

// Less orders patients by ascending severity value, then by ascending id.
// Lower severity means more urgent; the id breaks ties first-reported-first.
func Less(a, b *model.Patient) bool {
	if a.Severity != b.Severity {
		return a.Severity < b.Severity
	}
	return a.ID < b.ID
}

// Push adds a patient in O(log n).
func (q *PatientQueue) Push(p *model.Patient) error {
	if p == nil {
		return ErrNilPatient
	}
	q.items = append(q.items, p)
	q.up(len(q.items) - 1)
	return nil
}

// Pop removes and returns the most urgent patient. The boolean is false when
// the queue is empty.
func (q *PatientQueue) Pop() (*model.Patient, bool) {
	n := len(q.items)
	if n == 0 {
		return nil, false
	}
	top := q.items[0]
	last := n - 1
	q.items[0] = q.items[last]
	q.items[last] = nil
	q.items = q.items[:last]
	q.down(0)
	return top, true
}

// Peek returns the most urgent patient without removing it.
func (q *PatientQueue) Peek() (*model.Patient, bool) {
	if len(q.items) == 0 {
		return nil, false
	}
	return q.items[0], true
}

// Len returns the number of pending patients.
func (q *PatientQueue) Len() int { return len(q.items) }

// IsEmpty reports whether no patient is pending.
func (q *PatientQueue) IsEmpty() bool { return len(q.items) == 0 }

func (q *PatientQueue) up(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !Less(q.items[i], q.items[parent]) {
			return
		}
		q.items[i], q.items[parent] = q.items[parent], q.items[i]
		i = parent
	}
}

func (q *PatientQueue) down(i int) {
	n := len(q.items)
	for {
		smallest := i
		if l := 2*i + 1; l < n && Less(q.items[l], q.items[smallest]) {
			smallest = l
		}
		if r := 2*i + 2; r < n && Less(q.items[r], q.items[smallest]) {
			smallest = r
		}
		if smallest == i {
			return
		}
		q.items[i], q.items[smallest] = q.items[smallest], q.items[i]
		i = smallest
	}
}
