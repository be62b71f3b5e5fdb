// Package beds implements the per-hospital bed pool.
//
// A Pool is a fixed-size, array-backed set of numbered bed slots. Beds are
// numbered 1..total and allocated first-free in ascending id order, so the
// same sequence of calls always yields the same bed ids.
package beds

import (
	"errors"
	"fmt"
)

// ErrNoCapacity is returned by Allocate when every bed is occupied.
var ErrNoCapacity = errors.New("beds: no free bed")

// ErrInvalidCapacity indicates a negative bed count.
var ErrInvalidCapacity = errors.New("beds: invalid capacity")

// Bed is a single admission slot.
type Bed struct {
	ID       int  `json:"id"`
	Occupied bool `json:"occupied"`
}

// Pool holds the beds of one hospital.
type Pool struct {
	beds []Bed
}

// New creates a pool of total free beds numbered 1..total.
func New(total int) (*Pool, error) {
	if total < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, total)
	}
	p := &Pool{beds: make([]Bed, total)}
	for i := range p.beds {
		p.beds[i].ID = i + 1
	}
	return p, nil
}

// Total returns the fixed capacity of the pool.
func (p *Pool) Total() int { return len(p.beds) }

// Allocate marks the lowest-numbered free bed as occupied and returns its id.
// The pool is left untouched when it is full.
func (p *Pool) Allocate() (int, error) {
	for i := range p.beds {
		if !p.beds[i].Occupied {
			p.beds[i].Occupied = true
			return p.beds[i].ID, nil
		}
	}
	return 0, ErrNoCapacity
}

// Release frees the bed with the given id. Unknown ids are ignored.
func (p *Pool) Release(id int) {
	if id < 1 || id > len(p.beds) {
		return
	}
	p.beds[id-1].Occupied = false
}

// FreeCount scans the pool and counts unoccupied beds.
func (p *Pool) FreeCount() int {
	n := 0
	for _, b := range p.beds {
		if !b.Occupied {
			n++
		}
	}
	return n
}

// OccupiedCount returns the number of occupied beds.
func (p *Pool) OccupiedCount() int { return len(p.beds) - p.FreeCount() }

// Occupy marks the first n beds as occupied, in id order. It is used to
// restore a saved occupancy and returns how many beds were marked.
func (p *Pool) Occupy(n int) int {
	if n > len(p.beds) {
		n = len(p.beds)
	}
	for i := 0; i < n; i++ {
		p.beds[i].Occupied = true
	}
	if n < 0 {
		return 0
	}
	return n
}

// Beds returns a copy of the slots in id order.
func (p *Pool) Beds() []Bed {
	out := make([]Bed, len(p.beds))
	copy(out, p.beds)
	return out
}
