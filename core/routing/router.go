// Package routing selects the nearest hospital with a free bed for an area.
package routing

import (
	"errors"
	"fmt"

	"github.com/kilianp07/smarthospital/core/graph"
)

// ErrNoHospitalAvailable is returned when no hospital is both reachable from
// the area and has a free bed. It describes saturation or disconnection and
// is an expected outcome, not a failure of the router.
var ErrNoHospitalAvailable = errors.New("routing: no reachable hospital with free beds")

// CapacitySource reports the current number of free beds per hospital.
type CapacitySource interface {
	FreeBeds(hospital int) int
}

// Selection is the hospital chosen for an area.
type Selection struct {
	Hospital int
	Distance int
}

// Router combines shortest distances with bed availability. It borrows the
// graph and never modifies it or any bed pool.
type Router struct {
	graph    *graph.City
	capacity CapacitySource
}

// New creates a Router over g using capacity for availability checks.
func New(g *graph.City, capacity CapacitySource) *Router {
	return &Router{graph: g, capacity: capacity}
}

// SelectHospital returns the closest reachable hospital with at least one
// free bed. Hospitals are scanned in ascending index with a strict
// comparison, so the lowest index wins among equal distances.
func (r *Router) SelectHospital(area int) (Selection, error) {
	dist, err := r.graph.HospitalDistances(area)
	if err != nil {
		return Selection{}, fmt.Errorf("routing: %w", err)
	}
	best := Selection{Hospital: -1, Distance: graph.Infinity}
	for h, d := range dist {
		if d >= graph.Infinity || r.capacity.FreeBeds(h) <= 0 {
			continue
		}
		if d < best.Distance {
			best = Selection{Hospital: h, Distance: d}
		}
	}
	if best.Hospital < 0 {
		return Selection{}, ErrNoHospitalAvailable
	}
	return best, nil
}
