// Package city holds the simulation state of one city: its areas, hospitals
// and the graph joining them. A Network is built once at startup and passed
// explicitly to every operation that reads or mutates it.
package city

import (
	"errors"
	"fmt"

	"github.com/kilianp07/smarthospital/core/beds"
	"github.com/kilianp07/smarthospital/core/graph"
	"github.com/kilianp07/smarthospital/core/model"
)

// ErrHospitalOutOfRange indicates a hospital index outside the network.
var ErrHospitalOutOfRange = errors.New("city: hospital out of range")

// ErrAreaOutOfRange indicates an area index outside the network.
var ErrAreaOutOfRange = errors.New("city: area out of range")

// HospitalSpec describes a hospital as supplied by a loader.
type HospitalSpec struct {
	Name      string
	TotalBeds int
	Occupied  int
}

// Network is the in-memory city model.
type Network struct {
	areas     []model.Area
	hospitals []*model.Hospital
	graph     *graph.City
}

// New builds a network. dist is an areas×hospitals matrix; graph.Infinity
// marks a missing route. Occupied beds are restored in bed id order.
func New(areas []string, hospitals []HospitalSpec, dist [][]int) (*Network, error) {
	g, err := graph.New(len(areas), len(hospitals), dist)
	if err != nil {
		return nil, err
	}
	n := &Network{
		areas:     make([]model.Area, len(areas)),
		hospitals: make([]*model.Hospital, len(hospitals)),
		graph:     g,
	}
	for i, name := range areas {
		n.areas[i] = model.Area{ID: i, Name: name}
	}
	for i, hs := range hospitals {
		pool, err := beds.New(hs.TotalBeds)
		if err != nil {
			return nil, fmt.Errorf("hospital %q: %w", hs.Name, err)
		}
		pool.Occupy(hs.Occupied)
		n.hospitals[i] = &model.Hospital{ID: i, Name: hs.Name, Beds: pool}
	}
	return n, nil
}

// Graph returns the city graph. Callers must not modify it.
func (n *Network) Graph() *graph.City { return n.graph }

// NumAreas returns the number of areas.
func (n *Network) NumAreas() int { return len(n.areas) }

// NumHospitals returns the number of hospitals.
func (n *Network) NumHospitals() int { return len(n.hospitals) }

// Areas returns a copy of the areas in index order.
func (n *Network) Areas() []model.Area {
	return append([]model.Area(nil), n.areas...)
}

// Area returns the area at index i.
func (n *Network) Area(i int) (model.Area, error) {
	if i < 0 || i >= len(n.areas) {
		return model.Area{}, fmt.Errorf("%w: %d", ErrAreaOutOfRange, i)
	}
	return n.areas[i], nil
}

// Hospital returns the hospital at index i.
func (n *Network) Hospital(i int) (*model.Hospital, error) {
	if i < 0 || i >= len(n.hospitals) {
		return nil, fmt.Errorf("%w: %d", ErrHospitalOutOfRange, i)
	}
	return n.hospitals[i], nil
}

// Hospitals returns the hospitals in index order.
func (n *Network) Hospitals() []*model.Hospital {
	return append([]*model.Hospital(nil), n.hospitals...)
}

// FreeBeds returns the free bed count of hospital h, or 0 if h is unknown.
func (n *Network) FreeBeds(h int) int {
	if h < 0 || h >= len(n.hospitals) {
		return 0
	}
	return n.hospitals[h].FreeBeds()
}

// Distances returns the recorded areas×hospitals matrix. Missing routes are
// graph.Infinity.
func (n *Network) Distances() [][]int {
	out := make([][]int, len(n.areas))
	for a := range out {
		out[a] = make([]int, len(n.hospitals))
		for h := range out[a] {
			out[a][h] = n.graph.Distance(a, h)
		}
	}
	return out
}
