package city

import (
	"github.com/kilianp07/smarthospital/core/beds"
	"github.com/kilianp07/smarthospital/core/graph"
)

// RouteEntry is the direct distance from an area to one hospital.
type RouteEntry struct {
	Hospital string `json:"hospital"`
	Distance int    `json:"distance"`
	// Reachable is false when no route is recorded.
	Reachable bool `json:"reachable"`
}

// RouteRow lists the routes of one area.
type RouteRow struct {
	Area   string       `json:"area"`
	Routes []RouteEntry `json:"routes"`
}

// BedRow summarises the occupancy of one hospital.
type BedRow struct {
	Index     int    `json:"index"`
	Hospital  string `json:"hospital"`
	TotalBeds int    `json:"total_beds"`
	FreeBeds  int    `json:"free_beds"`
}

// RouteMap returns the direct route of every area to every hospital.
func (n *Network) RouteMap() []RouteRow {
	rows := make([]RouteRow, len(n.areas))
	for a, area := range n.areas {
		rows[a] = RouteRow{Area: area.Name, Routes: make([]RouteEntry, len(n.hospitals))}
		for h, hosp := range n.hospitals {
			d := n.graph.Distance(a, h)
			rows[a].Routes[h] = RouteEntry{Hospital: hosp.Name, Distance: d, Reachable: d < graph.Infinity}
		}
	}
	return rows
}

// BedMatrix returns total and free beds per hospital.
func (n *Network) BedMatrix() []BedRow {
	rows := make([]BedRow, len(n.hospitals))
	for i, h := range n.hospitals {
		rows[i] = BedRow{Index: i, Hospital: h.Name, TotalBeds: h.TotalBeds(), FreeBeds: h.FreeBeds()}
	}
	return rows
}

// HospitalBeds returns the bed slots of hospital h.
func (n *Network) HospitalBeds(h int) ([]beds.Bed, error) {
	hosp, err := n.Hospital(h)
	if err != nil {
		return nil, err
	}
	return hosp.Beds.Beds(), nil
}
