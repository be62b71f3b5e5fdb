package model

import "github.com/kilianp07/smarthospital/core/beds"

// Hospital is a facility with a fixed bed capacity. Its node index in the city
// graph is offset by the number of areas.
type Hospital struct {
	ID   int
	Name string
	Beds *beds.Pool
}

// TotalBeds returns the fixed capacity of the hospital.
func (h *Hospital) TotalBeds() int {
	if h.Beds == nil {
		return 0
	}
	return h.Beds.Total()
}

// FreeBeds returns the number of unoccupied beds.
func (h *Hospital) FreeBeds() int {
	if h.Beds == nil {
		return 0
	}
	return h.Beds.FreeCount()
}
