// Package graph holds the weighted city graph of areas and hospitals and
// computes single-source shortest distances over it.
//
// Nodes [0, A) are areas and nodes [A, A+H) are hospitals. Edges only ever
// join an area to a hospital; a missing edge is stored as Infinity.
//
// ShortestDistances uses the dense O(N²) variant of Dijkstra: the node count
// is small (tens of nodes), so a linear minimum scan beats heap bookkeeping.
//
// The finite weights of a graph must sum to less than Infinity. A shortest
// path never repeats an edge, so every reachable distance then stays below
// Infinity and cannot be mistaken for a missing route.
package graph

import (
	"errors"
	"fmt"
)

// Infinity marks "no recorded route" between two nodes.
const Infinity = 1_000_000_000

var (
	// ErrShape indicates the distance matrix does not match the node counts.
	ErrShape = errors.New("graph: distance matrix shape mismatch")
	// ErrNegativeWeight indicates a negative distance was supplied.
	ErrNegativeWeight = errors.New("graph: negative distance")
	// ErrNodeOutOfRange indicates an area or hospital index outside the graph.
	ErrNodeOutOfRange = errors.New("graph: node out of range")
	// ErrWeightOverflow indicates the finite weights sum to Infinity or more.
	ErrWeightOverflow = errors.New("graph: total distance reaches infinity")
)

// City is a symmetric dense adjacency matrix over areas and hospitals.
// It is never mutated after New.
type City struct {
	areas     int
	hospitals int
	adj       [][]int
}

// New builds the graph from an areas×hospitals distance matrix. Entries at or
// above Infinity are treated as missing routes.
func New(numAreas, numHospitals int, dist [][]int) (*City, error) {
	if numAreas < 0 || numHospitals < 0 {
		return nil, fmt.Errorf("%w: %d areas, %d hospitals", ErrShape, numAreas, numHospitals)
	}
	if len(dist) != numAreas {
		return nil, fmt.Errorf("%w: %d rows for %d areas", ErrShape, len(dist), numAreas)
	}
	n := numAreas + numHospitals
	total := 0
	adj := make([][]int, n)
	for i := range adj {
		adj[i] = make([]int, n)
		for j := range adj[i] {
			adj[i][j] = Infinity
		}
	}
	for a, row := range dist {
		if len(row) != numHospitals {
			return nil, fmt.Errorf("%w: row %d has %d columns for %d hospitals", ErrShape, a, len(row), numHospitals)
		}
		for h, d := range row {
			if d < 0 {
				return nil, fmt.Errorf("%w: area %d hospital %d weight=%d", ErrNegativeWeight, a, h, d)
			}
			if d >= Infinity {
				continue
			}
			if total += d; total >= Infinity {
				return nil, fmt.Errorf("%w: at area %d hospital %d", ErrWeightOverflow, a, h)
			}
			hn := numAreas + h
			adj[a][hn] = d
			adj[hn][a] = d
		}
	}
	return &City{areas: numAreas, hospitals: numHospitals, adj: adj}, nil
}

// NumAreas returns the number of area nodes.
func (c *City) NumAreas() int { return c.areas }

// NumHospitals returns the number of hospital nodes.
func (c *City) NumHospitals() int { return c.hospitals }

// NumNodes returns the total node count.
func (c *City) NumNodes() int { return c.areas + c.hospitals }

// AreaNode returns the node index of an area.
func (c *City) AreaNode(area int) int { return area }

// HospitalNode returns the node index of a hospital.
func (c *City) HospitalNode(hospital int) int { return c.areas + hospital }

// Distance returns the direct recorded distance between an area and a
// hospital, or Infinity when there is none or the indices are out of range.
func (c *City) Distance(area, hospital int) int {
	if area < 0 || area >= c.areas || hospital < 0 || hospital >= c.hospitals {
		return Infinity
	}
	return c.adj[area][c.HospitalNode(hospital)]
}

// ShortestDistances returns the shortest distance from the given area to
// every node. Unreachable nodes report Infinity.
func (c *City) ShortestDistances(area int) ([]int, error) {
	if area < 0 || area >= c.areas {
		return nil, fmt.Errorf("%w: area %d of %d", ErrNodeOutOfRange, area, c.areas)
	}
	n := c.NumNodes()
	dist := make([]int, n)
	visited := make([]bool, n)
	for i := range dist {
		dist[i] = Infinity
	}
	dist[c.AreaNode(area)] = 0

	for range n {
		u := -1
		best := Infinity
		for i := 0; i < n; i++ {
			if !visited[i] && dist[i] < best {
				best = dist[i]
				u = i
			}
		}
		// every remaining node is unreachable
		if u == -1 {
			break
		}
		visited[u] = true
		for v, w := range c.adj[u] {
			if w >= Infinity || visited[v] {
				continue
			}
			if nd := dist[u] + w; nd < dist[v] {
				dist[v] = nd
			}
		}
	}
	return dist, nil
}

// HospitalDistances returns the shortest distance from the area to each
// hospital, indexed by hospital.
func (c *City) HospitalDistances(area int) ([]int, error) {
	all, err := c.ShortestDistances(area)
	if err != nil {
		return nil, err
	}
	return all[c.areas:], nil
}
