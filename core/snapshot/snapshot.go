// Package snapshot reads and writes the flat text snapshot of a city:
//
//	HOSPITALS <count>
//	<name> <total_beds> <occupied>
//	AREAS <count>
//	<name>
//	DISTANCES
//	<one row of hospital distances per area>
//
// Names are single tokens; spaces are stored as underscores. Missing routes
// are written as 0, so a route that was unreachable before saving reloads as
// a zero-distance route.
package snapshot

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kilianp07/smarthospital/core/city"
	"github.com/kilianp07/smarthospital/core/graph"
)

// ErrMalformed is returned when the snapshot does not follow the format.
var ErrMalformed = errors.New("snapshot: malformed")

const (
	hospitalsHeader = "HOSPITALS"
	areasHeader     = "AREAS"
	distancesHeader = "DISTANCES"

	// maxBeds bounds the bed count of a single hospital.
	maxBeds = 1_000_000
)

type tokenizer struct {
	sc *bufio.Scanner
}

func (t *tokenizer) next(what string) (string, error) {
	if t.sc.Scan() {
		return t.sc.Text(), nil
	}
	if err := t.sc.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("%w: unexpected end of input, want %s", ErrMalformed, what)
}

func (t *tokenizer) expect(header string) error {
	tok, err := t.next(header)
	if err != nil {
		return err
	}
	if tok != header {
		return fmt.Errorf("%w: got %q, want %s", ErrMalformed, tok, header)
	}
	return nil
}

func (t *tokenizer) int(what string) (int, error) {
	tok, err := t.next(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", ErrMalformed, what, tok)
	}
	return v, nil
}

func (t *tokenizer) count(what string) (int, error) {
	v, err := t.int(what)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: negative %s %d", ErrMalformed, what, v)
	}
	return v, nil
}

// Load parses a snapshot and builds the network it describes.
//
//gocyclo:ignore
func Load(r io.Reader) (*city.Network, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	t := &tokenizer{sc: sc}

	if err := t.expect(hospitalsHeader); err != nil {
		return nil, err
	}
	nh, err := t.count("hospital count")
	if err != nil {
		return nil, err
	}
	var hospitals []city.HospitalSpec
	for range nh {
		name, err := t.next("hospital name")
		if err != nil {
			return nil, err
		}
		total, err := t.count("total beds")
		if err != nil {
			return nil, err
		}
		if total > maxBeds {
			return nil, fmt.Errorf("%w: hospital %q has %d beds, limit %d", ErrMalformed, name, total, maxBeds)
		}
		occ, err := t.count("occupied beds")
		if err != nil {
			return nil, err
		}
		hospitals = append(hospitals, city.HospitalSpec{Name: decodeName(name), TotalBeds: total, Occupied: occ})
	}

	if err := t.expect(areasHeader); err != nil {
		return nil, err
	}
	na, err := t.count("area count")
	if err != nil {
		return nil, err
	}
	var areas []string
	for range na {
		name, err := t.next("area name")
		if err != nil {
			return nil, err
		}
		areas = append(areas, decodeName(name))
	}

	if err := t.expect(distancesHeader); err != nil {
		return nil, err
	}
	// Rows grow as tokens arrive so a corrupt count fails on end of input.
	dist := make([][]int, 0, len(areas))
	for range areas {
		var row []int
		for range hospitals {
			d, err := t.int("distance")
			if err != nil {
				return nil, err
			}
			row = append(row, d)
		}
		dist = append(dist, row)
	}

	n, err := city.New(areas, hospitals, dist)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return n, nil
}

// Save writes the current state of n. Unreachable routes are written as 0.
func Save(w io.Writer, n *city.Network) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s %d\n", hospitalsHeader, n.NumHospitals())
	for _, h := range n.Hospitals() {
		fmt.Fprintf(bw, "%s %d %d\n", encodeName(h.Name), h.TotalBeds(), h.Beds.OccupiedCount())
	}
	fmt.Fprintf(bw, "%s %d\n", areasHeader, n.NumAreas())
	for _, a := range n.Areas() {
		fmt.Fprintf(bw, "%s\n", encodeName(a.Name))
	}
	fmt.Fprintf(bw, "%s\n", distancesHeader)
	for _, row := range n.Distances() {
		parts := make([]string, len(row))
		for h, d := range row {
			if d >= graph.Infinity {
				d = 0
			}
			parts[h] = strconv.Itoa(d)
		}
		fmt.Fprintf(bw, "%s\n", strings.Join(parts, " "))
	}
	return bw.Flush()
}

// LoadFile reads a snapshot from path.
func LoadFile(path string) (*city.Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer func() { _ = f.Close() }()
	n, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return n, nil
}

// SaveFile writes the snapshot to a temporary file next to path and renames
// it into place.
func SaveFile(path string, n *city.Network) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if err := Save(tmp, n); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("save snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("save snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func decodeName(s string) string { return strings.ReplaceAll(s, "_", " ") }

func encodeName(s string) string { return strings.ReplaceAll(s, " ", "_") }
