package snapshot

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/smarthospital/core/city"
	"github.com/kilianp07/smarthospital/core/graph"
)

const sampleDB = `HOSPITALS 2
City_General 4 1
St_Mary 2 2
AREAS 3
Old_Town
Harbour
Hills
DISTANCES
5 3
9 7
0 12
`

func TestLoad(t *testing.T) {
	n, err := Load(strings.NewReader(sampleDB))
	require.NoError(t, err)
	require.Equal(t, 2, n.NumHospitals())
	require.Equal(t, 3, n.NumAreas())

	h0, _ := n.Hospital(0)
	assert.Equal(t, "City General", h0.Name)
	assert.Equal(t, 4, h0.TotalBeds())
	assert.Equal(t, 3, h0.FreeBeds())
	a0, _ := n.Area(0)
	assert.Equal(t, "Old Town", a0.Name)
	assert.Equal(t, 7, n.Graph().Distance(1, 1))
	assert.Equal(t, 0, n.Graph().Distance(2, 0))
}

func TestLoad_ClampsOccupied(t *testing.T) {
	in := "HOSPITALS 1\nX 2 9\nAREAS 1\nA\nDISTANCES\n1\n"
	n, err := Load(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 0, n.FreeBeds(0))
}

func TestLoad_Malformed(t *testing.T) {
	checks := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"bad header", "HOSPITAL 1\n"},
		{"bad count", "HOSPITALS x\n"},
		{"negative count", "HOSPITALS -1\n"},
		{"missing beds", "HOSPITALS 1\nX\n"},
		{"bad beds", "HOSPITALS 1\nX a 0\n"},
		{"missing areas", "HOSPITALS 1\nX 1 0\nDISTANCES\n"},
		{"short distances", "HOSPITALS 2\nX 1 0\nY 1 0\nAREAS 1\nA\nDISTANCES\n4\n"},
		{"negative distance", "HOSPITALS 1\nX 1 0\nAREAS 1\nA\nDISTANCES\n-3\n"},
		{"huge hospital count", "HOSPITALS 9000000000000000000\n"},
		{"huge area count", "HOSPITALS 0\nAREAS 9000000000000000000\n"},
		{"distance overflow", "HOSPITALS 2\nX 1 0\nY 1 0\nAREAS 1\nA\nDISTANCES\n999999999 999999999\n"},
		{"huge bed count", "HOSPITALS 1\nX 9000000000000000000 0\n"},
	}
	for _, c := range checks {
		t.Run(c.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(c.in))
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("expected ErrMalformed, got %v", err)
			}
		})
	}
}

func TestSave_Format(t *testing.T) {
	n, err := city.New(
		[]string{"Old Town"},
		[]city.HospitalSpec{{Name: "City General", TotalBeds: 3, Occupied: 1}, {Name: "Far", TotalBeds: 1}},
		[][]int{{4, graph.Infinity}},
	)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Save(&buf, n))
	want := "HOSPITALS 2\nCity_General 3 1\nFar 1 0\nAREAS 1\nOld_Town\nDISTANCES\n4 0\n"
	assert.Equal(t, want, buf.String())
}

func TestRoundTrip(t *testing.T) {
	n, err := city.New(
		[]string{"Old Town", "Harbour"},
		[]city.HospitalSpec{{Name: "City General", TotalBeds: 3, Occupied: 1}, {Name: "St Mary", TotalBeds: 2}},
		[][]int{{5, graph.Infinity}, {9, 7}},
	)
	require.NoError(t, err)
	h1, _ := n.Hospital(1)
	_, err = h1.Beds.Allocate()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "database.txt")
	require.NoError(t, SaveFile(path, n))
	got, err := LoadFile(path)
	require.NoError(t, err)

	require.Equal(t, n.NumHospitals(), got.NumHospitals())
	for i := 0; i < n.NumHospitals(); i++ {
		want, _ := n.Hospital(i)
		have, _ := got.Hospital(i)
		assert.Equal(t, want.Name, have.Name)
		assert.Equal(t, want.TotalBeds(), have.TotalBeds())
		assert.Equal(t, want.Beds.OccupiedCount(), have.Beds.OccupiedCount())
	}
	assert.Equal(t, n.Areas(), got.Areas())
	assert.Equal(t, 9, got.Graph().Distance(1, 0))
	// an unreachable route collapses to a zero-distance route on reload
	assert.Equal(t, 0, got.Graph().Distance(0, 1))
}

func TestSaveFile_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	n, err := Load(strings.NewReader(sampleDB))
	require.NoError(t, err)
	require.NoError(t, SaveFile(filepath.Join(dir, "db.txt"), n))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
