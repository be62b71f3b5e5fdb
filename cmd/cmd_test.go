package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/smarthospital/core/dispatch/logging"
)

const cityDB = `HOSPITALS 2
City_General 2 1
St_Luke 1 1
AREAS 2
North_Gate
South_Bank
DISTANCES
5 3
9 7
`

func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	db := filepath.Join(dir, "database.txt")
	require.NoError(t, os.WriteFile(db, []byte(cityDB), 0o644))
	t.Setenv("K_LOGGING__PATH", filepath.Join(dir, "admissions.jsonl"))
	return db
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viewFormat, bedsShowFormat = "text", "text"
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestBedsCommand(t *testing.T) {
	db := setup(t)
	out, err := execute(t, "beds", "-d", db, "-f", "csv")
	require.NoError(t, err)
	assert.Equal(t, "index,hospital,total_beds,free_beds\n0,City General,2,1\n1,St Luke,1,0\n", out)

	out, err = execute(t, "beds", "show", "0", "-d", db)
	require.NoError(t, err)
	assert.Contains(t, out, "City General (2 beds)")

	out, err = execute(t, "beds", "show", "0", "-d", db, "-f", "csv")
	require.NoError(t, err)
	assert.Equal(t, "bed,state\n1,occupied\n2,free\n", out)

	out, err = execute(t, "beds", "show", "1", "-d", db, "-f", "json")
	require.NoError(t, err)
	var view struct {
		Hospital string `json:"hospital"`
		Beds     []struct {
			ID       int  `json:"id"`
			Occupied bool `json:"occupied"`
		} `json:"beds"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, "St Luke", view.Hospital)
	require.Len(t, view.Beds, 1)
	assert.True(t, view.Beds[0].Occupied)

	_, err = execute(t, "beds", "show", "0", "-d", db, "-f", "yaml")
	assert.Error(t, err)

	_, err = execute(t, "beds", "show", "9", "-d", db, "-f", "text")
	assert.Error(t, err)
}

func TestMapCommand(t *testing.T) {
	db := setup(t)
	out, err := execute(t, "map", "-d", db, "-f", "json")
	require.NoError(t, err)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	assert.Len(t, rows, 2)

	_, err = execute(t, "map", "-d", db, "-f", "yaml")
	assert.Error(t, err)
}

func TestReportAndLogsCommands(t *testing.T) {
	db := setup(t)
	out, err := execute(t, "report", "-d", db, "--area", "0", "--name", "Alice", "--severity", "critical")
	require.NoError(t, err)
	assert.Contains(t, out, "admitted to City General (bed 2)")

	out, err = execute(t, "beds", "-d", db, "-f", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "0,City General,2,0", "report saves the snapshot")

	out, err = execute(t, "report", "-d", db, "--area", "1", "--name", "Bob", "--severity", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "All hospitals reachable from South Bank are full")

	out, err = execute(t, "logs", "-d", db, "--outcome", "admitted", "-f", "json")
	require.NoError(t, err)
	var recs []logging.AdmissionRecord
	require.NoError(t, json.Unmarshal([]byte(out), &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, "Alice", recs[0].PatientName)

	_, err = execute(t, "logs", "-d", db, "--outcome", "lost", "-f", "json")
	assert.Error(t, err)
}

func TestRootCommand_EOFExits(t *testing.T) {
	db := setup(t)
	out, err := execute(t, "-d", db)
	require.NoError(t, err)
	assert.Contains(t, out, "SMART HOSPITAL SYSTEM")
}
