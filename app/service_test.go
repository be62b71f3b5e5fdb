package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/smarthospital/api/admissions"
	"github.com/kilianp07/smarthospital/config"
	"github.com/kilianp07/smarthospital/core/dispatch/logging"
	"github.com/kilianp07/smarthospital/core/model"
	"github.com/kilianp07/smarthospital/core/snapshot"
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

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "database.txt")
	require.NoError(t, os.WriteFile(dbPath, []byte(cityDB), 0o644))
	cfg := config.Default()
	cfg.Database.Path = dbPath
	cfg.Logging = config.LoggingConfig{Backend: backend, Path: filepath.Join(dir, "admissions.log")}
	cfg.Logging.SetDefaults()
	return cfg
}

func newService(t *testing.T, cfg *config.Config) *Service {
	t.Helper()
	svc, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func TestNew_LoadsSnapshot(t *testing.T) {
	svc := newService(t, testConfig(t, "jsonl"))
	assert.Equal(t, 2, svc.Network.NumAreas())
	assert.Equal(t, 2, svc.Network.NumHospitals())
	h, err := svc.Network.Hospital(0)
	require.NoError(t, err)
	assert.Equal(t, "City General", h.Name)
	assert.Equal(t, 1, h.FreeBeds())
}

func TestNew_MissingDatabase(t *testing.T) {
	cfg := config.Default()
	cfg.Database.Path = filepath.Join(t.TempDir(), "missing.txt")
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestService_AdmitAndSave(t *testing.T) {
	cfg := testConfig(t, "jsonl")
	svc := newService(t, cfg)

	_, err := svc.Manager.Report(0, "Alice", model.SeverityCritical)
	require.NoError(t, err)
	out := svc.Manager.Drain()
	require.Len(t, out, 1)
	assert.Equal(t, model.OutcomeAdmitted, out[0].Outcome)
	assert.Equal(t, 0, out[0].Hospital)
	assert.Equal(t, 5, out[0].Distance)

	require.NoError(t, svc.Save())
	reloaded, err := snapshot.LoadFile(cfg.Database.Path)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.FreeBeds(0), "occupancy persisted")

	store, err := svc.LogStore()
	require.NoError(t, err)
	recs, err := store.Query(context.Background(), logging.LogQuery{})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "City General", recs[0].HospitalName)
}

func TestService_LogStoreDisabled(t *testing.T) {
	svc := newService(t, testConfig(t, "none"))
	_, err := svc.LogStore()
	assert.ErrorIs(t, err, ErrNoLogStore)

	srv := httptest.NewServer(svc.Handler())
	defer srv.Close()
	resp, err := http.Get(srv.URL + admissions.Route)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestService_Handler(t *testing.T) {
	cfg := testConfig(t, "sqlite")
	cfg.Server.Token = "tok"
	svc := newService(t, cfg)
	_, err := svc.Manager.Report(1, "", model.SeverityHigh)
	require.NoError(t, err)
	svc.Manager.Drain()

	srv := httptest.NewServer(svc.Handler())
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL+admissions.Route+"?outcome=admitted", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer tok")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var recs []logging.AdmissionRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&recs))
	require.Len(t, recs, 1)
	assert.Equal(t, "Anon", recs[0].PatientName)
	assert.Equal(t, "South Bank", recs[0].AreaName)

	metricsResp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	_ = metricsResp.Body.Close()
	assert.Equal(t, http.StatusOK, metricsResp.StatusCode)
}

func TestService_StartStops(t *testing.T) {
	svc := newService(t, testConfig(t, "none"))
	ctx, cancel := context.WithCancel(context.Background())
	svc.Start(ctx)
	_, err := svc.Manager.Report(0, "", model.SeverityNormal)
	require.NoError(t, err)
	svc.Manager.Drain()
	cancel()
}
