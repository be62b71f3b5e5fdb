// Package admissions serves the admission audit trail over HTTP.
package admissions

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/kilianp07/smarthospital/core/dispatch/logging"
	"github.com/kilianp07/smarthospital/core/model"
)

// Route is the path the handler is mounted on.
const Route = "/api/admissions/logs"

// NewLogHandler returns an HTTP handler exposing admission records via
// GET /api/admissions/logs. Requests must include an Authorization header
// with "Bearer <token>" when token is non-empty.
//
// Supported query parameters: start and end (RFC3339), hospital (index),
// outcome (admitted, no_capacity, internal_error, rejected) and limit.
func NewLogHandler(store logging.LogStore, token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if token != "" && r.Header.Get("Authorization") != "Bearer "+token {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		q, err := parseQuery(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		records, err := store.Query(r.Context(), q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if records == nil {
			records = []logging.AdmissionRecord{}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(records); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

func parseQuery(r *http.Request) (logging.LogQuery, error) {
	var q logging.LogQuery
	v := r.URL.Query()
	if s := v.Get("start"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return q, fmt.Errorf("invalid start: %w", err)
		}
		q.Start = t
	}
	if s := v.Get("end"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return q, fmt.Errorf("invalid end: %w", err)
		}
		q.End = t
	}
	if s := v.Get("hospital"); s != "" {
		h, err := strconv.Atoi(s)
		if err != nil || h < 0 {
			return q, fmt.Errorf("invalid hospital %q", s)
		}
		q.Hospital = &h
	}
	if s := v.Get("outcome"); s != "" {
		o, ok := model.ParseOutcome(s)
		if !ok {
			return q, fmt.Errorf("invalid outcome %q", s)
		}
		q.Outcome = o
	}
	if s := v.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return q, fmt.Errorf("invalid limit %q", s)
		}
		q.Limit = n
	}
	return q, nil
}
