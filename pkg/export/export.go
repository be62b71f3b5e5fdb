// Package export renders city views and admission records as text tables,
// CSV or JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/kilianp07/smarthospital/core/beds"
	"github.com/kilianp07/smarthospital/core/city"
	"github.com/kilianp07/smarthospital/core/dispatch/logging"
)

// Format selects an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name. Empty selects FormatText.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case "":
		return FormatText, nil
	case FormatText, FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("export: unknown format %q", s)
	}
}

// WriteJSON writes v to w as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteBedsCSV writes the bed matrix to w in CSV format.
func WriteBedsCSV(w io.Writer, rows []city.BedRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"index", "hospital", "total_beds", "free_beds"}); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			strconv.Itoa(r.Index),
			r.Hospital,
			strconv.Itoa(r.TotalBeds),
			strconv.Itoa(r.FreeBeds),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteHospitalBedsCSV writes one line per bed of a hospital.
func WriteHospitalBedsCSV(w io.Writer, bs []beds.Bed) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"bed", "state"}); err != nil {
		return err
	}
	for _, b := range bs {
		state := "free"
		if b.Occupied {
			state = "occupied"
		}
		if err := cw.Write([]string{strconv.Itoa(b.ID), state}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteRoutesCSV writes one line per area and hospital. Unreachable pairs
// have an empty distance.
func WriteRoutesCSV(w io.Writer, rows []city.RouteRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"area", "hospital", "distance"}); err != nil {
		return err
	}
	for _, r := range rows {
		for _, e := range r.Routes {
			d := ""
			if e.Reachable {
				d = strconv.Itoa(e.Distance)
			}
			if err := cw.Write([]string{r.Area, e.Hospital, d}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteAdmissionsCSV writes admission records in CSV format.
func WriteAdmissionsCSV(w io.Writer, recs []logging.AdmissionRecord) error {
	cw := csv.NewWriter(w)
	header := []string{"id", "timestamp", "patient_id", "patient_name", "severity", "area", "outcome", "hospital", "bed", "distance", "error"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range recs {
		rec := []string{
			r.ID,
			r.Timestamp.Format(time.RFC3339),
			strconv.Itoa(r.PatientID),
			r.PatientName,
			r.Severity,
			r.AreaName,
			string(r.Outcome),
			r.HospitalName,
			strconv.Itoa(r.Bed),
			strconv.Itoa(r.Distance),
			r.Error,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
