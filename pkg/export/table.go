package export

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/kilianp07/smarthospital/core/beds"
	"github.com/kilianp07/smarthospital/core/city"
	"github.com/kilianp07/smarthospital/core/dispatch/logging"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// RenderRouteMap prints every area with its direct distance to each
// hospital. Missing routes print as "-".
func RenderRouteMap(w io.Writer, rows []city.RouteRow) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No areas.")
		return err
	}
	tw := newTable(w)
	header := []string{"AREA"}
	for _, e := range rows[0].Routes {
		header = append(header, strings.ToUpper(e.Hospital))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, r := range rows {
		cells := []string{r.Area}
		for _, e := range r.Routes {
			if e.Reachable {
				cells = append(cells, fmt.Sprint(e.Distance))
			} else {
				cells = append(cells, "-")
			}
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// RenderBedMatrix prints total and free beds per hospital.
func RenderBedMatrix(w io.Writer, rows []city.BedRow) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "#\tHOSPITAL\tTOTAL\tFREE")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\n", r.Index, r.Hospital, r.TotalBeds, r.FreeBeds)
	}
	return tw.Flush()
}

// RenderHospitalBeds prints every bed of one hospital and its state.
func RenderHospitalBeds(w io.Writer, hospital string, bs []beds.Bed) error {
	if _, err := fmt.Fprintf(w, "%s (%d beds)\n", hospital, len(bs)); err != nil {
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "BED\tSTATE")
	for _, b := range bs {
		state := "free"
		if b.Occupied {
			state = "occupied"
		}
		fmt.Fprintf(tw, "%d\t%s\n", b.ID, state)
	}
	return tw.Flush()
}

// RenderAdmissions prints admission records, oldest first.
func RenderAdmissions(w io.Writer, recs []logging.AdmissionRecord) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "TIME\tPATIENT\tSEVERITY\tAREA\tOUTCOME\tHOSPITAL\tBED\tDISTANCE")
	for _, r := range recs {
		hospital, bed, dist := "-", "-", "-"
		if r.HospitalName != "" {
			hospital = r.HospitalName
		}
		if r.Bed > 0 {
			bed = fmt.Sprint(r.Bed)
			dist = fmt.Sprint(r.Distance)
		}
		fmt.Fprintf(tw, "%s\t%d %s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Timestamp.Local().Format(time.DateTime), r.PatientID, r.PatientName,
			r.Severity, r.AreaName, r.Outcome, hospital, bed, dist)
	}
	return tw.Flush()
}
