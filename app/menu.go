package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kilianp07/smarthospital/core/model"
	"github.com/kilianp07/smarthospital/pkg/export"
)

const menuText = `
================ SMART HOSPITAL SYSTEM ================
1) Show network map (areas -> hospitals)
2) Report accident (interactive)
3) Show hospital bed matrix
4) Show individual hospital beds (detailed)
5) Save & Exit
Enter choice: `

// Menu is the interactive operator console.
type Menu struct {
	svc *Service
	in  *bufio.Scanner
	out io.Writer
}

// NewMenu returns a console reading choices from in and writing to out.
func NewMenu(svc *Service, in io.Reader, out io.Writer) *Menu {
	return &Menu{svc: svc, in: bufio.NewScanner(in), out: out}
}

// Run loops over menu choices until the operator saves and exits, the input
// ends or ctx is canceled. Only the save choice writes the snapshot.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		fmt.Fprint(m.out, menuText)
		line, ok := m.readLine()
		if !ok {
			fmt.Fprintln(m.out)
			return nil
		}
		choice, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(m.out, "Invalid input")
			continue
		}
		switch choice {
		case 1:
			fmt.Fprintln(m.out, "\n=============== CITY ROUTE MAP ===============")
			if err := export.RenderRouteMap(m.out, m.svc.Network.RouteMap()); err != nil {
				return err
			}
		case 2:
			m.reportAccident()
		case 3:
			fmt.Fprintln(m.out, "\nHOSPITAL BED MATRIX")
			if err := export.RenderBedMatrix(m.out, m.svc.Network.BedMatrix()); err != nil {
				return err
			}
		case 4:
			if err := m.hospitalDetail(); err != nil {
				return err
			}
		case 5:
			if err := m.svc.Save(); err != nil {
				fmt.Fprintln(m.out, "Warning: save failed")
				return err
			}
			fmt.Fprintf(m.out, "Database saved to %s\n", m.svc.Config.Database.Path)
			return nil
		default:
			fmt.Fprintln(m.out, "Unknown choice")
		}
	}
}

func (m *Menu) readLine() (string, bool) {
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *Menu) reportAccident() {
	net := m.svc.Network
	fmt.Fprintln(m.out, "\nSelect accident area:")
	for _, a := range net.Areas() {
		fmt.Fprintf(m.out, " %2d - %s\n", a.ID, a.Name)
	}
	fmt.Fprint(m.out, "Enter area number: ")
	line, _ := m.readLine()
	area, err := strconv.Atoi(line)
	if err != nil {
		fmt.Fprintln(m.out, "Invalid input.")
		return
	}
	if area < 0 || area >= net.NumAreas() {
		fmt.Fprintln(m.out, "Invalid area.")
		return
	}
	fmt.Fprintf(m.out, "Enter patient name (or press Enter for '%s'): ", model.DefaultPatientName)
	name, _ := m.readLine()
	fmt.Fprint(m.out, "Severity (1=critical,2=high,3=normal): ")
	sevLine, _ := m.readLine()

	if _, err := m.svc.Manager.Report(area, name, model.ParseSeverity(sevLine)); err != nil {
		fmt.Fprintf(m.out, "Failed to queue patient: %v\n", err)
		return
	}
	fmt.Fprintln(m.out, "\nPatient queued. Processing queue now by priority...")
	for _, adm := range m.svc.Manager.Drain() {
		fmt.Fprintln(m.out, AdmissionMessage(net, adm))
	}
}

func (m *Menu) hospitalDetail() error {
	net := m.svc.Network
	if net.NumHospitals() == 0 {
		fmt.Fprintln(m.out, "No hospitals.")
		return nil
	}
	fmt.Fprintf(m.out, "\nChoose hospital index (0..%d):\n", net.NumHospitals()-1)
	for _, h := range net.Hospitals() {
		fmt.Fprintf(m.out, " %d - %s\n", h.ID, h.Name)
	}
	line, _ := m.readLine()
	idx, err := strconv.Atoi(line)
	if err != nil {
		fmt.Fprintln(m.out, "Bad input")
		return nil
	}
	h, err := net.Hospital(idx)
	if err != nil {
		fmt.Fprintln(m.out, "Invalid hospital")
		return nil
	}
	bs, err := net.HospitalBeds(idx)
	if err != nil {
		return err
	}
	fmt.Fprintln(m.out)
	return export.RenderHospitalBeds(m.out, h.Name, bs)
}
