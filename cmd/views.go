package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kilianp07/smarthospital/core/beds"
	"github.com/kilianp07/smarthospital/core/snapshot"
	"github.com/kilianp07/smarthospital/pkg/export"
)

var (
	viewFormat     string
	bedsShowFormat string
)

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Show the distance from every area to every hospital",
	RunE:  showMap,
}

var bedsCmd = &cobra.Command{
	Use:   "beds",
	Short: "Show total and free beds per hospital",
	RunE:  showBeds,
}

var bedsShowCmd = &cobra.Command{
	Use:   "show <hospital-index>",
	Short: "Show every bed of one hospital",
	Args:  cobra.ExactArgs(1),
	RunE:  showHospitalBeds,
}

func init() {
	for _, c := range []*cobra.Command{mapCmd, bedsCmd} {
		c.Flags().StringVarP(&viewFormat, "format", "f", "text", "output format: text, csv or json")
	}
	bedsShowCmd.Flags().StringVarP(&bedsShowFormat, "format", "f", "text", "output format: text, csv or json")
	bedsCmd.AddCommand(bedsShowCmd)
	rootCmd.AddCommand(mapCmd, bedsCmd)
}

func showMap(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(viewFormat)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	net, err := snapshot.LoadFile(cfg.Database.Path)
	if err != nil {
		return err
	}
	rows := net.RouteMap()
	w := cmd.OutOrStdout()
	switch format {
	case export.FormatCSV:
		return export.WriteRoutesCSV(w, rows)
	case export.FormatJSON:
		return export.WriteJSON(w, rows)
	default:
		return export.RenderRouteMap(w, rows)
	}
}

func showBeds(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(viewFormat)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	net, err := snapshot.LoadFile(cfg.Database.Path)
	if err != nil {
		return err
	}
	rows := net.BedMatrix()
	w := cmd.OutOrStdout()
	switch format {
	case export.FormatCSV:
		return export.WriteBedsCSV(w, rows)
	case export.FormatJSON:
		return export.WriteJSON(w, rows)
	default:
		return export.RenderBedMatrix(w, rows)
	}
}

func showHospitalBeds(cmd *cobra.Command, args []string) error {
	idx, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid hospital index %q", args[0])
	}
	format, err := export.ParseFormat(bedsShowFormat)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	net, err := snapshot.LoadFile(cfg.Database.Path)
	if err != nil {
		return err
	}
	h, err := net.Hospital(idx)
	if err != nil {
		return err
	}
	bs, err := net.HospitalBeds(idx)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	switch format {
	case export.FormatCSV:
		return export.WriteHospitalBedsCSV(w, bs)
	case export.FormatJSON:
		return export.WriteJSON(w, struct {
			Hospital string     `json:"hospital"`
			Beds     []beds.Bed `json:"beds"`
		}{h.Name, bs})
	default:
		return export.RenderHospitalBeds(w, h.Name, bs)
	}
}
