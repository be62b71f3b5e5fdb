package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/smarthospital/app"
	"github.com/kilianp07/smarthospital/core/model"
)

var reportOpts struct {
	area     int
	name     string
	severity string
	dryRun   bool
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Report one accident, admit the patient and save the snapshot",
	RunE:  reportAccident,
}

func init() {
	f := reportCmd.Flags()
	f.IntVarP(&reportOpts.area, "area", "a", 0, "accident area index")
	f.StringVarP(&reportOpts.name, "name", "n", "", "patient name (default Anon)")
	f.StringVarP(&reportOpts.severity, "severity", "s", "3", "severity: 1|critical, 2|high, 3|normal")
	f.BoolVar(&reportOpts.dryRun, "dry-run", false, "do not write the updated snapshot")
	_ = reportCmd.MarkFlagRequired("area")
	rootCmd.AddCommand(reportCmd)
}

func reportAccident(cmd *cobra.Command, args []string) error {
	svc, err := newService(cmd)
	if err != nil {
		return err
	}
	defer closeService(svc)

	if _, err := svc.Manager.Report(reportOpts.area, reportOpts.name, model.ParseSeverity(reportOpts.severity)); err != nil {
		return err
	}
	admitted := false
	for _, adm := range svc.Manager.Drain() {
		fmt.Fprintln(cmd.OutOrStdout(), app.AdmissionMessage(svc.Network, adm))
		admitted = admitted || adm.Admitted()
	}
	if !admitted || reportOpts.dryRun {
		return nil
	}
	return svc.Save()
}
