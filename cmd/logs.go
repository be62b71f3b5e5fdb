package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/smarthospital/core/dispatch/logging"
	"github.com/kilianp07/smarthospital/core/model"
	"github.com/kilianp07/smarthospital/pkg/export"
)

var logsOpts struct {
	start    string
	end      string
	hospital int
	outcome  string
	limit    int
	format   string
}

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Query the admission log",
	RunE:  queryLogs,
}

func init() {
	f := logsCmd.Flags()
	f.StringVar(&logsOpts.start, "start", "", "only records at or after this RFC3339 time")
	f.StringVar(&logsOpts.end, "end", "", "only records at or before this RFC3339 time")
	f.IntVar(&logsOpts.hospital, "hospital", -1, "only records for this hospital index")
	f.StringVar(&logsOpts.outcome, "outcome", "", "only records with this outcome")
	f.IntVar(&logsOpts.limit, "limit", 0, "keep only the newest N records")
	f.StringVarP(&logsOpts.format, "format", "f", "text", "output format: text, csv or json")
	rootCmd.AddCommand(logsCmd)
}

func buildLogQuery() (logging.LogQuery, error) {
	q := logging.LogQuery{Limit: logsOpts.limit}
	var err error
	if logsOpts.start != "" {
		if q.Start, err = time.Parse(time.RFC3339, logsOpts.start); err != nil {
			return q, fmt.Errorf("invalid --start: %w", err)
		}
	}
	if logsOpts.end != "" {
		if q.End, err = time.Parse(time.RFC3339, logsOpts.end); err != nil {
			return q, fmt.Errorf("invalid --end: %w", err)
		}
	}
	if logsOpts.hospital >= 0 {
		h := logsOpts.hospital
		q.Hospital = &h
	}
	if logsOpts.outcome != "" {
		o, ok := model.ParseOutcome(logsOpts.outcome)
		if !ok {
			return q, fmt.Errorf("invalid --outcome %q", logsOpts.outcome)
		}
		q.Outcome = o
	}
	return q, nil
}

func queryLogs(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(logsOpts.format)
	if err != nil {
		return err
	}
	q, err := buildLogQuery()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !cfg.Logging.Enabled() {
		return fmt.Errorf("admission log disabled (logging.backend=none)")
	}
	store, err := logging.NewStore(cfg.Logging.Module())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	recs, err := store.Query(cmd.Context(), q)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	switch format {
	case export.FormatCSV:
		return export.WriteAdmissionsCSV(w, recs)
	case export.FormatJSON:
		if recs == nil {
			recs = []logging.AdmissionRecord{}
		}
		return export.WriteJSON(w, recs)
	default:
		return export.RenderAdmissions(w, recs)
	}
}
