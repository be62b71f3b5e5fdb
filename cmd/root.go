package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/smarthospital/app"
	"github.com/kilianp07/smarthospital/config"
	"github.com/kilianp07/smarthospital/infra/logger"
)

const defaultConfigPath = "config.yaml"

var (
	cfgPath string
	dbPath  string
)

var rootCmd = &cobra.Command{
	Use:           "smarthospital",
	Short:         "Emergency patient dispatch console",
	Long:          "Routes emergency patients to the nearest hospital with a free bed and tracks bed occupancy across the city.",
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", defaultConfigPath, "configuration file")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "database", "d", "", "city snapshot file (overrides database.path)")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// loadConfig reads the configuration file. A missing default file is not an
// error: defaults and K_ environment overrides apply instead.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := cfgPath
	if !cmd.Flags().Changed("config") {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	return cfg, nil
}

// newService loads configuration and the city snapshot. Callers must Close
// the returned service.
func newService(cmd *cobra.Command) (*app.Service, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return app.New(cfg)
}

func closeService(svc *app.Service) {
	if err := svc.Close(); err != nil {
		logger.New("main").Errorf("service close: %v", err)
	}
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newService(cmd)
	if err != nil {
		return err
	}
	defer closeService(svc)
	svc.Start(ctx)
	return app.NewMenu(svc, cmd.InOrStdin(), cmd.OutOrStdout()).Run(ctx)
}
