package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/cobreuse/config"
	corelogger "github.com/kilianp07/cobreuse/core/logger"
	coremetrics "github.com/kilianp07/cobreuse/core/metrics"
	"github.com/kilianp07/cobreuse/core/planner"
	"github.com/kilianp07/cobreuse/core/solvelog"
	_ "github.com/kilianp07/cobreuse/infra/metrics"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:          "cobreuse",
	Short:        "Cob cannon reuse scheduler",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (defaults when empty)")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newPlanner builds a planner wired to the configured metrics sinks and
// solve log. The returned store is nil when the solve log is disabled; it
// is closed by the planner.
func newPlanner(cfg *config.Config, log corelogger.Logger) (*planner.Planner, solvelog.LogStore, error) {
	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, nil, fmt.Errorf("metrics sink: %w", err)
	}
	p := planner.New(cfg.Planner(), log, sink)
	store, err := solvelog.Open(cfg.Logging)
	if err != nil {
		_ = coremetrics.Close(sink)
		return nil, nil, fmt.Errorf("solve log: %w", err)
	}
	if store != nil {
		p.SetLogStore(store)
	}
	return p, store, nil
}
