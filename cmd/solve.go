package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/cobreuse/infra/logger"
	"github.com/kilianp07/cobreuse/pkg/export"
	"github.com/kilianp07/cobreuse/pkg/planfile"
)

var outFormat string

var solveCmd = &cobra.Command{
	Use:   "solve PLAN",
	Short: "Schedule the fire requests of a plan file",
	Args:  cobra.ExactArgs(1),
	RunE:  solvePlan,
}

func init() {
	solveCmd.Flags().StringVarP(&outFormat, "format", "f", "text", "output format: "+strings.Join(export.Formats, "|"))
	rootCmd.AddCommand(solveCmd)
}

func solvePlan(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	plan, err := planfile.Load(args[0])
	if err != nil {
		return fmt.Errorf("load plan: %w", err)
	}

	logg := logger.New("solve-command")
	p, _, err := newPlanner(cfg, logg)
	if err != nil {
		return err
	}
	defer func() {
		if err := p.Close(); err != nil {
			logg.Errorf("planner close: %v", err)
		}
	}()

	out, err := p.Solve(ctx, plan)
	if err != nil {
		return err
	}
	return export.Write(cmd.OutOrStdout(), outFormat, out.Report)
}
