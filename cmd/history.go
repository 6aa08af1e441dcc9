package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/cobreuse/core/solvelog"
	"github.com/kilianp07/cobreuse/pkg/export"
)

var (
	historyID    string
	historySince string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past solves from the solve log",
	Args:  cobra.NoArgs,
	RunE:  showHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyID, "id", "", "print the report of one solve")
	historyCmd.Flags().StringVar(&historySince, "since", "", "only solves at or after this RFC3339 time")
	rootCmd.AddCommand(historyCmd)
}

func showHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.Logging.Enabled {
		return errors.New("solve log disabled, set logging.enabled")
	}
	q := solvelog.LogQuery{SolveID: historyID}
	if historySince != "" {
		if q.Start, err = time.Parse(time.RFC3339, historySince); err != nil {
			return fmt.Errorf("--since: %w", err)
		}
	}
	store, err := solvelog.Open(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	recs, err := store.Query(cmd.Context(), q)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if historyID != "" {
		if len(recs) == 0 {
			return fmt.Errorf("solve %s not found", historyID)
		}
		return export.WriteText(w, recs[len(recs)-1].Report)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTIME\tPLAN\tFIRES\tPREFIX\tDURATION")
	for _, r := range recs {
		s := r.Report.Summary
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d/%d\t%d\t%s\n", r.SolveID, r.Timestamp.Format(time.RFC3339), r.PlanName,
			s.FiresOK, s.FiresOK+s.FiresFailed, s.Prefix, r.Duration)
	}
	return tw.Flush()
}
