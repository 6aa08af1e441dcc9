package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kilianp07/cobreuse/core/planner"
	"github.com/kilianp07/cobreuse/infra/logger"
	"github.com/kilianp07/cobreuse/pkg/planfile"
)

var checkCmd = &cobra.Command{
	Use:   "check PLAN",
	Short: "Validate a plan file and list failing plants and removes",
	Args:  cobra.ExactArgs(1),
	RunE:  checkPlan,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func checkPlan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	plan, err := planfile.Load(args[0])
	if err != nil {
		return fmt.Errorf("load plan: %w", err)
	}
	res, err := planner.New(cfg.Planner(), logger.New("check-command"), nil).Check(plan)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	for _, c := range res.Conflicts {
		fmt.Fprintf(w, "%s: %s at %d: %s\n", c.Ref, c.Type, c.Time, c.Reason)
	}
	final := make([]string, len(res.Final))
	for i, l := range res.Final {
		final[i] = l.String()
	}
	fmt.Fprintf(w, "final launchers: %s\n", strings.Join(final, " "))
	_, err = fmt.Fprintf(w, "%s: valid, %d conflicting plant/remove operations\n", plan.Name, len(res.Conflicts))
	return err
}
