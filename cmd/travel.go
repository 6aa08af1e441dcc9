package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/cobreuse/core/travel"
)

var (
	travelCol    int
	travelTarget float64
)

var travelCmd = &cobra.Command{
	Use:   "travel",
	Short: "Print the flight time of a cob",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := travel.Time(travelCol, travelTarget)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), t)
		return err
	},
}

func init() {
	travelCmd.Flags().IntVar(&travelCol, "col", 1, "launcher column")
	travelCmd.Flags().Float64Var(&travelTarget, "target", 9, "target column")
	rootCmd.AddCommand(travelCmd)
}
