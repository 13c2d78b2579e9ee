package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/northwind-analytics/northwind/helpers"
)

var (
	diffBefore string
	diffAfter  string
)

var diffCmd = &cobra.Command{
	Use:   "diff <report>",
	Short: "Run a report against two data directories and show what moved",
	Long: `diff runs the report against the --before and --after directories and
keeps only the rows that differ: added, removed, or changed by report key,
with before/after/delta cells for every metric.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		before, err := helpers.LoadDir(diffBefore)
		if err != nil {
			return err
		}
		after, err := helpers.LoadDir(diffAfter)
		if err != nil {
			return err
		}
		t, err := newRunner().Diff(args[0], before, after)
		if err != nil {
			return err
		}
		return render(os.Stdout, viper.GetString("format"), t)
	},
}

func init() {
	diffCmd.Flags().StringVar(&diffBefore, "before", "", "data directory for the baseline run")
	diffCmd.Flags().StringVar(&diffAfter, "after", "", "data directory for the comparison run")
	must(diffCmd.MarkFlagRequired("before"))
	must(diffCmd.MarkFlagRequired("after"))
	rootCmd.AddCommand(diffCmd)
}
