package main

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/northwind-analytics/northwind/engine"
)

var runAll bool

var runCmd = &cobra.Command{
	Use:   "run [report]",
	Short: "Run one report, or every report with --all",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if runAll == (len(args) == 1) {
			return errors.New("pass exactly one report name, or --all")
		}
		snap, err := loadSnapshot()
		if err != nil {
			return err
		}
		r := newRunner()
		format := viper.GetString("format")

		if !runAll {
			t, err := r.Run(args[0], snap)
			if err != nil {
				return err
			}
			return render(os.Stdout, format, t)
		}

		results, err := r.RunAll(context.Background(), snap)
		if err != nil {
			return err
		}
		tables := make([]*engine.Table, 0, len(results))
		for _, name := range r.Names() { // catalog order, not map order
			tables = append(tables, results[name])
		}
		return renderMany(os.Stdout, format, tables)
	},
}

func init() {
	runCmd.Flags().BoolVar(&runAll, "all", false, "run every cataloged report")
	rootCmd.AddCommand(runCmd)
}
