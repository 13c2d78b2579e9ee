package main

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/northwind-analytics/northwind/dataset"
	"github.com/northwind-analytics/northwind/helpers"
	"github.com/northwind-analytics/northwind/reports"
)

const version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "northwind",
	Short: "Analytical reports over the Northwind Traders dataset",
	Long: `northwind computes a fixed catalog of 20 business reports (top
customers, churn, category revenue, supplier and shipper contribution, ...)
over a directory of Northwind CSV files.

The data directory is resolved from --data or NORTHWIND_DATA and holds the
conventional files: customers.csv, orders.csv, order_details.csv,
products.csv, categories.csv, suppliers.csv, employees.csv, shippers.csv.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("data", "", "directory of Northwind CSV files")
	pf.String("format", "table", "output format: table, csv, json")
	pf.Int("parallelism", 0, "max reports computed at once (0 = one per CPU)")

	viper.SetEnvPrefix("northwind")
	viper.AutomaticEnv()
	must(viper.BindPFlag("data", pf.Lookup("data")))
	must(viper.BindPFlag("format", pf.Lookup("format")))
	must(viper.BindPFlag("parallelism", pf.Lookup("parallelism")))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func newRunner() *reports.Runner {
	return reports.New(reports.WithConcurrency(viper.GetInt("parallelism")))
}

func loadSnapshot() (*dataset.Snapshot, error) {
	dir := viper.GetString("data")
	if dir == "" {
		return nil, errors.New("no data directory: set --data or NORTHWIND_DATA")
	}
	return helpers.LoadDir(dir)
}
