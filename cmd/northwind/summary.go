package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary [report...]",
	Short: "Print one-line findings for the named reports (default: all)",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := loadSnapshot()
		if err != nil {
			return err
		}
		r := newRunner()
		names := args
		if len(names) == 0 {
			names = r.Names()
		}
		for _, name := range names {
			line, err := r.Headline(name, snap)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "- %s\n", line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
