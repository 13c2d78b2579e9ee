package main

import (
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the cataloged reports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r := newRunner()
		tw := tablewriter.NewWriter(os.Stdout)
		tw.SetHeader([]string{"Report", "Title", "Requires"})
		tw.SetAutoFormatHeaders(false)
		tw.SetAutoWrapText(false)
		for _, name := range r.Names() {
			def, _ := r.Lookup(name)
			tw.Append([]string{def.Name, def.Title, strings.Join(def.Requires, ", ")})
		}
		tw.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
