package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/olekukonko/tablewriter"

	"github.com/northwind-analytics/northwind/engine"
)

// ============================================================================
// OUTPUT — Result-table rendering
// ============================================================================
// table  human display: column headers, thousands separators, NULL spelled
// csv    machine output: raw cells, fixed decimals
// json   the engine.Table encoding as-is
// ============================================================================

func render(w io.Writer, format string, t *engine.Table) error {
	switch format {
	case "table":
		fmt.Fprintf(w, "%s (%d rows)\n", t.Name, len(t.Rows))
		renderPretty(w, t)
		return nil
	case "csv":
		return renderCSV(w, t)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(t)
	default:
		return errors.Newf("unknown format %q (want table, csv or json)", format)
	}
}

func renderMany(w io.Writer, format string, tables []*engine.Table) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tables)
	}
	for i, t := range tables {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := render(w, format, t); err != nil {
			return err
		}
	}
	return nil
}

func renderPretty(w io.Writer, t *engine.Table) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(t.Headers())
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = v.Display(t.Columns[i])
		}
		tw.Append(cells)
	}
	tw.Render()
}

func renderCSV(w io.Writer, t *engine.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Headers()); err != nil {
		return err
	}
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = v.Raw(t.Columns[i])
		}
		if err := cw.Write(cells); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
