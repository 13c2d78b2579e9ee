package reports

import (
	"strings"

	"github.com/northwind-analytics/northwind/dataset"
	"github.com/northwind-analytics/northwind/engine"
)

// ============================================================================
// RUN DIFFING — Compare one report across two snapshots
// ============================================================================
// Rows are matched by the report's key columns. The diff keeps only rows
// that were added, removed, or changed between the runs; unchanged rows
// are noise and are dropped.
// ============================================================================

// Diff runs the named report against two snapshots (typically two periods
// of the same dataset, see dataset.Snapshot.WithOrders) and returns the
// row-level differences. For every non-key column the result carries a
// before and an after cell, plus a delta cell for numeric columns; cells
// on the missing side of an added or removed row are null.
func (r *Runner) Diff(name string, before, after *dataset.Snapshot) (*engine.Table, error) {
	prev, err := r.Run(name, before)
	if err != nil {
		return nil, err
	}
	next, err := r.Run(name, after)
	if err != nil {
		return nil, err
	}

	keyIdx := prev.KeyColumns()
	rowKey := func(row []engine.Value) string {
		parts := make([]string, len(keyIdx))
		for i, k := range keyIdx {
			parts[i] = row[k].Raw(prev.Columns[k])
		}
		return strings.Join(parts, "\x00")
	}

	out := engine.NewTable(name+"-diff", diffColumns(prev, keyIdx)...)

	prevByKey := make(map[string][]engine.Value, len(prev.Rows))
	for _, row := range prev.Rows {
		prevByKey[rowKey(row)] = row
	}
	nextByKey := make(map[string][]engine.Value, len(next.Rows))
	for _, row := range next.Rows {
		nextByKey[rowKey(row)] = row
	}

	// Union of keys: before-run order first, then after-only keys in
	// after-run order.
	var keys []string
	seen := make(map[string]bool, len(prevByKey))
	for _, row := range prev.Rows {
		k := rowKey(row)
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	for _, row := range next.Rows {
		k := rowKey(row)
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}

	type diffRow struct {
		keyCells []engine.Value
		cells    []engine.Value
	}
	var rows []diffRow
	for _, k := range keys {
		b, inBefore := prevByKey[k]
		a, inAfter := nextByKey[k]
		status := ""
		switch {
		case !inBefore:
			status = "added"
		case !inAfter:
			status = "removed"
		case !sameRow(prev, keyIdx, b, a):
			status = "changed"
		default:
			continue
		}

		src := b
		if src == nil {
			src = a
		}
		keyCells := make([]engine.Value, len(keyIdx))
		for i, ki := range keyIdx {
			keyCells[i] = src[ki]
		}

		cells := append([]engine.Value(nil), keyCells...)
		cells = append(cells, engine.Str(status))
		for ci, col := range prev.Columns {
			if col.Key {
				continue
			}
			bv, av := engine.Null(col.Kind), engine.Null(col.Kind)
			if inBefore {
				bv = b[ci]
			}
			if inAfter {
				av = a[ci]
			}
			cells = append(cells, bv, av)
			if col.Kind == engine.KindString {
				continue
			}
			delta := engine.Null(col.Kind)
			if bn, ok := bv.Num(); ok {
				if an, ok2 := av.Num(); ok2 {
					if col.Kind == engine.KindInt {
						delta = engine.Int(int(an - bn))
					} else {
						delta = engine.Float(engine.Round(an-bn, col.Decimals))
					}
				}
			}
			cells = append(cells, delta)
		}
		rows = append(rows, diffRow{keyCells: keyCells, cells: cells})
	}

	rows = engine.SortBy(rows, func(x, y diffRow) bool {
		for i := range x.keyCells {
			if !x.keyCells[i].Equal(y.keyCells[i]) {
				return x.keyCells[i].Less(y.keyCells[i])
			}
		}
		return false
	})
	for _, r := range rows {
		out.Append(r.cells...)
	}
	return out, nil
}

func diffColumns(t *engine.Table, keyIdx []int) []engine.Column {
	var cols []engine.Column
	for _, k := range keyIdx {
		cols = append(cols, t.Columns[k])
	}
	cols = append(cols, engine.StrCol("status"))
	for _, c := range t.Columns {
		if c.Key {
			continue
		}
		beforeCol, afterCol := c, c
		beforeCol.Name, beforeCol.Key = c.Name+"_before", false
		afterCol.Name, afterCol.Key = c.Name+"_after", false
		cols = append(cols, beforeCol, afterCol)
		if c.Kind != engine.KindString {
			deltaCol := c
			deltaCol.Name, deltaCol.Key = c.Name+"_delta", false
			cols = append(cols, deltaCol)
		}
	}
	return cols
}

func sameRow(t *engine.Table, keyIdx []int, a, b []engine.Value) bool {
	isKey := make(map[int]bool, len(keyIdx))
	for _, k := range keyIdx {
		isKey[k] = true
	}
	for i := range t.Columns {
		if isKey[i] {
			continue
		}
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
