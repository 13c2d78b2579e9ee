package reports

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/northwind-analytics/northwind/engine"
)

// ============================================================================
// HEADLINES — One-line prose findings per report
// ============================================================================
// Each definition carries a template; {column} placeholders resolve against
// the result's top row, {rows} against the row count. The top row is the
// report's own ordering — for most reports that makes it the leading
// finding.
// ============================================================================

var placeholderRe = regexp.MustCompile(`\{[a-z0-9_]+\}`)

func renderHeadline(def Definition, t *engine.Table) string {
	if len(t.Rows) == 0 {
		return def.Title + ": no data."
	}
	top := t.Rows[0]
	out := placeholderRe.ReplaceAllStringFunc(def.Headline, func(ph string) string {
		name := strings.Trim(ph, "{}")
		if name == "rows" {
			return strconv.Itoa(len(t.Rows))
		}
		if i := t.ColumnIndex(name); i >= 0 {
			return top[i].Display(t.Columns[i])
		}
		return ph // leave unknowns visible; templates are fixed at compile time
	})
	return out
}
