package reports

import (
	"context"
	"runtime"
	"sync"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/northwind-analytics/northwind/dataset"
	"github.com/northwind-analytics/northwind/engine"
)

// ============================================================================
// REPORT RUNNER
// ============================================================================
// Entry point: New(opts...) → Run / RunAll / Diff.
//
// Pipeline per invocation:
//   1. Resolve the report name against the catalog
//   2. Check every required table is present on the snapshot
//   3. Execute the report's build pipeline
//
// Every run is pure: the snapshot is read-only, the result is a fresh
// table, and two runs over the same snapshot are byte-identical. That is
// what lets RunAll fan reports out to workers with no coordination.
// ============================================================================

// ErrUnknownReport marks a report name absent from the catalog.
var ErrUnknownReport = errors.New("reports: unknown report")

// Runner executes cataloged reports against dataset snapshots.
type Runner struct {
	defs        []Definition
	byName      map[string]int
	concurrency int
}

// New returns a runner over the full catalog, narrowed or tuned by opts.
func New(opts ...Option) *Runner {
	cfg := applyOptions(opts)

	defs := catalog
	if len(cfg.subset) > 0 {
		keep := make(map[string]bool, len(cfg.subset))
		for _, n := range cfg.subset {
			keep[n] = true
		}
		defs = nil
		for _, d := range catalog {
			if keep[d.Name] {
				defs = append(defs, d)
			}
		}
	}

	byName := make(map[string]int, len(defs))
	for i, d := range defs {
		byName[d.Name] = i
	}
	concurrency := cfg.concurrency
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	return &Runner{defs: defs, byName: byName, concurrency: concurrency}
}

// Names returns the report names this runner serves, in catalog order.
func (r *Runner) Names() []string {
	out := make([]string, len(r.defs))
	for i, d := range r.defs {
		out[i] = d.Name
	}
	return out
}

// Lookup returns the definition for name.
func (r *Runner) Lookup(name string) (Definition, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Definition{}, false
	}
	return r.defs[i], true
}

// Run computes one report. It fails with ErrUnknownReport for names outside
// the catalog and ErrSchemaMismatch when the snapshot lacks a table the
// report reads. An empty result table is success, not an error.
func (r *Runner) Run(name string, snap *dataset.Snapshot) (*engine.Table, error) {
	def, ok := r.Lookup(name)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownReport, "%q", name)
	}
	for _, table := range def.Requires {
		if !snap.Has(table) {
			return nil, errors.Wrapf(dataset.ErrSchemaMismatch,
				"report %q requires table %q", name, table)
		}
	}
	return def.build(snap), nil
}

// RunAll computes every report this runner serves, in parallel, and returns
// them keyed by name. The first failure cancels the remaining work; on
// success the map holds one table per report.
func (r *Runner) RunAll(ctx context.Context, snap *dataset.Snapshot) (map[string]*engine.Table, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	var mu sync.Mutex
	out := make(map[string]*engine.Table, len(r.defs))
	for _, def := range r.defs {
		def := def
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := r.Run(def.Name, snap)
			if err != nil {
				return err
			}
			mu.Lock()
			out[def.Name] = t
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Headline runs the report and renders its one-line finding.
func (r *Runner) Headline(name string, snap *dataset.Snapshot) (string, error) {
	def, ok := r.Lookup(name)
	if !ok {
		return "", errors.Wrapf(ErrUnknownReport, "%q", name)
	}
	t, err := r.Run(name, snap)
	if err != nil {
		return "", err
	}
	return renderHeadline(def, t), nil
}
