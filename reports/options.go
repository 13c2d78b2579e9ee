package reports

// ============================================================================
// RUNNER OPTIONS — Functional options for New()
// ============================================================================

// Option configures a Runner.
type Option func(*config)

type config struct {
	concurrency int
	subset      []string
}

// WithConcurrency caps how many reports RunAll computes at once.
// n <= 0 means one worker per CPU.
func WithConcurrency(n int) Option {
	return func(c *config) { c.concurrency = n }
}

// WithReports narrows the runner to the named reports. Unknown names are
// simply not served; Run on them fails with ErrUnknownReport.
func WithReports(names ...string) Option {
	return func(c *config) { c.subset = append(c.subset, names...) }
}

func applyOptions(opts []Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
