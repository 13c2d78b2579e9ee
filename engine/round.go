package engine

import (
	"github.com/cockroachdb/apd/v3"
)

// ============================================================================
// ROUNDING — Half away from zero, in decimal
// ============================================================================
// Report figures are rounded in decimal arithmetic, not binary: 2.675 at two
// places is 2.68, never 2.67, and -2.5 at zero places is -3. apd carries the
// digits float64 can't.
// ============================================================================

var roundCtx = func() *apd.Context {
	ctx := apd.BaseContext.WithPrecision(25)
	ctx.Rounding = apd.RoundHalfUp // away from zero on the .5 boundary
	return ctx
}()

// Round returns x rounded to places decimal places, with exact halves
// rounded away from zero. NaN and infinities are returned unchanged.
func Round(x float64, places int) float64 {
	var d, q apd.Decimal
	if _, err := d.SetFloat64(x); err != nil {
		return x
	}
	if _, err := roundCtx.Quantize(&q, &d, int32(-places)); err != nil {
		return x
	}
	f, err := q.Float64()
	if err != nil {
		return x
	}
	return f
}
