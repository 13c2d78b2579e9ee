package reports

import (
	"github.com/northwind-analytics/northwind/dataset"
	"github.com/northwind-analytics/northwind/engine"
)

// ============================================================================
// ORDER AND FREIGHT REPORTS
// ============================================================================

// perOrder collapses order details down to one row per order.
type perOrder struct {
	OrderID int
	Units   int
	Revenue float64
}

func perOrderTotals(s *dataset.Snapshot) []perOrder {
	var out []perOrder
	for _, g := range engine.GroupBy(s.OrderDetails(), func(d dataset.OrderDetail) int { return d.OrderID }) {
		out = append(out, perOrder{
			OrderID: g.Key,
			Units:   engine.SumInt(g.Rows, func(d dataset.OrderDetail) int { return d.Quantity }),
			Revenue: engine.Sum(g.Rows, func(d dataset.OrderDetail) float64 { return d.Revenue() }),
		})
	}
	return out
}

// buildAverageOrderSize emits exactly one row. On an empty snapshot the
// averages are null cells, not a division-by-zero failure.
func buildAverageOrderSize(s *dataset.Snapshot) *engine.Table {
	orders := perOrderTotals(s)
	avgUnits, okU := engine.Avg(orders, func(o perOrder) float64 { return float64(o.Units) })
	avgRevenue, okR := engine.Avg(orders, func(o perOrder) float64 { return o.Revenue })

	t := engine.NewTable("average-order-size",
		engine.IntCol("orders"),
		engine.FloatCol("avg_units", 2),
		engine.FloatCol("avg_revenue", 2))
	t.Append(engine.Int(len(orders)),
		engine.FloatOrNull(engine.Round(avgUnits, 2), okU),
		engine.FloatOrNull(engine.Round(avgRevenue, 2), okR))
	return t
}

func buildAverageOrderValueByCountry(s *dataset.Snapshot) *engine.Table {
	type countryOrder struct {
		Country string
		Totals  perOrder
	}
	lines := engine.Join(perOrderTotals(s), s.Orders(),
		func(o perOrder) int { return o.OrderID },
		func(o dataset.Order) int { return o.ID },
		func(t perOrder, o dataset.Order) countryOrder {
			return countryOrder{Country: o.ShipCountry, Totals: t}
		})

	type row struct {
		country string
		orders  int
		avg     float64
	}
	var rows []row
	for _, g := range engine.GroupBy(lines, func(l countryOrder) string { return l.Country }) {
		avg, _ := engine.Avg(g.Rows, func(l countryOrder) float64 { return l.Totals.Revenue })
		rows = append(rows, row{country: g.Key, orders: len(g.Rows), avg: avg})
	}
	rows = engine.SortBy(rows, func(a, b row) bool {
		if a.avg != b.avg {
			return a.avg > b.avg
		}
		return a.country < b.country
	})

	t := engine.NewTable("average-order-value-by-country",
		engine.StrCol("ship_country").AsKey(),
		engine.IntCol("orders"),
		engine.FloatCol("avg_order_value", 2))
	for _, r := range rows {
		t.Append(engine.Str(r.country), engine.Int(r.orders), engine.Float(engine.Round(r.avg, 2)))
	}
	return t
}

func buildFreightByCountry(s *dataset.Snapshot) *engine.Table {
	type row struct {
		country    string
		orders     int
		total, avg float64
	}
	var rows []row
	for _, g := range engine.GroupBy(s.Orders(), func(o dataset.Order) string { return o.ShipCountry }) {
		avg, _ := engine.Avg(g.Rows, func(o dataset.Order) float64 { return o.Freight })
		rows = append(rows, row{
			country: g.Key,
			orders:  len(g.Rows),
			total:   engine.Sum(g.Rows, func(o dataset.Order) float64 { return o.Freight }),
			avg:     avg,
		})
	}
	rows = engine.SortBy(rows, func(a, b row) bool {
		if a.total != b.total {
			return a.total > b.total
		}
		return a.country < b.country
	})

	t := engine.NewTable("freight-by-country",
		engine.StrCol("ship_country").AsKey(),
		engine.IntCol("orders"),
		engine.FloatCol("total_freight", 0),
		engine.FloatCol("avg_freight", 2))
	for _, r := range rows {
		t.Append(engine.Str(r.country), engine.Int(r.orders),
			engine.Float(engine.Round(r.total, 0)), engine.Float(engine.Round(r.avg, 2)))
	}
	return t
}
