package reports

import (
	"github.com/northwind-analytics/northwind/dataset"
	"github.com/northwind-analytics/northwind/engine"
)

// ============================================================================
// CATEGORY REPORTS
// ============================================================================

func buildTopCategoryByCountry(s *dataset.Snapshot) *engine.Table {
	// Star join: detail → order → customer (country), detail → product →
	// category (name).
	type geoLine struct {
		Country string
		Line    orderLine
	}
	withCountry := engine.Join(orderLines(s), s.Customers(),
		func(l orderLine) string { return l.Order.CustomerID },
		func(c dataset.Customer) string { return c.ID },
		func(l orderLine, c dataset.Customer) geoLine { return geoLine{Country: c.Country, Line: l} })

	type prodLine struct {
		Country    string
		CategoryID int
		Detail     dataset.OrderDetail
	}
	withProduct := engine.Join(withCountry, s.Products(),
		func(l geoLine) int { return l.Line.Detail.ProductID },
		func(p dataset.Product) int { return p.ID },
		func(l geoLine, p dataset.Product) prodLine {
			return prodLine{Country: l.Country, CategoryID: p.CategoryID, Detail: l.Line.Detail}
		})

	type catLine struct {
		Country  string
		Category string
		Detail   dataset.OrderDetail
	}
	lines := engine.Join(withProduct, s.Categories(),
		func(l prodLine) int { return l.CategoryID },
		func(c dataset.Category) int { return c.ID },
		func(l prodLine, c dataset.Category) catLine {
			return catLine{Country: l.Country, Category: c.Name, Detail: l.Detail}
		})

	type dim struct{ Country, Category string }
	type row struct {
		country, category string
		revenue           float64
	}
	var rows []row
	for _, g := range engine.GroupBy(lines, func(l catLine) dim {
		return dim{Country: l.Country, Category: l.Category}
	}) {
		rows = append(rows, row{
			country:  g.Key.Country,
			category: g.Key.Category,
			revenue:  engine.Sum(g.Rows, func(l catLine) float64 { return l.Detail.Revenue() }),
		})
	}

	ranked := engine.Rank(rows,
		func(r row) string { return r.country },
		func(r row) float64 { return r.revenue },
		true)
	var leaders []row
	for _, r := range ranked {
		if r.Rank == 1 { // RANK() keeps every tied leader
			leaders = append(leaders, r.Row)
		}
	}
	leaders = engine.SortBy(leaders, func(a, b row) bool {
		if a.country != b.country {
			return a.country < b.country
		}
		return a.category < b.category
	})

	t := engine.NewTable("top-category-by-country",
		engine.StrCol("country").AsKey(),
		engine.StrCol("category").AsKey(),
		engine.FloatCol("revenue", 0))
	for _, r := range leaders {
		t.Append(engine.Str(r.country), engine.Str(r.category), engine.Float(engine.Round(r.revenue, 0)))
	}
	return t
}

func buildMonthlyCategoryRevenue(s *dataset.Snapshot) *engine.Table {
	type monthLine struct {
		Category    string
		Year, Month int
		Detail      dataset.OrderDetail
	}
	lines := engine.Join(categoryLines(s), s.Orders(),
		func(l categoryLine) int { return l.Detail.OrderID },
		func(o dataset.Order) int { return o.ID },
		func(l categoryLine, o dataset.Order) monthLine {
			return monthLine{Category: l.Category.Name, Year: o.Year(), Month: o.Month(), Detail: l.Detail}
		})

	type dim struct {
		Category    string
		Year, Month int
	}
	type row struct {
		category    string
		year, month int
		revenue     float64
	}
	var rows []row
	for _, g := range engine.GroupBy(lines, func(l monthLine) dim {
		return dim{Category: l.Category, Year: l.Year, Month: l.Month}
	}) {
		rows = append(rows, row{
			category: g.Key.Category,
			year:     g.Key.Year,
			month:    g.Key.Month,
			revenue:  engine.Sum(g.Rows, func(l monthLine) float64 { return l.Detail.Revenue() }),
		})
	}
	rows = engine.SortBy(rows, func(a, b row) bool {
		if a.category != b.category {
			return a.category < b.category
		}
		if a.year != b.year {
			return a.year < b.year
		}
		return a.month < b.month
	})

	t := engine.NewTable("monthly-category-revenue",
		engine.StrCol("category").AsKey(),
		engine.IntCol("year").AsKey(),
		engine.IntCol("month").AsKey(),
		engine.FloatCol("revenue", 0))
	for _, r := range rows {
		t.Append(engine.Str(r.category), engine.Int(r.year), engine.Int(r.month),
			engine.Float(engine.Round(r.revenue, 0)))
	}
	return t
}

func buildAverageDiscountByCategory(s *dataset.Snapshot) *engine.Table {
	type row struct {
		category string
		pct      float64
	}
	var rows []row
	for _, g := range engine.GroupBy(categoryLines(s), func(l categoryLine) string { return l.Category.Name }) {
		avg, _ := engine.Avg(g.Rows, func(l categoryLine) float64 { return l.Detail.Discount })
		rows = append(rows, row{category: g.Key, pct: avg * 100})
	}
	rows = engine.SortBy(rows, func(a, b row) bool {
		if a.pct != b.pct {
			return a.pct > b.pct
		}
		return a.category < b.category
	})

	t := engine.NewTable("average-discount-by-category",
		engine.StrCol("category").AsKey(),
		engine.FloatCol("avg_discount_pct", 2))
	for _, r := range rows {
		t.Append(engine.Str(r.category), engine.Float(engine.Round(r.pct, 2)))
	}
	return t
}

func buildCategoryRevenue(s *dataset.Snapshot) *engine.Table {
	lines := categoryLines(s)
	grand := engine.Sum(lines, func(l categoryLine) float64 { return l.Detail.Revenue() })

	type row struct {
		category string
		products int
		revenue  float64
	}
	var rows []row
	for _, g := range engine.GroupBy(lines, func(l categoryLine) string { return l.Category.Name }) {
		rows = append(rows, row{
			category: g.Key,
			products: engine.CountDistinct(g.Rows, func(l categoryLine) int { return l.Product.ID }),
			revenue:  engine.Sum(g.Rows, func(l categoryLine) float64 { return l.Detail.Revenue() }),
		})
	}
	rows = engine.SortBy(rows, func(a, b row) bool {
		if a.revenue != b.revenue {
			return a.revenue > b.revenue
		}
		return a.category < b.category
	})

	t := engine.NewTable("category-revenue",
		engine.StrCol("category").AsKey(),
		engine.IntCol("products"),
		engine.FloatCol("revenue", 0),
		engine.FloatCol("share_pct", 2))
	for _, r := range rows {
		share := engine.Null(engine.KindFloat)
		if grand != 0 {
			share = engine.Float(engine.Round(r.revenue/grand*100, 2))
		}
		t.Append(engine.Str(r.category), engine.Int(r.products),
			engine.Float(engine.Round(r.revenue, 0)), share)
	}
	return t
}
