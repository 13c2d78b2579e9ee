package reports

import (
	"github.com/northwind-analytics/northwind/dataset"
	"github.com/northwind-analytics/northwind/engine"
)

// ============================================================================
// CUSTOMER REPORTS
// ============================================================================

func buildTopCustomersByOrders(s *dataset.Snapshot) *engine.Table {
	type row struct {
		id, name string
		orders   int
	}
	var rows []row
	for _, g := range engine.GroupBy(customerOrders(s), func(co customerOrder) string { return co.Customer.ID }) {
		rows = append(rows, row{
			id:     g.Key,
			name:   g.Rows[0].Customer.CompanyName,
			orders: engine.CountDistinct(g.Rows, func(co customerOrder) int { return co.Order.ID }),
		})
	}
	rows = engine.SortBy(rows, func(a, b row) bool {
		if a.orders != b.orders {
			return a.orders > b.orders
		}
		return a.id < b.id
	})
	rows = engine.Limit(rows, 5)

	t := engine.NewTable("top-customers-by-orders",
		engine.StrCol("customer_id").AsKey(),
		engine.StrCol("company_name"),
		engine.IntCol("orders"))
	for _, r := range rows {
		t.Append(engine.Str(r.id), engine.Str(r.name), engine.Int(r.orders))
	}
	return t
}

func buildMultiCountryCustomers(s *dataset.Snapshot) *engine.Table {
	type row struct {
		id, name  string
		countries int
		list      string
	}
	var rows []row
	for _, g := range engine.GroupBy(customerOrders(s), func(co customerOrder) string { return co.Customer.ID }) {
		rows = append(rows, row{
			id:        g.Key,
			name:      g.Rows[0].Customer.CompanyName,
			countries: engine.CountDistinct(g.Rows, func(co customerOrder) string { return co.Order.ShipCountry }),
			list:      engine.JoinDistinct(g.Rows, func(co customerOrder) string { return co.Order.ShipCountry }, ", "),
		})
	}
	rows = engine.Filter(rows, func(r row) bool { return r.countries > 1 })
	rows = engine.SortBy(rows, func(a, b row) bool {
		if a.countries != b.countries {
			return a.countries > b.countries
		}
		return a.id < b.id
	})

	t := engine.NewTable("multi-country-customers",
		engine.StrCol("customer_id").AsKey(),
		engine.StrCol("company_name"),
		engine.IntCol("countries"),
		engine.StrCol("country_list"))
	for _, r := range rows {
		t.Append(engine.Str(r.id), engine.Str(r.name), engine.Int(r.countries), engine.Str(r.list))
	}
	return t
}

// A customer whose first and last order years differ has either churned or
// stayed through a year boundary; a single-year customer never shows up.
func buildCustomerChurn(s *dataset.Snapshot) *engine.Table {
	type row struct {
		id, name            string
		firstYear, lastYear int
	}
	var rows []row
	for _, g := range engine.GroupBy(customerOrders(s), func(co customerOrder) string { return co.Customer.ID }) {
		first, _ := engine.MinInt(g.Rows, func(co customerOrder) int { return co.Order.Year() })
		last, _ := engine.MaxInt(g.Rows, func(co customerOrder) int { return co.Order.Year() })
		if first == last {
			continue
		}
		rows = append(rows, row{id: g.Key, name: g.Rows[0].Customer.CompanyName, firstYear: first, lastYear: last})
	}
	rows = engine.SortBy(rows, func(a, b row) bool { return a.id < b.id })

	t := engine.NewTable("customer-churn",
		engine.StrCol("customer_id").AsKey(),
		engine.StrCol("company_name"),
		engine.IntCol("first_year"),
		engine.IntCol("last_year"))
	for _, r := range rows {
		t.Append(engine.Str(r.id), engine.Str(r.name), engine.Int(r.firstYear), engine.Int(r.lastYear))
	}
	return t
}

func buildCustomerRevenueDelta(s *dataset.Snapshot) *engine.Table {
	type custLine struct {
		Customer dataset.Customer
		Line     orderLine
	}
	lines := engine.Join(orderLines(s), s.Customers(),
		func(l orderLine) string { return l.Order.CustomerID },
		func(c dataset.Customer) string { return c.ID },
		func(l orderLine, c dataset.Customer) custLine { return custLine{Customer: c, Line: l} })

	type yearKey struct {
		ID   string
		Year int
	}
	type yearly struct {
		id, name string
		year     int
		revenue  float64
	}
	var perYear []yearly
	for _, g := range engine.GroupBy(lines, func(l custLine) yearKey {
		return yearKey{ID: l.Customer.ID, Year: l.Line.Order.Year()}
	}) {
		perYear = append(perYear, yearly{
			id:      g.Key.ID,
			name:    g.Rows[0].Customer.CompanyName,
			year:    g.Key.Year,
			revenue: engine.Sum(g.Rows, func(l custLine) float64 { return l.Line.Detail.Revenue() }),
		})
	}

	// LAG(revenue, 1, 0) over (partition by customer order by year): the
	// prior row is the previous year the customer ordered in, consecutive
	// or not; a first year lags to 0.
	lagged := engine.Lag(perYear,
		func(y yearly) string { return y.id },
		func(a, b yearly) bool { return a.year < b.year },
		1,
		func(y yearly) float64 { return y.revenue },
		0)

	type row struct {
		id, name             string
		revenue, prev, delta float64
	}
	var rows []row
	for _, l := range lagged {
		if l.Row.year != 1998 {
			continue
		}
		rows = append(rows, row{
			id:      l.Row.id,
			name:    l.Row.name,
			revenue: l.Row.revenue,
			prev:    l.Prev,
			delta:   l.Row.revenue - l.Prev,
		})
	}
	rows = engine.SortBy(rows, func(a, b row) bool {
		if a.delta != b.delta {
			return a.delta > b.delta
		}
		return a.id < b.id
	})

	t := engine.NewTable("customer-revenue-delta",
		engine.StrCol("customer_id").AsKey(),
		engine.StrCol("company_name"),
		engine.FloatCol("revenue_1998", 0),
		engine.FloatCol("prev_revenue", 0),
		engine.FloatCol("delta", 0))
	for _, r := range rows {
		t.Append(engine.Str(r.id), engine.Str(r.name),
			engine.Float(engine.Round(r.revenue, 0)),
			engine.Float(engine.Round(r.prev, 0)),
			engine.Float(engine.Round(r.delta, 0)))
	}
	return t
}

func buildInternationalShipments(s *dataset.Snapshot) *engine.Table {
	abroad := engine.Filter(customerOrders(s), func(co customerOrder) bool {
		return co.Order.ShipCountry != co.Customer.Country
	})
	type row struct {
		id, name, home string
		shipments      int
	}
	var rows []row
	for _, g := range engine.GroupBy(abroad, func(co customerOrder) string { return co.Customer.ID }) {
		rows = append(rows, row{
			id:        g.Key,
			name:      g.Rows[0].Customer.CompanyName,
			home:      g.Rows[0].Customer.Country,
			shipments: engine.CountDistinct(g.Rows, func(co customerOrder) int { return co.Order.ID }),
		})
	}
	rows = engine.SortBy(rows, func(a, b row) bool {
		if a.shipments != b.shipments {
			return a.shipments > b.shipments
		}
		return a.id < b.id
	})

	t := engine.NewTable("international-shipments",
		engine.StrCol("customer_id").AsKey(),
		engine.StrCol("company_name"),
		engine.StrCol("home_country"),
		engine.IntCol("shipments"))
	for _, r := range rows {
		t.Append(engine.Str(r.id), engine.Str(r.name), engine.Str(r.home), engine.Int(r.shipments))
	}
	return t
}
