package reports

import (
	"github.com/northwind-analytics/northwind/dataset"
	"github.com/northwind-analytics/northwind/engine"
)

// ============================================================================
// EMPLOYEE, SUPPLIER AND SHIPPER REPORTS
// ============================================================================

func buildEmployeeCountryReach(s *dataset.Snapshot) *engine.Table {
	type empOrder struct {
		Employee dataset.Employee
		Order    dataset.Order
	}
	lines := engine.Join(s.Orders(), s.Employees(),
		func(o dataset.Order) int { return o.EmployeeID },
		func(e dataset.Employee) int { return e.ID },
		func(o dataset.Order, e dataset.Employee) empOrder { return empOrder{Employee: e, Order: o} })

	type row struct {
		id        int
		name      string
		countries int
	}
	var rows []row
	for _, g := range engine.GroupBy(lines, func(l empOrder) int { return l.Employee.ID }) {
		rows = append(rows, row{
			id:        g.Key,
			name:      g.Rows[0].Employee.FullName(),
			countries: engine.CountDistinct(g.Rows, func(l empOrder) string { return l.Order.ShipCountry }),
		})
	}
	rows = engine.SortBy(rows, func(a, b row) bool {
		if a.countries != b.countries {
			return a.countries > b.countries
		}
		return a.id < b.id
	})

	t := engine.NewTable("employee-country-reach",
		engine.IntCol("employee_id").AsKey(),
		engine.StrCol("employee"),
		engine.IntCol("countries"))
	for _, r := range rows {
		t.Append(engine.Int(r.id), engine.Str(r.name), engine.Int(r.countries))
	}
	return t
}

func buildTopEmployeesByRevenue(s *dataset.Snapshot) *engine.Table {
	type empLine struct {
		Employee dataset.Employee
		Line     orderLine
	}
	lines := engine.Join(orderLines(s), s.Employees(),
		func(l orderLine) int { return l.Order.EmployeeID },
		func(e dataset.Employee) int { return e.ID },
		func(l orderLine, e dataset.Employee) empLine { return empLine{Employee: e, Line: l} })

	type row struct {
		id      int
		name    string
		orders  int
		revenue float64
	}
	var rows []row
	for _, g := range engine.GroupBy(lines, func(l empLine) int { return l.Employee.ID }) {
		rows = append(rows, row{
			id:      g.Key,
			name:    g.Rows[0].Employee.FullName(),
			orders:  engine.CountDistinct(g.Rows, func(l empLine) int { return l.Line.Order.ID }),
			revenue: engine.Sum(g.Rows, func(l empLine) float64 { return l.Line.Detail.Revenue() }),
		})
	}
	rows = engine.SortBy(rows, func(a, b row) bool {
		if a.revenue != b.revenue {
			return a.revenue > b.revenue
		}
		return a.id < b.id
	})
	rows = engine.Limit(rows, 5)

	t := engine.NewTable("top-employees-by-revenue",
		engine.IntCol("employee_id").AsKey(),
		engine.StrCol("employee"),
		engine.IntCol("orders"),
		engine.FloatCol("revenue", 0))
	for _, r := range rows {
		t.Append(engine.Int(r.id), engine.Str(r.name), engine.Int(r.orders),
			engine.Float(engine.Round(r.revenue, 0)))
	}
	return t
}

func buildSupplierRevenue(s *dataset.Snapshot) *engine.Table {
	type supLine struct {
		Supplier dataset.Supplier
		Detail   dataset.OrderDetail
	}
	lines := engine.Join(productLines(s), s.Suppliers(),
		func(l productLine) int { return l.Product.SupplierID },
		func(sup dataset.Supplier) int { return sup.ID },
		func(l productLine, sup dataset.Supplier) supLine {
			return supLine{Supplier: sup, Detail: l.Detail}
		})

	type row struct {
		id            int
		name, country string
		revenue       float64
	}
	var rows []row
	for _, g := range engine.GroupBy(lines, func(l supLine) int { return l.Supplier.ID }) {
		rows = append(rows, row{
			id:      g.Key,
			name:    g.Rows[0].Supplier.CompanyName,
			country: g.Rows[0].Supplier.Country,
			revenue: engine.Sum(g.Rows, func(l supLine) float64 { return l.Detail.Revenue() }),
		})
	}
	rows = engine.SortBy(rows, func(a, b row) bool {
		if a.revenue != b.revenue {
			return a.revenue > b.revenue
		}
		return a.id < b.id
	})

	t := engine.NewTable("supplier-revenue",
		engine.IntCol("supplier_id").AsKey(),
		engine.StrCol("supplier"),
		engine.StrCol("country"),
		engine.FloatCol("revenue", 0))
	for _, r := range rows {
		t.Append(engine.Int(r.id), engine.Str(r.name), engine.Str(r.country),
			engine.Float(engine.Round(r.revenue, 0)))
	}
	return t
}

// Freight is an order-level figure, so it is summed over shipper-order
// pairs; summing it over joined detail lines would count it once per line.
func buildShipperRevenue(s *dataset.Snapshot) *engine.Table {
	type shipOrder struct {
		Shipper dataset.Shipper
		Order   dataset.Order
	}
	shipOrders := engine.Join(s.Orders(), s.Shippers(),
		func(o dataset.Order) int { return o.ShipVia },
		func(sh dataset.Shipper) int { return sh.ID },
		func(o dataset.Order, sh dataset.Shipper) shipOrder { return shipOrder{Shipper: sh, Order: o} })

	revenueByShipper := make(map[int]float64)
	for _, g := range engine.GroupBy(orderLines(s), func(l orderLine) int { return l.Order.ShipVia }) {
		revenueByShipper[g.Key] = engine.Sum(g.Rows, func(l orderLine) float64 { return l.Detail.Revenue() })
	}

	type row struct {
		id               int
		name             string
		orders           int
		revenue, freight float64
	}
	var rows []row
	for _, g := range engine.GroupBy(shipOrders, func(l shipOrder) int { return l.Shipper.ID }) {
		rows = append(rows, row{
			id:      g.Key,
			name:    g.Rows[0].Shipper.CompanyName,
			orders:  len(g.Rows),
			revenue: revenueByShipper[g.Key],
			freight: engine.Sum(g.Rows, func(l shipOrder) float64 { return l.Order.Freight }),
		})
	}
	rows = engine.SortBy(rows, func(a, b row) bool {
		if a.revenue != b.revenue {
			return a.revenue > b.revenue
		}
		return a.id < b.id
	})

	t := engine.NewTable("shipper-revenue",
		engine.IntCol("shipper_id").AsKey(),
		engine.StrCol("shipper"),
		engine.IntCol("orders"),
		engine.FloatCol("revenue", 0),
		engine.FloatCol("freight", 0))
	for _, r := range rows {
		t.Append(engine.Int(r.id), engine.Str(r.name), engine.Int(r.orders),
			engine.Float(engine.Round(r.revenue, 0)), engine.Float(engine.Round(r.freight, 0)))
	}
	return t
}
