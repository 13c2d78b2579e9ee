package reports

import (
	"github.com/northwind-analytics/northwind/dataset"
	"github.com/northwind-analytics/northwind/engine"
)

// ============================================================================
// PRODUCT REPORTS
// ============================================================================

func buildTopProductPerCategory(s *dataset.Snapshot) *engine.Table {
	type dim struct{ Category, Product string }
	type row struct {
		category, product string
		revenue           float64
	}
	var rows []row
	for _, g := range engine.GroupBy(categoryLines(s), func(l categoryLine) dim {
		return dim{Category: l.Category.Name, Product: l.Product.Name}
	}) {
		rows = append(rows, row{
			category: g.Key.Category,
			product:  g.Key.Product,
			revenue:  engine.Sum(g.Rows, func(l categoryLine) float64 { return l.Detail.Revenue() }),
		})
	}

	ranked := engine.Rank(rows,
		func(r row) string { return r.category },
		func(r row) float64 { return r.revenue },
		true)
	var leaders []row
	for _, r := range ranked {
		if r.Rank == 1 {
			leaders = append(leaders, r.Row)
		}
	}
	leaders = engine.SortBy(leaders, func(a, b row) bool {
		if a.category != b.category {
			return a.category < b.category
		}
		return a.product < b.product
	})

	t := engine.NewTable("top-product-per-category",
		engine.StrCol("category").AsKey(),
		engine.StrCol("product").AsKey(),
		engine.FloatCol("revenue", 0))
	for _, r := range leaders {
		t.Append(engine.Str(r.category), engine.Str(r.product), engine.Float(engine.Round(r.revenue, 0)))
	}
	return t
}

func buildRestockList(s *dataset.Snapshot) *engine.Table {
	type row struct {
		product  dataset.Product
		supplier string
	}
	rows := engine.Join(s.Products(), s.Suppliers(),
		func(p dataset.Product) int { return p.SupplierID },
		func(sup dataset.Supplier) int { return sup.ID },
		func(p dataset.Product, sup dataset.Supplier) row {
			return row{product: p, supplier: sup.CompanyName}
		})
	rows = engine.Filter(rows, func(r row) bool {
		return r.product.UnitsInStock+r.product.UnitsOnOrder < r.product.ReorderLevel
	})
	rows = engine.SortBy(rows, func(a, b row) bool { return a.product.Name < b.product.Name })

	t := engine.NewTable("restock-list",
		engine.IntCol("product_id").AsKey(),
		engine.StrCol("product"),
		engine.StrCol("supplier"),
		engine.IntCol("units_in_stock"),
		engine.IntCol("units_on_order"),
		engine.IntCol("reorder_level"))
	for _, r := range rows {
		t.Append(engine.Int(r.product.ID), engine.Str(r.product.Name), engine.Str(r.supplier),
			engine.Int(r.product.UnitsInStock), engine.Int(r.product.UnitsOnOrder),
			engine.Int(r.product.ReorderLevel))
	}
	return t
}

func buildProductCustomerReach(s *dataset.Snapshot) *engine.Table {
	type reachLine struct {
		Product    dataset.Product
		CustomerID string
	}
	lines := engine.Join(orderLines(s), s.Products(),
		func(l orderLine) int { return l.Detail.ProductID },
		func(p dataset.Product) int { return p.ID },
		func(l orderLine, p dataset.Product) reachLine {
			return reachLine{Product: p, CustomerID: l.Order.CustomerID}
		})

	type row struct {
		id        int
		name      string
		customers int
	}
	var rows []row
	for _, g := range engine.GroupBy(lines, func(l reachLine) int { return l.Product.ID }) {
		rows = append(rows, row{
			id:        g.Key,
			name:      g.Rows[0].Product.Name,
			customers: engine.CountDistinct(g.Rows, func(l reachLine) string { return l.CustomerID }),
		})
	}
	rows = engine.SortBy(rows, func(a, b row) bool {
		if a.customers != b.customers {
			return a.customers > b.customers
		}
		return a.name < b.name
	})
	rows = engine.Limit(rows, 10)

	t := engine.NewTable("product-customer-reach",
		engine.IntCol("product_id").AsKey(),
		engine.StrCol("product"),
		engine.IntCol("customers"))
	for _, r := range rows {
		t.Append(engine.Int(r.id), engine.Str(r.name), engine.Int(r.customers))
	}
	return t
}

// Products with no order lines at all never appear here; the report ranks
// what did sell, slowest first.
func buildRarelySoldProducts(s *dataset.Snapshot) *engine.Table {
	type row struct {
		id     int
		name   string
		orders int
		units  int
	}
	var rows []row
	for _, g := range engine.GroupBy(productLines(s), func(l productLine) int { return l.Product.ID }) {
		rows = append(rows, row{
			id:     g.Key,
			name:   g.Rows[0].Product.Name,
			orders: engine.CountDistinct(g.Rows, func(l productLine) int { return l.Detail.OrderID }),
			units:  engine.SumInt(g.Rows, func(l productLine) int { return l.Detail.Quantity }),
		})
	}
	rows = engine.SortBy(rows, func(a, b row) bool {
		if a.orders != b.orders {
			return a.orders < b.orders
		}
		return a.name < b.name
	})
	rows = engine.Limit(rows, 10)

	t := engine.NewTable("rarely-sold-products",
		engine.IntCol("product_id").AsKey(),
		engine.StrCol("product"),
		engine.IntCol("orders"),
		engine.IntCol("units_sold"))
	for _, r := range rows {
		t.Append(engine.Int(r.id), engine.Str(r.name), engine.Int(r.orders), engine.Int(r.units))
	}
	return t
}
