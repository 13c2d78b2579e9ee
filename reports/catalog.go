package reports

import (
	"github.com/northwind-analytics/northwind/dataset"
	"github.com/northwind-analytics/northwind/engine"
)

// ============================================================================
// REPORT CATALOG — The 20 named business reports
// ============================================================================
// A report is a fixed pipeline over the relational operators: join the
// minimal set of tables, group by the report's dimension, aggregate, filter,
// sort, limit. Each definition declares which tables it needs so the runner
// can reject an incomplete snapshot up front instead of computing nonsense.
// ============================================================================

// Definition is one cataloged report.
type Definition struct {
	// Name is the stable identifier used by Run and the CLI.
	Name string
	// Title is the human heading.
	Title string
	// Requires lists the dataset tables the pipeline reads.
	Requires []string
	// Headline is a one-line finding template; {column} placeholders
	// resolve against the result's top row, {rows} against the row count.
	Headline string

	build func(*dataset.Snapshot) *engine.Table
}

// catalog holds every report in presentation order. Names are kebab-case
// and never change: they are the public contract of Run.
var catalog = []Definition{
	{
		Name:     "top-customers-by-orders",
		Title:    "Top customers by order count",
		Requires: []string{dataset.TableCustomers, dataset.TableOrders},
		Headline: "Top customer by order count: {company_name} ({orders} orders).",
		build:    buildTopCustomersByOrders,
	},
	{
		Name:     "multi-country-customers",
		Title:    "Customers ordering into multiple countries",
		Requires: []string{dataset.TableCustomers, dataset.TableOrders},
		Headline: "{rows} customers ship to more than one country; {company_name} leads with {countries}.",
		build:    buildMultiCountryCustomers,
	},
	{
		Name:     "customer-churn",
		Title:    "Customers with activity across multiple years",
		Requires: []string{dataset.TableCustomers, dataset.TableOrders},
		Headline: "{rows} customers have order activity spanning more than one year.",
		build:    buildCustomerChurn,
	},
	{
		Name:     "customer-revenue-delta",
		Title:    "Customer revenue, 1998 vs prior year",
		Requires: []string{dataset.TableCustomers, dataset.TableOrders, dataset.TableOrderDetails},
		Headline: "Largest 1998 revenue swing: {company_name} ({delta} vs prior year).",
		build:    buildCustomerRevenueDelta,
	},
	{
		Name:  "top-category-by-country",
		Title: "Best-selling category per country",
		Requires: []string{
			dataset.TableCustomers, dataset.TableOrders, dataset.TableOrderDetails,
			dataset.TableProducts, dataset.TableCategories,
		},
		Headline: "{rows} country-level category leaders; {category} leads in {country} ({revenue}).",
		build:    buildTopCategoryByCountry,
	},
	{
		Name:     "top-product-per-category",
		Title:    "Best-selling product per category",
		Requires: []string{dataset.TableOrderDetails, dataset.TableProducts, dataset.TableCategories},
		Headline: "{rows} category leaders; {product} tops {category} ({revenue}).",
		build:    buildTopProductPerCategory,
	},
	{
		Name:     "restock-list",
		Title:    "Products below reorder level",
		Requires: []string{dataset.TableProducts, dataset.TableSuppliers},
		Headline: "{rows} products are below reorder level; first up: {product}.",
		build:    buildRestockList,
	},
	{
		Name:  "monthly-category-revenue",
		Title: "Monthly revenue by category",
		Requires: []string{
			dataset.TableOrders, dataset.TableOrderDetails,
			dataset.TableProducts, dataset.TableCategories,
		},
		Headline: "{rows} category-month revenue points computed.",
		build:    buildMonthlyCategoryRevenue,
	},
	{
		Name:     "average-order-size",
		Title:    "Average order size",
		Requires: []string{dataset.TableOrderDetails},
		Headline: "Across {orders} orders: {avg_units} units and {avg_revenue} revenue on average.",
		build:    buildAverageOrderSize,
	},
	{
		Name:     "product-customer-reach",
		Title:    "Products reaching the most customers",
		Requires: []string{dataset.TableOrders, dataset.TableOrderDetails, dataset.TableProducts},
		Headline: "Widest customer reach: {product} ({customers} distinct customers).",
		build:    buildProductCustomerReach,
	},
	{
		Name:     "rarely-sold-products",
		Title:    "Rarely sold products",
		Requires: []string{dataset.TableOrderDetails, dataset.TableProducts},
		Headline: "Slowest mover: {product} ({orders} orders, {units_sold} units).",
		build:    buildRarelySoldProducts,
	},
	{
		Name:     "average-discount-by-category",
		Title:    "Average discount depth by category",
		Requires: []string{dataset.TableOrderDetails, dataset.TableProducts, dataset.TableCategories},
		Headline: "Deepest discounting: {category} at {avg_discount_pct}% average.",
		build:    buildAverageDiscountByCategory,
	},
	{
		Name:     "international-shipments",
		Title:    "Shipments outside the customer's home country",
		Requires: []string{dataset.TableCustomers, dataset.TableOrders},
		Headline: "Most international customer: {company_name} ({shipments} shipments outside {home_country}).",
		build:    buildInternationalShipments,
	},
	{
		Name:     "employee-country-reach",
		Title:    "Employee shipping-country reach",
		Requires: []string{dataset.TableOrders, dataset.TableEmployees},
		Headline: "Widest shipping reach: {employee} ({countries} countries).",
		build:    buildEmployeeCountryReach,
	},
	{
		Name:     "top-employees-by-revenue",
		Title:    "Top employees by revenue",
		Requires: []string{dataset.TableOrders, dataset.TableOrderDetails, dataset.TableEmployees},
		Headline: "Top seller: {employee} ({revenue} across {orders} orders).",
		build:    buildTopEmployeesByRevenue,
	},
	{
		Name:     "average-order-value-by-country",
		Title:    "Average order value by ship country",
		Requires: []string{dataset.TableOrders, dataset.TableOrderDetails},
		Headline: "Highest average order value: {ship_country} ({avg_order_value}).",
		build:    buildAverageOrderValueByCountry,
	},
	{
		Name:     "supplier-revenue",
		Title:    "Revenue by supplier",
		Requires: []string{dataset.TableOrderDetails, dataset.TableProducts, dataset.TableSuppliers},
		Headline: "Top supplier by revenue: {supplier} ({revenue}).",
		build:    buildSupplierRevenue,
	},
	{
		Name:     "shipper-revenue",
		Title:    "Revenue and freight by shipper",
		Requires: []string{dataset.TableOrders, dataset.TableOrderDetails, dataset.TableShippers},
		Headline: "Top shipper by revenue: {shipper} ({revenue}, {freight} freight).",
		build:    buildShipperRevenue,
	},
	{
		Name:     "freight-by-country",
		Title:    "Freight cost by ship country",
		Requires: []string{dataset.TableOrders},
		Headline: "Highest freight spend: {ship_country} ({total_freight} across {orders} orders).",
		build:    buildFreightByCountry,
	},
	{
		Name:     "category-revenue",
		Title:    "Revenue share by category",
		Requires: []string{dataset.TableOrderDetails, dataset.TableProducts, dataset.TableCategories},
		Headline: "Top category: {category} ({revenue}, {share_pct}% of total).",
		build:    buildCategoryRevenue,
	},
}

// ============================================================================
// SHARED JOIN SHAPES
// ============================================================================

// orderLine is an order detail joined to its order header.
type orderLine struct {
	Order  dataset.Order
	Detail dataset.OrderDetail
}

func orderLines(s *dataset.Snapshot) []orderLine {
	return engine.Join(s.OrderDetails(), s.Orders(),
		func(d dataset.OrderDetail) int { return d.OrderID },
		func(o dataset.Order) int { return o.ID },
		func(d dataset.OrderDetail, o dataset.Order) orderLine {
			return orderLine{Order: o, Detail: d}
		})
}

// productLine is an order detail joined to its product.
type productLine struct {
	Product dataset.Product
	Detail  dataset.OrderDetail
}

func productLines(s *dataset.Snapshot) []productLine {
	return engine.Join(s.OrderDetails(), s.Products(),
		func(d dataset.OrderDetail) int { return d.ProductID },
		func(p dataset.Product) int { return p.ID },
		func(d dataset.OrderDetail, p dataset.Product) productLine {
			return productLine{Product: p, Detail: d}
		})
}

// categoryLine extends a productLine with its category.
type categoryLine struct {
	Category dataset.Category
	Product  dataset.Product
	Detail   dataset.OrderDetail
}

func categoryLines(s *dataset.Snapshot) []categoryLine {
	return engine.Join(productLines(s), s.Categories(),
		func(l productLine) int { return l.Product.CategoryID },
		func(c dataset.Category) int { return c.ID },
		func(l productLine, c dataset.Category) categoryLine {
			return categoryLine{Category: c, Product: l.Product, Detail: l.Detail}
		})
}

// customerOrder is an order joined to its customer.
type customerOrder struct {
	Customer dataset.Customer
	Order    dataset.Order
}

func customerOrders(s *dataset.Snapshot) []customerOrder {
	return engine.Join(s.Orders(), s.Customers(),
		func(o dataset.Order) string { return o.CustomerID },
		func(c dataset.Customer) string { return c.ID },
		func(o dataset.Order, c dataset.Customer) customerOrder {
			return customerOrder{Customer: c, Order: o}
		})
}
