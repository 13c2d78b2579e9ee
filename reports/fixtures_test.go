package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/northwind-analytics/northwind/dataset"
	"github.com/northwind-analytics/northwind/engine"
)

// ============================================================================
// TEST FIXTURE
// ============================================================================
// Small enough to verify every report by hand. Line revenues:
//
//   (1001,1) 10×4×1.00 = 40     (1001,2)  5×2×0.50 =  5
//   (1002,1) 10×10×0.90 = 90    (1003,3)  8×5×1.00 = 40
//   (1004,2)  5×6×1.00 = 30     (1004,3)  8×10×0.75 = 60
//   (1005,1) 10×20×1.00 = 200
//
// Yearly revenue per customer: ALFKI 1996=45, 1998=90; BONAP 1997=40,
// 1998=90; SAVEA 1998=200. Grand total 465.
// ============================================================================

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func fixtureTables() dataset.Tables {
	return dataset.Tables{
		Customers: []dataset.Customer{
			{ID: "ALFKI", CompanyName: "Alfreds Futterkiste", Country: "Germany"},
			{ID: "BONAP", CompanyName: "Bon app'", Country: "France"},
			{ID: "SAVEA", CompanyName: "Save-a-lot Markets", Country: "USA"},
		},
		Employees: []dataset.Employee{
			{ID: 1, FirstName: "Nancy", LastName: "Davolio"},
			{ID: 2, FirstName: "Andrew", LastName: "Fuller"},
		},
		Shippers: []dataset.Shipper{
			{ID: 1, CompanyName: "Speedy Express"},
			{ID: 2, CompanyName: "United Package"},
		},
		Suppliers: []dataset.Supplier{
			{ID: 1, CompanyName: "Exotic Liquids", Country: "UK"},
			{ID: 2, CompanyName: "Tokyo Traders", Country: "Japan"},
		},
		Categories: []dataset.Category{
			{ID: 1, Name: "Beverages"},
			{ID: 2, Name: "Condiments"},
		},
		Products: []dataset.Product{
			{ID: 1, Name: "Chai", SupplierID: 1, CategoryID: 1,
				UnitsInStock: 5, UnitsOnOrder: 2, ReorderLevel: 10},
			{ID: 2, Name: "Aniseed Syrup", SupplierID: 2, CategoryID: 2,
				UnitsInStock: 10, UnitsOnOrder: 0, ReorderLevel: 5},
			{ID: 3, Name: "Chang", SupplierID: 1, CategoryID: 1,
				UnitsInStock: 20, UnitsOnOrder: 0, ReorderLevel: 10},
		},
		Orders: []dataset.Order{
			{ID: 1001, CustomerID: "ALFKI", EmployeeID: 1, ShipVia: 1,
				ShipCountry: "Germany", OrderDate: day(1996, 7, 10), Freight: 10},
			{ID: 1002, CustomerID: "ALFKI", EmployeeID: 2, ShipVia: 2,
				ShipCountry: "Austria", OrderDate: day(1998, 3, 5), Freight: 20},
			{ID: 1003, CustomerID: "BONAP", EmployeeID: 1, ShipVia: 1,
				ShipCountry: "France", OrderDate: day(1997, 11, 2), Freight: 30},
			{ID: 1004, CustomerID: "BONAP", EmployeeID: 1, ShipVia: 2,
				ShipCountry: "France", OrderDate: day(1998, 6, 20), Freight: 15.5},
			{ID: 1005, CustomerID: "SAVEA", EmployeeID: 2, ShipVia: 1,
				ShipCountry: "USA", OrderDate: day(1998, 1, 15), Freight: 5},
		},
		OrderDetails: []dataset.OrderDetail{
			{OrderID: 1001, ProductID: 1, UnitPrice: 10, Quantity: 4, Discount: 0},
			{OrderID: 1001, ProductID: 2, UnitPrice: 5, Quantity: 2, Discount: 0.5},
			{OrderID: 1002, ProductID: 1, UnitPrice: 10, Quantity: 10, Discount: 0.1},
			{OrderID: 1003, ProductID: 3, UnitPrice: 8, Quantity: 5, Discount: 0},
			{OrderID: 1004, ProductID: 2, UnitPrice: 5, Quantity: 6, Discount: 0},
			{OrderID: 1004, ProductID: 3, UnitPrice: 8, Quantity: 10, Discount: 0.25},
			{OrderID: 1005, ProductID: 1, UnitPrice: 10, Quantity: 20, Discount: 0},
		},
	}
}

func fixtureSnapshot(t *testing.T) *dataset.Snapshot {
	t.Helper()
	snap, err := dataset.New(fixtureTables())
	require.NoError(t, err)
	return snap
}

func mustSnapshot(t *testing.T, tables dataset.Tables) *dataset.Snapshot {
	t.Helper()
	snap, err := dataset.New(tables)
	require.NoError(t, err)
	return snap
}

func newDetail(order, product int, price float64, qty int, discount float64) dataset.OrderDetail {
	return dataset.OrderDetail{
		OrderID: order, ProductID: product,
		UnitPrice: price, Quantity: qty, Discount: discount,
	}
}

func emptySnapshot(t *testing.T) *dataset.Snapshot {
	t.Helper()
	snap, err := dataset.New(dataset.Tables{})
	require.NoError(t, err)
	return snap
}

// raw renders every cell through Value.Raw for compact table comparisons.
func raw(t *engine.Table) [][]string {
	out := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = v.Raw(t.Columns[j])
		}
		out[i] = cells
	}
	return out
}
