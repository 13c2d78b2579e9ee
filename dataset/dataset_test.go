package dataset

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func validTables() Tables {
	return Tables{
		Customers:  []Customer{{ID: "ALFKI", CompanyName: "Alfreds Futterkiste", Country: "Germany"}},
		Employees:  []Employee{{ID: 1, FirstName: "Nancy", LastName: "Davolio"}},
		Shippers:   []Shipper{{ID: 1, CompanyName: "Speedy Express"}},
		Suppliers:  []Supplier{{ID: 1, CompanyName: "Exotic Liquids", Country: "UK"}},
		Categories: []Category{{ID: 1, Name: "Beverages"}},
		Products: []Product{
			{ID: 1, Name: "Chai", SupplierID: 1, CategoryID: 1, UnitsInStock: 39, ReorderLevel: 10},
		},
		Orders: []Order{
			{ID: 1001, CustomerID: "ALFKI", EmployeeID: 1, ShipVia: 1,
				ShipCountry: "Germany", OrderDate: day(1997, 8, 25), Freight: 29.46},
		},
		OrderDetails: []OrderDetail{
			{OrderID: 1001, ProductID: 1, UnitPrice: 18, Quantity: 6, Discount: 0.25},
		},
	}
}

func TestNewAcceptsValidTables(t *testing.T) {
	snap, err := New(validTables())
	require.NoError(t, err)
	for _, table := range AllTables() {
		assert.True(t, snap.Has(table), table)
	}
}

func TestNewRejectsBadData(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Tables)
	}{
		{"dangling customer", func(t *Tables) { t.Orders[0].CustomerID = "NOONE" }},
		{"dangling employee", func(t *Tables) { t.Orders[0].EmployeeID = 99 }},
		{"dangling shipper", func(t *Tables) { t.Orders[0].ShipVia = 99 }},
		{"dangling order", func(t *Tables) { t.OrderDetails[0].OrderID = 9999 }},
		{"dangling product", func(t *Tables) { t.OrderDetails[0].ProductID = 99 }},
		{"dangling category", func(t *Tables) { t.Products[0].CategoryID = 99 }},
		{"dangling supplier", func(t *Tables) { t.Products[0].SupplierID = 99 }},
		{"discount above one", func(t *Tables) { t.OrderDetails[0].Discount = 1.5 }},
		{"negative discount", func(t *Tables) { t.OrderDetails[0].Discount = -0.1 }},
		{"zero quantity", func(t *Tables) { t.OrderDetails[0].Quantity = 0 }},
		{"negative freight", func(t *Tables) { t.Orders[0].Freight = -1 }},
		{"duplicate customer", func(t *Tables) { t.Customers = append(t.Customers, t.Customers[0]) }},
		{"duplicate order", func(t *Tables) { t.Orders = append(t.Orders, t.Orders[0]) }},
		{"duplicate order detail", func(t *Tables) { t.OrderDetails = append(t.OrderDetails, t.OrderDetails[0]) }},
		{"duplicate product", func(t *Tables) { t.Products = append(t.Products, t.Products[0]) }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tables := validTables()
			c.mutate(&tables)
			_, err := New(tables)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrIntegrity), err)
		})
	}
}

func TestNewPartialSkipsChecksAgainstAbsentTables(t *testing.T) {
	tables := validTables()
	tables.Customers = nil
	// Orders reference ALFKI, but without a customers table there is
	// nothing to check against.
	snap, err := NewPartial(tables, TableOrders, TableEmployees, TableShippers)
	require.NoError(t, err)
	assert.False(t, snap.Has(TableCustomers))
	assert.True(t, snap.Has(TableOrders))
}

func TestNewPartialRejectsUnknownTableName(t *testing.T) {
	_, err := NewPartial(Tables{}, "invoices")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchemaMismatch))
}

func TestRevenueFormula(t *testing.T) {
	d := OrderDetail{UnitPrice: 18, Quantity: 6, Discount: 0.25}
	assert.InDelta(t, 81.0, d.Revenue(), 1e-9)

	full := OrderDetail{UnitPrice: 10, Quantity: 3, Discount: 0}
	assert.Equal(t, 30.0, full.Revenue())
}

func TestSnapshotCopiesInput(t *testing.T) {
	tables := validTables()
	snap, err := New(tables)
	require.NoError(t, err)

	tables.Customers[0].CompanyName = "mutated"
	assert.Equal(t, "Alfreds Futterkiste", snap.Customers()[0].CompanyName)
}

func TestWithOrdersRestrictsOrdersAndDetails(t *testing.T) {
	tables := validTables()
	tables.Orders = append(tables.Orders, Order{
		ID: 1002, CustomerID: "ALFKI", EmployeeID: 1, ShipVia: 1,
		ShipCountry: "Austria", OrderDate: day(1998, 2, 2), Freight: 12,
	})
	tables.OrderDetails = append(tables.OrderDetails, OrderDetail{
		OrderID: 1002, ProductID: 1, UnitPrice: 18, Quantity: 2,
	})
	snap, err := New(tables)
	require.NoError(t, err)

	only1998 := snap.WithOrders(func(o Order) bool { return o.Year() == 1998 })
	require.Len(t, only1998.Orders(), 1)
	assert.Equal(t, 1002, only1998.Orders()[0].ID)
	require.Len(t, only1998.OrderDetails(), 1)
	assert.Equal(t, 1002, only1998.OrderDetails()[0].OrderID)

	// The source snapshot is untouched.
	assert.Len(t, snap.Orders(), 2)
	assert.Len(t, snap.OrderDetails(), 2)
}

func TestOrderDateHelpers(t *testing.T) {
	o := Order{OrderDate: day(1997, 11, 2)}
	assert.Equal(t, 1997, o.Year())
	assert.Equal(t, 11, o.Month())
}
