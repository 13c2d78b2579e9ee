package helpers

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/northwind-analytics/northwind/dataset"
)

// ============================================================================
// CSV LOADER — Northwind CSV directory → validated Snapshot
// ============================================================================
// The engine itself never reads files; this helper is the external loader
// collaborator. It binds columns strictly by header name: a missing column
// is ErrSchemaMismatch, a cell that fails to parse as its declared type is
// ErrTypeMismatch, both naming file and line. Header matching is
// case-insensitive.
// ============================================================================

// Conventional file names inside a Northwind data directory.
var tableFiles = map[string]string{
	dataset.TableCustomers:    "customers.csv",
	dataset.TableOrders:       "orders.csv",
	dataset.TableOrderDetails: "order_details.csv",
	dataset.TableProducts:     "products.csv",
	dataset.TableCategories:   "categories.csv",
	dataset.TableSuppliers:    "suppliers.csv",
	dataset.TableEmployees:    "employees.csv",
	dataset.TableShippers:     "shippers.csv",
}

// LoadDir reads the Northwind CSV files under dir into a validated
// snapshot. A file that is absent leaves its table absent from the
// snapshot (reports needing it fail with ErrSchemaMismatch at run time);
// a file that is present must parse completely.
func LoadDir(dir string) (*dataset.Snapshot, error) {
	var t dataset.Tables
	var present []string

	for _, table := range dataset.AllTables() {
		path := filepath.Join(dir, tableFiles[table])
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", path)
		}
		if err := parseTable(table, tableFiles[table], data, &t); err != nil {
			return nil, err
		}
		present = append(present, table)
	}
	return dataset.NewPartial(t, present...)
}

// Load parses one table's CSV bytes into t. For callers that ship data
// from somewhere other than a directory of files.
func Load(table string, data []byte, t *dataset.Tables) error {
	file, ok := tableFiles[table]
	if !ok {
		return errors.Wrapf(dataset.ErrSchemaMismatch, "unknown table %q", table)
	}
	return parseTable(table, file, data, t)
}

func parseTable(table, file string, data []byte, t *dataset.Tables) error {
	switch table {
	case dataset.TableCustomers:
		return parseRows(file, data, []string{"customer_id", "company_name", "country"},
			func(r *row) {
				t.Customers = append(t.Customers, dataset.Customer{
					ID:          r.str("customer_id"),
					CompanyName: r.str("company_name"),
					Country:     r.str("country"),
				})
			})
	case dataset.TableOrders:
		return parseRows(file, data,
			[]string{"order_id", "customer_id", "employee_id", "order_date", "ship_via", "freight", "ship_country"},
			func(r *row) {
				t.Orders = append(t.Orders, dataset.Order{
					ID:          r.int("order_id"),
					CustomerID:  r.str("customer_id"),
					EmployeeID:  r.int("employee_id"),
					OrderDate:   r.date("order_date"),
					ShipVia:     r.int("ship_via"),
					Freight:     r.float("freight"),
					ShipCountry: r.str("ship_country"),
				})
			})
	case dataset.TableOrderDetails:
		return parseRows(file, data, []string{"order_id", "product_id", "unit_price", "quantity", "discount"},
			func(r *row) {
				t.OrderDetails = append(t.OrderDetails, dataset.OrderDetail{
					OrderID:   r.int("order_id"),
					ProductID: r.int("product_id"),
					UnitPrice: r.float("unit_price"),
					Quantity:  r.int("quantity"),
					Discount:  r.float("discount"),
				})
			})
	case dataset.TableProducts:
		return parseRows(file, data,
			[]string{"product_id", "product_name", "supplier_id", "category_id", "units_in_stock", "units_on_order", "reorder_level"},
			func(r *row) {
				t.Products = append(t.Products, dataset.Product{
					ID:           r.int("product_id"),
					Name:         r.str("product_name"),
					SupplierID:   r.int("supplier_id"),
					CategoryID:   r.int("category_id"),
					UnitsInStock: r.int("units_in_stock"),
					UnitsOnOrder: r.int("units_on_order"),
					ReorderLevel: r.int("reorder_level"),
				})
			})
	case dataset.TableCategories:
		return parseRows(file, data, []string{"category_id", "category_name"},
			func(r *row) {
				t.Categories = append(t.Categories, dataset.Category{
					ID:   r.int("category_id"),
					Name: r.str("category_name"),
				})
			})
	case dataset.TableSuppliers:
		return parseRows(file, data, []string{"supplier_id", "company_name", "country"},
			func(r *row) {
				t.Suppliers = append(t.Suppliers, dataset.Supplier{
					ID:          r.int("supplier_id"),
					CompanyName: r.str("company_name"),
					Country:     r.str("country"),
				})
			})
	case dataset.TableEmployees:
		return parseRows(file, data, []string{"employee_id", "first_name", "last_name"},
			func(r *row) {
				t.Employees = append(t.Employees, dataset.Employee{
					ID:        r.int("employee_id"),
					FirstName: r.str("first_name"),
					LastName:  r.str("last_name"),
				})
			})
	case dataset.TableShippers:
		return parseRows(file, data, []string{"shipper_id", "company_name"},
			func(r *row) {
				t.Shippers = append(t.Shippers, dataset.Shipper{
					ID:          r.int("shipper_id"),
					CompanyName: r.str("company_name"),
				})
			})
	}
	return errors.Wrapf(dataset.ErrSchemaMismatch, "unknown table %q", table)
}

// ============================================================================
// ROW BINDING
// ============================================================================

// row is one CSV record with typed, error-sticky field accessors: the
// first parse failure wins and later accessors on the same row are no-ops.
type row struct {
	file   string
	line   int
	cols   map[string]int
	fields []string
	err    error
}

func (r *row) field(col string) string {
	i, ok := r.cols[col]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

func (r *row) str(col string) string { return r.field(col) }

func (r *row) int(col string) int {
	if r.err != nil {
		return 0
	}
	v, err := strconv.Atoi(r.field(col))
	if err != nil {
		r.err = errors.Wrapf(dataset.ErrTypeMismatch,
			"%s line %d: column %q: %q is not an integer", r.file, r.line, col, r.field(col))
	}
	return v
}

func (r *row) float(col string) float64 {
	if r.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(r.field(col), 64)
	if err != nil {
		r.err = errors.Wrapf(dataset.ErrTypeMismatch,
			"%s line %d: column %q: %q is not a number", r.file, r.line, col, r.field(col))
	}
	return v
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
}

func (r *row) date(col string) time.Time {
	if r.err != nil {
		return time.Time{}
	}
	raw := r.field(col)
	for _, layout := range dateLayouts {
		if v, err := time.Parse(layout, raw); err == nil {
			return v
		}
	}
	r.err = errors.Wrapf(dataset.ErrTypeMismatch,
		"%s line %d: column %q: %q is not a date", r.file, r.line, col, raw)
	return time.Time{}
}

func parseRows(file string, data []byte, required []string, bind func(*row)) error {
	cr := csv.NewReader(strings.NewReader(string(data)))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil // empty file, empty table
	}
	if err != nil {
		return errors.Wrapf(err, "%s: reading header", file)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range required {
		if _, ok := cols[col]; !ok {
			return errors.Wrapf(dataset.ErrSchemaMismatch, "%s: missing column %q", file, col)
		}
	}

	for line := 2; ; line++ {
		fields, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, "%s line %d", file, line)
		}
		r := &row{file: file, line: line, cols: cols, fields: fields}
		bind(r)
		if r.err != nil {
			return r.err
		}
	}
}
