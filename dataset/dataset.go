package dataset

import (
	"time"

	"github.com/cockroachdb/errors"
)

// ============================================================================
// DATASET — Typed Northwind tables and the immutable Snapshot
// ============================================================================
// A Snapshot is the engine's only input: eight typed tables, validated once
// at construction and never mutated afterwards. The loader that fills a
// Snapshot (CSV, Postgres dump) lives outside this package; nothing here
// does I/O.
// ============================================================================

// Error kinds surfaced by snapshot construction and by loaders that feed it.
var (
	// ErrIntegrity marks a snapshot that violates a data invariant:
	// dangling foreign key, duplicate primary key, discount outside [0,1],
	// non-positive quantity, negative freight.
	ErrIntegrity = errors.New("dataset: integrity violation")

	// ErrSchemaMismatch marks a table or column that a report or loader
	// requires but the input does not carry.
	ErrSchemaMismatch = errors.New("dataset: schema mismatch")

	// ErrTypeMismatch marks a value that does not parse as its declared
	// column type during ingest.
	ErrTypeMismatch = errors.New("dataset: type mismatch")
)

// Table names, as reports declare their requirements and loaders report
// what they found.
const (
	TableCustomers    = "customers"
	TableOrders       = "orders"
	TableOrderDetails = "order_details"
	TableProducts     = "products"
	TableCategories   = "categories"
	TableSuppliers    = "suppliers"
	TableEmployees    = "employees"
	TableShippers     = "shippers"
)

// AllTables lists every table name in schema order.
func AllTables() []string {
	return []string{
		TableCustomers, TableOrders, TableOrderDetails, TableProducts,
		TableCategories, TableSuppliers, TableEmployees, TableShippers,
	}
}

// ============================================================================
// ENTITIES
// ============================================================================

// Customer is one buying company. IDs are the five-letter Northwind codes
// ("ALFKI").
type Customer struct {
	ID          string
	CompanyName string
	Country     string
}

// Order is one customer order header.
type Order struct {
	ID          int
	CustomerID  string
	EmployeeID  int
	ShipVia     int // shipper id
	ShipCountry string
	OrderDate   time.Time
	Freight     float64
}

// Year returns the order-date year.
func (o Order) Year() int { return o.OrderDate.Year() }

// Month returns the order-date month, 1-12.
func (o Order) Month() int { return int(o.OrderDate.Month()) }

// OrderDetail is one line of an order. Composite key (OrderID, ProductID).
type OrderDetail struct {
	OrderID   int
	ProductID int
	UnitPrice float64
	Quantity  int
	Discount  float64 // fraction in [0,1]
}

// Revenue is the line's revenue contribution:
// unit price × quantity × (1 − discount). Every revenue figure in every
// report comes through here; the formula is never derived anywhere else.
func (d OrderDetail) Revenue() float64 {
	return d.UnitPrice * float64(d.Quantity) * (1 - d.Discount)
}

// Product is one catalog item.
type Product struct {
	ID           int
	Name         string
	SupplierID   int
	CategoryID   int
	UnitsInStock int
	UnitsOnOrder int
	ReorderLevel int
}

// Category groups products.
type Category struct {
	ID   int
	Name string
}

// Supplier is one supplying company.
type Supplier struct {
	ID          int
	CompanyName string
	Country     string
}

// Employee is one salesperson.
type Employee struct {
	ID        int
	FirstName string
	LastName  string
}

// FullName returns "First Last".
func (e Employee) FullName() string { return e.FirstName + " " + e.LastName }

// Shipper is one freight carrier.
type Shipper struct {
	ID          int
	CompanyName string
}

// ============================================================================
// SNAPSHOT
// ============================================================================

// Tables carries the raw slices a snapshot is built from.
type Tables struct {
	Customers    []Customer
	Orders       []Order
	OrderDetails []OrderDetail
	Products     []Product
	Categories   []Category
	Suppliers    []Supplier
	Employees    []Employee
	Shippers     []Shipper
}

// Snapshot is an immutable, validated instance of the dataset. Construct
// one with New or NewPartial; read it through the accessor methods. A
// snapshot is safe for concurrent use — nothing in it changes after
// construction.
type Snapshot struct {
	tables  Tables
	present map[string]bool
}

// New builds a snapshot with all eight tables present (empty tables are
// fine) and validates the data invariants. The input slices are copied;
// later mutation of the caller's slices does not reach the snapshot.
func New(t Tables) (*Snapshot, error) {
	return NewPartial(t, AllTables()...)
}

// NewPartial builds a snapshot in which only the named tables are present.
// Reports that require an absent table fail with ErrSchemaMismatch instead
// of silently computing over nothing. Foreign keys are checked only against
// present tables.
func NewPartial(t Tables, tables ...string) (*Snapshot, error) {
	present := make(map[string]bool, len(tables))
	for _, name := range tables {
		switch name {
		case TableCustomers, TableOrders, TableOrderDetails, TableProducts,
			TableCategories, TableSuppliers, TableEmployees, TableShippers:
			present[name] = true
		default:
			return nil, errors.Wrapf(ErrSchemaMismatch, "unknown table %q", name)
		}
	}
	s := &Snapshot{tables: copyTables(t), present: present}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func copyTables(t Tables) Tables {
	return Tables{
		Customers:    append([]Customer(nil), t.Customers...),
		Orders:       append([]Order(nil), t.Orders...),
		OrderDetails: append([]OrderDetail(nil), t.OrderDetails...),
		Products:     append([]Product(nil), t.Products...),
		Categories:   append([]Category(nil), t.Categories...),
		Suppliers:    append([]Supplier(nil), t.Suppliers...),
		Employees:    append([]Employee(nil), t.Employees...),
		Shippers:     append([]Shipper(nil), t.Shippers...),
	}
}

// Has reports whether the named table was supplied to this snapshot.
func (s *Snapshot) Has(table string) bool { return s.present[table] }

// Accessors. Callers must not mutate the returned slices.

func (s *Snapshot) Customers() []Customer       { return s.tables.Customers }
func (s *Snapshot) Orders() []Order             { return s.tables.Orders }
func (s *Snapshot) OrderDetails() []OrderDetail { return s.tables.OrderDetails }
func (s *Snapshot) Products() []Product         { return s.tables.Products }
func (s *Snapshot) Categories() []Category      { return s.tables.Categories }
func (s *Snapshot) Suppliers() []Supplier       { return s.tables.Suppliers }
func (s *Snapshot) Employees() []Employee       { return s.tables.Employees }
func (s *Snapshot) Shippers() []Shipper         { return s.tables.Shippers }

// WithOrders returns a new snapshot restricted to the orders satisfying
// keep, with order details trimmed to the surviving orders. The dimension
// tables are carried over unchanged. Used to build period snapshots
// (e.g. 1997-only vs 1998-only) for report diffing.
func (s *Snapshot) WithOrders(keep func(Order) bool) *Snapshot {
	t := s.tables
	var orders []Order
	kept := make(map[int]bool)
	for _, o := range t.Orders {
		if keep(o) {
			orders = append(orders, o)
			kept[o.ID] = true
		}
	}
	var details []OrderDetail
	for _, d := range t.OrderDetails {
		if kept[d.OrderID] {
			details = append(details, d)
		}
	}
	t.Orders = orders
	t.OrderDetails = details
	// Validation cannot fail: restriction removes rows, never invariants.
	out := &Snapshot{tables: copyTables(t), present: s.present}
	return out
}

// ============================================================================
// VALIDATION
// ============================================================================

func (s *Snapshot) validate() error {
	t := s.tables

	customers := make(map[string]bool, len(t.Customers))
	for _, c := range t.Customers {
		if customers[c.ID] {
			return errors.Wrapf(ErrIntegrity, "duplicate customer id %q", c.ID)
		}
		customers[c.ID] = true
	}
	products := make(map[int]bool, len(t.Products))
	for _, p := range t.Products {
		if products[p.ID] {
			return errors.Wrapf(ErrIntegrity, "duplicate product id %d", p.ID)
		}
		products[p.ID] = true
	}
	categories, err := uniqueIDs("category", t.Categories, func(c Category) int { return c.ID })
	if err != nil {
		return err
	}
	suppliers, err := uniqueIDs("supplier", t.Suppliers, func(x Supplier) int { return x.ID })
	if err != nil {
		return err
	}
	employees, err := uniqueIDs("employee", t.Employees, func(x Employee) int { return x.ID })
	if err != nil {
		return err
	}
	shippers, err := uniqueIDs("shipper", t.Shippers, func(x Shipper) int { return x.ID })
	if err != nil {
		return err
	}

	orders := make(map[int]bool, len(t.Orders))
	for _, o := range t.Orders {
		if orders[o.ID] {
			return errors.Wrapf(ErrIntegrity, "duplicate order id %d", o.ID)
		}
		orders[o.ID] = true
		if o.Freight < 0 {
			return errors.Wrapf(ErrIntegrity, "order %d: negative freight %v", o.ID, o.Freight)
		}
		if s.present[TableCustomers] && !customers[o.CustomerID] {
			return errors.Wrapf(ErrIntegrity, "order %d: unknown customer %q", o.ID, o.CustomerID)
		}
		if s.present[TableEmployees] && !employees[o.EmployeeID] {
			return errors.Wrapf(ErrIntegrity, "order %d: unknown employee %d", o.ID, o.EmployeeID)
		}
		if s.present[TableShippers] && !shippers[o.ShipVia] {
			return errors.Wrapf(ErrIntegrity, "order %d: unknown shipper %d", o.ID, o.ShipVia)
		}
	}

	lines := make(map[[2]int]bool, len(t.OrderDetails))
	for _, d := range t.OrderDetails {
		key := [2]int{d.OrderID, d.ProductID}
		if lines[key] {
			return errors.Wrapf(ErrIntegrity,
				"duplicate order detail (order %d, product %d)", d.OrderID, d.ProductID)
		}
		lines[key] = true
		if d.Quantity <= 0 {
			return errors.Wrapf(ErrIntegrity,
				"order %d product %d: quantity %d", d.OrderID, d.ProductID, d.Quantity)
		}
		if d.Discount < 0 || d.Discount > 1 {
			return errors.Wrapf(ErrIntegrity,
				"order %d product %d: discount %v outside [0,1]", d.OrderID, d.ProductID, d.Discount)
		}
		if s.present[TableOrders] && !orders[d.OrderID] {
			return errors.Wrapf(ErrIntegrity, "order detail references unknown order %d", d.OrderID)
		}
		if s.present[TableProducts] && !products[d.ProductID] {
			return errors.Wrapf(ErrIntegrity, "order detail references unknown product %d", d.ProductID)
		}
	}

	for _, p := range t.Products {
		if s.present[TableCategories] && !categories[p.CategoryID] {
			return errors.Wrapf(ErrIntegrity, "product %d: unknown category %d", p.ID, p.CategoryID)
		}
		if s.present[TableSuppliers] && !suppliers[p.SupplierID] {
			return errors.Wrapf(ErrIntegrity, "product %d: unknown supplier %d", p.ID, p.SupplierID)
		}
	}
	return nil
}

func uniqueIDs[T any](entity string, rows []T, id func(T) int) (map[int]bool, error) {
	ids := make(map[int]bool, len(rows))
	for _, r := range rows {
		k := id(r)
		if ids[k] {
			return nil, errors.Wrapf(ErrIntegrity, "duplicate %s id %d", entity, k)
		}
		ids[k] = true
	}
	return ids, nil
}
