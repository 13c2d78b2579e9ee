package reports

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northwind-analytics/northwind/dataset"
)

func TestRunUnknownReport(t *testing.T) {
	_, err := New().Run("no-such-report", fixtureSnapshot(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownReport), err)
}

func TestRunRejectsMissingTable(t *testing.T) {
	tables := fixtureTables()
	tables.Orders = nil
	tables.OrderDetails = nil
	snap, err := dataset.NewPartial(tables, dataset.TableCustomers)
	require.NoError(t, err)

	_, err = New().Run("top-customers-by-orders", snap)
	require.Error(t, err)
	assert.True(t, errors.Is(err, dataset.ErrSchemaMismatch), err)
}

func TestRunIsIdempotent(t *testing.T) {
	snap := fixtureSnapshot(t)
	r := New()
	for _, name := range r.Names() {
		name := name
		t.Run(name, func(t *testing.T) {
			first, err := r.Run(name, snap)
			require.NoError(t, err)
			second, err := r.Run(name, snap)
			require.NoError(t, err)
			if diff := cmp.Diff(first, second); diff != "" {
				t.Fatalf("second run differs (-first +second):\n%s", diff)
			}
		})
	}
}

func TestRunAllCoversTheCatalog(t *testing.T) {
	snap := fixtureSnapshot(t)
	r := New(WithConcurrency(4))
	results, err := r.RunAll(context.Background(), snap)
	require.NoError(t, err)
	require.Len(t, results, 20)
	for _, name := range r.Names() {
		require.Contains(t, results, name)
	}
}

func TestRunAllOnEmptyDataset(t *testing.T) {
	// An empty-but-complete snapshot is not an error: every report
	// produces an empty table, except average-order-size, whose single
	// row carries null averages.
	results, err := New().RunAll(context.Background(), emptySnapshot(t))
	require.NoError(t, err)
	require.Len(t, results, 20)
	for name, table := range results {
		if name == "average-order-size" {
			require.Len(t, table.Rows, 1, name)
			assert.Equal(t, [][]string{{"0", "", ""}}, raw(table))
			continue
		}
		assert.Empty(t, table.Rows, name)
	}
}

func TestRunAllMatchesRun(t *testing.T) {
	snap := fixtureSnapshot(t)
	r := New()
	results, err := r.RunAll(context.Background(), snap)
	require.NoError(t, err)
	for _, name := range r.Names() {
		single, err := r.Run(name, snap)
		require.NoError(t, err)
		if diff := cmp.Diff(single, results[name]); diff != "" {
			t.Fatalf("%s: RunAll differs from Run (-single +all):\n%s", name, diff)
		}
	}
}

func TestWithReportsNarrowsTheRunner(t *testing.T) {
	r := New(WithReports("customer-churn", "restock-list"))
	assert.Equal(t, []string{"customer-churn", "restock-list"}, r.Names())

	_, err := r.Run("top-customers-by-orders", fixtureSnapshot(t))
	assert.True(t, errors.Is(err, ErrUnknownReport), err)
}

func TestNamesFollowCatalogOrder(t *testing.T) {
	names := New().Names()
	require.Len(t, names, 20)
	assert.Equal(t, "top-customers-by-orders", names[0])
	assert.Equal(t, "category-revenue", names[19])
}

func TestDiffClassifiesRows(t *testing.T) {
	snap := fixtureSnapshot(t)
	before := snap.WithOrders(func(o dataset.Order) bool { return o.Year() < 1998 })

	table, err := New().Diff("top-customers-by-orders", before, snap)
	require.NoError(t, err)

	// Before 1998: ALFKI 1 order, BONAP 1 order. Full dataset: ALFKI 2,
	// BONAP 2, SAVEA 1. So two changed rows and one added, keyed and
	// sorted by customer id.
	assert.Equal(t, []string{
		"customer_id", "status",
		"company_name_before", "company_name_after",
		"orders_before", "orders_after", "orders_delta",
	}, table.Headers())
	assert.Equal(t, [][]string{
		{"ALFKI", "changed", "Alfreds Futterkiste", "Alfreds Futterkiste", "1", "2", "1"},
		{"BONAP", "changed", "Bon app'", "Bon app'", "1", "2", "1"},
		{"SAVEA", "added", "", "Save-a-lot Markets", "", "1", ""},
	}, raw(table))
}

func TestDiffIdenticalRunsIsEmpty(t *testing.T) {
	snap := fixtureSnapshot(t)
	table, err := New().Diff("supplier-revenue", snap, snap)
	require.NoError(t, err)
	assert.Empty(t, table.Rows)
}

func TestDiffRemovedRow(t *testing.T) {
	snap := fixtureSnapshot(t)
	after := snap.WithOrders(func(o dataset.Order) bool { return o.CustomerID != "SAVEA" })

	table, err := New().Diff("top-customers-by-orders", snap, after)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"SAVEA", "removed", "Save-a-lot Markets", "", "1", "", ""},
	}, raw(table))
}

func TestHeadline(t *testing.T) {
	snap := fixtureSnapshot(t)
	r := New()

	line, err := r.Headline("top-customers-by-orders", snap)
	require.NoError(t, err)
	assert.Equal(t, "Top customer by order count: Alfreds Futterkiste (2 orders).", line)

	line, err = r.Headline("customer-churn", snap)
	require.NoError(t, err)
	assert.Equal(t, "2 customers have order activity spanning more than one year.", line)
}

func TestHeadlineOnEmptyData(t *testing.T) {
	line, err := New().Headline("restock-list", emptySnapshot(t))
	require.NoError(t, err)
	assert.Equal(t, "Products below reorder level: no data.", line)
}

func TestRunNeverMutatesSnapshot(t *testing.T) {
	snap := fixtureSnapshot(t)
	ordersBefore := len(snap.Orders())
	detailsBefore := len(snap.OrderDetails())

	_, err := New().RunAll(context.Background(), snap)
	require.NoError(t, err)

	assert.Equal(t, ordersBefore, len(snap.Orders()))
	assert.Equal(t, detailsBefore, len(snap.OrderDetails()))
}
