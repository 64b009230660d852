package demand

import (
	"testing"

	"github.com/billingfox/ozonator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileFullOuterJoin(t *testing.T) {
	stocks := []domain.StockRecord{
		{OfferID: "A", Name: "Чайник", WarehouseName: "Хоругвино", ValidCount: 7},
	}
	sales := []domain.SaleAggregate{
		{OfferID: "A", SKU: 1, ClusterTo: "Казань", SalesCount: 4},
		{OfferID: "B", SKU: 2, ClusterTo: "Казань", SalesCount: 2},
	}
	transit := []domain.TransitRecord{
		{OfferID: "C", WarehouseName: "Тверь", ReservedAmount: 1, PromisedAmount: 2},
	}

	table := NewReconciler(nil).Reconcile(stocks, sales, transit)

	// label universe is the sorted union across all three sources
	assert.Equal(t, []string{"Казань", "Тверь", "Хоругвино"}, table.Warehouses)

	require.Len(t, table.Rows, 3)
	assert.Equal(t, "A", table.Rows[0].OfferID)
	assert.Equal(t, "B", table.Rows[1].OfferID)
	assert.Equal(t, "C", table.Rows[2].OfferID)

	// every row carries a cell for every label, zero-filled
	for _, row := range table.Rows {
		assert.Len(t, row.Warehouses, 3)
	}

	a := table.Rows[0].Warehouses
	assert.Equal(t, domain.DemandCell{Stock: 7, Order: 0}, a["Хоругвино"])
	assert.Equal(t, domain.DemandCell{Sales: 4, Order: 8}, a["Казань"])
	assert.Equal(t, domain.DemandCell{}, a["Тверь"])

	c := table.Rows[2].Warehouses
	assert.Equal(t, domain.DemandCell{Transit: 3, Order: 0}, c["Тверь"])
}

func TestReconcileSumsDuplicateKeys(t *testing.T) {
	stocks := []domain.StockRecord{
		{OfferID: "A", WarehouseName: "Тверь", ValidCount: 3},
		{OfferID: "A", WarehouseName: "Тверь", ValidCount: 4},
	}
	sales := []domain.SaleAggregate{
		{OfferID: "A", ClusterTo: "Тверь", SalesCount: 5},
		{OfferID: "A", ClusterTo: "Тверь", SalesCount: 1},
	}

	table := NewReconciler(nil).Reconcile(stocks, sales, nil)

	require.Len(t, table.Rows, 1)
	cell := table.Rows[0].Warehouses["Тверь"]
	assert.Equal(t, 7, cell.Stock)
	assert.Equal(t, 6, cell.Sales)
	assert.Equal(t, 5, cell.Order) // 2*6 - 7
}

func TestReconcileCustomLabelMapper(t *testing.T) {
	mapper := func(clusterTo string) string {
		if clusterTo == "Казань (кластер)" {
			return "Казань"
		}
		return clusterTo
	}
	stocks := []domain.StockRecord{
		{OfferID: "A", WarehouseName: "Казань", ValidCount: 1},
	}
	sales := []domain.SaleAggregate{
		{OfferID: "A", ClusterTo: "Казань (кластер)", SalesCount: 3},
	}

	table := NewReconciler(mapper).Reconcile(stocks, sales, nil)

	assert.Equal(t, []string{"Казань"}, table.Warehouses)
	cell := table.Rows[0].Warehouses["Казань"]
	assert.Equal(t, 1, cell.Stock)
	assert.Equal(t, 3, cell.Sales)
}

func TestReconcileEmptyInputs(t *testing.T) {
	table := NewReconciler(nil).Reconcile(nil, nil, nil)

	assert.Empty(t, table.Warehouses)
	assert.Empty(t, table.Rows)
}
