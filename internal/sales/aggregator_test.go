package sales

import (
	"testing"

	"github.com/billingfox/ozonator/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestAggregateGroupsAndSums(t *testing.T) {
	records := []domain.SaleRecord{
		{OfferID: "A", SKU: 1, ClusterTo: "Москва", Quantity: 2},
		{OfferID: "B", SKU: 2, ClusterTo: "Казань", Quantity: 1},
		{OfferID: "A", SKU: 1, ClusterTo: "Москва", Quantity: 3},
		{OfferID: "A", SKU: 1, ClusterTo: "Казань", Quantity: 1},
	}

	aggregates := Aggregate(records)

	assert.Equal(t, []domain.SaleAggregate{
		{OfferID: "A", SKU: 1, ClusterTo: "Казань", SalesCount: 1},
		{OfferID: "A", SKU: 1, ClusterTo: "Москва", SalesCount: 5},
		{OfferID: "B", SKU: 2, ClusterTo: "Казань", SalesCount: 1},
	}, aggregates)
}

func TestAggregateOrderIndependent(t *testing.T) {
	forward := []domain.SaleRecord{
		{OfferID: "A", SKU: 1, ClusterTo: "Москва", Quantity: 2},
		{OfferID: "A", SKU: 1, ClusterTo: "Москва", Quantity: 3},
		{OfferID: "B", SKU: 2, ClusterTo: "Тверь", Quantity: 4},
	}
	reversed := []domain.SaleRecord{forward[2], forward[1], forward[0]}

	assert.Equal(t, Aggregate(forward), Aggregate(reversed))
}

func TestAggregateDistinctSKUsStaySeparate(t *testing.T) {
	records := []domain.SaleRecord{
		{OfferID: "A", SKU: 1, ClusterTo: "Москва", Quantity: 1},
		{OfferID: "A", SKU: 2, ClusterTo: "Москва", Quantity: 1},
	}

	aggregates := Aggregate(records)

	assert.Len(t, aggregates, 2)
}

func TestAggregateEmpty(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
}
