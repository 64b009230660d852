package sales

import (
	"sort"

	"github.com/billingfox/ozonator/internal/domain"
)

type aggregateKey struct {
	offerID   string
	sku       int64
	clusterTo string
}

// Aggregate groups sale records by (offer, sku, cluster) and sums their
// quantities. Grouping is commutative: input order never changes the
// sums. Output is sorted for deterministic persistence and display.
func Aggregate(records []domain.SaleRecord) []domain.SaleAggregate {
	sums := make(map[aggregateKey]int, len(records))
	for _, r := range records {
		key := aggregateKey{offerID: r.OfferID, sku: r.SKU, clusterTo: r.ClusterTo}
		sums[key] += r.Quantity
	}

	aggregates := make([]domain.SaleAggregate, 0, len(sums))
	for key, count := range sums {
		aggregates = append(aggregates, domain.SaleAggregate{
			OfferID:    key.offerID,
			SKU:        key.sku,
			ClusterTo:  key.clusterTo,
			SalesCount: count,
		})
	}

	sort.Slice(aggregates, func(i, j int) bool {
		a, b := aggregates[i], aggregates[j]
		if a.OfferID != b.OfferID {
			return a.OfferID < b.OfferID
		}
		if a.SKU != b.SKU {
			return a.SKU < b.SKU
		}
		return a.ClusterTo < b.ClusterTo
	})
	return aggregates
}
