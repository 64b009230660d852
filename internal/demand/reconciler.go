package demand

import (
	"sort"

	"github.com/billingfox/ozonator/internal/domain"
)

// LabelMapper maps a sales cluster label into the warehouse-label space
// of the stock and transit datasets. The two vocabularies are not
// guaranteed to coincide, so the mapping is explicit and injectable.
type LabelMapper func(clusterTo string) string

// IdentityLabels treats cluster labels and warehouse names as the same
// label space, which is what the seller report data has supported so far.
func IdentityLabels(clusterTo string) string { return clusterTo }

// Reconciler joins the three datasets. Zero value is not usable; use
// NewReconciler.
type Reconciler struct {
	mapLabel LabelMapper
}

func NewReconciler(mapLabel LabelMapper) *Reconciler {
	if mapLabel == nil {
		mapLabel = IdentityLabels
	}
	return &Reconciler{mapLabel: mapLabel}
}

type rowAccum struct {
	name    string
	image   string
	stock   map[string]int
	sales   map[string]int
	transit map[string]int
}

// Reconcile builds the full outer join over offer×warehouse-label. The
// label universe is the sorted union of warehouse names from stocks and
// transit and mapped cluster labels from sales. An offer reachable from
// any single source appears in the table; absent sides are zero-filled.
// The result is a view, rebuilt per call, never persisted.
func (r *Reconciler) Reconcile(stocks []domain.StockRecord, sales []domain.SaleAggregate, transit []domain.TransitRecord) domain.DemandTable {
	labels := make(map[string]struct{})
	rows := make(map[string]*rowAccum)

	row := func(offerID string) *rowAccum {
		if acc, ok := rows[offerID]; ok {
			return acc
		}
		acc := &rowAccum{
			stock:   make(map[string]int),
			sales:   make(map[string]int),
			transit: make(map[string]int),
		}
		rows[offerID] = acc
		return acc
	}

	for _, s := range stocks {
		labels[s.WarehouseName] = struct{}{}
		acc := row(s.OfferID)
		acc.stock[s.WarehouseName] += s.ValidCount
		if acc.name == "" {
			acc.name = s.Name
		}
	}
	for _, s := range sales {
		label := r.mapLabel(s.ClusterTo)
		labels[label] = struct{}{}
		row(s.OfferID).sales[label] += s.SalesCount
	}
	for _, t := range transit {
		labels[t.WarehouseName] = struct{}{}
		row(t.OfferID).transit[t.WarehouseName] += t.ReservedAmount + t.PromisedAmount
	}

	labelList := make([]string, 0, len(labels))
	for label := range labels {
		labelList = append(labelList, label)
	}
	sort.Strings(labelList)

	offerList := make([]string, 0, len(rows))
	for offerID := range rows {
		offerList = append(offerList, offerID)
	}
	sort.Strings(offerList)

	table := domain.DemandTable{
		Warehouses: labelList,
		Rows:       make([]domain.DemandRow, 0, len(offerList)),
	}
	for _, offerID := range offerList {
		acc := rows[offerID]
		cells := make(map[string]domain.DemandCell, len(labelList))
		for _, label := range labelList {
			stock := acc.stock[label]
			salesCount := acc.sales[label]
			transitQty := acc.transit[label]
			cells[label] = domain.DemandCell{
				Stock:   stock,
				Sales:   salesCount,
				Transit: transitQty,
				Order:   OrderQuantity(stock, salesCount, transitQty),
			}
		}
		table.Rows = append(table.Rows, domain.DemandRow{
			OfferID:    offerID,
			Name:       acc.name,
			Image:      acc.image,
			Warehouses: cells,
		})
	}
	return table
}
