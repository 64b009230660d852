package domain

import "time"

// Product is one catalog item as the seller defines it. OfferID is the
// seller's own article, distinct from the marketplace ProductID and SKU.
type Product struct {
	ID           int64     `json:"id" db:"id"`
	ProductID    int64     `json:"product_id" db:"product_id"`
	OfferID      string    `json:"offer_id" db:"offer_id"`
	SKU          int64     `json:"sku" db:"sku"`
	Name         string    `json:"name" db:"name"`
	Price        string    `json:"price" db:"price"`
	CurrencyCode string    `json:"currency_code" db:"currency_code"`
	Status       string    `json:"status" db:"status"`
	PrimaryImage string    `json:"primary_image" db:"primary_image"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// StockRecord is the marketplace-held stock of one offer at one warehouse.
type StockRecord struct {
	OfferID          string `json:"offer_id" db:"offer_id"`
	SKU              int64  `json:"sku" db:"sku"`
	Name             string `json:"name" db:"name"`
	WarehouseName    string `json:"warehouse_name" db:"warehouse_name"`
	ValidCount       int    `json:"valid_stock_count" db:"valid_stock_count"`
	WaitingDocsCount int    `json:"waitingdocs_stock_count" db:"waitingdocs_stock_count"`
	ExpiringCount    int    `json:"expiring_stock_count" db:"expiring_stock_count"`
	DefectCount      int    `json:"defect_stock_count" db:"defect_stock_count"`
}

// TransitRecord is one offer's in-transit quantity toward a warehouse.
type TransitRecord struct {
	OfferID        string `json:"offer_id" db:"offer_id"`
	SKU            string `json:"sku" db:"sku"`
	Name           string `json:"name" db:"name"`
	WarehouseName  string `json:"warehouse_name" db:"warehouse_name"`
	ReservedAmount int    `json:"reserved_amount" db:"reserved_amount"`
	PromisedAmount int    `json:"promised_amount" db:"promised_amount"`
}

// SaleRecord is one delivered posting enriched with its financial
// destination cluster. Records without a cluster are never created.
type SaleRecord struct {
	OfferID     string    `json:"offer_id"`
	SKU         int64     `json:"sku"`
	ClusterTo   string    `json:"cluster_to"`
	Quantity    int       `json:"quantity"`
	ProcessedAt time.Time `json:"processed_at"`
}

// SaleAggregate is the per (offer, sku, cluster) sale count derived from
// SaleRecords. The sales table holds exactly one aggregation run.
type SaleAggregate struct {
	OfferID    string `json:"offer_id" db:"offer_id"`
	SKU        int64  `json:"sku" db:"sku"`
	ClusterTo  string `json:"cluster_to" db:"cluster_to"`
	SalesCount int    `json:"sales_count" db:"sales_count"`
}

// UpdateInfo records the last successful full update.
type UpdateInfo struct {
	LastUpdate    time.Time `json:"last_update" db:"last_update"`
	TotalProducts int       `json:"total_products" db:"total_products"`
}

// DemandCell is one reconciled offer×warehouse-label cell.
type DemandCell struct {
	Stock   int `json:"stock"`
	Sales   int `json:"sales"`
	Transit int `json:"transit"`
	Order   int `json:"order"`
}

// DemandRow is the reconciled view of one offer across all warehouse labels.
type DemandRow struct {
	OfferID    string                `json:"offer_id"`
	Name       string                `json:"name"`
	Image      string                `json:"image"`
	Warehouses map[string]DemandCell `json:"warehouses"`
}

// DemandTable is the full reconciled view. Warehouses is the sorted
// label universe; every row carries a cell for every label.
type DemandTable struct {
	Warehouses []string    `json:"warehouses"`
	Rows       []DemandRow `json:"rows"`
}
