package seller

import (
	"context"
	"fmt"

	"github.com/billingfox/ozonator/internal/domain"
	"github.com/rs/zerolog/log"
)

type warehouseStocksResponse struct {
	Items []struct {
		OfferID          string `json:"offer_id"`
		SKU              int64  `json:"sku"`
		Name             string `json:"name"`
		WarehouseName    string `json:"warehouse_name"`
		ValidCount       int    `json:"valid_stock_count"`
		WaitingDocsCount int    `json:"waitingdocs_stock_count"`
		ExpiringCount    int    `json:"expiring_stock_count"`
		DefectCount      int    `json:"defect_stock_count"`
	} `json:"items"`
}

type stockOnWarehousesResponse struct {
	Result *struct {
		Rows []struct {
			ItemCode       string `json:"item_code"`
			ItemName       string `json:"item_name"`
			SKU            int64  `json:"sku"`
			WarehouseName  string `json:"warehouse_name"`
			ReservedAmount int    `json:"reserved_amount"`
			PromisedAmount int    `json:"promised_amount"`
		} `json:"rows"`
	} `json:"result"`
}

// GetWarehouseStocks returns the per-warehouse stock counts for every
// offer in marketplace fulfillment.
func (c *Client) GetWarehouseStocks(ctx context.Context) ([]domain.StockRecord, error) {
	payload := map[string]interface{}{
		"filter": map[string]interface{}{
			"stock_types": []string{"STOCK_TYPE_VALID"},
		},
		"limit":  1000,
		"offset": 0,
	}

	var resp warehouseStocksResponse
	if err := c.post(ctx, "/v1/analytics/manage/stocks", payload, &resp); err != nil {
		return nil, fmt.Errorf("could not get warehouse stocks: %w", err)
	}

	records := make([]domain.StockRecord, 0, len(resp.Items))
	for _, item := range resp.Items {
		records = append(records, domain.StockRecord{
			OfferID:          item.OfferID,
			SKU:              item.SKU,
			Name:             item.Name,
			WarehouseName:    item.WarehouseName,
			ValidCount:       item.ValidCount,
			WaitingDocsCount: item.WaitingDocsCount,
			ExpiringCount:    item.ExpiringCount,
			DefectCount:      item.DefectCount,
		})
	}
	return records, nil
}

// GetStockOnWarehouses returns in-transit quantities per offer per
// warehouse. Rows without an item code or warehouse, or with nothing
// reserved and nothing promised, carry no transit information and are
// dropped. An entirely empty result is domain.ErrNoDataAvailable.
func (c *Client) GetStockOnWarehouses(ctx context.Context) ([]domain.TransitRecord, error) {
	payload := map[string]interface{}{
		"limit":          1000,
		"offset":         0,
		"warehouse_type": "ALL",
	}

	var resp stockOnWarehousesResponse
	if err := c.post(ctx, "/v2/analytics/stock_on_warehouses", payload, &resp); err != nil {
		return nil, fmt.Errorf("could not get stock on warehouses: %w", err)
	}
	if resp.Result == nil {
		return nil, fmt.Errorf("%w: stock_on_warehouses response has no rows", domain.ErrMalformedResponse)
	}

	records := make([]domain.TransitRecord, 0, len(resp.Result.Rows))
	for _, row := range resp.Result.Rows {
		if row.ItemCode == "" || row.WarehouseName == "" {
			continue
		}
		if row.ReservedAmount <= 0 && row.PromisedAmount <= 0 {
			continue
		}
		records = append(records, domain.TransitRecord{
			OfferID:        row.ItemCode,
			SKU:            fmt.Sprintf("%d", row.SKU),
			Name:           row.ItemName,
			WarehouseName:  row.WarehouseName,
			ReservedAmount: row.ReservedAmount,
			PromisedAmount: row.PromisedAmount,
		})
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no products in transit: %w", domain.ErrNoDataAvailable)
	}
	log.Info().Int("rows", len(records)).Msg("transit rows fetched")
	return records, nil
}
