package seller

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/billingfox/ozonator/internal/domain"
)

const productPageSize = 1000

// imageField tolerates both encodings the API uses for primary_image:
// a bare string and an array of URLs.
type imageField string

func (f *imageField) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*f = imageField(single)
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	if len(many) > 0 {
		*f = imageField(many[0])
	}
	return nil
}

type productListResponse struct {
	Result *struct {
		Items []struct {
			ProductID int64  `json:"product_id"`
			OfferID   string `json:"offer_id"`
		} `json:"items"`
		Total  int    `json:"total"`
		LastID string `json:"last_id"`
	} `json:"result"`
}

type productInfoResponse struct {
	Items []struct {
		ID           int64      `json:"id"`
		OfferID      string     `json:"offer_id"`
		Name         string     `json:"name"`
		Price        string     `json:"price"`
		CurrencyCode string     `json:"currency_code"`
		PrimaryImage imageField `json:"primary_image"`
		Statuses     struct {
			Status     string `json:"status"`
			StatusName string `json:"status_name"`
		} `json:"statuses"`
		Sources []struct {
			SKU int64 `json:"sku"`
		} `json:"sources"`
	} `json:"items"`
}

// ListOfferIDs pages through the catalog and returns every offer id.
func (c *Client) ListOfferIDs(ctx context.Context) ([]string, error) {
	var offers []string
	lastID := ""
	for {
		payload := map[string]interface{}{
			"filter":  map[string]interface{}{"visibility": "ALL"},
			"last_id": lastID,
			"limit":   productPageSize,
		}

		var resp productListResponse
		if err := c.post(ctx, "/v3/product/list", payload, &resp); err != nil {
			return nil, fmt.Errorf("could not list products: %w", err)
		}
		if resp.Result == nil {
			return nil, fmt.Errorf("%w: product list response has no result", domain.ErrMalformedResponse)
		}

		for _, item := range resp.Result.Items {
			offers = append(offers, item.OfferID)
		}
		if len(resp.Result.Items) < productPageSize || resp.Result.LastID == "" {
			break
		}
		lastID = resp.Result.LastID
	}
	return offers, nil
}

// GetProductInfo resolves offer ids to full catalog records.
func (c *Client) GetProductInfo(ctx context.Context, offerIDs []string) ([]domain.Product, error) {
	if len(offerIDs) == 0 {
		return nil, fmt.Errorf("at least one offer id must be provided")
	}

	payload := map[string]interface{}{"offer_id": offerIDs}
	var resp productInfoResponse
	if err := c.post(ctx, "/v3/product/info/list", payload, &resp); err != nil {
		return nil, fmt.Errorf("could not get product info: %w", err)
	}

	products := make([]domain.Product, 0, len(resp.Items))
	for _, item := range resp.Items {
		p := domain.Product{
			ProductID:    item.ID,
			OfferID:      item.OfferID,
			Name:         item.Name,
			Price:        item.Price,
			CurrencyCode: item.CurrencyCode,
			Status:       item.Statuses.Status,
			PrimaryImage: string(item.PrimaryImage),
		}
		if len(item.Sources) > 0 {
			p.SKU = item.Sources[0].SKU
		}
		products = append(products, p)
	}
	return products, nil
}

// FetchCatalog lists the whole catalog and resolves every offer to a
// full product record.
func (c *Client) FetchCatalog(ctx context.Context) ([]domain.Product, error) {
	offers, err := c.ListOfferIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(offers) == 0 {
		return nil, nil
	}
	return c.GetProductInfo(ctx, offers)
}
