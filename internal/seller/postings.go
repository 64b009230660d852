package seller

import (
	"context"
	"fmt"
	"time"

	"github.com/billingfox/ozonator/internal/domain"
)

// PostingDetail is the slice of a fulfilled posting the sales pipeline
// cares about: the first product line plus the financial destination
// cluster.
type PostingDetail struct {
	PostingNumber string
	OfferID       string
	SKU           int64
	Quantity      int
	ClusterTo     string
	InProcessAt   time.Time
}

type postingGetResponse struct {
	Result *struct {
		PostingNumber string `json:"posting_number"`
		InProcessAt   string `json:"in_process_at"`
		Products      []struct {
			OfferID  string `json:"offer_id"`
			SKU      int64  `json:"sku"`
			Quantity int    `json:"quantity"`
		} `json:"products"`
		FinancialData *struct {
			ClusterTo string `json:"cluster_to"`
		} `json:"financial_data"`
	} `json:"result"`
}

// GetPosting resolves one posting number to its detail record. The
// analytics and financial sub-objects are requested explicitly; a
// response without a result payload, product line or cluster label is
// malformed from this pipeline's point of view.
func (c *Client) GetPosting(ctx context.Context, postingNumber string) (*PostingDetail, error) {
	payload := map[string]interface{}{
		"posting_number": postingNumber,
		"translit":       true,
		"with": map[string]bool{
			"analytics_data": true,
			"financial_data": true,
		},
	}

	var resp postingGetResponse
	if err := c.post(ctx, "/v2/posting/fbo/get", payload, &resp); err != nil {
		return nil, fmt.Errorf("could not get posting %s: %w", postingNumber, err)
	}
	if resp.Result == nil {
		return nil, fmt.Errorf("%w: posting %s response has no result", domain.ErrMalformedResponse, postingNumber)
	}
	if len(resp.Result.Products) == 0 {
		return nil, fmt.Errorf("%w: posting %s has no products", domain.ErrMalformedResponse, postingNumber)
	}
	if resp.Result.FinancialData == nil || resp.Result.FinancialData.ClusterTo == "" {
		return nil, fmt.Errorf("%w: posting %s has no financial cluster", domain.ErrMalformedResponse, postingNumber)
	}

	product := resp.Result.Products[0]
	detail := &PostingDetail{
		PostingNumber: postingNumber,
		OfferID:       product.OfferID,
		SKU:           product.SKU,
		Quantity:      product.Quantity,
		ClusterTo:     resp.Result.FinancialData.ClusterTo,
		InProcessAt:   time.Now().UTC(),
	}
	if ts, err := time.Parse(time.RFC3339, resp.Result.InProcessAt); err == nil {
		detail.InProcessAt = ts
	}
	return detail, nil
}
