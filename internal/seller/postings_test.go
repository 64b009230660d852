package seller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/billingfox/ozonator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPosting(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			PostingNumber string          `json:"posting_number"`
			Translit      bool            `json:"translit"`
			With          map[string]bool `json:"with"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "12345-0001-1", req.PostingNumber)
		assert.True(t, req.Translit)
		assert.True(t, req.With["analytics_data"])
		assert.True(t, req.With["financial_data"])

		fmt.Fprint(w, `{"result":{
			"posting_number": "12345-0001-1",
			"in_process_at": "2026-08-01T10:30:00Z",
			"products": [{"offer_id":"A","sku":777,"quantity":2}],
			"financial_data": {"cluster_to":"Москва"}
		}}`)
	}))

	detail, err := client.GetPosting(context.Background(), "12345-0001-1")

	require.NoError(t, err)
	assert.Equal(t, "12345-0001-1", detail.PostingNumber)
	assert.Equal(t, "A", detail.OfferID)
	assert.Equal(t, int64(777), detail.SKU)
	assert.Equal(t, 2, detail.Quantity)
	assert.Equal(t, "Москва", detail.ClusterTo)
	assert.Equal(t, time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC), detail.InProcessAt)
}

func TestGetPostingWithoutCluster(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result":{
			"posting_number": "12345-0001-1",
			"products": [{"offer_id":"A","sku":777,"quantity":2}]
		}}`)
	}))

	_, err := client.GetPosting(context.Background(), "12345-0001-1")
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestGetPostingWithoutProducts(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result":{
			"posting_number": "12345-0001-1",
			"products": [],
			"financial_data": {"cluster_to":"Москва"}
		}}`)
	}))

	_, err := client.GetPosting(context.Background(), "12345-0001-1")
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}
