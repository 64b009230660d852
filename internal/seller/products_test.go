package seller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageFieldToleratesBothEncodings(t *testing.T) {
	var f imageField
	require.NoError(t, json.Unmarshal([]byte(`"https://img.example/a.jpg"`), &f))
	assert.Equal(t, "https://img.example/a.jpg", string(f))

	f = ""
	require.NoError(t, json.Unmarshal([]byte(`["https://img.example/b.jpg","https://img.example/c.jpg"]`), &f))
	assert.Equal(t, "https://img.example/b.jpg", string(f))

	f = ""
	require.NoError(t, json.Unmarshal([]byte(`[]`), &f))
	assert.Equal(t, "", string(f))
}

func TestListOfferIDsPaginates(t *testing.T) {
	pages := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pages++
		var req struct {
			LastID string `json:"last_id"`
			Limit  int    `json:"limit"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, productPageSize, req.Limit)

		if req.LastID == "" {
			// full page: the client must ask for the next one
			items := make([]string, 0, productPageSize)
			for i := 0; i < productPageSize; i++ {
				items = append(items, fmt.Sprintf(`{"offer_id":"offer-%d"}`, i))
			}
			fmt.Fprintf(w, `{"result":{"items":[%s],"last_id":"page-2"}}`, joinJSON(items))
			return
		}
		assert.Equal(t, "page-2", req.LastID)
		fmt.Fprint(w, `{"result":{"items":[{"offer_id":"offer-last"}],"last_id":""}}`)
	}))

	offers, err := client.ListOfferIDs(context.Background())

	require.NoError(t, err)
	assert.Len(t, offers, productPageSize+1)
	assert.Equal(t, "offer-last", offers[len(offers)-1])
	assert.Equal(t, 2, pages)
}

func joinJSON(items []string) string {
	out := ""
	for i, item := range items {
		if i > 0 {
			out += ","
		}
		out += item
	}
	return out
}

func TestGetProductInfo(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items":[{
			"id": 555,
			"offer_id": "A-1",
			"name": "Чайник",
			"price": "1990.00",
			"currency_code": "RUB",
			"primary_image": ["https://img.example/a.jpg"],
			"statuses": {"status": "published"},
			"sources": [{"sku": 777}]
		}]}`)
	}))

	products, err := client.GetProductInfo(context.Background(), []string{"A-1"})

	require.NoError(t, err)
	require.Len(t, products, 1)
	p := products[0]
	assert.Equal(t, int64(555), p.ProductID)
	assert.Equal(t, "A-1", p.OfferID)
	assert.Equal(t, int64(777), p.SKU)
	assert.Equal(t, "published", p.Status)
	assert.Equal(t, "https://img.example/a.jpg", p.PrimaryImage)
}

func TestGetProductInfoRequiresOffers(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))

	_, err := client.GetProductInfo(context.Background(), nil)
	assert.Error(t, err)
}
