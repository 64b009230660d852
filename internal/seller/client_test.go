package seller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/billingfox/ozonator/internal/config"
	"github.com/billingfox/ozonator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := NewClient(config.SellerConfig{BaseURL: "https://api.example"})
	assert.Error(t, err)

	_, err = NewClient(config.SellerConfig{
		BaseURL:  "https://api.example",
		ClientID: "client",
		APIKey:   "key",
	})
	assert.NoError(t, err)
}

func TestRateLimitMatchedByStatusCode(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"message":"too many requests"}`)
	}))

	_, err := client.CreatePostingsReport(context.Background(),
		time.Now().Add(-time.Hour), time.Now())

	assert.ErrorIs(t, err, domain.ErrRateLimited)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "too many requests", apiErr.Message)
}

func TestOtherStatusCodesAreNotRateLimits(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		// message text that would fool a string matcher
		fmt.Fprint(w, `{"message":"upstream said: too many requests"}`)
	}))

	_, err := client.CreatePostingsReport(context.Background(),
		time.Now().Add(-time.Hour), time.Now())

	assert.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrRateLimited))
}
