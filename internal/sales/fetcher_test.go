package sales

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/billingfox/ozonator/internal/domain"
	"github.com/billingfox/ozonator/internal/seller"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePostingGetter struct {
	mu      sync.Mutex
	calls   []string
	failing map[string]error
}

func (f *fakePostingGetter) GetPosting(ctx context.Context, number string) (*seller.PostingDetail, error) {
	f.mu.Lock()
	f.calls = append(f.calls, number)
	f.mu.Unlock()

	if err, ok := f.failing[number]; ok {
		return nil, err
	}
	return &seller.PostingDetail{
		PostingNumber: number,
		OfferID:       "offer-" + number,
		SKU:           42,
		Quantity:      1,
		ClusterTo:     "Москва",
		InProcessAt:   time.Now(),
	}, nil
}

func TestFetchSkipsFailedPostings(t *testing.T) {
	api := &fakePostingGetter{failing: map[string]error{
		"p2": errors.New("boom"),
		"p4": domain.ErrMalformedResponse,
	}}
	fetcher := NewFetcher(api, 3)

	records, skipped, err := fetcher.Fetch(context.Background(), []string{"p1", "p2", "p3", "p4", "p5"})

	require.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, 2, skipped)
	assert.Len(t, api.calls, 5)
}

func TestFetchAllFailedReportsNoData(t *testing.T) {
	api := &fakePostingGetter{failing: map[string]error{
		"p1": errors.New("boom"),
		"p2": errors.New("boom"),
		"p3": errors.New("boom"),
	}}
	fetcher := NewFetcher(api, 2)

	_, skipped, err := fetcher.Fetch(context.Background(), []string{"p1", "p2", "p3"})

	assert.ErrorIs(t, err, domain.ErrNoDataAvailable)
	assert.Equal(t, 3, skipped)
	// the whole batch must be attempted before giving up
	assert.Len(t, api.calls, 3)
}

func TestFetchEmptyInput(t *testing.T) {
	fetcher := NewFetcher(&fakePostingGetter{}, 2)

	records, skipped, err := fetcher.Fetch(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Zero(t, skipped)
}

func TestFetchSequentialWithOneWorker(t *testing.T) {
	api := &fakePostingGetter{}
	fetcher := NewFetcher(api, 0) // clamps to 1

	records, _, err := fetcher.Fetch(context.Background(), []string{"p1", "p2", "p3"})

	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2", "p3"}, api.calls)
	assert.Len(t, records, 3)
}

func TestFetchHonorsContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := NewFetcher(&fakePostingGetter{}, 2)
	_, _, err := fetcher.Fetch(ctx, []string{"p1", "p2"})

	assert.ErrorIs(t, err, context.Canceled)
}
