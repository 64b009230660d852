// Package sales turns a postings report into per-cluster sale counts:
// per-posting enrichment calls followed by a commutative aggregation.
package sales

import (
	"context"
	"fmt"
	"sync"

	"github.com/billingfox/ozonator/internal/domain"
	"github.com/billingfox/ozonator/internal/seller"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// PostingGetter resolves one posting number to its detail record.
type PostingGetter interface {
	GetPosting(ctx context.Context, postingNumber string) (*seller.PostingDetail, error)
}

// Fetcher enriches posting numbers through a bounded worker pool. It is
// the pipeline's partial-failure boundary: a posting that cannot be
// resolved, or that lacks a destination cluster, is logged and dropped;
// only a batch with zero usable records fails.
type Fetcher struct {
	api     PostingGetter
	workers int
}

func NewFetcher(api PostingGetter, workers int) *Fetcher {
	if workers < 1 {
		workers = 1
	}
	return &Fetcher{api: api, workers: workers}
}

// Fetch resolves every posting number and returns the usable records
// plus the number of skipped postings. The aggregation downstream is
// commutative, so result order does not matter. Workers=1 reproduces
// strictly sequential behavior. domain.ErrNoDataAvailable is returned
// only after the whole batch was attempted.
func (f *Fetcher) Fetch(ctx context.Context, postingNumbers []string) ([]domain.SaleRecord, int, error) {
	var (
		mu      sync.Mutex
		records []domain.SaleRecord
		skipped int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)

	for _, number := range postingNumbers {
		g.Go(func() error {
			detail, err := f.api.GetPosting(gctx, number)
			if err != nil {
				log.Warn().Str("posting", number).Err(err).Msg("posting skipped")
				mu.Lock()
				skipped++
				mu.Unlock()
				return nil
			}

			mu.Lock()
			records = append(records, domain.SaleRecord{
				OfferID:     detail.OfferID,
				SKU:         detail.SKU,
				ClusterTo:   detail.ClusterTo,
				Quantity:    detail.Quantity,
				ProcessedAt: detail.InProcessAt,
			})
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, skipped, err
	}
	if err := ctx.Err(); err != nil {
		return nil, skipped, err
	}

	if len(records) == 0 && len(postingNumbers) > 0 {
		return nil, skipped, fmt.Errorf("all %d postings failed to resolve: %w",
			len(postingNumbers), domain.ErrNoDataAvailable)
	}

	log.Info().
		Int("postings", len(postingNumbers)).
		Int("resolved", len(records)).
		Int("skipped", skipped).
		Msg("postings enriched")
	return records, skipped, nil
}
