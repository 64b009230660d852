package service

import (
	"context"

	"github.com/billingfox/ozonator/internal/cache"
	"github.com/billingfox/ozonator/internal/demand"
	"github.com/billingfox/ozonator/internal/domain"
	"github.com/billingfox/ozonator/internal/repository"
	"github.com/rs/zerolog/log"
)

// DemandService serves the reconciled replenishment view.
type DemandService struct {
	stockRepo   repository.StockRepository
	salesRepo   repository.SalesRepository
	transitRepo repository.TransitRepository
	productRepo repository.ProductRepository
	reconciler  *demand.Reconciler
	cache       cache.DemandCache
}

func NewDemandService(
	stockRepo repository.StockRepository,
	salesRepo repository.SalesRepository,
	transitRepo repository.TransitRepository,
	productRepo repository.ProductRepository,
	reconciler *demand.Reconciler,
	cacheImpl cache.DemandCache,
) *DemandService {
	if reconciler == nil {
		reconciler = demand.NewReconciler(demand.IdentityLabels)
	}
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopDemandCache()
	}
	return &DemandService{
		stockRepo:   stockRepo,
		salesRepo:   salesRepo,
		transitRepo: transitRepo,
		productRepo: productRepo,
		reconciler:  reconciler,
		cache:       cacheImpl,
	}
}

// Table rebuilds the demand view from the three stores. The view is
// never persisted; the cache only short-circuits recomputation.
func (s *DemandService) Table(ctx context.Context) (*domain.DemandTable, error) {
	if table, ok, err := s.cache.Get(ctx); err == nil && ok {
		return table, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("demand: cache get failed")
	}

	stocks, err := s.stockRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	salesData, err := s.salesRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	transit, err := s.transitRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	table := s.reconciler.Reconcile(stocks, salesData, transit)
	s.fillProductDetails(ctx, &table)

	if err := s.cache.Set(ctx, &table); err != nil {
		log.Warn().Err(err).Msg("demand: cache set failed")
	}
	return &table, nil
}

// fillProductDetails adds catalog names and images to rows whose offer
// only appeared in sales or transit. Catalog gaps are not an error.
func (s *DemandService) fillProductDetails(ctx context.Context, table *domain.DemandTable) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("demand: could not load catalog details")
		return
	}

	byOffer := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byOffer[p.OfferID] = p
	}
	for i := range table.Rows {
		p, ok := byOffer[table.Rows[i].OfferID]
		if !ok {
			continue
		}
		if table.Rows[i].Name == "" {
			table.Rows[i].Name = p.Name
		}
		table.Rows[i].Image = p.PrimaryImage
	}
}
