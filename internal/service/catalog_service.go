package service

import (
	"context"

	"github.com/billingfox/ozonator/internal/domain"
	"github.com/billingfox/ozonator/internal/repository"
)

// CatalogService serves the stored datasets for the list views.
type CatalogService struct {
	productRepo repository.ProductRepository
	stockRepo   repository.StockRepository
	transitRepo repository.TransitRepository
	salesRepo   repository.SalesRepository
	updateRepo  repository.UpdateInfoRepository
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
	transitRepo repository.TransitRepository,
	salesRepo repository.SalesRepository,
	updateRepo repository.UpdateInfoRepository,
) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		stockRepo:   stockRepo,
		transitRepo: transitRepo,
		salesRepo:   salesRepo,
		updateRepo:  updateRepo,
	}
}

func (s *CatalogService) Products(ctx context.Context) ([]domain.Product, error) {
	return s.productRepo.GetAll(ctx)
}

func (s *CatalogService) Stocks(ctx context.Context) ([]domain.StockRecord, error) {
	return s.stockRepo.GetAll(ctx)
}

func (s *CatalogService) Transit(ctx context.Context) ([]domain.TransitRecord, error) {
	return s.transitRepo.GetAll(ctx)
}

func (s *CatalogService) Sales(ctx context.Context) ([]domain.SaleAggregate, error) {
	return s.salesRepo.GetAll(ctx)
}

func (s *CatalogService) LastUpdate(ctx context.Context) (*domain.UpdateInfo, error) {
	return s.updateRepo.GetLast(ctx)
}
