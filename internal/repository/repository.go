// Package repository defines the store interfaces the services consume.
// Implementations live in the postgres subpackage.
package repository

import (
	"context"

	"github.com/billingfox/ozonator/internal/domain"
)

type ProductRepository interface {
	UpsertBatch(ctx context.Context, products []domain.Product) (int, error)
	GetAll(ctx context.Context) ([]domain.Product, error)
}

type StockRepository interface {
	UpsertBatch(ctx context.Context, records []domain.StockRecord) (int, error)
	GetAll(ctx context.Context) ([]domain.StockRecord, error)
}

type TransitRepository interface {
	UpsertBatch(ctx context.Context, records []domain.TransitRecord) (int, error)
	GetAll(ctx context.Context) ([]domain.TransitRecord, error)
}

// SalesRepository holds exactly one aggregation run: ReplaceAll clears
// the previous run and inserts the new one atomically.
type SalesRepository interface {
	ReplaceAll(ctx context.Context, aggregates []domain.SaleAggregate) (int, error)
	GetAll(ctx context.Context) ([]domain.SaleAggregate, error)
}

type UpdateInfoRepository interface {
	// GetLast returns nil when no update was ever recorded.
	GetLast(ctx context.Context) (*domain.UpdateInfo, error)
	Save(ctx context.Context, totalProducts int) error
}
