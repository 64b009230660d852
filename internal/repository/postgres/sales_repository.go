package postgres

import (
	"context"
	"fmt"

	"github.com/billingfox/ozonator/internal/domain"
	"github.com/billingfox/ozonator/internal/repository"
	"github.com/jmoiron/sqlx"
)

type salesRepository struct {
	db *DB
}

func NewSalesRepository(db *DB) repository.SalesRepository {
	return &salesRepository{db: db}
}

// ReplaceAll deletes the previous aggregation run and inserts the new
// one in a single transaction; a reader never sees a partially cleared
// table. An empty set still clears old data but reports the distinct
// nothing-to-persist failure instead of silently succeeding.
func (r *salesRepository) ReplaceAll(ctx context.Context, aggregates []domain.SaleAggregate) (int, error) {
	saved := 0
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM sales`); err != nil {
			return fmt.Errorf("could not clear sales: %w", err)
		}
		for _, a := range aggregates {
			if a.OfferID == "" || a.ClusterTo == "" {
				continue
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO sales (offer_id, sku, cluster_to, sales_count) VALUES ($1, $2, $3, $4)`,
				a.OfferID, a.SKU, a.ClusterTo, a.SalesCount); err != nil {
				return fmt.Errorf("could not insert sale %s/%s: %w", a.OfferID, a.ClusterTo, err)
			}
			saved++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if saved == 0 {
		return 0, fmt.Errorf("could not save sales data: %w", domain.ErrNoDataAvailable)
	}
	return saved, nil
}

func (r *salesRepository) GetAll(ctx context.Context) ([]domain.SaleAggregate, error) {
	query := `
		SELECT offer_id, sku, cluster_to, SUM(sales_count) AS sales_count
		FROM sales
		GROUP BY offer_id, sku, cluster_to
		ORDER BY offer_id, sku, cluster_to`

	var aggregates []domain.SaleAggregate
	if err := r.db.SelectContext(ctx, &aggregates, query); err != nil {
		return nil, fmt.Errorf("error getting sales: %w", err)
	}
	return aggregates, nil
}
