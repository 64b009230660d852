package postgres

import (
	"context"
	"fmt"

	"github.com/billingfox/ozonator/internal/domain"
	"github.com/billingfox/ozonator/internal/repository"
	"github.com/jmoiron/sqlx"
)

type stockRepository struct {
	db *DB
}

func NewStockRepository(db *DB) repository.StockRepository {
	return &stockRepository{db: db}
}

const upsertStockQuery = `
	INSERT INTO stocks (offer_id, warehouse_name, sku, name,
		valid_stock_count, waitingdocs_stock_count, expiring_stock_count, defect_stock_count, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
	ON CONFLICT (offer_id, warehouse_name) DO UPDATE SET
		sku = EXCLUDED.sku,
		name = EXCLUDED.name,
		valid_stock_count = EXCLUDED.valid_stock_count,
		waitingdocs_stock_count = EXCLUDED.waitingdocs_stock_count,
		expiring_stock_count = EXCLUDED.expiring_stock_count,
		defect_stock_count = EXCLUDED.defect_stock_count,
		updated_at = now()`

// UpsertBatch writes all rows in one transaction so a concurrent reader
// never observes a half-applied refresh.
func (r *stockRepository) UpsertBatch(ctx context.Context, records []domain.StockRecord) (int, error) {
	saved := 0
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		for _, s := range records {
			if s.OfferID == "" || s.WarehouseName == "" {
				continue
			}
			if _, err := tx.ExecContext(ctx, upsertStockQuery,
				s.OfferID, s.WarehouseName, s.SKU, s.Name,
				s.ValidCount, s.WaitingDocsCount, s.ExpiringCount, s.DefectCount); err != nil {
				return fmt.Errorf("could not upsert stock %s/%s: %w", s.OfferID, s.WarehouseName, err)
			}
			saved++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return saved, nil
}

func (r *stockRepository) GetAll(ctx context.Context) ([]domain.StockRecord, error) {
	query := `
		SELECT offer_id, sku, name, warehouse_name,
			valid_stock_count, waitingdocs_stock_count, expiring_stock_count, defect_stock_count
		FROM stocks
		ORDER BY offer_id, warehouse_name`

	var records []domain.StockRecord
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("error getting stocks: %w", err)
	}
	return records, nil
}
