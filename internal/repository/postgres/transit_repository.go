package postgres

import (
	"context"
	"fmt"

	"github.com/billingfox/ozonator/internal/domain"
	"github.com/billingfox/ozonator/internal/repository"
	"github.com/jmoiron/sqlx"
)

type transitRepository struct {
	db *DB
}

func NewTransitRepository(db *DB) repository.TransitRepository {
	return &transitRepository{db: db}
}

const upsertTransitQuery = `
	INSERT INTO products_in_transit (offer_id, warehouse_name, sku, name, reserved_amount, promised_amount)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (offer_id, warehouse_name) DO UPDATE SET
		sku = EXCLUDED.sku,
		name = EXCLUDED.name,
		reserved_amount = EXCLUDED.reserved_amount,
		promised_amount = EXCLUDED.promised_amount`

// UpsertBatch writes all usable rows in one transaction. Rows without
// an offer or warehouse are skipped; saving zero usable rows is the
// distinct no-suitable-records failure, not a silent success.
func (r *transitRepository) UpsertBatch(ctx context.Context, records []domain.TransitRecord) (int, error) {
	saved := 0
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		for _, t := range records {
			if t.OfferID == "" || t.WarehouseName == "" {
				continue
			}
			if _, err := tx.ExecContext(ctx, upsertTransitQuery,
				t.OfferID, t.WarehouseName, t.SKU, t.Name,
				t.ReservedAmount, t.PromisedAmount); err != nil {
				return fmt.Errorf("could not upsert transit %s/%s: %w", t.OfferID, t.WarehouseName, err)
			}
			saved++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if saved == 0 {
		return 0, fmt.Errorf("could not save transit data: %w", domain.ErrNoDataAvailable)
	}
	return saved, nil
}

func (r *transitRepository) GetAll(ctx context.Context) ([]domain.TransitRecord, error) {
	query := `
		SELECT offer_id, sku, name, warehouse_name, reserved_amount, promised_amount
		FROM products_in_transit
		WHERE reserved_amount > 0 OR promised_amount > 0
		ORDER BY offer_id, warehouse_name`

	var records []domain.TransitRecord
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("error getting transit records: %w", err)
	}
	return records, nil
}
