package postgres

import (
	"context"
	"fmt"

	"github.com/billingfox/ozonator/internal/domain"
	"github.com/billingfox/ozonator/internal/repository"
	"github.com/jmoiron/sqlx"
)

type productRepository struct {
	db *DB
}

func NewProductRepository(db *DB) repository.ProductRepository {
	return &productRepository{db: db}
}

const upsertProductQuery = `
	INSERT INTO products (product_id, offer_id, sku, name, price, currency_code, status, primary_image)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (offer_id) DO UPDATE SET
		product_id = EXCLUDED.product_id,
		sku = EXCLUDED.sku,
		name = EXCLUDED.name,
		price = EXCLUDED.price,
		currency_code = EXCLUDED.currency_code,
		status = EXCLUDED.status,
		primary_image = EXCLUDED.primary_image`

func (r *productRepository) UpsertBatch(ctx context.Context, products []domain.Product) (int, error) {
	saved := 0
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		for _, p := range products {
			if p.OfferID == "" {
				continue
			}
			if _, err := tx.ExecContext(ctx, upsertProductQuery,
				p.ProductID, p.OfferID, p.SKU, p.Name, p.Price,
				p.CurrencyCode, p.Status, p.PrimaryImage); err != nil {
				return fmt.Errorf("could not upsert product %s: %w", p.OfferID, err)
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

func (r *productRepository) GetAll(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, COALESCE(product_id, 0) AS product_id, offer_id, sku, name,
			price, currency_code, status, primary_image, created_at
		FROM products
		ORDER BY offer_id`

	var products []domain.Product
	if err := r.db.SelectContext(ctx, &products, query); err != nil {
		return nil, fmt.Errorf("error getting products: %w", err)
	}
	return products, nil
}
