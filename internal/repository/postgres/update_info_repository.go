package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/billingfox/ozonator/internal/domain"
	"github.com/billingfox/ozonator/internal/repository"
)

type updateInfoRepository struct {
	db *DB
}

func NewUpdateInfoRepository(db *DB) repository.UpdateInfoRepository {
	return &updateInfoRepository{db: db}
}

func (r *updateInfoRepository) GetLast(ctx context.Context) (*domain.UpdateInfo, error) {
	query := `
		SELECT last_update, total_products
		FROM update_info
		ORDER BY id DESC
		LIMIT 1`

	var info domain.UpdateInfo
	err := r.db.GetContext(ctx, &info, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error getting last update info: %w", err)
	}
	return &info, nil
}

func (r *updateInfoRepository) Save(ctx context.Context, totalProducts int) error {
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO update_info (last_update, total_products) VALUES (now(), $1)`,
		totalProducts); err != nil {
		return fmt.Errorf("error saving update info: %w", err)
	}
	return nil
}
