package repository

import (
	"context"

	"storefront-api/internal/infra"
	sqlc "storefront-api/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type ProductWriteQueries interface {
	DecrementProductStock(ctx context.Context, db sqlc.DBTX, arg sqlc.DecrementProductStockParams) (int64, error)
	IncrementProductStock(ctx context.Context, db sqlc.DBTX, arg sqlc.IncrementProductStockParams) (int64, error)
}

type ProductRepository struct {
	queries ProductWriteQueries
}

func NewProductRepository(queries ProductWriteQueries) *ProductRepository {
	return &ProductRepository{queries: queries}
}

// ConditionalDecrement moves quantity from stock to sold only if enough stock remains.
// Zero affected rows means the guard failed (or the product vanished) and is reported as KindConflict.
func (r *ProductRepository) ConditionalDecrement(ctx context.Context, tx sqlc.DBTX, productID uuid.UUID, quantity int32) error {
	n, err := r.queries.DecrementProductStock(ctx, tx, sqlc.DecrementProductStockParams{
		Quantity: quantity,
		ID:       productID,
	})
	if err != nil {
		return infra.WrapPgErr("failed to decrement product stock", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("insufficient stock", nil, infra.KindConflict)
	}
	return nil
}

// ConditionalIncrement reverses a decrement; sold never drops below zero.
func (r *ProductRepository) ConditionalIncrement(ctx context.Context, tx sqlc.DBTX, productID uuid.UUID, quantity int32) error {
	n, err := r.queries.IncrementProductStock(ctx, tx, sqlc.IncrementProductStockParams{
		Quantity: quantity,
		ID:       productID,
	})
	if err != nil {
		return infra.WrapPgErr("failed to increment product stock", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("product not found for stock release", nil, infra.KindNotFound)
	}
	return nil
}
