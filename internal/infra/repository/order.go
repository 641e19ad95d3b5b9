package repository

import (
	"context"

	"storefront-api/internal/domain/order"
	"storefront-api/internal/infra"
	"storefront-api/internal/infra/repository/converter"
	sqlc "storefront-api/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type OrderWriteQueries interface {
	CreateOrder(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateOrderParams) error
	CreateOrderLine(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateOrderLineParams) error
	UpdateOrderStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateOrderStatusParams) (int64, error)
	DeleteOrder(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (int64, error)
}

type OrderRepository struct {
	queries OrderWriteQueries
}

func NewOrderRepository(queries OrderWriteQueries) *OrderRepository {
	return &OrderRepository{queries: queries}
}

// Create writes the header and every line; callers run it inside one transaction.
// A second order for the same (user, idempotency key) surfaces as KindDuplicateKey.
func (r *OrderRepository) Create(ctx context.Context, tx sqlc.DBTX, o *order.Order) error {
	if err := r.queries.CreateOrder(ctx, tx, converter.OrderToCreateParams(o)); err != nil {
		return infra.WrapPgErr("failed to create order", err)
	}

	for _, line := range converter.OrderLinesToCreateParams(o) {
		if err := r.queries.CreateOrderLine(ctx, tx, line); err != nil {
			return infra.WrapPgErr("failed to create order line", err)
		}
	}

	return nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, tx sqlc.DBTX, orderID uuid.UUID, expected, next order.Status) error {
	n, err := r.queries.UpdateOrderStatus(ctx, tx, sqlc.UpdateOrderStatusParams{
		NextStatus:     next.String(),
		ID:             orderID,
		ExpectedStatus: expected.String(),
	})
	if err != nil {
		return infra.WrapPgErr("failed to update order status", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("order status changed concurrently", nil, infra.KindConflict)
	}
	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, tx sqlc.DBTX, orderID uuid.UUID) error {
	n, err := r.queries.DeleteOrder(ctx, tx, orderID)
	if err != nil {
		return infra.WrapPgErr("failed to delete order", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return nil
}
