package commands

import (
	"context"
	"errors"
	"log/slog"

	"storefront-api/internal/domain/order"
	"storefront-api/internal/infra"
	"storefront-api/internal/pkg/clock"
	"storefront-api/internal/pkg/errs"
	"storefront-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type OrderCommands interface {
	// ChangeStatus applies an admin transition; cancelling a paid order returns its stock.
	ChangeStatus(ctx context.Context, orderID uuid.UUID, next order.Status) (*order.Order, error)
	Delete(ctx context.Context, orderID uuid.UUID) error
}

type orderCommandsImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	logger *slog.Logger
}

func NewOrderCommands(uow shared.UnitOfWork, clk clock.Clock, logger *slog.Logger) OrderCommands {
	return &orderCommandsImpl{uow: uow, clock: clk, logger: logger}
}

func (c *orderCommandsImpl) ChangeStatus(ctx context.Context, orderID uuid.UUID, next order.Status) (*order.Order, error) {
	var updated *order.Order
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Reads().OrderByID(ctx, orderID)
		if err != nil {
			return mapOrderLookupErr(err)
		}

		prev := o.Status()
		releaseStock, err := o.ChangeStatus(next, c.clock.Now())
		if err != nil {
			if errors.Is(err, order.ErrInvalidStatusTransition) {
				return errs.Mark(errs.Newf("cannot move order from %s to %s", prev, next), ErrInvalidStatusTransition)
			}
			return err
		}

		// compare-and-set so two concurrent cancellations return stock once
		if err := tx.Orders().UpdateStatus(ctx, tx.DB(), orderID, prev, next); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.Mark(err, ErrOrderStatusConflict)
			}
			return err
		}

		if releaseStock {
			if err := releaseLines(ctx, tx, o); err != nil {
				return err
			}
		}

		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("order status changed", "order_id", orderID, "status", next)
	return updated, nil
}

// Delete removes an order; a paid order gives its stock back first.
func (c *orderCommandsImpl) Delete(ctx context.Context, orderID uuid.UUID) error {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Reads().OrderByID(ctx, orderID)
		if err != nil {
			return mapOrderLookupErr(err)
		}

		if err := tx.Orders().Delete(ctx, tx.DB(), orderID); err != nil {
			return mapOrderLookupErr(err)
		}

		if o.Status().HoldsStock() {
			return releaseLines(ctx, tx, o)
		}
		return nil
	})
	if err != nil {
		return err
	}

	c.logger.Info("order deleted", "order_id", orderID)
	return nil
}

func releaseLines(ctx context.Context, tx shared.Tx, o *order.Order) error {
	for _, line := range o.Lines() {
		if err := tx.Products().ConditionalIncrement(ctx, tx.DB(), line.ProductID, line.Quantity); err != nil {
			return errs.Wrapf(err, "failed to return stock for product %s", line.ProductID)
		}
	}
	return nil
}

func mapOrderLookupErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, ErrOrderNotFound)
	}
	return err
}
