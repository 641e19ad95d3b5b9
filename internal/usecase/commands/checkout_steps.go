package commands

import (
	"context"
	"encoding/json"
	"strings"

	"storefront-api/internal/domain/checkout"
	"storefront-api/internal/domain/order"
	"storefront-api/internal/domain/pricing"
	"storefront-api/internal/infra"
	"storefront-api/internal/pkg/errs"
	"storefront-api/internal/usecase/shared"
)

// price: INITIATED -> PRICED | PRICING_FAILED
func (c *checkoutCommandsImpl) price(ctx context.Context, r *commitRun) error {
	res, err := c.quoter.Quote(ctx, r.req.Cart)
	if err != nil {
		if !isPricingFailure(err) {
			return err
		}
		return c.fail(ctx, r, checkout.StatePricingFailed, err)
	}

	snapshot := checkout.NewSnapshot(res, c.currency)
	return c.mutate(ctx, r, func(_ context.Context, _ shared.Tx, next *checkout.Attempt) error {
		next.RecordPricing(snapshot)
		return next.Transition(checkout.StatePriced, c.clock.Now())
	})
}

// requestPayment: PRICED -> PAYMENT_PENDING | PAYMENT_FAILED
// A reference from the request or from an earlier run of this key is reused before a new intent is created.
func (c *checkoutCommandsImpl) requestPayment(ctx context.Context, r *commitRun) error {
	snapshot := r.attempt.Snapshot()
	if snapshot == nil {
		return checkout.ErrMissingSnapshot
	}

	reference := r.req.PaymentReference
	if reference == "" {
		reference = r.attempt.PaymentReference()
	}

	if reference == "" {
		intent, err := c.gateway.CreateIntent(ctx, shared.IntentRequest{
			AmountMinor: snapshot.NetMinor,
			Currency:    snapshot.Currency,
			Receipt:     shared.Receipt(r.userID, r.key),
			Notes: map[string]string{
				"user_id":         r.userID.String(),
				"idempotency_key": r.key.String(),
			},
		})
		if err != nil {
			return c.fail(ctx, r, checkout.StatePaymentFailed, errs.Wrap(err, "failed to create payment intent"))
		}
		reference = intent.Reference
	}

	return c.mutate(ctx, r, func(_ context.Context, _ shared.Tx, next *checkout.Attempt) error {
		next.RecordPayment(reference)
		return next.Transition(checkout.StatePaymentPending, c.clock.Now())
	})
}

// confirmPayment: PAYMENT_PENDING -> PAYMENT_CONFIRMED | PAYMENT_FAILED
// The intent must be fully captured for exactly the priced net amount, under this checkout's receipt.
func (c *checkoutCommandsImpl) confirmPayment(ctx context.Context, r *commitRun) error {
	snapshot := r.attempt.Snapshot()
	if snapshot == nil {
		return checkout.ErrMissingSnapshot
	}
	reference := r.attempt.PaymentReference()

	intent, err := c.gateway.FetchIntent(ctx, reference)
	if err != nil {
		return c.fail(ctx, r, checkout.StatePaymentFailed, errs.Wrapf(err, "failed to confirm payment %s", reference))
	}

	if !intent.IsCaptured() {
		cause := errs.Newf("payment %s is %s", reference, intent.Status)
		return c.fail(ctx, r, checkout.StatePaymentFailed, errs.Mark(cause, ErrPaymentNotConfirmed))
	}
	if intent.Receipt != shared.Receipt(r.userID, r.key) {
		cause := errs.Newf("payment %s was created for another checkout", reference)
		return c.fail(ctx, r, checkout.StatePaymentFailed, errs.Mark(cause, ErrPaymentNotConfirmed))
	}
	if intent.AmountMinor != snapshot.NetMinor || !strings.EqualFold(intent.Currency, snapshot.Currency) {
		cause := errs.Newf("payment %s is for %d %s, order total is %d %s",
			reference, intent.AmountMinor, intent.Currency, snapshot.NetMinor, snapshot.Currency)
		return c.fail(ctx, r, checkout.StatePaymentFailed, errs.Mark(cause, ErrPaymentNotConfirmed))
	}

	// the charge is captured; caller cancellation no longer applies
	return c.mutate(context.WithoutCancel(ctx), r, func(_ context.Context, _ shared.Tx, next *checkout.Attempt) error {
		return next.Transition(checkout.StatePaymentConfirmed, c.clock.Now())
	})
}

// reserveStock: PAYMENT_CONFIRMED -> STOCK_RESERVED | STOCK_CONFLICT | PERSIST_FAILED | ORDER_PERSISTED
// Each decrement commits together with its journal entry, so a resumed attempt skips lines it already holds.
func (c *checkoutCommandsImpl) reserveStock(ctx context.Context, r *commitRun) error {
	existing, err := c.uow.CommandReads().OrderByIdempotencyKey(ctx, r.userID, r.key)
	switch {
	case err == nil:
		return c.adoptOrder(ctx, r, existing)
	case !infra.IsKind(err, infra.KindNotFound):
		cause := errs.Mark(errs.Wrap(err, "failed to look up order by idempotency key"), ErrPersistence)
		return c.failAfterCapture(ctx, r, checkout.StatePersistFailed, cause)
	}

	for _, line := range r.attempt.Snapshot().Lines {
		if r.attempt.IsReserved(line.ProductID) {
			continue
		}

		err := c.mutate(ctx, r, func(ctx context.Context, tx shared.Tx, next *checkout.Attempt) error {
			if err := tx.Products().ConditionalDecrement(ctx, tx.DB(), line.ProductID, line.Quantity); err != nil {
				return err
			}
			next.RecordReservation(checkout.Reservation{ProductID: line.ProductID, Quantity: line.Quantity})
			return nil
		})
		if err == nil {
			continue
		}

		if infra.IsKind(err, infra.KindConflict) {
			cause := errs.Mark(&pricing.LineError{ProductID: line.ProductID, Err: pricing.ErrInsufficientStock}, ErrStockConflict)
			return c.failAfterCapture(ctx, r, checkout.StateStockConflict, cause)
		}
		cause := errs.Mark(errs.Wrapf(err, "failed to reserve product %s", line.ProductID), ErrPersistence)
		return c.failAfterCapture(ctx, r, checkout.StatePersistFailed, cause)
	}

	return c.mutate(ctx, r, func(_ context.Context, _ shared.Tx, next *checkout.Attempt) error {
		return next.Transition(checkout.StateStockReserved, c.clock.Now())
	})
}

type orderPlacedPayload struct {
	OrderID          string `json:"orderId"`
	UserID           string `json:"userId"`
	NetMinor         int64  `json:"netMinor"`
	Currency         string `json:"currency"`
	PaymentReference string `json:"paymentReference"`
}

// persistOrder: STOCK_RESERVED -> ORDER_PERSISTED | PERSIST_FAILED
func (c *checkoutCommandsImpl) persistOrder(ctx context.Context, r *commitRun) error {
	o, err := c.buildOrder(r)
	if err != nil {
		return c.failAfterCapture(ctx, r, checkout.StatePersistFailed, errs.Mark(errs.Wrap(err, "failed to build order"), ErrPersistence))
	}

	payload, err := json.Marshal(orderPlacedPayload{
		OrderID:          o.ID().String(),
		UserID:           o.UserID().String(),
		NetMinor:         o.Amounts().NetMinor,
		Currency:         o.Currency(),
		PaymentReference: o.PaymentReference(),
	})
	if err != nil {
		return errs.Wrap(err, "failed to encode order notification")
	}

	err = c.mutate(ctx, r, func(ctx context.Context, tx shared.Tx, next *checkout.Attempt) error {
		if err := tx.Orders().Create(ctx, tx.DB(), o); err != nil {
			return err
		}
		now := c.clock.Now()
		if err := tx.Notifications().CreateJob(ctx, tx.DB(), shared.NotificationKindEmail, shared.TopicOrderPlaced, payload, now); err != nil {
			return err
		}
		if err := c.resolveReconciliation(ctx, tx, o.PaymentReference(), o.ID()); err != nil {
			return err
		}
		next.RecordOrder(o.ID())
		return next.Transition(checkout.StateOrderPersisted, now)
	})
	if err == nil {
		r.order = o
		return nil
	}

	// another run of this key won the insert, or the payment already backs a different order
	if infra.IsKind(err, infra.KindDuplicateKey) {
		winner, lookupErr := c.uow.CommandReads().OrderByIdempotencyKey(ctx, r.userID, r.key)
		switch {
		case lookupErr == nil:
			return c.adoptOrder(ctx, r, winner)
		case infra.IsKind(lookupErr, infra.KindNotFound):
			err = errs.Wrapf(err, "payment %s already backs another order", o.PaymentReference())
		default:
			err = errs.Combine(err, lookupErr)
		}
	}

	return c.failAfterCapture(ctx, r, checkout.StatePersistFailed, errs.Mark(errs.Wrap(err, "failed to persist order"), ErrPersistence))
}

func (c *checkoutCommandsImpl) buildOrder(r *commitRun) (*order.Order, error) {
	snapshot := r.attempt.Snapshot()
	if snapshot == nil {
		return nil, checkout.ErrMissingSnapshot
	}

	lines, err := snapshot.OrderLines()
	if err != nil {
		return nil, err
	}
	applied, err := snapshot.AppliedCoupon()
	if err != nil {
		return nil, err
	}

	return order.NewPaidOrder(
		r.userID,
		r.key,
		lines,
		applied,
		snapshot.Amounts(),
		snapshot.Currency,
		r.req.Contact,
		r.attempt.PaymentReference(),
		c.clock.Now(),
	)
}

// adoptOrder finishes the attempt with an order an earlier run of the same key already persisted.
func (c *checkoutCommandsImpl) adoptOrder(ctx context.Context, r *commitRun, existing *order.Order) error {
	if err := c.compensate(ctx, r); err != nil {
		return c.failAfterCapture(ctx, r, checkout.StatePersistFailed, errs.Mark(err, ErrPersistence))
	}

	err := c.mutate(ctx, r, func(ctx context.Context, tx shared.Tx, next *checkout.Attempt) error {
		if err := c.resolveReconciliation(ctx, tx, existing.PaymentReference(), existing.ID()); err != nil {
			return err
		}
		next.RecordOrder(existing.ID())
		return next.Transition(checkout.StateOrderPersisted, c.clock.Now())
	})
	if err != nil {
		return err
	}

	r.order = existing
	r.replayed = true
	return nil
}
