package commands

import (
	"context"
	"encoding/json"

	"storefront-api/internal/domain/checkout"
	"storefront-api/internal/pkg/errs"
	"storefront-api/internal/usecase/shared"

	"github.com/google/uuid"
)

// compensate returns every reserved line to the catalog. Each increment commits with the
// journal entry that releases it, so a crash mid-way never increments a line twice.
func (c *checkoutCommandsImpl) compensate(ctx context.Context, r *commitRun) error {
	var failed error
	for _, res := range r.attempt.Reserved() {
		err := c.mutate(ctx, r, func(ctx context.Context, tx shared.Tx, next *checkout.Attempt) error {
			if err := tx.Products().ConditionalIncrement(ctx, tx.DB(), res.ProductID, res.Quantity); err != nil {
				return err
			}
			next.ReleaseReservation(res.ProductID)
			return nil
		})
		if err != nil {
			c.logger.Error("failed to release reserved stock",
				"idempotency_key", r.key,
				"product_id", res.ProductID,
				"quantity", res.Quantity,
				"error", err.Error())
			failed = errs.Combine(failed, errs.Wrapf(err, "failed to release %d of product %s", res.Quantity, res.ProductID))
		}
	}

	if failed != nil {
		return errs.Mark(failed, ErrCompensationFailed)
	}
	return nil
}

type reconciliationPayload struct {
	UserID           string                 `json:"userId"`
	IdempotencyKey   string                 `json:"idempotencyKey"`
	PaymentReference string                 `json:"paymentReference"`
	AmountMinor      int64                  `json:"amountMinor"`
	Currency         string                 `json:"currency"`
	State            string                 `json:"state"`
	Reason           string                 `json:"reason"`
	Outstanding      []checkout.Reservation `json:"outstanding,omitempty"`
}

// failAfterCapture undoes the reservations of a paid attempt, ends it in a failure state and
// queues a reconciliation job so the charge can be refunded or fulfilled by hand.
func (c *checkoutCommandsImpl) failAfterCapture(ctx context.Context, r *commitRun, state checkout.State, cause error) error {
	topic := shared.TopicPaymentCapturedOrderFailed
	if compErr := c.compensate(ctx, r); compErr != nil {
		topic = shared.TopicCompensationFailed
		cause = errs.Mark(errs.Combine(cause, compErr), ErrCompensationFailed)
	}
	cause = errs.Mark(cause, ErrPaymentCapturedButOrderFailed)
	r.cause = cause

	var amount int64
	var currency string
	if s := r.attempt.Snapshot(); s != nil {
		amount, currency = s.NetMinor, s.Currency
	}

	logArgs := []any{
		"user_id", r.userID,
		"idempotency_key", r.key,
		"payment_reference", r.attempt.PaymentReference(),
		"amount_minor", amount,
		"currency", currency,
		"state", state,
		"topic", topic,
		"error", cause.Error(),
	}

	payload, err := json.Marshal(reconciliationPayload{
		UserID:           r.userID.String(),
		IdempotencyKey:   r.key.String(),
		PaymentReference: r.attempt.PaymentReference(),
		AmountMinor:      amount,
		Currency:         currency,
		State:            state.String(),
		Reason:           cause.Error(),
		Outstanding:      r.attempt.Reserved(),
	})
	if err != nil {
		c.reconcile.Error("payment captured but order failed", logArgs...)
		return errs.Wrap(err, "failed to encode reconciliation job")
	}

	err = c.mutate(ctx, r, func(ctx context.Context, tx shared.Tx, next *checkout.Attempt) error {
		now := c.clock.Now()
		if err := next.Fail(state, cause.Error(), now); err != nil {
			return err
		}
		return tx.Notifications().CreateJob(ctx, tx.DB(), shared.NotificationKindReconciliation, topic, payload, now)
	})

	c.reconcile.Error("payment captured but order failed", logArgs...)
	return err
}

// resolveReconciliation closes the open reconciliation jobs of a charge that now backs an order,
// in the transaction that persists or adopts that order.
func (c *checkoutCommandsImpl) resolveReconciliation(ctx context.Context, tx shared.Tx, paymentReference string, orderID uuid.UUID) error {
	note := "superseded by order " + orderID.String()
	n, err := tx.Notifications().ResolveReconciliation(ctx, tx.DB(), paymentReference, note)
	if err != nil {
		return errs.Wrap(err, "failed to resolve reconciliation jobs")
	}
	if n > 0 {
		c.logger.Info("reconciliation superseded by order",
			"payment_reference", paymentReference,
			"order_id", orderID,
			"jobs", n)
	}
	return nil
}
