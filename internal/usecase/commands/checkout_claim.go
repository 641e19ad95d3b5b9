package commands

import (
	"context"

	"storefront-api/internal/domain/checkout"
	"storefront-api/internal/infra"
	"storefront-api/internal/pkg/errs"
	"storefront-api/internal/usecase/shared"

	"github.com/google/uuid"
)

// claim takes ownership of the (user, key) attempt, creating it on first use.
// A run returned with r.order set is a replay and must not be driven.
func (c *checkoutCommandsImpl) claim(ctx context.Context, userID, key uuid.UUID, req checkout.Request) (*commitRun, error) {
	now := c.clock.Now()
	hash := req.Hash()
	r := &commitRun{userID: userID, key: key, req: req}

	var held *checkout.Attempt
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r.attempt, held = nil, nil

		fresh := checkout.NewAttempt(key, userID, hash, now, c.cfg.AttemptLease)
		inserted, err := tx.CheckoutAttempts().TryInsert(ctx, tx.DB(), fresh)
		if err != nil {
			return err
		}
		if inserted {
			r.attempt = fresh
			return nil
		}

		claimed, err := tx.CheckoutAttempts().Claim(ctx, tx.DB(), key, userID, hash, now, now.Add(c.cfg.AttemptLease))
		if err != nil {
			return err
		}

		existing, err := tx.Reads().CheckoutAttempt(ctx, key, userID)
		if err != nil {
			return err
		}
		if claimed {
			r.attempt = existing
		} else {
			held = existing
		}
		return nil
	})
	if err != nil {
		return nil, errs.Wrap(err, "failed to claim checkout attempt")
	}

	if held != nil {
		return c.rejectClaim(ctx, r, held, hash)
	}

	if r.attempt.State().IsFailure() {
		if err := c.restart(ctx, r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (c *checkoutCommandsImpl) rejectClaim(ctx context.Context, r *commitRun, held *checkout.Attempt, hash string) (*commitRun, error) {
	if held.RequestHash() != hash {
		return nil, errs.Mark(errs.Newf("idempotency key %s was used for a different request", r.key), ErrIdempotencyKeyReused)
	}

	if held.State() != checkout.StateOrderPersisted {
		return nil, errs.Mark(errs.Newf("attempt %s is %s", r.key, held.State()), ErrCheckoutInProgress)
	}

	orderID := held.OrderID()
	if orderID == nil {
		return nil, errs.Newf("persisted attempt %s has no order", r.key)
	}
	o, err := c.uow.CommandReads().OrderByID(ctx, *orderID)
	if infra.IsKind(err, infra.KindNotFound) {
		// deleted by an admin after it was placed
		return nil, errs.Mark(errs.Wrapf(err, "order %s for key %s no longer exists", *orderID, r.key), ErrOrderNotFound)
	}
	if err != nil {
		return nil, errs.Wrap(err, "failed to load replayed order")
	}

	r.attempt = held
	r.order = o
	return r, nil
}

// restart reopens a failed attempt for the same request. Stock left behind by an
// interrupted compensation is returned first.
func (c *checkoutCommandsImpl) restart(ctx context.Context, r *commitRun) error {
	if len(r.attempt.Reserved()) > 0 {
		compCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.cfg.CommitTimeout)
		err := c.compensate(compCtx, r)
		cancel()
		if err != nil {
			if relErr := c.releaseLease(context.WithoutCancel(ctx), r); relErr != nil {
				c.logger.Warn("failed to release checkout lease", "idempotency_key", r.key, "error", relErr.Error())
			}
			return errs.Mark(err, ErrPaymentCapturedButOrderFailed)
		}
	}

	prev := r.attempt.State()
	err := c.mutate(ctx, r, func(_ context.Context, _ shared.Tx, next *checkout.Attempt) error {
		return next.Restart(c.clock.Now())
	})
	if err != nil {
		return errs.Wrap(err, "failed to restart checkout attempt")
	}

	c.logger.Info("checkout attempt restarted",
		"user_id", r.userID,
		"idempotency_key", r.key,
		"previous_state", prev,
		"payment_reference", r.attempt.PaymentReference())
	return nil
}
