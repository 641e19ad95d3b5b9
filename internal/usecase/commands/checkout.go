package commands

import (
	"context"
	"log/slog"
	"time"

	"storefront-api/internal/domain/checkout"
	"storefront-api/internal/domain/order"
	"storefront-api/internal/pkg/clock"
	"storefront-api/internal/pkg/config"
	"storefront-api/internal/pkg/errs"
	"storefront-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type PlaceOrderResult struct {
	Order    *order.Order
	Replayed bool
}

type CheckoutCommands interface {
	// PlaceOrder drives one checkout attempt to a terminal state. Re-submitting a persisted key replays its order.
	PlaceOrder(ctx context.Context, userID, idempotencyKey uuid.UUID, req checkout.Request) (*PlaceOrderResult, error)
}

// step handles exactly one non-terminal state and must leave the attempt in a later state or return an error.
type step func(ctx context.Context, r *commitRun) error

// commitRun is the in-memory view of one PlaceOrder call.
type commitRun struct {
	userID   uuid.UUID
	key      uuid.UUID
	req      checkout.Request
	attempt  *checkout.Attempt
	order    *order.Order
	replayed bool
	cause    error
}

type checkoutCommandsImpl struct {
	uow       shared.UnitOfWork
	quoter    Quoter
	gateway   shared.PaymentGateway
	observer  shared.CheckoutObserver
	clock     clock.Clock
	cfg       config.CheckoutConfig
	currency  string
	logger    *slog.Logger
	reconcile *slog.Logger
	handlers  map[checkout.State]step
}

func NewCheckoutCommands(
	uow shared.UnitOfWork,
	quoter Quoter,
	gateway shared.PaymentGateway,
	observer shared.CheckoutObserver,
	clk clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
) CheckoutCommands {
	c := &checkoutCommandsImpl{
		uow:       uow,
		quoter:    quoter,
		gateway:   gateway,
		observer:  observer,
		clock:     clk,
		cfg:       cfg.Checkout,
		currency:  cfg.Payment.Currency,
		logger:    logger,
		reconcile: logger.With("channel", "reconciliation"),
	}
	c.handlers = map[checkout.State]step{
		checkout.StateInitiated:        c.price,
		checkout.StatePriced:           c.requestPayment,
		checkout.StatePaymentPending:   c.confirmPayment,
		checkout.StatePaymentConfirmed: c.reserveStock,
		checkout.StateStockReserved:    c.persistOrder,
	}
	return c
}

func (c *checkoutCommandsImpl) PlaceOrder(ctx context.Context, userID, idempotencyKey uuid.UUID, req checkout.Request) (res *PlaceOrderResult, err error) {
	start := time.Now()
	defer func() {
		c.observer.ObserveCheckout(checkoutOutcome(res, err), time.Since(start).Seconds())
	}()

	r, err := c.claim(ctx, userID, idempotencyKey, req)
	if err != nil {
		return nil, err
	}
	if r.order != nil {
		return &PlaceOrderResult{Order: r.order, Replayed: true}, nil
	}

	if err := c.drive(ctx, r); err != nil {
		return nil, err
	}

	if r.attempt.State() != checkout.StateOrderPersisted {
		if r.cause == nil {
			return nil, errs.Newf("checkout ended in %s", r.attempt.State())
		}
		return nil, r.cause
	}

	c.logger.Info("checkout committed",
		"order_id", r.order.ID(),
		"user_id", userID,
		"idempotency_key", idempotencyKey,
		"net_minor", r.order.Amounts().NetMinor,
		"replayed", r.replayed)

	return &PlaceOrderResult{Order: r.order, Replayed: r.replayed}, nil
}

// drive runs handlers until the attempt is terminal. Once the charge is captured the remaining steps
// ignore caller cancellation and are bounded by the commit timeout instead.
func (c *checkoutCommandsImpl) drive(ctx context.Context, r *commitRun) error {
	runCtx := ctx
	var cancel context.CancelFunc
	defer func() {
		if cancel != nil {
			cancel()
		}
	}()

	for !r.attempt.State().IsTerminal() {
		state := r.attempt.State()
		if cancel == nil && state.PaymentCaptured() {
			runCtx, cancel = context.WithTimeout(context.WithoutCancel(ctx), c.cfg.CommitTimeout)
		}

		handle, ok := c.handlers[state]
		if !ok {
			return errs.Newf("no checkout handler for state %s", state)
		}
		if err := handle(runCtx, r); err != nil {
			return c.abandon(ctx, r, err)
		}
	}
	return nil
}

// abandon hands a stuck attempt back to the next submission of the same key.
func (c *checkoutCommandsImpl) abandon(ctx context.Context, r *commitRun, cause error) error {
	state := r.attempt.State()
	logArgs := []any{
		"user_id", r.userID,
		"idempotency_key", r.key,
		"state", state,
		"payment_reference", r.attempt.PaymentReference(),
		"error", cause.Error(),
	}

	if !state.IsTerminal() {
		if err := c.releaseLease(context.WithoutCancel(ctx), r); err != nil {
			c.logger.Warn("failed to release checkout lease", "idempotency_key", r.key, "error", err.Error())
		}
	}

	if state.PaymentCaptured() {
		c.reconcile.Error("checkout aborted after payment capture", logArgs...)
		return errs.Mark(errs.Wrap(cause, "checkout aborted after payment capture"), ErrPersistence)
	}

	c.logger.Error("checkout aborted", logArgs...)
	return errs.Wrap(cause, "checkout aborted")
}

func (c *checkoutCommandsImpl) releaseLease(ctx context.Context, r *commitRun) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		next := r.attempt.Clone()
		next.ReleaseLease(c.clock.Now())
		return tx.CheckoutAttempts().Save(ctx, tx.DB(), next)
	})
}

// mutate applies fn to a copy of the attempt and saves it in the same transaction as fn's writes.
// The copy only replaces r.attempt once the transaction commits.
func (c *checkoutCommandsImpl) mutate(ctx context.Context, r *commitRun, fn func(ctx context.Context, tx shared.Tx, next *checkout.Attempt) error) error {
	var updated *checkout.Attempt
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// Within may retry; start from the committed attempt every time
		next := r.attempt.Clone()
		if err := fn(ctx, tx, next); err != nil {
			return err
		}

		now := c.clock.Now()
		if next.State().IsTerminal() {
			next.ReleaseLease(now)
		} else {
			next.Renew(now, c.cfg.AttemptLease)
		}

		if err := tx.CheckoutAttempts().Save(ctx, tx.DB(), next); err != nil {
			return err
		}
		updated = next
		return nil
	})
	if err != nil {
		return err
	}

	r.attempt = updated
	return nil
}

// fail records a failure that happened before any charge was captured.
func (c *checkoutCommandsImpl) fail(ctx context.Context, r *commitRun, state checkout.State, cause error) error {
	r.cause = cause
	return c.mutate(ctx, r, func(_ context.Context, _ shared.Tx, next *checkout.Attempt) error {
		return next.Fail(state, cause.Error(), c.clock.Now())
	})
}
