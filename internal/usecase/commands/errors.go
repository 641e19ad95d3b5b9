package commands

import (
	"storefront-api/internal/pkg/errs"
	"storefront-api/internal/usecase/shared"
)

// Sentinels are attached with errs.Mark so the original message survives; match them with errs.Is.
var (
	ErrValidation        = errs.New("validation failed")
	ErrProductNotFound   = errs.New("product not found")
	ErrInsufficientStock = errs.New("insufficient stock")
	ErrCouponNotFound    = errs.New("coupon not found")
	ErrCouponInactive    = errs.New("coupon inactive")

	ErrPaymentNotConfirmed = errs.New("payment not confirmed")
	ErrStockConflict       = errs.New("stock conflict")
	ErrPersistence         = errs.New("order persistence failed")

	// ErrPaymentCapturedButOrderFailed flags a charge with no order; it always comes with a reconciliation job.
	ErrPaymentCapturedButOrderFailed = errs.New("payment captured but order failed")
	ErrCompensationFailed            = errs.New("stock compensation failed")

	ErrIdempotencyKeyReused = errs.New("idempotency key reused with a different request")
	ErrCheckoutInProgress   = errs.New("checkout already in progress for this idempotency key")

	ErrOrderNotFound           = errs.New("order not found")
	ErrInvalidStatusTransition = errs.New("invalid order status transition")
	ErrOrderStatusConflict     = errs.New("order status changed concurrently")

	ErrReconciliationJobNotFound = errs.New("reconciliation job not found")
)

// Checkout outcomes as reported to the CheckoutObserver.
const (
	OutcomePersisted     = "persisted"
	OutcomeReplayed      = "replayed"
	OutcomePricingFailed = "pricing_failed"
	OutcomePaymentFailed = "payment_failed"
	OutcomeStockConflict = "stock_conflict"
	OutcomePersistFailed = "persist_failed"
	OutcomeInProgress    = "in_progress"
	OutcomeKeyReused     = "key_reused"
	OutcomeError         = "error"
)

func checkoutOutcome(res *PlaceOrderResult, err error) string {
	switch {
	case err == nil && res != nil && res.Replayed:
		return OutcomeReplayed
	case err == nil:
		return OutcomePersisted
	case errs.Is(err, ErrCheckoutInProgress):
		return OutcomeInProgress
	case errs.Is(err, ErrIdempotencyKeyReused):
		return OutcomeKeyReused
	case errs.Is(err, ErrStockConflict):
		return OutcomeStockConflict
	case errs.Is(err, ErrPersistence):
		return OutcomePersistFailed
	case errs.IsAny(err, ErrValidation, ErrProductNotFound, ErrInsufficientStock, ErrCouponNotFound, ErrCouponInactive):
		return OutcomePricingFailed
	case errs.IsAny(err, ErrPaymentNotConfirmed, shared.ErrGatewayRejected, shared.ErrGatewayUnavailable):
		return OutcomePaymentFailed
	default:
		return OutcomeError
	}
}
