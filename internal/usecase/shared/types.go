package shared

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Write-side snapshots keep commands independent of the read-side view types.
type ProductSnapshot struct {
	ID    uuid.UUID
	Name  string
	Price decimal.Decimal
	Stock int32
	Sold  int32
}

type CouponSnapshot struct {
	ID              uuid.UUID
	Code            string
	DiscountPercent int32
	Active          bool
}

// Notification kinds and topics written to the outbox.
const (
	NotificationKindReconciliation = "reconciliation"
	NotificationKindEmail          = "email"

	TopicPaymentCapturedOrderFailed = "payment_captured_order_failed"
	TopicCompensationFailed         = "compensation_failed"
	TopicOrderPlaced                = "order_placed"
)
