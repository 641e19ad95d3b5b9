package shared

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"storefront-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	// ErrGatewayUnavailable is transient: transport failure, provider 5xx or rate limiting.
	ErrGatewayUnavailable = errs.New("payment gateway unavailable")
	// ErrGatewayRejected is definitive and never retried.
	ErrGatewayRejected = errs.New("payment rejected by gateway")
)

type IntentStatus string

const (
	IntentCreated   IntentStatus = "created"
	IntentAttempted IntentStatus = "attempted"
	IntentPaid      IntentStatus = "paid"
)

type IntentRequest struct {
	AmountMinor int64
	Currency    string
	Receipt     string
	Notes       map[string]string
}

type PaymentIntent struct {
	Reference       string
	AmountMinor     int64
	AmountPaidMinor int64
	Currency        string
	Receipt         string
	Status          IntentStatus
}

// IsCaptured reports whether the full amount has been paid.
func (p PaymentIntent) IsCaptured() bool {
	return p.Status == IntentPaid && p.AmountPaidMinor >= p.AmountMinor
}

type PaymentGateway interface {
	CreateIntent(ctx context.Context, req IntentRequest) (*PaymentIntent, error)
	FetchIntent(ctx context.Context, reference string) (*PaymentIntent, error)
}

const receiptPrefix = "rcpt_"

// Receipt is derived from the checkout's identity so retries of the same logical checkout reuse it.
// The provider caps receipts at 40 characters.
func Receipt(userID, idempotencyKey uuid.UUID) string {
	sum := sha256.Sum256([]byte(userID.String() + "|" + idempotencyKey.String()))
	return receiptPrefix + hex.EncodeToString(sum[:])[:32]
}

// CheckoutObserver records the outcome and latency of each checkout commit.
type CheckoutObserver interface {
	ObserveCheckout(outcome string, seconds float64)
}
