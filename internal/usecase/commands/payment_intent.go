package commands

import (
	"context"

	"storefront-api/internal/domain/checkout"
	"storefront-api/internal/domain/pricing"
	"storefront-api/internal/pkg/config"
	"storefront-api/internal/pkg/errs"
	"storefront-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type PaymentIntentResult struct {
	Intent  *shared.PaymentIntent
	Pricing pricing.Result
}

type PaymentCommands interface {
	// CreateIntent prices the cart and asks the gateway for an intent of the net amount.
	// The receipt is derived from (user, key), so repeating the call never opens a second charge.
	CreateIntent(ctx context.Context, userID, idempotencyKey uuid.UUID, cart checkout.Cart) (*PaymentIntentResult, error)
}

type paymentCommandsImpl struct {
	quoter   Quoter
	gateway  shared.PaymentGateway
	currency string
}

func NewPaymentCommands(quoter Quoter, gateway shared.PaymentGateway, cfg config.PaymentConfig) PaymentCommands {
	return &paymentCommandsImpl{
		quoter:   quoter,
		gateway:  gateway,
		currency: cfg.Currency,
	}
}

func (p *paymentCommandsImpl) CreateIntent(ctx context.Context, userID, idempotencyKey uuid.UUID, cart checkout.Cart) (*PaymentIntentResult, error) {
	res, err := p.quoter.Quote(ctx, cart)
	if err != nil {
		return nil, err
	}

	intent, err := p.gateway.CreateIntent(ctx, shared.IntentRequest{
		AmountMinor: res.NetMinor,
		Currency:    p.currency,
		Receipt:     shared.Receipt(userID, idempotencyKey),
		Notes: map[string]string{
			"user_id":         userID.String(),
			"idempotency_key": idempotencyKey.String(),
		},
	})
	if err != nil {
		return nil, errs.Wrap(err, "failed to create payment intent")
	}
	// the gateway hands back the key's first intent, which was priced for another cart
	if intent.AmountMinor != res.NetMinor {
		return nil, errs.Mark(errs.Newf("idempotency key %s already holds intent %s for %d, cart now totals %d",
			idempotencyKey, intent.Reference, intent.AmountMinor, res.NetMinor), ErrIdempotencyKeyReused)
	}

	return &PaymentIntentResult{Intent: intent, Pricing: res}, nil
}
