package payment

import (
	"context"
	"sync"

	"storefront-api/internal/pkg/errs"
	"storefront-api/internal/usecase/shared"

	"github.com/google/uuid"
)

// SandboxGateway is an in-process gateway for local runs and tests.
// Intents are created already paid, so checkout can commit without a real charge.
type SandboxGateway struct {
	mu        sync.Mutex
	byRef     map[string]*shared.PaymentIntent
	byReceipt map[string]string
	autoPay   bool
}

func NewSandboxGateway() *SandboxGateway {
	return &SandboxGateway{
		byRef:     make(map[string]*shared.PaymentIntent),
		byReceipt: make(map[string]string),
		autoPay:   true,
	}
}

// WithoutAutoPay leaves new intents in "created" until MarkPaid is called.
func (g *SandboxGateway) WithoutAutoPay() *SandboxGateway {
	g.autoPay = false
	return g
}

func (g *SandboxGateway) CreateIntent(_ context.Context, req shared.IntentRequest) (*shared.PaymentIntent, error) {
	if req.AmountMinor <= 0 {
		return nil, errs.Mark(errs.Newf("amount must be positive, got %d", req.AmountMinor), shared.ErrGatewayRejected)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if ref, ok := g.byReceipt[req.Receipt]; ok && req.Receipt != "" {
		existing := *g.byRef[ref]
		return &existing, nil
	}

	intent := &shared.PaymentIntent{
		Reference:   "order_" + uuid.NewString()[:14],
		AmountMinor: req.AmountMinor,
		Currency:    req.Currency,
		Receipt:     req.Receipt,
		Status:      shared.IntentCreated,
	}
	if g.autoPay {
		intent.Status = shared.IntentPaid
		intent.AmountPaidMinor = req.AmountMinor
	}

	g.byRef[intent.Reference] = intent
	if req.Receipt != "" {
		g.byReceipt[req.Receipt] = intent.Reference
	}

	out := *intent
	return &out, nil
}

func (g *SandboxGateway) FetchIntent(_ context.Context, reference string) (*shared.PaymentIntent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	intent, ok := g.byRef[reference]
	if !ok {
		return nil, errs.Mark(errs.Newf("unknown payment reference %q", reference), shared.ErrGatewayRejected)
	}
	out := *intent
	return &out, nil
}

// MarkPaid simulates the customer completing payment.
func (g *SandboxGateway) MarkPaid(reference string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	intent, ok := g.byRef[reference]
	if !ok {
		return false
	}
	intent.Status = shared.IntentPaid
	intent.AmountPaidMinor = intent.AmountMinor
	return true
}
