package order

import (
	"errors"
	"time"

	"storefront-api/internal/domain/coupon"
	"storefront-api/internal/domain/product"

	"github.com/google/uuid"
)

var (
	ErrNoLines          = errors.New("order must have at least one line")
	ErrAmountMismatch   = errors.New("order amounts do not add up")
	ErrMissingReference = errors.New("paid order requires a payment reference")
	ErrMissingKey       = errors.New("order requires an idempotency key")
)

// Line is a cart line with the unit price captured at commit time.
type Line struct {
	ProductID      uuid.UUID
	Quantity       int32
	UnitPrice      product.Price
	LineTotalMinor int64
}

// Amounts are minor currency units; Net = Gross - Discount.
type Amounts struct {
	GrossMinor    int64
	DiscountMinor int64
	NetMinor      int64
}

func (a Amounts) Validate() error {
	if a.GrossMinor <= 0 || a.DiscountMinor < 0 || a.DiscountMinor > a.GrossMinor {
		return ErrAmountMismatch
	}
	if a.NetMinor != a.GrossMinor-a.DiscountMinor {
		return ErrAmountMismatch
	}
	return nil
}

type Order struct {
	id               uuid.UUID
	userID           uuid.UUID
	idempotencyKey   uuid.UUID
	lines            []Line
	coupon           *coupon.Applied
	amounts          Amounts
	currency         string
	contact          Contact
	status           Status
	paymentReference string
	createdAt        time.Time
	updatedAt        time.Time
}

// NewPaidOrder builds the single order created by a successful checkout commit.
func NewPaidOrder(
	userID, idempotencyKey uuid.UUID,
	lines []Line,
	applied *coupon.Applied,
	amounts Amounts,
	currency string,
	contact Contact,
	paymentReference string,
	now time.Time,
) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrNoLines
	}
	if idempotencyKey == uuid.Nil {
		return nil, ErrMissingKey
	}
	if paymentReference == "" {
		return nil, ErrMissingReference
	}
	if err := amounts.Validate(); err != nil {
		return nil, err
	}

	var gross int64
	for _, l := range lines {
		if l.Quantity <= 0 || l.LineTotalMinor != l.UnitPrice.TimesMinor(l.Quantity) {
			return nil, ErrAmountMismatch
		}
		gross += l.LineTotalMinor
	}
	if gross != amounts.GrossMinor {
		return nil, ErrAmountMismatch
	}

	return &Order{
		id:               uuid.New(),
		userID:           userID,
		idempotencyKey:   idempotencyKey,
		lines:            append([]Line(nil), lines...),
		coupon:           applied,
		amounts:          amounts,
		currency:         currency,
		contact:          contact,
		status:           StatusPaid,
		paymentReference: paymentReference,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// Reconstruct rebuilds an order loaded from storage without re-validating amounts.
func Reconstruct(
	id, userID, idempotencyKey uuid.UUID,
	lines []Line,
	applied *coupon.Applied,
	amounts Amounts,
	currency string,
	contact Contact,
	status Status,
	paymentReference string,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:               id,
		userID:           userID,
		idempotencyKey:   idempotencyKey,
		lines:            lines,
		coupon:           applied,
		amounts:          amounts,
		currency:         currency,
		contact:          contact,
		status:           status,
		paymentReference: paymentReference,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// ChangeStatus applies an administrative transition and reports whether stock must be returned.
func (o *Order) ChangeStatus(next Status, now time.Time) (releaseStock bool, err error) {
	if !o.status.CanTransitionTo(next) {
		return false, ErrInvalidStatusTransition
	}
	releaseStock = o.status.ReleasesStock(next)
	o.status = next
	o.updatedAt = now
	return releaseStock, nil
}

func (o *Order) ID() uuid.UUID             { return o.id }
func (o *Order) UserID() uuid.UUID         { return o.userID }
func (o *Order) IdempotencyKey() uuid.UUID { return o.idempotencyKey }
func (o *Order) Lines() []Line             { return o.lines }
func (o *Order) Coupon() *coupon.Applied   { return o.coupon }
func (o *Order) Amounts() Amounts          { return o.amounts }
func (o *Order) Currency() string          { return o.currency }
func (o *Order) Contact() Contact          { return o.contact }
func (o *Order) Status() Status            { return o.status }
func (o *Order) PaymentReference() string  { return o.paymentReference }
func (o *Order) CreatedAt() time.Time      { return o.createdAt }
func (o *Order) UpdatedAt() time.Time      { return o.updatedAt }
