//go:build unit || e2e

package builder

import (
	"time"

	"storefront-api/internal/domain/coupon"
	"storefront-api/internal/domain/order"
	"storefront-api/internal/domain/product"

	"github.com/google/uuid"
)

type OrderLineSpec struct {
	ProductID      uuid.UUID
	Quantity       int32
	UnitPriceMinor int64
}

type OrderBuilder struct {
	UserID           uuid.UUID
	IdempotencyKey   uuid.UUID
	Lines            []OrderLineSpec
	CouponCode       string
	CouponPercent    int32
	Currency         string
	Address          string
	Phone            string
	PaymentReference string
	Now              time.Time
}

func NewOrderBuilder() *OrderBuilder {
	return &OrderBuilder{
		UserID:         uuid.New(),
		IdempotencyKey: uuid.New(),
		Lines: []OrderLineSpec{
			{ProductID: uuid.New(), Quantity: 2, UnitPriceMinor: 500},
		},
		Currency:         "INR",
		Address:          "221B Baker Street, Mumbai",
		Phone:            "+919876543210",
		PaymentReference: "order_TEST0001",
		Now:              time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
	}
}

func (b *OrderBuilder) With(mutate func(*OrderBuilder)) *OrderBuilder {
	mutate(b)
	return b
}

func (b *OrderBuilder) WithCoupon(code string, percent int32) *OrderBuilder {
	b.CouponCode = code
	b.CouponPercent = percent
	return b
}

func (b *OrderBuilder) WithLine(productID uuid.UUID, quantity int32, unitPriceMinor int64) *OrderBuilder {
	b.Lines = append(b.Lines, OrderLineSpec{ProductID: productID, Quantity: quantity, UnitPriceMinor: unitPriceMinor})
	return b
}

// BuildDomain prices the lines the same way a checkout would.
func (b *OrderBuilder) BuildDomain() (*order.Order, error) {
	lines := make([]order.Line, 0, len(b.Lines))
	var gross int64
	for _, l := range b.Lines {
		price, err := product.NewPriceFromMinor(l.UnitPriceMinor)
		if err != nil {
			return nil, err
		}
		total := price.TimesMinor(l.Quantity)
		gross += total
		lines = append(lines, order.Line{
			ProductID:      l.ProductID,
			Quantity:       l.Quantity,
			UnitPrice:      price,
			LineTotalMinor: total,
		})
	}

	var applied *coupon.Applied
	var discount int64
	if b.CouponCode != "" {
		code, err := coupon.NewCouponCode(b.CouponCode)
		if err != nil {
			return nil, err
		}
		pct, err := coupon.NewPercent(b.CouponPercent)
		if err != nil {
			return nil, err
		}
		applied = &coupon.Applied{Code: code, Percent: pct}
		discount = pct.DiscountOf(gross)
	}

	contact, err := order.NewContact(b.Address, b.Phone)
	if err != nil {
		return nil, err
	}

	return order.NewPaidOrder(
		b.UserID,
		b.IdempotencyKey,
		lines,
		applied,
		order.Amounts{GrossMinor: gross, DiscountMinor: discount, NetMinor: gross - discount},
		b.Currency,
		contact,
		b.PaymentReference,
		b.Now,
	)
}
