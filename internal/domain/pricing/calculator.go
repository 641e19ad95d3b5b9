package pricing

import (
	"errors"

	"storefront-api/internal/domain/coupon"
	"storefront-api/internal/domain/order"
	"storefront-api/internal/domain/product"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// LineError identifies the cart line that made pricing fail.
type LineError struct {
	ProductID uuid.UUID
	Err       error
}

func (e *LineError) Error() string {
	return e.Err.Error() + ": " + e.ProductID.String()
}

func (e *LineError) Unwrap() error { return e.Err }

type PricedLine struct {
	ProductID      uuid.UUID
	Name           string
	Quantity       int32
	UnitPrice      product.Price
	LineTotalMinor int64
}

type Result struct {
	Lines         []PricedLine
	GrossMinor    int64
	DiscountMinor int64
	NetMinor      int64
	Coupon        *coupon.Applied
}

// Catalog is the point-in-time product view pricing works against.
type Catalog map[uuid.UUID]*product.Product

// Calculate prices a normalised cart. It is pure: the same inputs always give the same Result.
// A nil coupon means no discount; an inactive coupon fails pricing.
func Calculate(cart []order.CartLine, catalog Catalog, c *coupon.Coupon) (Result, error) {
	if len(cart) == 0 {
		return Result{}, order.ErrEmptyCart
	}

	res := Result{Lines: make([]PricedLine, 0, len(cart))}
	for _, line := range cart {
		if line.Quantity <= 0 {
			return Result{}, &LineError{ProductID: line.ProductID, Err: order.ErrInvalidQuantity}
		}
		p, ok := catalog[line.ProductID]
		if !ok || p == nil {
			return Result{}, &LineError{ProductID: line.ProductID, Err: ErrProductNotFound}
		}
		if !p.CanFulfil(line.Quantity) {
			return Result{}, &LineError{ProductID: line.ProductID, Err: ErrInsufficientStock}
		}

		total := p.Price().TimesMinor(line.Quantity)
		res.Lines = append(res.Lines, PricedLine{
			ProductID:      p.ID(),
			Name:           p.Name(),
			Quantity:       line.Quantity,
			UnitPrice:      p.Price(),
			LineTotalMinor: total,
		})
		res.GrossMinor += total
	}

	if c != nil {
		if err := c.ValidateUsage(); err != nil {
			return Result{}, err
		}
		applied := c.Applied()
		res.Coupon = &applied
		res.DiscountMinor = applied.Percent.DiscountOf(res.GrossMinor)
	}
	res.NetMinor = res.GrossMinor - res.DiscountMinor

	return res, nil
}

func (r Result) OrderLines() []order.Line {
	lines := make([]order.Line, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = order.Line{
			ProductID:      l.ProductID,
			Quantity:       l.Quantity,
			UnitPrice:      l.UnitPrice,
			LineTotalMinor: l.LineTotalMinor,
		}
	}
	return lines
}

func (r Result) Amounts() order.Amounts {
	return order.Amounts{
		GrossMinor:    r.GrossMinor,
		DiscountMinor: r.DiscountMinor,
		NetMinor:      r.NetMinor,
	}
}
