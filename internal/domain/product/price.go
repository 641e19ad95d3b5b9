package product

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrNonPositivePrice    = errors.New("price must be positive")
	ErrPricePrecision      = errors.New("price must have at most two decimal places")
	ErrNegativeStock       = errors.New("stock cannot be negative")
	ErrNonPositiveQuantity = errors.New("quantity must be positive")
)

// minorUnitExponent is the number of decimal places of the minor currency unit (paise, cents).
const minorUnitExponent = 2

type Price struct {
	amount decimal.Decimal
}

func NewPrice(amount decimal.Decimal) (Price, error) {
	if !amount.IsPositive() {
		return Price{}, ErrNonPositivePrice
	}
	if !amount.Equal(amount.Truncate(minorUnitExponent)) {
		return Price{}, ErrPricePrecision
	}
	return Price{amount: amount}, nil
}

func NewPriceFromMinor(minor int64) (Price, error) {
	return NewPrice(decimal.New(minor, -minorUnitExponent))
}

func (p Price) Decimal() decimal.Decimal { return p.amount }

// MinorUnits is exact because NewPrice rejects sub-minor precision.
func (p Price) MinorUnits() int64 {
	return p.amount.Shift(minorUnitExponent).IntPart()
}

func (p Price) String() string {
	return p.amount.StringFixed(minorUnitExponent)
}

func (p Price) TimesMinor(quantity int32) int64 {
	return p.MinorUnits() * int64(quantity)
}
