package coupon

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCouponCode      = errors.New("invalid coupon code format")
	ErrInvalidDiscountPercent = errors.New("percentage discount must be between 0 and 100")
)

var couponCodeRegex = regexp.MustCompile(`^[A-Z0-9_-]{3,32}$`)

type Code string

// NewCouponCode normalises to upper case; codes are unique case-insensitively.
func NewCouponCode(code string) (Code, error) {
	code = NormalizeCode(code)
	if !couponCodeRegex.MatchString(code) {
		return Code(""), ErrInvalidCouponCode
	}
	return Code(code), nil
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (c Code) String() string {
	return string(c)
}

type Percent struct {
	value int32
}

func NewPercent(value int32) (Percent, error) {
	if value < 0 || value > 100 {
		return Percent{}, ErrInvalidDiscountPercent
	}
	return Percent{value: value}, nil
}

func (p Percent) Value() int32 {
	return p.value
}

// DiscountOf returns round_half_up(grossMinor * percent / 100) in minor units.
// Half-up is applied to the exact decimal quotient, so 10% of 5 is 1 and 10% of 4 is 0.
func (p Percent) DiscountOf(grossMinor int64) int64 {
	if grossMinor <= 0 || p.value == 0 {
		return 0
	}
	exact := decimal.NewFromInt(grossMinor).
		Mul(decimal.NewFromInt32(p.value)).
		Div(decimal.NewFromInt(100))
	return exact.Round(0).IntPart()
}
