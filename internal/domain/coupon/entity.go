package coupon

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrCouponInactive = errors.New("coupon is inactive")

type Coupon struct {
	id        uuid.UUID
	code      Code
	percent   Percent
	active    bool
	createdAt time.Time
	updatedAt time.Time
}

func NewCoupon(
	id uuid.UUID,
	code string,
	discountPercent int32,
	active bool,
	createdAt, updatedAt time.Time,
) (*Coupon, error) {
	couponCode, err := NewCouponCode(code)
	if err != nil {
		return nil, err
	}

	percent, err := NewPercent(discountPercent)
	if err != nil {
		return nil, err
	}

	return &Coupon{
		id:        id,
		code:      couponCode,
		percent:   percent,
		active:    active,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (c *Coupon) ValidateUsage() error {
	if !c.active {
		return ErrCouponInactive
	}
	return nil
}

// Applied freezes the code and percent so later coupon edits cannot change a placed order.
func (c *Coupon) Applied() Applied {
	return Applied{Code: c.code, Percent: c.percent}
}

func (c *Coupon) ID() uuid.UUID        { return c.id }
func (c *Coupon) Code() Code           { return c.code }
func (c *Coupon) Percent() Percent     { return c.percent }
func (c *Coupon) IsActive() bool       { return c.active }
func (c *Coupon) CreatedAt() time.Time { return c.createdAt }
func (c *Coupon) UpdatedAt() time.Time { return c.updatedAt }

// Applied is the coupon snapshot carried on an order.
type Applied struct {
	Code    Code
	Percent Percent
}
