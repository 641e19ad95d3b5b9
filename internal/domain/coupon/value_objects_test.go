//go:build unit

package coupon_test

import (
	"testing"
	"time"

	"storefront-api/internal/domain/coupon"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercent_DiscountOf(t *testing.T) {
	tests := []struct {
		name    string
		percent int32
		gross   int64
		want    int64
	}{
		{name: "5の10%は四捨五入で1", percent: 10, gross: 5, want: 1},
		{name: "4の10%は切り捨てで0", percent: 10, gross: 4, want: 0},
		{name: "1010の15%", percent: 15, gross: 1010, want: 152},
		{name: "100の33%", percent: 33, gross: 100, want: 33},
		{name: "0%", percent: 0, gross: 999, want: 0},
		{name: "100%割引", percent: 100, gross: 999, want: 999},
		{name: "総額0", percent: 50, gross: 0, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := coupon.NewPercent(tt.percent)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.DiscountOf(tt.gross))
		})
	}
}

func TestNewPercent(t *testing.T) {
	for _, v := range []int32{-1, 101} {
		_, err := coupon.NewPercent(v)
		assert.ErrorIs(t, err, coupon.ErrInvalidDiscountPercent, "percent %d", v)
	}
}

func TestNewCouponCode(t *testing.T) {
	t.Run("OK: 大文字に正規化する", func(t *testing.T) {
		code, err := coupon.NewCouponCode("  save_10 ")
		require.NoError(t, err)
		assert.Equal(t, "SAVE_10", code.String())
	})

	t.Run("NG: 形式エラー", func(t *testing.T) {
		for _, raw := range []string{"", "AB", "HAS SPACE", "ÜBER10"} {
			_, err := coupon.NewCouponCode(raw)
			assert.ErrorIs(t, err, coupon.ErrInvalidCouponCode, "code %q", raw)
		}
	})
}

func TestCoupon_ValidateUsage(t *testing.T) {
	active, err := coupon.NewCoupon(uuid.New(), "SAVE10", 10, true, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.NoError(t, active.ValidateUsage())

	inactive, err := coupon.NewCoupon(uuid.New(), "SAVE10", 10, false, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.ErrorIs(t, inactive.ValidateUsage(), coupon.ErrCouponInactive)

	applied := active.Applied()
	assert.Equal(t, int32(10), applied.Percent.Value())
}
