//go:build unit

package checkout_test

import (
	"testing"
	"time"

	"storefront-api/internal/domain/checkout"
	"storefront-api/internal/domain/coupon"
	"storefront-api/internal/domain/order"
	"storefront-api/internal/domain/pricing"
	"storefront-api/internal/domain/product"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	t0    = time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	lease = 30 * time.Second
)

func TestState_Transitions(t *testing.T) {
	allowed := []struct{ from, to checkout.State }{
		{checkout.StateInitiated, checkout.StatePriced},
		{checkout.StateInitiated, checkout.StatePricingFailed},
		{checkout.StatePriced, checkout.StatePaymentPending},
		{checkout.StatePriced, checkout.StatePaymentFailed},
		{checkout.StatePaymentPending, checkout.StatePaymentConfirmed},
		{checkout.StatePaymentPending, checkout.StatePaymentFailed},
		{checkout.StatePaymentConfirmed, checkout.StateStockReserved},
		{checkout.StatePaymentConfirmed, checkout.StateStockConflict},
		{checkout.StatePaymentConfirmed, checkout.StatePersistFailed},
		{checkout.StatePaymentConfirmed, checkout.StateOrderPersisted},
		{checkout.StateStockReserved, checkout.StateOrderPersisted},
		{checkout.StateStockReserved, checkout.StatePersistFailed},
	}
	for _, tt := range allowed {
		assert.True(t, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}

	forbidden := []struct{ from, to checkout.State }{
		{checkout.StateInitiated, checkout.StatePaymentConfirmed},
		{checkout.StatePriced, checkout.StateStockReserved},
		{checkout.StateStockReserved, checkout.StateStockConflict},
		{checkout.StateOrderPersisted, checkout.StateInitiated},
		{checkout.StatePersistFailed, checkout.StateOrderPersisted},
	}
	for _, tt := range forbidden {
		assert.False(t, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestState_Classification(t *testing.T) {
	tests := []struct {
		state    checkout.State
		terminal bool
		failure  bool
		captured bool
	}{
		{checkout.StateInitiated, false, false, false},
		{checkout.StatePriced, false, false, false},
		{checkout.StatePaymentPending, false, false, false},
		{checkout.StatePaymentConfirmed, false, false, true},
		{checkout.StateStockReserved, false, false, true},
		{checkout.StateOrderPersisted, true, false, true},
		{checkout.StatePricingFailed, true, true, false},
		{checkout.StatePaymentFailed, true, true, false},
		{checkout.StateStockConflict, true, true, true},
		{checkout.StatePersistFailed, true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			assert.Equal(t, tt.terminal, tt.state.IsTerminal())
			assert.Equal(t, tt.failure, tt.state.IsFailure())
			assert.Equal(t, tt.captured, tt.state.PaymentCaptured())

			parsed, err := checkout.ParseState(tt.state.String())
			require.NoError(t, err)
			assert.Equal(t, tt.state, parsed)
		})
	}

	_, err := checkout.ParseState("SHIPPED")
	assert.Error(t, err)
}

func TestAttempt_Lifecycle(t *testing.T) {
	a := checkout.NewAttempt(uuid.New(), uuid.New(), "hash", t0, lease)
	assert.Equal(t, checkout.StateInitiated, a.State())
	assert.False(t, a.LeaseExpired(t0))
	assert.True(t, a.LeaseExpired(t0.Add(lease)))

	require.NoError(t, a.Transition(checkout.StatePriced, t0))
	require.ErrorIs(t, a.Transition(checkout.StateOrderPersisted, t0), checkout.ErrIllegalTransition)
	assert.Equal(t, checkout.StatePriced, a.State())

	a.RecordPayment("order_ABC")
	require.NoError(t, a.Transition(checkout.StatePaymentPending, t0))
	require.NoError(t, a.Transition(checkout.StatePaymentConfirmed, t0))

	p1, p2 := uuid.New(), uuid.New()
	a.RecordReservation(checkout.Reservation{ProductID: p1, Quantity: 2})
	a.RecordReservation(checkout.Reservation{ProductID: p2, Quantity: 1})
	assert.True(t, a.IsReserved(p1))

	a.ReleaseReservation(p1)
	assert.False(t, a.IsReserved(p1))
	assert.Equal(t, []checkout.Reservation{{ProductID: p2, Quantity: 1}}, a.Reserved())

	later := t0.Add(time.Minute)
	a.ReleaseLease(later)
	assert.True(t, a.LeaseExpired(later))
	a.Renew(later, lease)
	assert.Equal(t, later.Add(lease), a.LeaseExpiresAt())
}

func TestAttempt_Fail(t *testing.T) {
	t.Run("OK: 失敗状態と理由を記録する", func(t *testing.T) {
		a := checkout.NewAttempt(uuid.New(), uuid.New(), "hash", t0, lease)
		require.NoError(t, a.Fail(checkout.StatePricingFailed, "coupon inactive", t0))
		assert.Equal(t, checkout.StatePricingFailed, a.State())
		assert.Equal(t, "coupon inactive", a.Failure())
	})

	t.Run("NG: 失敗状態でない遷移先", func(t *testing.T) {
		a := checkout.NewAttempt(uuid.New(), uuid.New(), "hash", t0, lease)
		assert.ErrorIs(t, a.Fail(checkout.StatePriced, "x", t0), checkout.ErrIllegalTransition)
	})

	t.Run("NG: 現在の状態から到達できない失敗", func(t *testing.T) {
		a := checkout.NewAttempt(uuid.New(), uuid.New(), "hash", t0, lease)
		assert.ErrorIs(t, a.Fail(checkout.StateStockConflict, "x", t0), checkout.ErrIllegalTransition)
	})
}

func TestAttempt_Restart(t *testing.T) {
	t.Run("OK: 決済参照を残して初期状態に戻す", func(t *testing.T) {
		a := checkout.NewAttempt(uuid.New(), uuid.New(), "hash", t0, lease)
		require.NoError(t, a.Transition(checkout.StatePriced, t0))
		a.RecordPricing(checkout.Snapshot{GrossMinor: 100, NetMinor: 100, Currency: "INR"})
		a.RecordPayment("order_ABC")
		require.NoError(t, a.Fail(checkout.StatePaymentFailed, "not captured", t0))

		require.NoError(t, a.Restart(t0.Add(time.Second)))
		assert.Equal(t, checkout.StateInitiated, a.State())
		assert.Equal(t, "order_ABC", a.PaymentReference())
		assert.Nil(t, a.Snapshot())
		assert.Empty(t, a.Failure())
	})

	t.Run("NG: 失敗していない", func(t *testing.T) {
		a := checkout.NewAttempt(uuid.New(), uuid.New(), "hash", t0, lease)
		assert.ErrorIs(t, a.Restart(t0), checkout.ErrNotRestartable)
	})

	t.Run("NG: 予約が残っている", func(t *testing.T) {
		a := checkout.ReconstructAttempt(uuid.New(), uuid.New(), "hash", checkout.StateStockConflict, "order_ABC", nil,
			[]checkout.Reservation{{ProductID: uuid.New(), Quantity: 1}}, nil, "conflict", t0, t0, t0)
		assert.ErrorIs(t, a.Restart(t0), checkout.ErrReservationsOutstanding)
	})
}

func TestAttempt_CloneIsIndependent(t *testing.T) {
	orderID := uuid.New()
	a := checkout.ReconstructAttempt(uuid.New(), uuid.New(), "hash", checkout.StateStockReserved, "order_ABC",
		&checkout.Snapshot{Lines: []checkout.SnapshotLine{{ProductID: uuid.New(), Quantity: 1}}},
		[]checkout.Reservation{{ProductID: uuid.New(), Quantity: 1}}, &orderID, "", t0, t0, t0)

	c := a.Clone()
	c.ReleaseReservation(a.Reserved()[0].ProductID)
	c.Snapshot().Lines[0].Quantity = 99
	*c.OrderID() = uuid.New()

	assert.Len(t, a.Reserved(), 1)
	assert.Equal(t, int32(1), a.Snapshot().Lines[0].Quantity)
	assert.Equal(t, orderID, *a.OrderID())
}

func TestSnapshot_RoundTrip(t *testing.T) {
	price, err := product.NewPriceFromMinor(333)
	require.NoError(t, err)
	p, err := product.Reconstruct(uuid.New(), "lamp", price, 5, 0, t0, t0)
	require.NoError(t, err)
	c, err := coupon.NewCoupon(uuid.New(), "TENOFF", 10, true, t0, t0)
	require.NoError(t, err)

	res, err := pricing.Calculate([]order.CartLine{{ProductID: p.ID(), Quantity: 3}}, pricing.Catalog{p.ID(): p}, c)
	require.NoError(t, err)

	s := checkout.NewSnapshot(res, "INR")
	assert.Equal(t, order.Amounts{GrossMinor: 999, DiscountMinor: 100, NetMinor: 899}, s.Amounts())
	assert.Equal(t, "TENOFF", s.CouponCode)

	lines, err := s.OrderLines()
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(999), lines[0].LineTotalMinor)
	assert.Equal(t, int64(333), lines[0].UnitPrice.MinorUnits())

	applied, err := s.AppliedCoupon()
	require.NoError(t, err)
	require.NotNil(t, applied)
	assert.Equal(t, int32(10), applied.Percent.Value())

	none, err := checkout.Snapshot{}.AppliedCoupon()
	require.NoError(t, err)
	assert.Nil(t, none)
}
