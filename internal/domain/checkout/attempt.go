package checkout

import (
	"errors"
	"time"

	"storefront-api/internal/domain/coupon"
	"storefront-api/internal/domain/order"
	"storefront-api/internal/domain/pricing"
	"storefront-api/internal/domain/product"

	"github.com/google/uuid"
)

var (
	ErrReservationsOutstanding = errors.New("attempt still holds reserved stock")
	ErrNotRestartable          = errors.New("attempt cannot be restarted")
	ErrMissingSnapshot         = errors.New("attempt has no pricing snapshot")
)

// Snapshot freezes the priced cart so a resumed attempt persists exactly what was charged.
type Snapshot struct {
	Lines         []SnapshotLine `json:"lines"`
	GrossMinor    int64          `json:"grossMinor"`
	DiscountMinor int64          `json:"discountMinor"`
	NetMinor      int64          `json:"netMinor"`
	Currency      string         `json:"currency"`
	CouponCode    string         `json:"couponCode,omitempty"`
	CouponPercent int32          `json:"couponPercent,omitempty"`
}

type SnapshotLine struct {
	ProductID      uuid.UUID `json:"productId"`
	Quantity       int32     `json:"quantity"`
	UnitPriceMinor int64     `json:"unitPriceMinor"`
	LineTotalMinor int64     `json:"lineTotalMinor"`
}

func NewSnapshot(res pricing.Result, currency string) Snapshot {
	s := Snapshot{
		Lines:         make([]SnapshotLine, len(res.Lines)),
		GrossMinor:    res.GrossMinor,
		DiscountMinor: res.DiscountMinor,
		NetMinor:      res.NetMinor,
		Currency:      currency,
	}
	for i, l := range res.Lines {
		s.Lines[i] = SnapshotLine{
			ProductID:      l.ProductID,
			Quantity:       l.Quantity,
			UnitPriceMinor: l.UnitPrice.MinorUnits(),
			LineTotalMinor: l.LineTotalMinor,
		}
	}
	if res.Coupon != nil {
		s.CouponCode = res.Coupon.Code.String()
		s.CouponPercent = res.Coupon.Percent.Value()
	}
	return s
}

func (s Snapshot) OrderLines() ([]order.Line, error) {
	lines := make([]order.Line, len(s.Lines))
	for i, l := range s.Lines {
		price, err := product.NewPriceFromMinor(l.UnitPriceMinor)
		if err != nil {
			return nil, err
		}
		lines[i] = order.Line{
			ProductID:      l.ProductID,
			Quantity:       l.Quantity,
			UnitPrice:      price,
			LineTotalMinor: l.LineTotalMinor,
		}
	}
	return lines, nil
}

func (s Snapshot) Amounts() order.Amounts {
	return order.Amounts{GrossMinor: s.GrossMinor, DiscountMinor: s.DiscountMinor, NetMinor: s.NetMinor}
}

func (s Snapshot) AppliedCoupon() (*coupon.Applied, error) {
	if s.CouponCode == "" {
		return nil, nil
	}
	code, err := coupon.NewCouponCode(s.CouponCode)
	if err != nil {
		return nil, err
	}
	pct, err := coupon.NewPercent(s.CouponPercent)
	if err != nil {
		return nil, err
	}
	return &coupon.Applied{Code: code, Percent: pct}, nil
}

// Reservation is one conditional decrement that has been applied and not yet compensated.
type Reservation struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int32     `json:"quantity"`
}

// Attempt is the journal entry for one (user, idempotency key) checkout.
type Attempt struct {
	idempotencyKey   uuid.UUID
	userID           uuid.UUID
	requestHash      string
	state            State
	paymentReference string
	snapshot         *Snapshot
	reserved         []Reservation
	orderID          *uuid.UUID
	failure          string
	leaseExpiresAt   time.Time
	createdAt        time.Time
	updatedAt        time.Time
}

func NewAttempt(idempotencyKey, userID uuid.UUID, requestHash string, now time.Time, lease time.Duration) *Attempt {
	return &Attempt{
		idempotencyKey: idempotencyKey,
		userID:         userID,
		requestHash:    requestHash,
		state:          StateInitiated,
		leaseExpiresAt: now.Add(lease),
		createdAt:      now,
		updatedAt:      now,
	}
}

func ReconstructAttempt(
	idempotencyKey, userID uuid.UUID,
	requestHash string,
	state State,
	paymentReference string,
	snapshot *Snapshot,
	reserved []Reservation,
	orderID *uuid.UUID,
	failure string,
	leaseExpiresAt, createdAt, updatedAt time.Time,
) *Attempt {
	return &Attempt{
		idempotencyKey:   idempotencyKey,
		userID:           userID,
		requestHash:      requestHash,
		state:            state,
		paymentReference: paymentReference,
		snapshot:         snapshot,
		reserved:         reserved,
		orderID:          orderID,
		failure:          failure,
		leaseExpiresAt:   leaseExpiresAt,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// Clone returns a copy that can be mutated inside a transaction and discarded if it rolls back.
func (a *Attempt) Clone() *Attempt {
	c := *a
	c.reserved = append([]Reservation(nil), a.reserved...)
	if a.snapshot != nil {
		s := *a.snapshot
		s.Lines = append([]SnapshotLine(nil), a.snapshot.Lines...)
		c.snapshot = &s
	}
	if a.orderID != nil {
		id := *a.orderID
		c.orderID = &id
	}
	return &c
}

func (a *Attempt) Transition(next State, now time.Time) error {
	if !a.state.CanTransitionTo(next) {
		return ErrIllegalTransition
	}
	a.state = next
	a.updatedAt = now
	return nil
}

// Fail moves the attempt into a failure state and records the reason.
func (a *Attempt) Fail(next State, reason string, now time.Time) error {
	if !next.IsFailure() {
		return ErrIllegalTransition
	}
	if err := a.Transition(next, now); err != nil {
		return err
	}
	a.failure = reason
	return nil
}

// Restart puts a failed attempt back to INITIATED so the same key can be retried.
// The payment reference survives so a captured charge is reused instead of a second intent being created.
func (a *Attempt) Restart(now time.Time) error {
	if !a.state.IsFailure() {
		return ErrNotRestartable
	}
	if len(a.reserved) > 0 {
		return ErrReservationsOutstanding
	}
	a.state = StateInitiated
	a.snapshot = nil
	a.failure = ""
	a.updatedAt = now
	return nil
}

func (a *Attempt) RecordPricing(s Snapshot) {
	a.snapshot = &s
}

func (a *Attempt) RecordPayment(reference string) {
	a.paymentReference = reference
}

func (a *Attempt) RecordReservation(r Reservation) {
	a.reserved = append(a.reserved, r)
}

func (a *Attempt) ReleaseReservation(productID uuid.UUID) {
	for i, r := range a.reserved {
		if r.ProductID == productID {
			a.reserved = append(a.reserved[:i], a.reserved[i+1:]...)
			return
		}
	}
}

func (a *Attempt) IsReserved(productID uuid.UUID) bool {
	for _, r := range a.reserved {
		if r.ProductID == productID {
			return true
		}
	}
	return false
}

func (a *Attempt) RecordOrder(orderID uuid.UUID) {
	a.orderID = &orderID
}

func (a *Attempt) LeaseExpired(now time.Time) bool {
	return !now.Before(a.leaseExpiresAt)
}

func (a *Attempt) Renew(now time.Time, lease time.Duration) {
	a.leaseExpiresAt = now.Add(lease)
	a.updatedAt = now
}

// ReleaseLease lets a re-submission with the same key claim the attempt immediately.
func (a *Attempt) ReleaseLease(now time.Time) {
	a.leaseExpiresAt = now
	a.updatedAt = now
}

func (a *Attempt) IdempotencyKey() uuid.UUID { return a.idempotencyKey }
func (a *Attempt) UserID() uuid.UUID         { return a.userID }
func (a *Attempt) RequestHash() string       { return a.requestHash }
func (a *Attempt) State() State              { return a.state }
func (a *Attempt) PaymentReference() string  { return a.paymentReference }
func (a *Attempt) Snapshot() *Snapshot       { return a.snapshot }
func (a *Attempt) Reserved() []Reservation   { return append([]Reservation(nil), a.reserved...) }
func (a *Attempt) OrderID() *uuid.UUID       { return a.orderID }
func (a *Attempt) Failure() string           { return a.failure }
func (a *Attempt) LeaseExpiresAt() time.Time { return a.leaseExpiresAt }
func (a *Attempt) CreatedAt() time.Time      { return a.createdAt }
func (a *Attempt) UpdatedAt() time.Time      { return a.updatedAt }
