//go:build unit || e2e

package memstore

import (
	"context"

	"storefront-api/internal/domain/checkout"
	"storefront-api/internal/domain/order"
	"storefront-api/internal/infra"
	"storefront-api/internal/usecase/shared"

	"github.com/google/uuid"
)

// reads is used inside a transaction, where the store mutex is already held.
type reads struct {
	s *Store
}

func (r *reads) ProductByID(_ context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
	p, ok := r.s.st.products[id]
	if !ok {
		return nil, infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	return &p, nil
}

func (r *reads) CouponByCode(_ context.Context, code string) (*shared.CouponSnapshot, error) {
	c, ok := r.s.st.coupons[code]
	if !ok {
		return nil, infra.WrapRepoErr("coupon not found", nil, infra.KindNotFound)
	}
	return &c, nil
}

func (r *reads) CheckoutAttempt(_ context.Context, key, userID uuid.UUID) (*checkout.Attempt, error) {
	a, ok := r.s.st.attempts[attemptKey{key, userID}]
	if !ok {
		return nil, infra.WrapRepoErr("checkout attempt not found", nil, infra.KindNotFound)
	}
	return a.Clone(), nil
}

func (r *reads) OrderByID(_ context.Context, id uuid.UUID) (*order.Order, error) {
	o, ok := r.s.st.orders[id]
	if !ok {
		return nil, infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return copyOrder(o, o.Status()), nil
}

func (r *reads) OrderByIdempotencyKey(_ context.Context, userID, key uuid.UUID) (*order.Order, error) {
	for _, o := range r.s.st.orders {
		if o.UserID() == userID && o.IdempotencyKey() == key {
			return copyOrder(o, o.Status()), nil
		}
	}
	return nil, infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
}

// lockedReads serves UnitOfWork.CommandReads outside any transaction.
type lockedReads struct {
	s *Store
}

func (l *lockedReads) inner() *reads { return &reads{s: l.s} }

func (l *lockedReads) ProductByID(ctx context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return l.inner().ProductByID(ctx, id)
}

func (l *lockedReads) CouponByCode(ctx context.Context, code string) (*shared.CouponSnapshot, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return l.inner().CouponByCode(ctx, code)
}

func (l *lockedReads) CheckoutAttempt(ctx context.Context, key, userID uuid.UUID) (*checkout.Attempt, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return l.inner().CheckoutAttempt(ctx, key, userID)
}

func (l *lockedReads) OrderByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return l.inner().OrderByID(ctx, id)
}

func (l *lockedReads) OrderByIdempotencyKey(ctx context.Context, userID, key uuid.UUID) (*order.Order, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return l.inner().OrderByIdempotencyKey(ctx, userID, key)
}
