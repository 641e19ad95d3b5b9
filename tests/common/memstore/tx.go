//go:build unit || e2e

package memstore

import (
	"context"
	"encoding/json"
	"time"

	"storefront-api/internal/domain/checkout"
	"storefront-api/internal/domain/order"
	"storefront-api/internal/infra"
	sqlc "storefront-api/internal/infra/sqlc/generated"
	"storefront-api/internal/usecase/shared"

	"github.com/google/uuid"
)

// memTx runs with Store.mu held; none of its methods lock.
type memTx struct {
	s *Store
}

func (t *memTx) Products() shared.ProductRepository                { return (*productRepo)(t) }
func (t *memTx) Orders() shared.OrderRepository                    { return (*orderRepo)(t) }
func (t *memTx) CheckoutAttempts() shared.CheckoutAttemptRepository { return (*attemptRepo)(t) }
func (t *memTx) Notifications() shared.NotificationRepository      { return (*notificationRepo)(t) }
func (t *memTx) Users() shared.UserRepository                      { return (*userRepo)(t) }
func (t *memTx) Reads() shared.CommandReads                        { return &reads{s: t.s} }
func (t *memTx) DB() sqlc.DBTX                                     { return nil }

type productRepo memTx

func (r *productRepo) ConditionalDecrement(_ context.Context, _ sqlc.DBTX, productID uuid.UUID, quantity int32) error {
	if err := r.s.check(OpDecrement); err != nil {
		return err
	}
	p, ok := r.s.st.products[productID]
	if !ok || p.Stock < quantity {
		return infra.WrapRepoErr("insufficient stock", nil, infra.KindConflict)
	}
	p.Stock -= quantity
	p.Sold += quantity
	r.s.st.products[productID] = p
	return nil
}

func (r *productRepo) ConditionalIncrement(_ context.Context, _ sqlc.DBTX, productID uuid.UUID, quantity int32) error {
	if err := r.s.check(OpIncrement); err != nil {
		return err
	}
	p, ok := r.s.st.products[productID]
	if !ok {
		return infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	p.Stock += quantity
	p.Sold = max(p.Sold-quantity, 0)
	r.s.st.products[productID] = p
	return nil
}

type orderRepo memTx

func (r *orderRepo) Create(_ context.Context, _ sqlc.DBTX, o *order.Order) error {
	if err := r.s.check(OpCreateOrder); err != nil {
		return err
	}
	for _, existing := range r.s.st.orders {
		if existing.UserID() == o.UserID() && existing.IdempotencyKey() == o.IdempotencyKey() {
			return infra.WrapRepoErr("failed to create order", nil, infra.KindDuplicateKey)
		}
		if existing.PaymentReference() == o.PaymentReference() {
			return infra.WrapRepoErr("failed to create order", nil, infra.KindDuplicateKey)
		}
	}
	for _, l := range o.Lines() {
		if _, ok := r.s.st.products[l.ProductID]; !ok {
			return infra.WrapRepoErr("failed to create order line", nil, infra.KindForeignKeyViolated)
		}
	}
	r.s.st.orders[o.ID()] = copyOrder(o, o.Status())
	return nil
}

func (r *orderRepo) UpdateStatus(_ context.Context, _ sqlc.DBTX, orderID uuid.UUID, expected, next order.Status) error {
	if err := r.s.check(OpUpdateOrder); err != nil {
		return err
	}
	o, ok := r.s.st.orders[orderID]
	if !ok || o.Status() != expected {
		return infra.WrapRepoErr("order status changed concurrently", nil, infra.KindConflict)
	}
	r.s.st.orders[orderID] = copyOrder(o, next)
	return nil
}

func (r *orderRepo) Delete(_ context.Context, _ sqlc.DBTX, orderID uuid.UUID) error {
	if err := r.s.check(OpDeleteOrder); err != nil {
		return err
	}
	if _, ok := r.s.st.orders[orderID]; !ok {
		return infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	delete(r.s.st.orders, orderID)
	return nil
}

type attemptRepo memTx

func (r *attemptRepo) TryInsert(_ context.Context, _ sqlc.DBTX, a *checkout.Attempt) (bool, error) {
	k := attemptKey{a.IdempotencyKey(), a.UserID()}
	if _, ok := r.s.st.attempts[k]; ok {
		return false, nil
	}
	r.s.st.attempts[k] = a.Clone()
	return true, nil
}

func (r *attemptRepo) Claim(_ context.Context, _ sqlc.DBTX, key, userID uuid.UUID, requestHash string, now, leaseUntil time.Time) (bool, error) {
	a, ok := r.s.st.attempts[attemptKey{key, userID}]
	if !ok || a.RequestHash() != requestHash || a.State() == checkout.StateOrderPersisted || !a.LeaseExpired(now) {
		return false, nil
	}
	claimed := a.Clone()
	claimed.Renew(now, leaseUntil.Sub(now))
	r.s.st.attempts[attemptKey{key, userID}] = claimed
	return true, nil
}

func (r *attemptRepo) Save(_ context.Context, _ sqlc.DBTX, a *checkout.Attempt) error {
	if err := r.s.check(OpSaveAttempt); err != nil {
		return err
	}
	k := attemptKey{a.IdempotencyKey(), a.UserID()}
	if _, ok := r.s.st.attempts[k]; !ok {
		return infra.WrapRepoErr("checkout attempt not found", nil, infra.KindNotFound)
	}
	r.s.st.attempts[k] = a.Clone()
	return nil
}

type notificationRepo memTx

func (r *notificationRepo) CreateJob(_ context.Context, _ sqlc.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	if err := r.s.check(OpCreateJob); err != nil {
		return err
	}
	r.s.st.jobs = append(r.s.st.jobs, Job{
		ID:      uuid.New(),
		Kind:    kind,
		Topic:   topic,
		Payload: append([]byte(nil), payload...),
		RunAt:   runAt,
		Status:  "queued",
	})
	return nil
}

func (r *notificationRepo) UpdateJobStatus(_ context.Context, _ sqlc.DBTX, jobID uuid.UUID, status string, lastError *string) error {
	if err := r.s.check(OpUpdateJob); err != nil {
		return err
	}
	for i := range r.s.st.jobs {
		if r.s.st.jobs[i].ID == jobID {
			r.s.st.jobs[i].Status = status
			r.s.st.jobs[i].LastError = lastError
			return nil
		}
	}
	return infra.WrapRepoErr("notification job not found", nil, infra.KindNotFound)
}

func (r *notificationRepo) ResolveReconciliation(_ context.Context, _ sqlc.DBTX, paymentReference, note string) (int64, error) {
	if err := r.s.check(OpUpdateJob); err != nil {
		return 0, err
	}
	var n int64
	for i, job := range r.s.st.jobs {
		if job.Kind != shared.NotificationKindReconciliation || (job.Status != "queued" && job.Status != "running") {
			continue
		}
		var payload struct {
			PaymentReference string `json:"paymentReference"`
		}
		if err := json.Unmarshal(job.Payload, &payload); err != nil || payload.PaymentReference != paymentReference {
			continue
		}
		r.s.st.jobs[i].Status = "done"
		r.s.st.jobs[i].LastError = &note
		n++
	}
	return n, nil
}

type userRepo memTx

func (r *userRepo) UpdateLastLogin(context.Context, sqlc.DBTX, uuid.UUID) error {
	return nil
}
