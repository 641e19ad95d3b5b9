//go:build unit || e2e

// Package memstore is an in-memory unit of work for command tests. Transactions are serialised
// by one mutex and roll back by restoring a copy of the state taken when they began.
package memstore

import (
	"context"
	"sync"
	"time"

	"storefront-api/internal/domain/checkout"
	"storefront-api/internal/domain/order"
	"storefront-api/internal/infra"
	sqlc "storefront-api/internal/infra/sqlc/generated"
	"storefront-api/internal/usecase/shared"

	"github.com/google/uuid"
)

// Op names a write that tests can make fail.
type Op string

const (
	OpDecrement   Op = "product.decrement"
	OpIncrement   Op = "product.increment"
	OpCreateOrder Op = "order.create"
	OpUpdateOrder Op = "order.update_status"
	OpDeleteOrder Op = "order.delete"
	OpSaveAttempt Op = "attempt.save"
	OpCreateJob   Op = "notification.create"
	OpUpdateJob   Op = "notification.update"
)

type Job struct {
	ID        uuid.UUID
	Kind      string
	Topic     string
	Payload   []byte
	RunAt     time.Time
	Status    string
	LastError *string
}

type attemptKey struct {
	key    uuid.UUID
	userID uuid.UUID
}

type injected struct {
	err   error
	times int // negative means every call
}

type state struct {
	products map[uuid.UUID]shared.ProductSnapshot
	coupons  map[string]shared.CouponSnapshot
	orders   map[uuid.UUID]*order.Order
	attempts map[attemptKey]*checkout.Attempt
	jobs     []Job
}

func (s state) copy() state {
	c := state{
		products: make(map[uuid.UUID]shared.ProductSnapshot, len(s.products)),
		coupons:  make(map[string]shared.CouponSnapshot, len(s.coupons)),
		orders:   make(map[uuid.UUID]*order.Order, len(s.orders)),
		attempts: make(map[attemptKey]*checkout.Attempt, len(s.attempts)),
		jobs:     append([]Job(nil), s.jobs...),
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.coupons {
		c.coupons[k] = v
	}
	// stored orders and attempts are replaced, never mutated, so sharing pointers is safe
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.attempts {
		c.attempts[k] = v
	}
	return c
}

type Store struct {
	mu       sync.Mutex
	st       state
	failures map[Op]*injected
	calls    map[Op]int
	commits  int
}

func New() *Store {
	return &Store{
		st: state{
			products: map[uuid.UUID]shared.ProductSnapshot{},
			coupons:  map[string]shared.CouponSnapshot{},
			orders:   map[uuid.UUID]*order.Order{},
			attempts: map[attemptKey]*checkout.Attempt{},
		},
		failures: map[Op]*injected{},
		calls:    map[Op]int{},
	}
}

var _ shared.UnitOfWork = (*Store)(nil)

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return infra.WrapRepoErr("failed to begin transaction", err)
	}

	saved := s.st.copy()
	if err := fn(ctx, &memTx{s: s}); err != nil {
		s.st = saved
		return err
	}
	s.commits++
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx, nil)
}

func (s *Store) CommandReads() shared.CommandReads {
	return &lockedReads{s: s}
}

// Fail makes the next `times` calls of op return err; times < 0 fails every call.
func (s *Store) Fail(op Op, err error, times int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = &injected{err: err, times: times}
}

func (s *Store) ClearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = map[Op]*injected{}
}

// Calls counts invocations of op, including ones that failed or were rolled back.
func (s *Store) Calls(op Op) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// must be called with s.mu held
func (s *Store) check(op Op) error {
	s.calls[op]++
	f, ok := s.failures[op]
	if !ok || f.times == 0 {
		return nil
	}
	if f.times > 0 {
		f.times--
	}
	return f.err
}

func (s *Store) AddProduct(p shared.ProductSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.products[p.ID] = p
}

func (s *Store) AddCoupon(c shared.CouponSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.coupons[c.Code] = c
}

func (s *Store) AddOrder(o *order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.orders[o.ID()] = copyOrder(o, o.Status())
}

// PutAttempt seeds the journal, e.g. to simulate a crash part way through a checkout.
func (s *Store) PutAttempt(a *checkout.Attempt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.attempts[attemptKey{a.IdempotencyKey(), a.UserID()}] = a.Clone()
}

func (s *Store) Product(id uuid.UUID) (shared.ProductSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.st.products[id]
	return p, ok
}

func (s *Store) Attempt(key, userID uuid.UUID) (*checkout.Attempt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.st.attempts[attemptKey{key, userID}]
	if !ok {
		return nil, false
	}
	return a.Clone(), true
}

func (s *Store) Orders() []*order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*order.Order, 0, len(s.st.orders))
	for _, o := range s.st.orders {
		out = append(out, copyOrder(o, o.Status()))
	}
	return out
}

func (s *Store) Jobs() []Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Job(nil), s.st.jobs...)
}

func (s *Store) JobsByKind(kind string) []Job {
	var out []Job
	for _, j := range s.Jobs() {
		if j.Kind == kind {
			out = append(out, j)
		}
	}
	return out
}

func copyOrder(o *order.Order, status order.Status) *order.Order {
	return order.Reconstruct(
		o.ID(), o.UserID(), o.IdempotencyKey(),
		append([]order.Line(nil), o.Lines()...),
		o.Coupon(), o.Amounts(), o.Currency(), o.Contact(),
		status, o.PaymentReference(),
		o.CreatedAt(), o.UpdatedAt(),
	)
}
