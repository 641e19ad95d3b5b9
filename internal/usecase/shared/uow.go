package shared

import (
	"context"
	"time"

	"storefront-api/internal/domain/checkout"
	"storefront-api/internal/domain/order"
	sqlc "storefront-api/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Products() ProductRepository
	Orders() OrderRepository
	CheckoutAttempts() CheckoutAttemptRepository
	Notifications() NotificationRepository
	Users() UserRepository
	Reads() CommandReads
	DB() sqlc.DBTX
}

// CommandReads must be safe for concurrent use; pricing fans out product lookups.
type CommandReads interface {
	ProductByID(ctx context.Context, id uuid.UUID) (*ProductSnapshot, error)
	CouponByCode(ctx context.Context, code string) (*CouponSnapshot, error)
	CheckoutAttempt(ctx context.Context, key, userID uuid.UUID) (*checkout.Attempt, error)
	OrderByID(ctx context.Context, id uuid.UUID) (*order.Order, error)
	OrderByIdempotencyKey(ctx context.Context, userID, key uuid.UUID) (*order.Order, error)
}

// ProductRepository mutates stock only through conditional writes.
type ProductRepository interface {
	// ConditionalDecrement fails with KindConflict when stock < quantity.
	ConditionalDecrement(ctx context.Context, tx sqlc.DBTX, productID uuid.UUID, quantity int32) error
	ConditionalIncrement(ctx context.Context, tx sqlc.DBTX, productID uuid.UUID, quantity int32) error
}

type OrderRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, o *order.Order) error
	// UpdateStatus is a compare-and-set on the current status; a lost race is KindConflict.
	UpdateStatus(ctx context.Context, tx sqlc.DBTX, orderID uuid.UUID, expected, next order.Status) error
	Delete(ctx context.Context, tx sqlc.DBTX, orderID uuid.UUID) error
}

type CheckoutAttemptRepository interface {
	TryInsert(ctx context.Context, tx sqlc.DBTX, attempt *checkout.Attempt) (bool, error)
	// Claim takes over an attempt whose lease expired, only for the same request hash.
	Claim(ctx context.Context, tx sqlc.DBTX, key, userID uuid.UUID, requestHash string, now, leaseUntil time.Time) (bool, error)
	Save(ctx context.Context, tx sqlc.DBTX, attempt *checkout.Attempt) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx sqlc.DBTX, kind, topic string, payload []byte, runAt time.Time) error
	UpdateJobStatus(ctx context.Context, tx sqlc.DBTX, jobID uuid.UUID, status string, lastError *string) error
	// ResolveReconciliation marks the open reconciliation jobs for a payment reference done.
	ResolveReconciliation(ctx context.Context, tx sqlc.DBTX, paymentReference, note string) (int64, error)
}

type UserRepository interface {
	UpdateLastLogin(ctx context.Context, tx sqlc.DBTX, userID uuid.UUID) error
}
