package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductView represents read-optimized catalog data
type ProductView struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int32           `json:"stock"`
	Sold        int32           `json:"sold"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type OrderLineView struct {
	ProductID      uuid.UUID       `json:"product_id"`
	Quantity       int32           `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	LineTotalMinor int64           `json:"line_total_minor"`
}

// OrderView represents a placed order with its lines
type OrderView struct {
	ID               uuid.UUID       `json:"id"`
	UserID           uuid.UUID       `json:"user_id"`
	IdempotencyKey   uuid.UUID       `json:"idempotency_key"`
	Status           string          `json:"status"`
	Lines            []OrderLineView `json:"lines"`
	CouponCode       *string         `json:"coupon_code,omitempty"`
	CouponPercent    *int32          `json:"coupon_percent,omitempty"`
	GrossMinor       int64           `json:"gross_minor"`
	DiscountMinor    int64           `json:"discount_minor"`
	NetMinor         int64           `json:"net_minor"`
	Currency         string          `json:"currency"`
	Address          string          `json:"address"`
	Phone            string          `json:"phone"`
	PaymentReference string          `json:"payment_reference"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type OrderPage struct {
	Items      []*OrderView
	NextCursor *Cursor
}

// AuthorizedUserView represents read-optimized user data with authorization info
type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}

// NotificationJobView represents an outbox row awaiting manual or automated handling
type NotificationJobView struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	Topic     string    `json:"topic"`
	Payload   []byte    `json:"payload"`
	RunAt     time.Time `json:"run_at"`
	Attempts  int32     `json:"attempts"`
	Status    string    `json:"status"`
	LastError *string   `json:"last_error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
