package response

import (
	"encoding/json"
	"time"

	"storefront-api/internal/domain/order"
	"storefront-api/internal/usecase/commands"
	"storefront-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type PaymentIntentResponse struct {
	IntentReference string `json:"intentReference"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	Gross           int64  `json:"gross"`
	Discount        int64  `json:"discount"`
	Net             int64  `json:"net"`
}

func FromPaymentIntentResult(r *commands.PaymentIntentResult) PaymentIntentResponse {
	return PaymentIntentResponse{
		IntentReference: r.Intent.Reference,
		Amount:          r.Intent.AmountMinor,
		Currency:        r.Intent.Currency,
		Gross:           r.Pricing.GrossMinor,
		Discount:        r.Pricing.DiscountMinor,
		Net:             r.Pricing.NetMinor,
	}
}

type OrderLineResponse struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int32     `json:"quantity"`
	UnitPrice string    `json:"unitPrice"`
	LineTotal int64     `json:"lineTotal"`
}

// Amounts are in minor currency units.
type OrderResponse struct {
	ID               uuid.UUID           `json:"id"`
	UserID           uuid.UUID           `json:"userId"`
	IdempotencyKey   uuid.UUID           `json:"idempotencyKey"`
	Status           string              `json:"status"`
	Lines            []OrderLineResponse `json:"lines"`
	CouponCode       *string             `json:"couponCode,omitempty"`
	CouponPercent    *int32              `json:"couponPercent,omitempty"`
	Gross            int64               `json:"gross"`
	Discount         int64               `json:"discount"`
	Net              int64               `json:"net"`
	Currency         string              `json:"currency"`
	Address          string              `json:"address"`
	Phone            string              `json:"phone"`
	PaymentReference string              `json:"paymentReference"`
	CreatedAt        time.Time           `json:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt"`
}

type PlaceOrderResponse struct {
	Order    OrderResponse `json:"order"`
	Replayed bool          `json:"replayed"`
}

func FromPlaceOrderResult(r *commands.PlaceOrderResult) PlaceOrderResponse {
	return PlaceOrderResponse{Order: FromOrder(r.Order), Replayed: r.Replayed}
}

func FromOrder(o *order.Order) OrderResponse {
	lines := make([]OrderLineResponse, len(o.Lines()))
	for i, l := range o.Lines() {
		lines[i] = OrderLineResponse{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice.String(),
			LineTotal: l.LineTotalMinor,
		}
	}

	resp := OrderResponse{
		ID:               o.ID(),
		UserID:           o.UserID(),
		IdempotencyKey:   o.IdempotencyKey(),
		Status:           o.Status().String(),
		Lines:            lines,
		Gross:            o.Amounts().GrossMinor,
		Discount:         o.Amounts().DiscountMinor,
		Net:              o.Amounts().NetMinor,
		Currency:         o.Currency(),
		Address:          o.Contact().Address.String(),
		Phone:            o.Contact().Phone.String(),
		PaymentReference: o.PaymentReference(),
		CreatedAt:        o.CreatedAt(),
		UpdatedAt:        o.UpdatedAt(),
	}
	if applied := o.Coupon(); applied != nil {
		code := applied.Code.String()
		percent := applied.Percent.Value()
		resp.CouponCode = &code
		resp.CouponPercent = &percent
	}
	return resp
}

func FromOrderView(v *queries.OrderView) OrderResponse {
	lines := make([]OrderLineResponse, len(v.Lines))
	for i, l := range v.Lines {
		lines[i] = OrderLineResponse{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice.StringFixed(2),
			LineTotal: l.LineTotalMinor,
		}
	}
	return OrderResponse{
		ID:               v.ID,
		UserID:           v.UserID,
		IdempotencyKey:   v.IdempotencyKey,
		Status:           v.Status,
		Lines:            lines,
		CouponCode:       v.CouponCode,
		CouponPercent:    v.CouponPercent,
		Gross:            v.GrossMinor,
		Discount:         v.DiscountMinor,
		Net:              v.NetMinor,
		Currency:         v.Currency,
		Address:          v.Address,
		Phone:            v.Phone,
		PaymentReference: v.PaymentReference,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}

type OrderListResponse struct {
	Items      []OrderResponse `json:"items"`
	NextCursor *string         `json:"nextCursor,omitempty"`
}

func FromOrderPage(p *queries.OrderPage) OrderListResponse {
	items := make([]OrderResponse, len(p.Items))
	for i, v := range p.Items {
		items[i] = FromOrderView(v)
	}
	resp := OrderListResponse{Items: items}
	if p.NextCursor != nil {
		next := p.NextCursor.Encode()
		resp.NextCursor = &next
	}
	return resp
}

type ReconciliationJobResponse struct {
	ID        uuid.UUID       `json:"id"`
	Topic     string          `json:"topic"`
	Payload   json.RawMessage `json:"payload"`
	Status    string          `json:"status"`
	Attempts  int32           `json:"attempts"`
	LastError *string         `json:"lastError,omitempty"`
	RunAt     time.Time       `json:"runAt"`
	CreatedAt time.Time       `json:"createdAt"`
}

func FromNotificationJobViews(views []*queries.NotificationJobView) []ReconciliationJobResponse {
	out := make([]ReconciliationJobResponse, len(views))
	for i, v := range views {
		out[i] = ReconciliationJobResponse{
			ID:        v.ID,
			Topic:     v.Topic,
			Payload:   json.RawMessage(v.Payload),
			Status:    v.Status,
			Attempts:  v.Attempts,
			LastError: v.LastError,
			RunAt:     v.RunAt,
			CreatedAt: v.CreatedAt,
		}
	}
	return out
}
