package request

import (
	"storefront-api/internal/domain/checkout"
	"storefront-api/internal/domain/order"

	"github.com/google/uuid"
)

type CartLineRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int32     `json:"quantity" binding:"required,gt=0"`
}

type PaymentIntentRequest struct {
	Lines      []CartLineRequest `json:"lines" binding:"required,min=1,dive"`
	CouponCode string            `json:"couponCode"`
}

func (r PaymentIntentRequest) ToDomain() (checkout.Cart, error) {
	return checkout.NewCart(toCartLines(r.Lines), r.CouponCode)
}

type PlaceOrderRequest struct {
	PaymentReference string            `json:"paymentReference"`
	Lines            []CartLineRequest `json:"lines" binding:"required,min=1,dive"`
	CouponCode       string            `json:"couponCode"`
	Address          string            `json:"address" binding:"required"`
	Phone            string            `json:"phone" binding:"required"`
}

func (r PlaceOrderRequest) ToDomain() (checkout.Request, error) {
	cart, err := checkout.NewCart(toCartLines(r.Lines), r.CouponCode)
	if err != nil {
		return checkout.Request{}, err
	}
	contact, err := order.NewContact(r.Address, r.Phone)
	if err != nil {
		return checkout.Request{}, err
	}
	return checkout.NewRequest(cart, contact, r.PaymentReference)
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r UpdateOrderStatusRequest) ToDomain() (order.Status, error) {
	return order.NewStatus(r.Status)
}

type ResolveReconciliationRequest struct {
	Note string `json:"note" binding:"max=1000"`
}

func toCartLines(in []CartLineRequest) []order.CartLine {
	lines := make([]order.CartLine, len(in))
	for i, l := range in {
		lines[i] = order.CartLine{ProductID: l.ProductID, Quantity: l.Quantity}
	}
	return lines
}
