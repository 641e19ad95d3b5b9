package checkout

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"

	"storefront-api/internal/domain/coupon"
	"storefront-api/internal/domain/order"
)

var ErrInvalidPaymentReference = errors.New("invalid payment reference")

const maxPaymentReferenceLength = 64

// Cart is what gets priced: normalised lines plus an optional coupon code.
type Cart struct {
	Lines      []order.CartLine
	CouponCode string
}

func NewCart(lines []order.CartLine, couponCode string) (Cart, error) {
	normalized, err := order.NormalizeCart(lines)
	if err != nil {
		return Cart{}, err
	}
	return Cart{Lines: normalized, CouponCode: coupon.NormalizeCode(couponCode)}, nil
}

func (c Cart) HasCoupon() bool {
	return c.CouponCode != ""
}

// Request is one commit submission.
type Request struct {
	Cart
	Contact          order.Contact
	PaymentReference string
}

func NewRequest(cart Cart, contact order.Contact, paymentReference string) (Request, error) {
	paymentReference = strings.TrimSpace(paymentReference)
	if len(paymentReference) > maxPaymentReferenceLength {
		return Request{}, ErrInvalidPaymentReference
	}
	return Request{Cart: cart, Contact: contact, PaymentReference: paymentReference}, nil
}

type hashedLine struct {
	ProductID string `json:"p"`
	Quantity  int32  `json:"q"`
}

type hashedRequest struct {
	Lines            []hashedLine `json:"lines"`
	CouponCode       string       `json:"coupon"`
	Address          string       `json:"address"`
	Phone            string       `json:"phone"`
	PaymentReference string       `json:"ref"`
}

// Hash is the sha256 of the canonical JSON form, used to detect idempotency key reuse with a different body.
func (r Request) Hash() string {
	h := hashedRequest{
		Lines:            make([]hashedLine, len(r.Lines)),
		CouponCode:       r.CouponCode,
		Address:          r.Contact.Address.String(),
		Phone:            r.Contact.Phone.String(),
		PaymentReference: r.PaymentReference,
	}
	for i, l := range r.Lines {
		h.Lines[i] = hashedLine{ProductID: l.ProductID.String(), Quantity: l.Quantity}
	}
	data, _ := json.Marshal(h)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
