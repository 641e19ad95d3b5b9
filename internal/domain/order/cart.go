package order

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrEmptyCart       = errors.New("cart must contain at least one line")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrInvalidProduct  = errors.New("product id is required")
)

// CartLine is the transient request-side line; it is never persisted on its own.
type CartLine struct {
	ProductID uuid.UUID
	Quantity  int32
}

func NewCartLine(productID uuid.UUID, quantity int32) (CartLine, error) {
	if productID == uuid.Nil {
		return CartLine{}, ErrInvalidProduct
	}
	if quantity <= 0 {
		return CartLine{}, ErrInvalidQuantity
	}
	return CartLine{ProductID: productID, Quantity: quantity}, nil
}

// NormalizeCart validates lines and merges repeated products, keeping first-seen order.
func NormalizeCart(lines []CartLine) ([]CartLine, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	merged := make([]CartLine, 0, len(lines))
	index := make(map[uuid.UUID]int, len(lines))
	for _, l := range lines {
		line, err := NewCartLine(l.ProductID, l.Quantity)
		if err != nil {
			return nil, err
		}
		if i, ok := index[line.ProductID]; ok {
			merged[i].Quantity += line.Quantity
			continue
		}
		index[line.ProductID] = len(merged)
		merged = append(merged, line)
	}
	return merged, nil
}
