package product

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	id        uuid.UUID
	name      string
	price     Price
	stock     int32
	sold      int32
	createdAt time.Time
	updatedAt time.Time
}

// Reconstruct rebuilds a product loaded from storage.
func Reconstruct(id uuid.UUID, name string, price Price, stock, sold int32, createdAt, updatedAt time.Time) (*Product, error) {
	if stock < 0 || sold < 0 {
		return nil, ErrNegativeStock
	}
	return &Product{
		id:        id,
		name:      name,
		price:     price,
		stock:     stock,
		sold:      sold,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (p *Product) CanFulfil(quantity int32) bool {
	return quantity > 0 && quantity <= p.stock
}

func (p *Product) ID() uuid.UUID        { return p.id }
func (p *Product) Name() string         { return p.name }
func (p *Product) Price() Price         { return p.price }
func (p *Product) Stock() int32         { return p.stock }
func (p *Product) Sold() int32          { return p.sold }
func (p *Product) CreatedAt() time.Time { return p.createdAt }
func (p *Product) UpdatedAt() time.Time { return p.updatedAt }
