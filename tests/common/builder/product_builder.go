//go:build unit || e2e

package builder

import (
	"time"

	sqlc "storefront-api/internal/infra/sqlc/generated"
	"storefront-api/internal/pkg/pgconv"
	"storefront-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type ProductBuilder struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int32
	Sold        int32
}

func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{
		ID:          uuid.New(),
		Name:        "Cotton T-Shirt",
		Description: "Plain crew neck",
		Price:       decimal.RequireFromString("5.00"),
		Stock:       10,
	}
}

func (p *ProductBuilder) With(mutate func(*ProductBuilder)) *ProductBuilder {
	mutate(p)
	return p
}

func (p *ProductBuilder) WithPrice(price string) *ProductBuilder {
	p.Price = decimal.RequireFromString(price)
	return p
}

func (p *ProductBuilder) WithStock(stock int32) *ProductBuilder {
	p.Stock = stock
	return p
}

func (p *ProductBuilder) BuildInfra() sqlc.Products {
	now := time.Now()
	return sqlc.Products{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       pgconv.NumericFromDecimal(p.Price),
		Stock:       p.Stock,
		Sold:        p.Sold,
		CreatedAt:   pgtype.Timestamptz{Time: now, Valid: true},
		UpdatedAt:   pgtype.Timestamptz{Time: now, Valid: true},
	}
}

func (p *ProductBuilder) BuildSnapshot() *shared.ProductSnapshot {
	return &shared.ProductSnapshot{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price,
		Stock: p.Stock,
		Sold:  p.Sold,
	}
}
