package converter

import (
	sqlc "storefront-api/internal/infra/sqlc/generated"
	"storefront-api/internal/pkg/pgconv"
	"storefront-api/internal/usecase/queries"
)

func ProductViewFromRow(row sqlc.Products) (*queries.ProductView, error) {
	price, err := pgconv.DecimalFromNumeric(row.Price)
	if err != nil {
		return nil, err
	}

	return &queries.ProductView{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Price:       price,
		Stock:       row.Stock,
		Sold:        row.Sold,
		CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:   pgconv.TimeFromPgtype(row.UpdatedAt),
	}, nil
}
