package readstore

import (
	"context"

	"storefront-api/internal/infra"
	"storefront-api/internal/infra/repository/converter"
	sqlc "storefront-api/internal/infra/sqlc/generated"
	"storefront-api/internal/pkg/pgconv"
	"storefront-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type ProductReadQueries interface {
	GetProductByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Products, error)
	ListProducts(ctx context.Context, db sqlc.DBTX, arg sqlc.ListProductsParams) ([]sqlc.Products, error)
	CountProducts(ctx context.Context, db sqlc.DBTX) (int64, error)
}

type ProductReadStore struct {
	queries ProductReadQueries
	db      sqlc.DBTX
}

func NewProductReadStore(queries ProductReadQueries, db sqlc.DBTX) *ProductReadStore {
	return &ProductReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ProductReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ProductView, error) {
	row, err := r.queries.GetProductByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find product by ID", err)
	}

	view, err := converter.ProductViewFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert product row", err)
	}
	return view, nil
}

func (r *ProductReadStore) List(ctx context.Context, limit, offset int32) ([]*queries.ProductView, error) {
	rows, err := r.queries.ListProducts(ctx, r.db, sqlc.ListProductsParams{Limit: limit, Offset: offset})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list products", err)
	}

	views := make([]*queries.ProductView, 0, len(rows))
	for _, row := range rows {
		view, err := converter.ProductViewFromRow(row)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to convert product row", err)
		}
		views = append(views, view)
	}
	return views, nil
}

func (r *ProductReadStore) Count(ctx context.Context) (int64, error) {
	n, err := r.queries.CountProducts(ctx, r.db)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count products", err)
	}
	return n, nil
}
