package queries

import (
	"context"

	"storefront-api/internal/infra"
	"storefront-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrProductNotFound = errs.New("product not found")

type ProductQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ProductView, error)
	List(ctx context.Context, page, limit int) ([]*ProductView, int64, error)
}

type ProductReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductView, error)
	List(ctx context.Context, limit, offset int32) ([]*ProductView, error)
	Count(ctx context.Context) (int64, error)
}

type productQueriesImpl struct {
	readStore ProductReadStore
}

func NewProductQueries(readStore ProductReadStore) ProductQueries {
	return &productQueriesImpl{readStore: readStore}
}

func (q *productQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ProductView, error) {
	p, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// List is page-based (1-indexed) like the storefront catalog it serves.
func (q *productQueriesImpl) List(ctx context.Context, page, limit int) ([]*ProductView, int64, error) {
	limit = ValidateLimit(limit)
	if page < 1 {
		page = 1
	}

	items, err := q.readStore.List(ctx, int32(limit), int32((page-1)*limit))
	if err != nil {
		return nil, 0, err
	}

	total, err := q.readStore.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}
