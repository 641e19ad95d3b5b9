package queries

import (
	"context"

	"storefront-api/internal/infra"
	"storefront-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound = errs.New("order not found")
	ErrOrderAccess   = errs.New("order access denied")
)

type OrderQueries interface {
	GetByID(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) (*OrderView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, after *Cursor, limit int) (*OrderPage, error)
	ListAll(ctx context.Context, after *Cursor, limit int) (*OrderPage, error)
}

type OrderReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, after *Cursor, limit int32) ([]*OrderView, error)
	ListAll(ctx context.Context, after *Cursor, limit int32) ([]*OrderView, error)
}

type orderQueriesImpl struct {
	readStore OrderReadStore
}

func NewOrderQueries(readStore OrderReadStore) OrderQueries {
	return &orderQueriesImpl{readStore: readStore}
}

func (q *orderQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) (*OrderView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	// Non-owners get NotFound so order ids cannot be enumerated.
	if !isAdmin && view.UserID != actorID {
		return nil, errs.Mark(ErrOrderAccess, ErrOrderNotFound)
	}
	return view, nil
}

func (q *orderQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, after *Cursor, limit int) (*OrderPage, error) {
	limit = ValidateLimit(limit)
	// One extra row tells us whether another page exists.
	items, err := q.readStore.ListByUser(ctx, userID, after, int32(limit+1))
	if err != nil {
		return nil, err
	}
	return paginate(items, limit), nil
}

func (q *orderQueriesImpl) ListAll(ctx context.Context, after *Cursor, limit int) (*OrderPage, error) {
	limit = ValidateLimit(limit)
	items, err := q.readStore.ListAll(ctx, after, int32(limit+1))
	if err != nil {
		return nil, err
	}
	return paginate(items, limit), nil
}

func paginate(items []*OrderView, limit int) *OrderPage {
	page := &OrderPage{Items: items}
	if len(items) > limit {
		page.Items = items[:limit]
		last := page.Items[limit-1]
		page.NextCursor = &Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
	}
	return page
}
