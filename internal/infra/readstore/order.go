package readstore

import (
	"context"

	"storefront-api/internal/domain/order"
	"storefront-api/internal/infra"
	"storefront-api/internal/infra/repository/converter"
	sqlc "storefront-api/internal/infra/sqlc/generated"
	"storefront-api/internal/pkg/pgconv"
	"storefront-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type OrderReadQueries interface {
	GetOrderByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Orders, error)
	GetOrderByIdempotencyKey(ctx context.Context, db sqlc.DBTX, arg sqlc.GetOrderByIdempotencyKeyParams) (sqlc.Orders, error)
	ListOrdersByUser(ctx context.Context, db sqlc.DBTX, arg sqlc.ListOrdersByUserParams) ([]sqlc.Orders, error)
	ListAllOrders(ctx context.Context, db sqlc.DBTX, arg sqlc.ListAllOrdersParams) ([]sqlc.Orders, error)
	ListOrderLinesByOrderIDs(ctx context.Context, db sqlc.DBTX, orderIds []uuid.UUID) ([]sqlc.OrderLines, error)
}

type OrderReadStore struct {
	queries OrderReadQueries
	db      sqlc.DBTX
}

func NewOrderReadStore(queries OrderReadQueries, db sqlc.DBTX) *OrderReadStore {
	return &OrderReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	row, err := r.queries.GetOrderByID(ctx, r.db, id)
	if err != nil {
		return nil, wrapOrderLookupErr(err)
	}

	views, err := r.withLines(ctx, []sqlc.Orders{row})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (r *OrderReadStore) ListByUser(ctx context.Context, userID uuid.UUID, after *queries.Cursor, limit int32) ([]*queries.OrderView, error) {
	createdAt, id := cursorArgs(after)
	rows, err := r.queries.ListOrdersByUser(ctx, r.db, sqlc.ListOrdersByUserParams{
		UserID:         userID,
		AfterCreatedAt: createdAt,
		AfterID:        id,
		RowLimit:       limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders by user", err)
	}
	return r.withLines(ctx, rows)
}

func (r *OrderReadStore) ListAll(ctx context.Context, after *queries.Cursor, limit int32) ([]*queries.OrderView, error) {
	createdAt, id := cursorArgs(after)
	rows, err := r.queries.ListAllOrders(ctx, r.db, sqlc.ListAllOrdersParams{
		AfterCreatedAt: createdAt,
		AfterID:        id,
		RowLimit:       limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders", err)
	}
	return r.withLines(ctx, rows)
}

// FindDomainByID loads the aggregate for status changes.
func (r *OrderReadStore) FindDomainByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	row, err := r.queries.GetOrderByID(ctx, r.db, id)
	if err != nil {
		return nil, wrapOrderLookupErr(err)
	}
	return r.toDomain(ctx, row)
}

func (r *OrderReadStore) FindDomainByIdempotencyKey(ctx context.Context, userID, key uuid.UUID) (*order.Order, error) {
	row, err := r.queries.GetOrderByIdempotencyKey(ctx, r.db, sqlc.GetOrderByIdempotencyKeyParams{
		UserID:         userID,
		IdempotencyKey: key,
	})
	if err != nil {
		return nil, wrapOrderLookupErr(err)
	}
	return r.toDomain(ctx, row)
}

func (r *OrderReadStore) toDomain(ctx context.Context, row sqlc.Orders) (*order.Order, error) {
	lines, err := r.queries.ListOrderLinesByOrderIDs(ctx, r.db, []uuid.UUID{row.ID})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load order lines", err)
	}

	o, err := converter.OrderFromRows(row, lines)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert order row", err)
	}
	return o, nil
}

// withLines loads all lines for the page in one query.
func (r *OrderReadStore) withLines(ctx context.Context, rows []sqlc.Orders) ([]*queries.OrderView, error) {
	if len(rows) == 0 {
		return []*queries.OrderView{}, nil
	}

	ids := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}

	lineRows, err := r.queries.ListOrderLinesByOrderIDs(ctx, r.db, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load order lines", err)
	}
	grouped := converter.GroupLines(lineRows)

	views := make([]*queries.OrderView, 0, len(rows))
	for _, row := range rows {
		view, err := converter.OrderViewFromRows(row, grouped[row.ID])
		if err != nil {
			return nil, infra.WrapRepoErr("failed to convert order row", err)
		}
		views = append(views, view)
	}
	return views, nil
}

func wrapOrderLookupErr(err error) error {
	if pgconv.IsNoRows(err) {
		return infra.WrapRepoErr("order not found", err, infra.KindNotFound)
	}
	return infra.WrapRepoErr("failed to find order", err)
}

func cursorArgs(after *queries.Cursor) (pgtype.Timestamptz, pgtype.UUID) {
	if after == nil {
		return pgtype.Timestamptz{}, pgtype.UUID{}
	}
	return pgconv.TimeToPgtype(after.CreatedAt), pgconv.UUIDToPgtype(after.ID)
}
