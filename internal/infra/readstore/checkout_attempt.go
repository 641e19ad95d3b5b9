package readstore

import (
	"context"

	"storefront-api/internal/domain/checkout"
	"storefront-api/internal/infra"
	"storefront-api/internal/infra/repository/converter"
	sqlc "storefront-api/internal/infra/sqlc/generated"
	"storefront-api/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type CheckoutAttemptReadQueries interface {
	GetCheckoutAttempt(ctx context.Context, db sqlc.DBTX, arg sqlc.GetCheckoutAttemptParams) (sqlc.CheckoutAttempts, error)
}

type CheckoutAttemptReadStore struct {
	queries CheckoutAttemptReadQueries
	db      sqlc.DBTX
}

func NewCheckoutAttemptReadStore(queries CheckoutAttemptReadQueries, db sqlc.DBTX) *CheckoutAttemptReadStore {
	return &CheckoutAttemptReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *CheckoutAttemptReadStore) Get(ctx context.Context, key, userID uuid.UUID) (*checkout.Attempt, error) {
	row, err := r.queries.GetCheckoutAttempt(ctx, r.db, sqlc.GetCheckoutAttemptParams{
		IdempotencyKey: key,
		UserID:         userID,
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("checkout attempt not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get checkout attempt", err)
	}

	attempt, err := converter.AttemptFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert checkout attempt row", err)
	}
	return attempt, nil
}
