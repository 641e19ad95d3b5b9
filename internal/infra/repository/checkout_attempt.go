package repository

import (
	"context"
	"time"

	"storefront-api/internal/domain/checkout"
	"storefront-api/internal/infra"
	"storefront-api/internal/infra/repository/converter"
	sqlc "storefront-api/internal/infra/sqlc/generated"
	"storefront-api/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type CheckoutAttemptWriteQueries interface {
	TryInsertCheckoutAttempt(ctx context.Context, db sqlc.DBTX, arg sqlc.TryInsertCheckoutAttemptParams) (int64, error)
	ClaimCheckoutAttempt(ctx context.Context, db sqlc.DBTX, arg sqlc.ClaimCheckoutAttemptParams) (int64, error)
	SaveCheckoutAttempt(ctx context.Context, db sqlc.DBTX, arg sqlc.SaveCheckoutAttemptParams) (int64, error)
}

type CheckoutAttemptRepository struct {
	queries CheckoutAttemptWriteQueries
}

func NewCheckoutAttemptRepository(queries CheckoutAttemptWriteQueries) *CheckoutAttemptRepository {
	return &CheckoutAttemptRepository{queries: queries}
}

// TryInsert reports false when an attempt with the same key already exists for the user.
func (r *CheckoutAttemptRepository) TryInsert(ctx context.Context, tx sqlc.DBTX, attempt *checkout.Attempt) (bool, error) {
	n, err := r.queries.TryInsertCheckoutAttempt(ctx, tx, converter.AttemptToInsertParams(attempt))
	if err != nil {
		return false, infra.WrapPgErr("failed to insert checkout attempt", err)
	}
	return n == 1, nil
}

func (r *CheckoutAttemptRepository) Claim(ctx context.Context, tx sqlc.DBTX, key, userID uuid.UUID, requestHash string, now, leaseUntil time.Time) (bool, error) {
	n, err := r.queries.ClaimCheckoutAttempt(ctx, tx, sqlc.ClaimCheckoutAttemptParams{
		LeaseExpiresAt: pgconv.TimeToPgtype(leaseUntil),
		Now:            pgconv.TimeToPgtype(now),
		IdempotencyKey: key,
		UserID:         userID,
		RequestHash:    requestHash,
	})
	if err != nil {
		return false, infra.WrapPgErr("failed to claim checkout attempt", err)
	}
	return n == 1, nil
}

func (r *CheckoutAttemptRepository) Save(ctx context.Context, tx sqlc.DBTX, attempt *checkout.Attempt) error {
	params, err := converter.AttemptToSaveParams(attempt)
	if err != nil {
		return infra.WrapRepoErr("failed to encode checkout attempt", err)
	}

	n, err := r.queries.SaveCheckoutAttempt(ctx, tx, params)
	if err != nil {
		return infra.WrapPgErr("failed to save checkout attempt", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("checkout attempt not found", nil, infra.KindNotFound)
	}
	return nil
}
