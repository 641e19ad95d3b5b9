package converter

import (
	"encoding/json"

	"storefront-api/internal/domain/checkout"
	sqlc "storefront-api/internal/infra/sqlc/generated"
	"storefront-api/internal/pkg/errs"
	"storefront-api/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

func AttemptToInsertParams(a *checkout.Attempt) sqlc.TryInsertCheckoutAttemptParams {
	return sqlc.TryInsertCheckoutAttemptParams{
		IdempotencyKey: a.IdempotencyKey(),
		UserID:         a.UserID(),
		RequestHash:    a.RequestHash(),
		State:          a.State().String(),
		LeaseExpiresAt: pgconv.TimeToPgtype(a.LeaseExpiresAt()),
		CreatedAt:      pgconv.TimeToPgtype(a.CreatedAt()),
	}
}

func AttemptToSaveParams(a *checkout.Attempt) (sqlc.SaveCheckoutAttemptParams, error) {
	params := sqlc.SaveCheckoutAttemptParams{
		IdempotencyKey: a.IdempotencyKey(),
		UserID:         a.UserID(),
		State:          a.State().String(),
		OrderID:        pgconv.UUIDPtrToPgtype(a.OrderID()),
		LeaseExpiresAt: pgconv.TimeToPgtype(a.LeaseExpiresAt()),
		UpdatedAt:      pgconv.TimeToPgtype(a.UpdatedAt()),
	}

	if ref := a.PaymentReference(); ref != "" {
		params.PaymentReference = pgconv.StringToPgtype(ref)
	}
	if reason := a.Failure(); reason != "" {
		params.Failure = pgconv.StringToPgtype(reason)
	}

	if s := a.Snapshot(); s != nil {
		pricing, err := json.Marshal(s)
		if err != nil {
			return sqlc.SaveCheckoutAttemptParams{}, errs.Wrap(err, "failed to encode pricing snapshot")
		}
		params.Pricing = pricing
	}

	reserved := a.Reserved()
	if reserved == nil {
		reserved = []checkout.Reservation{}
	}
	encoded, err := json.Marshal(reserved)
	if err != nil {
		return sqlc.SaveCheckoutAttemptParams{}, errs.Wrap(err, "failed to encode reservations")
	}
	params.Reserved = encoded

	return params, nil
}

func AttemptFromRow(row sqlc.CheckoutAttempts) (*checkout.Attempt, error) {
	state, err := checkout.ParseState(row.State)
	if err != nil {
		return nil, err
	}

	var snapshot *checkout.Snapshot
	if len(row.Pricing) > 0 {
		snapshot = &checkout.Snapshot{}
		if err := json.Unmarshal(row.Pricing, snapshot); err != nil {
			return nil, errs.Wrap(err, "failed to decode pricing snapshot")
		}
	}

	var reserved []checkout.Reservation
	if len(row.Reserved) > 0 {
		if err := json.Unmarshal(row.Reserved, &reserved); err != nil {
			return nil, errs.Wrap(err, "failed to decode reservations")
		}
	}

	return checkout.ReconstructAttempt(
		row.IdempotencyKey,
		row.UserID,
		row.RequestHash,
		state,
		textOrEmpty(row.PaymentReference),
		snapshot,
		reserved,
		pgconv.UUIDPtrFromPgtype(row.OrderID),
		textOrEmpty(row.Failure),
		pgconv.TimeFromPgtype(row.LeaseExpiresAt),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

func textOrEmpty(t pgtype.Text) string {
	if !t.Valid {
		return ""
	}
	return t.String
}
