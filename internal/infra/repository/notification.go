package repository

import (
	"context"
	"time"

	"storefront-api/internal/infra"
	sqlc "storefront-api/internal/infra/sqlc/generated"
	"storefront-api/internal/pkg/pgconv"
	"storefront-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type NotificationWriteQueries interface {
	CreateNotificationJob(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateNotificationJobParams) error
	UpdateNotificationJobStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateNotificationJobStatusParams) (int64, error)
	ResolveJobsByPaymentReference(ctx context.Context, db sqlc.DBTX, arg sqlc.ResolveJobsByPaymentReferenceParams) (int64, error)
}

type NotificationRepository struct {
	queries NotificationWriteQueries
}

func NewNotificationRepository(queries NotificationWriteQueries) *NotificationRepository {
	return &NotificationRepository{queries: queries}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, tx sqlc.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	params := sqlc.CreateNotificationJobParams{
		Kind:    kind,
		Topic:   topic,
		Payload: payload,
		RunAt:   pgconv.TimeToPgtype(runAt),
		Status:  "queued",
	}

	err := r.queries.CreateNotificationJob(ctx, tx, params)
	if err != nil {
		return infra.WrapPgErr("failed to create notification job", err)
	}

	return nil
}

func (r *NotificationRepository) UpdateJobStatus(ctx context.Context, tx sqlc.DBTX, jobID uuid.UUID, status string, lastError *string) error {
	params := sqlc.UpdateNotificationJobStatusParams{
		ID:        jobID,
		Status:    status,
		LastError: pgtype.Text{Valid: false},
	}
	if lastError != nil {
		params.LastError = pgconv.StringToPgtype(*lastError)
	}

	n, err := r.queries.UpdateNotificationJobStatus(ctx, tx, params)
	if err != nil {
		return infra.WrapPgErr("failed to update notification job status", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("notification job not found", nil, infra.KindNotFound)
	}

	return nil
}

func (r *NotificationRepository) ResolveReconciliation(ctx context.Context, tx sqlc.DBTX, paymentReference, note string) (int64, error) {
	n, err := r.queries.ResolveJobsByPaymentReference(ctx, tx, sqlc.ResolveJobsByPaymentReferenceParams{
		LastError:        pgconv.StringToPgtype(note),
		Kind:             shared.NotificationKindReconciliation,
		PaymentReference: paymentReference,
	})
	if err != nil {
		return 0, infra.WrapPgErr("failed to resolve reconciliation jobs", err)
	}
	return n, nil
}
