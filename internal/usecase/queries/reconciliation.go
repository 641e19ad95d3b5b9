package queries

import (
	"context"

	"storefront-api/internal/usecase/shared"
)

type ReconciliationQueries interface {
	ListPending(ctx context.Context, limit int) ([]*NotificationJobView, error)
}

type NotificationReadStore interface {
	ListByKind(ctx context.Context, kind, status string, limit int32) ([]*NotificationJobView, error)
}

type reconciliationQueriesImpl struct {
	readStore NotificationReadStore
}

func NewReconciliationQueries(readStore NotificationReadStore) ReconciliationQueries {
	return &reconciliationQueriesImpl{readStore: readStore}
}

// ListPending returns charges flagged for a human to refund or re-fulfil, oldest first.
func (q *reconciliationQueriesImpl) ListPending(ctx context.Context, limit int) ([]*NotificationJobView, error) {
	return q.readStore.ListByKind(ctx, shared.NotificationKindReconciliation, "queued", int32(ValidateLimit(limit)))
}
