package readstore

import (
	"context"

	"storefront-api/internal/infra"
	sqlc "storefront-api/internal/infra/sqlc/generated"
	"storefront-api/internal/pkg/pgconv"
	"storefront-api/internal/usecase/queries"
)

type NotificationReadQueries interface {
	ListNotificationJobsByKind(ctx context.Context, db sqlc.DBTX, arg sqlc.ListNotificationJobsByKindParams) ([]sqlc.NotificationJobs, error)
}

type NotificationReadStore struct {
	queries NotificationReadQueries
	db      sqlc.DBTX
}

func NewNotificationReadStore(queries NotificationReadQueries, db sqlc.DBTX) *NotificationReadStore {
	return &NotificationReadStore{
		queries: queries,
		db:      db,
	}
}

func (s *NotificationReadStore) ListByKind(ctx context.Context, kind, status string, limit int32) ([]*queries.NotificationJobView, error) {
	rows, err := s.queries.ListNotificationJobsByKind(ctx, s.db, sqlc.ListNotificationJobsByKindParams{
		Kind:   kind,
		Status: status,
		Limit:  limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list notification jobs", err)
	}

	result := make([]*queries.NotificationJobView, len(rows))
	for i, row := range rows {
		result[i] = &queries.NotificationJobView{
			ID:        row.ID,
			Kind:      row.Kind,
			Topic:     row.Topic,
			Payload:   row.Payload,
			RunAt:     pgconv.TimeFromPgtype(row.RunAt),
			Attempts:  row.Attempts,
			Status:    row.Status,
			LastError: pgconv.StringPtrFromPgtype(row.LastError),
			CreatedAt: pgconv.TimeFromPgtype(row.CreatedAt),
		}
	}

	return result, nil
}
