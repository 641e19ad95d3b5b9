package commands

import (
	"context"
	"log/slog"
	"strings"

	"storefront-api/internal/infra"
	"storefront-api/internal/pkg/errs"
	"storefront-api/internal/usecase/shared"

	"github.com/google/uuid"
)

const notificationStatusDone = "done"

type ReconciliationCommands interface {
	// Resolve closes a reconciliation job once the charge has been refunded or fulfilled.
	Resolve(ctx context.Context, jobID uuid.UUID, note string) error
}

type reconciliationCommandsImpl struct {
	uow    shared.UnitOfWork
	logger *slog.Logger
}

func NewReconciliationCommands(uow shared.UnitOfWork, logger *slog.Logger) ReconciliationCommands {
	return &reconciliationCommandsImpl{uow: uow, logger: logger.With("channel", "reconciliation")}
}

func (c *reconciliationCommandsImpl) Resolve(ctx context.Context, jobID uuid.UUID, note string) error {
	var lastError *string
	if note = strings.TrimSpace(note); note != "" {
		lastError = &note
	}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Notifications().UpdateJobStatus(ctx, tx.DB(), jobID, notificationStatusDone, lastError)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrReconciliationJobNotFound)
		}
		return err
	}

	c.logger.Info("reconciliation job resolved", "job_id", jobID, "note", note)
	return nil
}
