package progress

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/heartmarshall/memorypower/internal/domain"
	"github.com/heartmarshall/memorypower/pkg/ctxutil"
)

// ResetUserProgress deletes every progress row of the user. Review logs and
// points are kept. Returns the number of rows removed.
func (s *Service) ResetUserProgress(ctx context.Context, userID uuid.UUID) (int, error) {
	if err := requireUser(userID); err != nil {
		return 0, err
	}

	var deleted int
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		n, err := s.progress.DeleteByUser(txCtx, userID)
		if err != nil {
			return fmt.Errorf("delete progress: %w", err)
		}
		deleted = n

		return s.recordAudit(txCtx, userID, domain.EntityTypeProgress, domain.AuditActionReset, n)
	})
	if err != nil {
		return 0, err
	}

	s.log.InfoContext(ctx, "user progress reset",
		slog.String("user_id", userID.String()),
		slog.Int("deleted", deleted),
	)
	return deleted, nil
}

// EraseUserHistory deletes every review log of the user. Returns the number
// of logs removed.
func (s *Service) EraseUserHistory(ctx context.Context, userID uuid.UUID) (int, error) {
	if err := requireUser(userID); err != nil {
		return 0, err
	}

	var deleted int
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		n, err := s.reviews.DeleteByUser(txCtx, userID)
		if err != nil {
			return fmt.Errorf("delete review logs: %w", err)
		}
		deleted = n

		return s.recordAudit(txCtx, userID, domain.EntityTypeReviewLog, domain.AuditActionErase, n)
	})
	if err != nil {
		return 0, err
	}

	s.log.InfoContext(ctx, "user history erased",
		slog.String("user_id", userID.String()),
		slog.Int("deleted", deleted),
	)
	return deleted, nil
}

func (s *Service) recordAudit(ctx context.Context, userID uuid.UUID, entity domain.EntityType, action domain.AuditAction, deleted int) error {
	changes := map[string]any{
		"deleted": deleted,
	}
	if actor, ok := ctxutil.ActorIDFromCtx(ctx); ok {
		changes["actor_id"] = actor.String()
	}
	if reqID := ctxutil.RequestIDFromCtx(ctx); reqID != "" {
		changes["request_id"] = reqID
	}

	err := s.audit.Log(ctx, domain.AuditRecord{
		ID:         uuid.New(),
		UserID:     userID,
		EntityType: entity,
		Action:     action,
		Changes:    changes,
		CreatedAt:  s.clock(),
	})
	if err != nil {
		return fmt.Errorf("audit log: %w", err)
	}
	return nil
}
