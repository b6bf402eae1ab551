package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/stonedesk/stonedesk/modules/notification/domain/entities/notification"
	"github.com/stonedesk/stonedesk/pkg/composables"
)

type NotificationService struct {
	repo notification.Repository
}

func NewNotificationService(repo notification.Repository) *NotificationService {
	return &NotificationService{repo: repo}
}

// Notify records a notification for a user. Used by event handlers.
func (s *NotificationService) Notify(ctx context.Context, userID uuid.UUID, title, message string) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.Create(txCtx, &notification.Notification{
			UserID:  userID,
			Title:   title,
			Message: message,
		})
	})
}

// GetPaginated lists the current user's notifications, newest first.
func (s *NotificationService) GetPaginated(ctx context.Context, params *notification.FindParams) ([]*notification.Notification, int64, error) {
	actor, err := composables.UseUser(ctx)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.GetPaginatedForUser(ctx, actor.ID(), params)
}

// MarkRead marks one of the current user's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, id uuid.UUID) error {
	actor, err := composables.UseUser(ctx)
	if err != nil {
		return err
	}
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.MarkRead(txCtx, id, actor.ID())
	})
}
