package notification

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stonedesk/stonedesk/pkg/serrors"
)

var ErrNotFound = serrors.NewError("NOTIFICATION_NOT_FOUND", "notification not found")

// Notification is a per-user in-app message produced by workflow events.
type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	Message   string
	ReadAt    *time.Time
	CreatedAt time.Time
}

func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}

type FindParams struct {
	Limit      int
	Offset     int
	UnreadOnly bool
}

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	GetPaginatedForUser(ctx context.Context, userID uuid.UUID, params *FindParams) ([]*Notification, int64, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
}
