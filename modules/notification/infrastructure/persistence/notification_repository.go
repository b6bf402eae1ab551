package persistence

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/stonedesk/stonedesk/modules/notification/domain/entities/notification"
	"github.com/stonedesk/stonedesk/pkg/composables"
	"github.com/stonedesk/stonedesk/pkg/repo"
)

type PgNotificationRepository struct{}

func NewNotificationRepository() notification.Repository {
	return &PgNotificationRepository{}
}

func (r *PgNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	id := n.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO notifications (id, user_id, title, message, created_at)
		VALUES ($1, $2, $3, $4, now())`,
		id.String(),
		n.UserID.String(),
		n.Title,
		n.Message,
	)
	if err != nil {
		return errors.Wrap(err, "failed to create notification")
	}
	return nil
}

func (r *PgNotificationRepository) GetPaginatedForUser(
	ctx context.Context,
	userID uuid.UUID,
	params *notification.FindParams,
) ([]*notification.Notification, int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, 0, err
	}

	where := " WHERE user_id = $1"
	if params != nil && params.UnreadOnly {
		where += " AND read_at IS NULL"
	}

	query := `
		SELECT id, user_id, title, message, read_at, created_at
		FROM notifications` + where + " ORDER BY created_at DESC"
	if params != nil {
		query += " " + repo.FormatLimitOffset(params.Limit, params.Offset)
	}

	rows, err := tx.Query(ctx, query, userID.String())
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list notifications")
	}
	defer rows.Close()

	var notifications []*notification.Notification
	for rows.Next() {
		var (
			n          notification.Notification
			idRaw      string
			userIDRaw  string
			readAtNull *time.Time
		)
		if err := rows.Scan(&idRaw, &userIDRaw, &n.Title, &n.Message, &readAtNull, &n.CreatedAt); err != nil {
			return nil, 0, err
		}
		if n.ID, err = uuid.Parse(idRaw); err != nil {
			return nil, 0, err
		}
		if n.UserID, err = uuid.Parse(userIDRaw); err != nil {
			return nil, 0, err
		}
		n.ReadAt = readAtNull
		notifications = append(notifications, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM notifications`+where, userID.String()).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "failed to count notifications")
	}
	return notifications, total, nil
}

func (r *PgNotificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `
		UPDATE notifications
		SET read_at = now()
		WHERE id = $1 AND user_id = $2 AND read_at IS NULL`,
		id.String(),
		userID.String(),
	)
	if err != nil {
		return errors.Wrap(err, "failed to mark notification read")
	}
	if tag.RowsAffected() == 0 {
		return notification.ErrNotFound
	}
	return nil
}
