package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/stonedesk/stonedesk/modules/core/domain/entities/session"
	"github.com/stonedesk/stonedesk/modules/core/infrastructure/persistence/models"
	"github.com/stonedesk/stonedesk/pkg/composables"
)

type PgSessionRepository struct{}

func NewSessionRepository() session.Repository {
	return &PgSessionRepository{}
}

func (r *PgSessionRepository) Create(ctx context.Context, s *session.Session) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO sessions (token, user_id, expires_at, ip, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, now())`,
		s.Token,
		s.UserID.String(),
		s.ExpiresAt,
		s.IP,
		s.UserAgent,
	)
	if err != nil {
		return errors.Wrap(err, "failed to create session")
	}
	return nil
}

func (r *PgSessionRepository) GetByToken(ctx context.Context, token string) (*session.Session, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var m models.Session
	err = tx.QueryRow(ctx, `
		SELECT token, user_id, expires_at, ip, user_agent, created_at
		FROM sessions
		WHERE token = $1`,
		token,
	).Scan(&m.Token, &m.UserID, &m.ExpiresAt, &m.IP, &m.UserAgent, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, session.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to get session")
	}
	return toDomainSession(&m)
}

func (r *PgSessionRepository) DeleteByToken(ctx context.Context, token string) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token); err != nil {
		return errors.Wrap(err, "failed to delete session")
	}
	return nil
}

func (r *PgSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM sessions WHERE expires_at < now()`)
	if err != nil {
		return 0, errors.Wrap(err, "failed to delete expired sessions")
	}
	return tag.RowsAffected(), nil
}
