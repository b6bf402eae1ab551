package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stonedesk/stonedesk/pkg/serrors"
)

var ErrNotFound = serrors.NewError("SESSION_NOT_FOUND", "session not found")

// Session is an opaque bearer token handed out at login.
type Session struct {
	Token     string
	UserID    uuid.UUID
	ExpiresAt time.Time
	IP        string
	UserAgent string
	CreatedAt time.Time
}

func (s *Session) IsExpired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

type Repository interface {
	Create(ctx context.Context, s *Session) error
	GetByToken(ctx context.Context, token string) (*Session, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int64, error)
}
