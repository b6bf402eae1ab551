package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/stonedesk/stonedesk/modules/core/domain/aggregates/user"
	"github.com/stonedesk/stonedesk/modules/core/domain/entities/session"
	"github.com/stonedesk/stonedesk/pkg/composables"
	"github.com/stonedesk/stonedesk/pkg/configuration"
	"github.com/stonedesk/stonedesk/pkg/eventbus"
	"github.com/stonedesk/stonedesk/pkg/serrors"
)

var (
	ErrInvalidCredentials = serrors.NewError("AUTH_INVALID_CREDENTIALS", "invalid email or password")
	ErrSessionExpired     = serrors.NewError("AUTH_SESSION_EXPIRED", "session has expired")
)

type AuthService struct {
	users     user.Repository
	sessions  session.Repository
	publisher eventbus.EventBus
}

func NewAuthService(users user.Repository, sessions session.Repository, publisher eventbus.EventBus) *AuthService {
	return &AuthService{
		users:     users,
		sessions:  sessions,
		publisher: publisher,
	}
}

func newSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// Login verifies credentials and issues a bearer session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*session.Session, user.User, error) {
	conf := configuration.Use()

	result, err := composables.InTxResult(ctx, func(txCtx context.Context) (loginResult, error) {
		u, err := s.users.GetByEmail(txCtx, email)
		if err != nil {
			if err == user.ErrNotFound {
				return loginResult{}, ErrInvalidCredentials
			}
			return loginResult{}, err
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash()), []byte(password)) != nil {
			return loginResult{}, ErrInvalidCredentials
		}

		token, err := newSessionToken()
		if err != nil {
			return loginResult{}, err
		}

		sess := &session.Session{
			Token:     token,
			UserID:    u.ID(),
			ExpiresAt: time.Now().Add(conf.SessionDuration),
		}
		if params, ok := composables.UseParams(txCtx); ok {
			sess.IP = params.IP
			sess.UserAgent = params.UserAgent
		}
		if err := s.sessions.Create(txCtx, sess); err != nil {
			return loginResult{}, err
		}
		return loginResult{sess: sess, user: u}, nil
	})
	if err != nil {
		return nil, user.User{}, err
	}

	s.publisher.Publish(user.SignedInEvent{Result: result.user, IP: result.sess.IP})
	return result.sess, result.user, nil
}

type loginResult struct {
	sess *session.Session
	user user.User
}

// Authorize resolves a bearer token to its session and user.
func (s *AuthService) Authorize(ctx context.Context, token string) (*session.Session, user.User, error) {
	sess, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, user.User{}, err
	}
	if sess.IsExpired() {
		return nil, user.User{}, ErrSessionExpired
	}
	u, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		return nil, user.User{}, err
	}
	return sess, u, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.sessions.DeleteByToken(txCtx, token)
	})
}

// DeleteExpiredSessions prunes sessions past their expiry.
func (s *AuthService) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (int64, error) {
		return s.sessions.DeleteExpired(txCtx)
	})
}
