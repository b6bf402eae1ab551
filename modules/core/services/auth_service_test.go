package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/stonedesk/stonedesk/modules/core/domain/aggregates/user"
	"github.com/stonedesk/stonedesk/modules/core/domain/entities/session"
	"github.com/stonedesk/stonedesk/pkg/composables"
	"github.com/stonedesk/stonedesk/pkg/eventbus"
	"github.com/stonedesk/stonedesk/pkg/logging"
)

type stubTx struct {
	pgx.Tx
}

type mockUserRepository struct {
	user.Repository

	byEmail map[string]user.User
	byID    map[uuid.UUID]user.User
}

func newMockUserRepository(users ...user.User) *mockUserRepository {
	m := &mockUserRepository{
		byEmail: make(map[string]user.User),
		byID:    make(map[uuid.UUID]user.User),
	}
	for _, u := range users {
		m.byEmail[u.Email()] = u
		m.byID[u.ID()] = u
	}
	return m
}

func (m *mockUserRepository) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepository) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

type mockSessionRepository struct {
	session.Repository

	byToken map[string]*session.Session
}

func newMockSessionRepository() *mockSessionRepository {
	return &mockSessionRepository{byToken: make(map[string]*session.Session)}
}

func (m *mockSessionRepository) Create(_ context.Context, s *session.Session) error {
	m.byToken[s.Token] = s
	return nil
}

func (m *mockSessionRepository) GetByToken(_ context.Context, token string) (*session.Session, error) {
	s, ok := m.byToken[token]
	if !ok {
		return nil, session.ErrNotFound
	}
	return s, nil
}

func (m *mockSessionRepository) DeleteByToken(_ context.Context, token string) error {
	delete(m.byToken, token)
	return nil
}

func seedUser(t *testing.T, email, password string) user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return user.Hydrate(
		uuid.New(),
		email,
		"Jane Requester",
		user.RoleRequester,
		string(hash),
		time.Now(),
		time.Now(),
	)
}

func newAuthTestService(users *mockUserRepository, sessions *mockSessionRepository) *AuthService {
	return NewAuthService(users, sessions, eventbus.NewEventPublisher(logging.ConsoleLogger(logrus.ErrorLevel)))
}

func TestAuthService_LoginAndAuthorize(t *testing.T) {
	u := seedUser(t, "jane@stonedesk.test", "s3cret-pass")
	users := newMockUserRepository(u)
	sessions := newMockSessionRepository()
	svc := newAuthTestService(users, sessions)

	ctx := composables.WithTx(context.Background(), stubTx{})

	sess, loggedIn, err := svc.Login(ctx, "jane@stonedesk.test", "s3cret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, u.ID(), loggedIn.ID())
	assert.True(t, sess.ExpiresAt.After(time.Now()))

	gotSess, gotUser, err := svc.Authorize(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.Token, gotSess.Token)
	assert.Equal(t, u.ID(), gotUser.ID())
}

func TestAuthService_LoginRejectsBadCredentials(t *testing.T) {
	u := seedUser(t, "jane@stonedesk.test", "s3cret-pass")
	svc := newAuthTestService(newMockUserRepository(u), newMockSessionRepository())
	ctx := composables.WithTx(context.Background(), stubTx{})

	_, _, err := svc.Login(ctx, "jane@stonedesk.test", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@stonedesk.test", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_AuthorizeExpiredSession(t *testing.T) {
	u := seedUser(t, "jane@stonedesk.test", "s3cret-pass")
	users := newMockUserRepository(u)
	sessions := newMockSessionRepository()
	svc := newAuthTestService(users, sessions)
	ctx := composables.WithTx(context.Background(), stubTx{})

	expired := &session.Session{
		Token:     "expired-token",
		UserID:    u.ID(),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, sessions.Create(ctx, expired))

	_, _, err := svc.Authorize(ctx, "expired-token")
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestAuthService_Logout(t *testing.T) {
	u := seedUser(t, "jane@stonedesk.test", "s3cret-pass")
	sessions := newMockSessionRepository()
	svc := newAuthTestService(newMockUserRepository(u), sessions)
	ctx := composables.WithTx(context.Background(), stubTx{})

	sess, _, err := svc.Login(ctx, "jane@stonedesk.test", "s3cret-pass")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, sess.Token))
	_, _, err = svc.Authorize(ctx, sess.Token)
	assert.ErrorIs(t, err, session.ErrNotFound)
}
