package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stonedesk/stonedesk/modules/core/domain/aggregates/user"
	"github.com/stonedesk/stonedesk/pkg/composables"
	"github.com/stonedesk/stonedesk/pkg/eventbus"
	"github.com/stonedesk/stonedesk/pkg/logging"
	"github.com/stonedesk/stonedesk/pkg/serrors"
)

func (m *mockUserRepository) Create(_ context.Context, u user.User) (user.User, error) {
	created := user.Hydrate(
		uuid.New(),
		u.Email(),
		u.DisplayName(),
		u.Role(),
		u.PasswordHash(),
		time.Now(),
		time.Now(),
	)
	m.byEmail[created.Email()] = created
	m.byID[created.ID()] = created
	return created, nil
}

func allowUsersAuthz(t *testing.T) {
	t.Helper()
	original := authorizeUsersFn
	authorizeUsersFn = func(ctx context.Context, action string) error { return nil }
	t.Cleanup(func() { authorizeUsersFn = original })
}

func TestUserService_Create(t *testing.T) {
	allowUsersAuthz(t)
	repo := newMockUserRepository()
	svc := NewUserService(repo, eventbus.NewEventPublisher(logging.ConsoleLogger(logrus.ErrorLevel)))
	ctx := composables.WithTx(context.Background(), stubTx{})

	dto := &user.CreateDTO{
		Email:       "new@stonedesk.test",
		DisplayName: "New User",
		Role:        "coordinator",
		Password:    "s3cret-pass",
	}

	created, err := svc.Create(ctx, dto)
	require.NoError(t, err)
	assert.Equal(t, user.RoleCoordinator, created.Role())
	assert.NotEqual(t, uuid.Nil, created.ID())
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	allowUsersAuthz(t)
	existing := seedUser(t, "taken@stonedesk.test", "s3cret-pass")
	repo := newMockUserRepository(existing)
	svc := NewUserService(repo, eventbus.NewEventPublisher(logging.ConsoleLogger(logrus.ErrorLevel)))
	ctx := composables.WithTx(context.Background(), stubTx{})

	_, err := svc.Create(ctx, &user.CreateDTO{
		Email:       "taken@stonedesk.test",
		DisplayName: "Dup",
		Role:        "requester",
		Password:    "s3cret-pass",
	})
	assert.ErrorIs(t, err, user.ErrEmailTaken)
}

func TestUserService_Create_ValidationError(t *testing.T) {
	allowUsersAuthz(t)
	repo := newMockUserRepository()
	svc := NewUserService(repo, eventbus.NewEventPublisher(logging.ConsoleLogger(logrus.ErrorLevel)))
	ctx := composables.WithTx(context.Background(), stubTx{})

	_, err := svc.Create(ctx, &user.CreateDTO{Email: "bad"})
	require.Error(t, err)

	var validationErr *serrors.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
