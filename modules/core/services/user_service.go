package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/stonedesk/stonedesk/modules/core/domain/aggregates/user"
	"github.com/stonedesk/stonedesk/modules/core/permissions"
	"github.com/stonedesk/stonedesk/pkg/authz"
	"github.com/stonedesk/stonedesk/pkg/composables"
	"github.com/stonedesk/stonedesk/pkg/eventbus"
	"github.com/stonedesk/stonedesk/pkg/serrors"
)

// authorizeUsersFn is swapped out in tests.
var authorizeUsersFn = func(ctx context.Context, action string) error {
	actor, err := composables.UseUser(ctx)
	if err != nil {
		return err
	}
	return authz.Use().Authorize(ctx, authz.NewRequest(
		authz.SubjectForRole(string(actor.Role())),
		permissions.UsersObject,
		action,
	))
}

type UserService struct {
	repo      user.Repository
	publisher eventbus.EventBus
}

func NewUserService(repo user.Repository, publisher eventbus.EventBus) *UserService {
	return &UserService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *UserService) Create(ctx context.Context, dto *user.CreateDTO) (user.User, error) {
	if err := authorizeUsersFn(ctx, permissions.ActionCreate); err != nil {
		return user.User{}, err
	}
	if errs, ok := dto.Ok(); !ok {
		return user.User{}, serrors.NewValidation(errs)
	}

	entity, err := dto.ToEntity()
	if err != nil {
		return user.User{}, err
	}

	created, err := composables.InTxResult(ctx, func(txCtx context.Context) (user.User, error) {
		if _, err := s.repo.GetByEmail(txCtx, entity.Email()); err == nil {
			return user.User{}, user.ErrEmailTaken
		} else if err != user.ErrNotFound {
			return user.User{}, err
		}
		return s.repo.Create(txCtx, entity)
	})
	if err != nil {
		return user.User{}, err
	}

	s.publisher.Publish(user.CreatedEvent{Result: created})
	return created, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	if err := authorizeUsersFn(ctx, permissions.ActionView); err != nil {
		return user.User{}, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) GetPaginated(ctx context.Context, params *user.FindParams) ([]user.User, int64, error) {
	if err := authorizeUsersFn(ctx, permissions.ActionList); err != nil {
		return nil, 0, err
	}
	return s.repo.GetPaginated(ctx, params)
}
