package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stonedesk/stonedesk/modules/core/domain/aggregates/user"
	"github.com/stonedesk/stonedesk/modules/samplerequest/domain/aggregates/samplerequest"
	"github.com/stonedesk/stonedesk/modules/samplerequest/permissions"
	"github.com/stonedesk/stonedesk/pkg/authz"
	"github.com/stonedesk/stonedesk/pkg/composables"
	"github.com/stonedesk/stonedesk/pkg/eventbus"
	"github.com/stonedesk/stonedesk/pkg/serrors"
)

// authorizeSamplesFn is swapped out in tests.
var authorizeSamplesFn = func(ctx context.Context, action string) error {
	actor, err := composables.UseUser(ctx)
	if err != nil {
		return err
	}
	return authz.Use().Authorize(ctx, authz.NewRequest(
		authz.SubjectForRole(string(actor.Role())),
		permissions.RequestsObject,
		action,
	))
}

type SampleRequestService struct {
	repo      samplerequest.Repository
	publisher eventbus.EventBus
}

func NewSampleRequestService(repo samplerequest.Repository, publisher eventbus.EventBus) *SampleRequestService {
	return &SampleRequestService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *SampleRequestService) Create(ctx context.Context, dto *samplerequest.CreateDTO) (samplerequest.SampleRequest, error) {
	if err := authorizeSamplesFn(ctx, permissions.ActionCreate); err != nil {
		return samplerequest.SampleRequest{}, err
	}
	if errs, ok := dto.Ok(); !ok {
		return samplerequest.SampleRequest{}, serrors.NewValidation(errs)
	}

	actor, err := composables.UseUser(ctx)
	if err != nil {
		return samplerequest.SampleRequest{}, err
	}
	entity, err := dto.ToEntity(actor.ID(), actor.DisplayName())
	if err != nil {
		return samplerequest.SampleRequest{}, err
	}

	created, err := composables.InTxResult(ctx, func(txCtx context.Context) (samplerequest.SampleRequest, error) {
		return s.repo.Create(txCtx, entity)
	})
	if err != nil {
		return samplerequest.SampleRequest{}, err
	}

	s.publisher.Publish(samplerequest.CreatedEvent{Result: created})
	return created, nil
}

func (s *SampleRequestService) GetByID(ctx context.Context, id uuid.UUID) (samplerequest.SampleRequest, error) {
	if err := authorizeSamplesFn(ctx, permissions.ActionView); err != nil {
		return samplerequest.SampleRequest{}, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *SampleRequestService) GetPaginated(ctx context.Context, params *samplerequest.FindParams) ([]samplerequest.SampleRequest, int64, error) {
	if err := authorizeSamplesFn(ctx, permissions.ActionList); err != nil {
		return nil, 0, err
	}

	// Requesters only ever see their own requests.
	actor, err := composables.UseUser(ctx)
	if err != nil {
		return nil, 0, err
	}
	if actor.Role() == user.RoleRequester {
		if params == nil {
			params = &samplerequest.FindParams{}
		}
		params.RequesterID = actor.ID()
	}
	return s.repo.GetPaginated(ctx, params)
}

func (s *SampleRequestService) Submit(ctx context.Context, id uuid.UUID) (samplerequest.SampleRequest, error) {
	return s.transition(ctx, id, permissions.ActionSubmit, samplerequest.StatusPendingApproval)
}

func (s *SampleRequestService) Approve(ctx context.Context, id uuid.UUID) (samplerequest.SampleRequest, error) {
	return s.transition(ctx, id, permissions.ActionApprove, samplerequest.StatusApproved)
}

func (s *SampleRequestService) Reject(ctx context.Context, id uuid.UUID) (samplerequest.SampleRequest, error) {
	return s.transition(ctx, id, permissions.ActionReject, samplerequest.StatusRejected)
}

func (s *SampleRequestService) Assign(ctx context.Context, id uuid.UUID) (samplerequest.SampleRequest, error) {
	return s.transition(ctx, id, permissions.ActionAssign, samplerequest.StatusAssigned)
}

func (s *SampleRequestService) StartProduction(ctx context.Context, id uuid.UUID) (samplerequest.SampleRequest, error) {
	return s.transition(ctx, id, permissions.ActionStartProduction, samplerequest.StatusInProduction)
}

func (s *SampleRequestService) MarkReady(ctx context.Context, id uuid.UUID) (samplerequest.SampleRequest, error) {
	return s.transition(ctx, id, permissions.ActionMarkReady, samplerequest.StatusReady)
}

func (s *SampleRequestService) Dispatch(ctx context.Context, id uuid.UUID) (samplerequest.SampleRequest, error) {
	return s.transition(ctx, id, permissions.ActionDispatch, samplerequest.StatusDispatched)
}

func (s *SampleRequestService) MarkReceived(ctx context.Context, id uuid.UUID) (samplerequest.SampleRequest, error) {
	return s.transition(ctx, id, permissions.ActionReceive, samplerequest.StatusReceived)
}

func (s *SampleRequestService) transition(ctx context.Context, id uuid.UUID, action string, to samplerequest.Status) (samplerequest.SampleRequest, error) {
	if err := authorizeSamplesFn(ctx, action); err != nil {
		return samplerequest.SampleRequest{}, err
	}

	type transitionResult struct {
		updated  samplerequest.SampleRequest
		previous samplerequest.Status
	}

	result, err := composables.InTxResult(ctx, func(txCtx context.Context) (transitionResult, error) {
		current, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return transitionResult{}, err
		}
		updated, err := current.Transition(to)
		if err != nil {
			return transitionResult{}, err
		}
		if err := s.repo.TransitionStatus(txCtx, id, current.Status(), to); err != nil {
			return transitionResult{}, err
		}
		return transitionResult{updated: updated, previous: current.Status()}, nil
	})
	if err != nil {
		return samplerequest.SampleRequest{}, err
	}

	statusTransitionsTotal.WithLabelValues(string(to)).Inc()
	s.publisher.Publish(samplerequest.StatusChangedEvent{
		Result:   result.updated,
		Previous: result.previous,
	})
	return result.updated, nil
}

// RescheduleDeadline runs the full deadline edit flow: the precondition
// checks against the loaded request, then the atomic history append plus
// required_by update. Nothing is written when a precondition fails.
func (s *SampleRequestService) RescheduleDeadline(
	ctx context.Context,
	id uuid.UUID,
	newDeadline time.Time,
	reason string,
) (samplerequest.SampleRequest, samplerequest.DeadlineChange, error) {
	if err := authorizeSamplesFn(ctx, permissions.ActionRescheduleDeadline); err != nil {
		return samplerequest.SampleRequest{}, samplerequest.DeadlineChange{}, err
	}

	actor, err := composables.UseUser(ctx)
	if err != nil {
		return samplerequest.SampleRequest{}, samplerequest.DeadlineChange{}, err
	}

	type rescheduleResult struct {
		updated samplerequest.SampleRequest
		change  samplerequest.DeadlineChange
	}

	result, err := composables.InTxResult(ctx, func(txCtx context.Context) (rescheduleResult, error) {
		current, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return rescheduleResult{}, err
		}
		change, err := samplerequest.ProposeDeadlineEdit(current, newDeadline, reason, actor.DisplayName())
		if err != nil {
			return rescheduleResult{}, err
		}
		if err := s.repo.RescheduleDeadline(txCtx, id, change); err != nil {
			return rescheduleResult{}, err
		}
		return rescheduleResult{
			updated: current.WithRequiredBy(change.NewDeadline),
			change:  change,
		}, nil
	})
	if err != nil {
		deadlineReschedulesTotal.WithLabelValues(rescheduleOutcome(err)).Inc()
		return samplerequest.SampleRequest{}, samplerequest.DeadlineChange{}, err
	}

	deadlineReschedulesTotal.WithLabelValues("success").Inc()
	s.publisher.Publish(samplerequest.DeadlineRescheduledEvent{
		Result: result.updated,
		Change: result.change,
	})
	return result.updated, result.change, nil
}

func rescheduleOutcome(err error) string {
	switch err {
	case samplerequest.ErrDeadlineEditLocked:
		return "locked"
	case samplerequest.ErrDeadlineReasonRequired:
		return "missing_reason"
	case samplerequest.ErrDeadlineUnchanged:
		return "no_change"
	case samplerequest.ErrDeadlineConflict:
		return "conflict"
	default:
		return "store_failure"
	}
}

// DeadlineHistory returns the change log in append order.
func (s *SampleRequestService) DeadlineHistory(ctx context.Context, id uuid.UUID) ([]samplerequest.DeadlineChange, error) {
	if err := authorizeSamplesFn(ctx, permissions.ActionView); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.GetDeadlineHistory(ctx, id)
}
