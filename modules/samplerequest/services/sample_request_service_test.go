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

	"github.com/stonedesk/stonedesk/modules/core/domain/aggregates/user"
	"github.com/stonedesk/stonedesk/modules/samplerequest/domain/aggregates/samplerequest"
	"github.com/stonedesk/stonedesk/pkg/composables"
	"github.com/stonedesk/stonedesk/pkg/eventbus"
	"github.com/stonedesk/stonedesk/pkg/logging"
)

// stubTx satisfies pgx.Tx so composables.InTx reuses it instead of opening a
// real transaction. The mock repository never touches it.
type stubTx struct {
	pgx.Tx
}

type mockRepository struct {
	samplerequest.Repository

	byID            map[uuid.UUID]samplerequest.SampleRequest
	history         map[uuid.UUID][]samplerequest.DeadlineChange
	rescheduleErr   error
	rescheduleCalls int
	transitionCalls int
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		byID:    make(map[uuid.UUID]samplerequest.SampleRequest),
		history: make(map[uuid.UUID][]samplerequest.DeadlineChange),
	}
}

func (m *mockRepository) Create(_ context.Context, req samplerequest.SampleRequest) (samplerequest.SampleRequest, error) {
	created := samplerequest.Hydrate(
		uuid.New(),
		req.Title(),
		req.Notes(),
		req.RequesterID(),
		req.RequesterName(),
		req.FulfillmentMethod(),
		req.Status(),
		req.RequiredBy(),
		req.Items(),
		time.Now(),
		time.Now(),
	)
	m.byID[created.ID()] = created
	return created, nil
}

func (m *mockRepository) GetByID(_ context.Context, id uuid.UUID) (samplerequest.SampleRequest, error) {
	req, ok := m.byID[id]
	if !ok {
		return samplerequest.SampleRequest{}, samplerequest.ErrNotFound
	}
	return req, nil
}

func (m *mockRepository) TransitionStatus(_ context.Context, id uuid.UUID, from, to samplerequest.Status) error {
	m.transitionCalls++
	req, ok := m.byID[id]
	if !ok || req.Status() != from {
		return samplerequest.ErrInvalidTransition
	}
	updated, err := req.Transition(to)
	if err != nil {
		return err
	}
	m.byID[id] = updated
	return nil
}

func (m *mockRepository) RescheduleDeadline(_ context.Context, id uuid.UUID, change samplerequest.DeadlineChange) error {
	m.rescheduleCalls++
	if m.rescheduleErr != nil {
		return m.rescheduleErr
	}
	req, ok := m.byID[id]
	if !ok {
		return samplerequest.ErrNotFound
	}
	m.byID[id] = req.WithRequiredBy(change.NewDeadline)
	m.history[id] = append(m.history[id], change)
	return nil
}

func (m *mockRepository) GetDeadlineHistory(_ context.Context, id uuid.UUID) ([]samplerequest.DeadlineChange, error) {
	return m.history[id], nil
}

func testContext(t *testing.T, role user.Role) context.Context {
	t.Helper()

	original := authorizeSamplesFn
	authorizeSamplesFn = func(ctx context.Context, action string) error { return nil }
	t.Cleanup(func() { authorizeSamplesFn = original })

	actor := user.Hydrate(
		uuid.New(),
		"coordinator@stonedesk.test",
		"Olim Karimov",
		role,
		"",
		time.Now(),
		time.Now(),
	)
	ctx := composables.WithTx(context.Background(), stubTx{})
	return composables.WithUser(ctx, actor)
}

func newTestService(repo samplerequest.Repository) *SampleRequestService {
	return NewSampleRequestService(repo, eventbus.NewEventPublisher(logging.ConsoleLogger(logrus.ErrorLevel)))
}

func seedRequest(repo *mockRepository, status samplerequest.Status, method samplerequest.FulfillmentMethod, requiredBy time.Time) samplerequest.SampleRequest {
	req := samplerequest.Hydrate(
		uuid.New(),
		"Travertine samples",
		"",
		uuid.New(),
		"Jane Requester",
		method,
		status,
		requiredBy,
		nil,
		time.Now(),
		time.Now(),
	)
	repo.byID[req.ID()] = req
	return req
}

func TestSampleRequestService_Create(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	ctx := testContext(t, user.RoleRequester)

	dto := &samplerequest.CreateDTO{
		Title:             "Travertine samples",
		FulfillmentMethod: "courier",
		RequiredBy:        time.Now().AddDate(0, 0, 14),
		Items:             []samplerequest.ItemDTO{{ProductName: "Travertine Classic", Quantity: 3}},
	}

	created, err := svc.Create(ctx, dto)
	require.NoError(t, err)
	assert.Equal(t, samplerequest.StatusDraft, created.Status())
	assert.Equal(t, "Olim Karimov", created.RequesterName())
	assert.NotEqual(t, uuid.Nil, created.ID())
}

func TestSampleRequestService_Create_ValidationFails(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	ctx := testContext(t, user.RoleRequester)

	_, err := svc.Create(ctx, &samplerequest.CreateDTO{})
	require.Error(t, err)
	assert.Empty(t, repo.byID)
}

func TestSampleRequestService_Transitions(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	ctx := testContext(t, user.RoleCoordinator)

	req := seedRequest(repo, samplerequest.StatusDraft, samplerequest.MethodCourier, time.Now().AddDate(0, 0, 14))

	submitted, err := svc.Submit(ctx, req.ID())
	require.NoError(t, err)
	assert.Equal(t, samplerequest.StatusPendingApproval, submitted.Status())

	approved, err := svc.Approve(ctx, req.ID())
	require.NoError(t, err)
	assert.Equal(t, samplerequest.StatusApproved, approved.Status())

	// Skipping straight to dispatched is refused before any repo write.
	writes := repo.transitionCalls
	_, err = svc.Dispatch(ctx, req.ID())
	assert.ErrorIs(t, err, samplerequest.ErrInvalidTransition)
	assert.Equal(t, writes, repo.transitionCalls)
}

func TestSampleRequestService_RescheduleDeadline(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	ctx := testContext(t, user.RoleCoordinator)

	current := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	req := seedRequest(repo, samplerequest.StatusInProduction, samplerequest.MethodCourier, current)

	proposed := current.AddDate(0, 0, 7)
	updated, change, err := svc.RescheduleDeadline(ctx, req.ID(), proposed, "quarry delay")
	require.NoError(t, err)

	assert.True(t, updated.RequiredBy().Equal(proposed))
	assert.True(t, change.OldDeadline.Equal(current))
	assert.Equal(t, "Olim Karimov", change.ChangedByName)

	history, err := svc.DeadlineHistory(ctx, req.ID())
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.True(t, history[0].OldDeadline.Equal(current))
}

func TestSampleRequestService_RescheduleDeadline_LockedWritesNothing(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	ctx := testContext(t, user.RoleCoordinator)

	current := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	req := seedRequest(repo, samplerequest.StatusDispatched, samplerequest.MethodCourier, current)

	_, _, err := svc.RescheduleDeadline(ctx, req.ID(), current.AddDate(0, 0, 7), "too late")
	assert.ErrorIs(t, err, samplerequest.ErrDeadlineEditLocked)
	assert.Zero(t, repo.rescheduleCalls)

	stored := repo.byID[req.ID()]
	assert.True(t, stored.RequiredBy().Equal(current))
	assert.Empty(t, repo.history[req.ID()])
}

func TestSampleRequestService_RescheduleDeadline_ConflictSurfaces(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	ctx := testContext(t, user.RoleCoordinator)

	current := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	req := seedRequest(repo, samplerequest.StatusReady, samplerequest.MethodCourier, current)
	repo.rescheduleErr = samplerequest.ErrDeadlineConflict

	_, _, err := svc.RescheduleDeadline(ctx, req.ID(), current.AddDate(0, 0, 7), "client asked")
	assert.ErrorIs(t, err, samplerequest.ErrDeadlineConflict)
	assert.Equal(t, 1, repo.rescheduleCalls)
}
