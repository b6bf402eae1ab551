package samplerequest_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stonedesk/stonedesk/modules/samplerequest/domain/aggregates/samplerequest"
)

var allStatuses = []samplerequest.Status{
	samplerequest.StatusDraft,
	samplerequest.StatusPendingApproval,
	samplerequest.StatusApproved,
	samplerequest.StatusAssigned,
	samplerequest.StatusInProduction,
	samplerequest.StatusReady,
	samplerequest.StatusDispatched,
	samplerequest.StatusReceived,
	samplerequest.StatusRejected,
}

var allMethods = []samplerequest.FulfillmentMethod{
	samplerequest.MethodSelfPickup,
	samplerequest.MethodCourier,
	samplerequest.MethodFreight,
	samplerequest.MethodPostal,
}

func requestWith(status samplerequest.Status, method samplerequest.FulfillmentMethod, requiredBy time.Time) samplerequest.SampleRequest {
	return samplerequest.Hydrate(
		uuid.New(),
		"Carrara slab samples",
		"",
		uuid.New(),
		"Jane Requester",
		method,
		status,
		requiredBy,
		[]samplerequest.Item{{ProductName: "Carrara C", Finish: "polished", Quantity: 2}},
		time.Now().Add(-time.Hour),
		time.Now().Add(-time.Hour),
	)
}

func TestCanEditDeadline_ExhaustiveTable(t *testing.T) {
	editable := map[samplerequest.Status]bool{
		samplerequest.StatusPendingApproval: true,
		samplerequest.StatusApproved:        true,
		samplerequest.StatusAssigned:        true,
		samplerequest.StatusInProduction:    true,
	}

	for _, method := range allMethods {
		for _, status := range allStatuses {
			want := editable[status]
			if status == samplerequest.StatusReady && method != samplerequest.MethodSelfPickup {
				want = true
			}
			got := samplerequest.CanEditDeadline(status, method)
			assert.Equalf(t, want, got, "status=%s method=%s", status, method)
		}
	}
}

func TestDeadlineLockReason_DistinctMessages(t *testing.T) {
	selfPickupReady := samplerequest.DeadlineLockReason(samplerequest.StatusReady, samplerequest.MethodSelfPickup)
	received := samplerequest.DeadlineLockReason(samplerequest.StatusReceived, samplerequest.MethodCourier)
	dispatched := samplerequest.DeadlineLockReason(samplerequest.StatusDispatched, samplerequest.MethodCourier)
	fallback := samplerequest.DeadlineLockReason(samplerequest.StatusRejected, samplerequest.MethodCourier)

	messages := []string{selfPickupReady, received, dispatched, fallback}
	seen := make(map[string]struct{}, len(messages))
	for _, m := range messages {
		require.NotEmpty(t, m)
		seen[m] = struct{}{}
	}
	assert.Len(t, seen, len(messages), "lock reasons must be pairwise distinct")

	assert.Contains(t, received, "received")
	assert.Contains(t, dispatched, "dispatched")
}

func TestProposeDeadlineEdit_Success(t *testing.T) {
	current := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	proposed := current.Add(72 * time.Hour)
	req := requestWith(samplerequest.StatusApproved, samplerequest.MethodCourier, current)

	change, err := samplerequest.ProposeDeadlineEdit(req, proposed, "  client requested extension  ", "Olim Karimov")
	require.NoError(t, err)

	assert.True(t, change.OldDeadline.Equal(current))
	assert.True(t, change.NewDeadline.Equal(proposed))
	assert.Equal(t, "client requested extension", change.Reason)
	assert.Equal(t, "Olim Karimov", change.ChangedByName)
	assert.WithinDuration(t, time.Now(), change.Timestamp, time.Minute)
}

func TestProposeDeadlineEdit_ActorNameFallback(t *testing.T) {
	current := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	req := requestWith(samplerequest.StatusAssigned, samplerequest.MethodFreight, current)

	change, err := samplerequest.ProposeDeadlineEdit(req, current.AddDate(0, 0, 5), "supplier delay", "   ")
	require.NoError(t, err)
	assert.Equal(t, samplerequest.DefaultActorName, change.ChangedByName)
}

func TestProposeDeadlineEdit_FailFastOrder(t *testing.T) {
	current := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

	// Locked request with an empty reason and a no-op deadline: the lock
	// must win over both later preconditions.
	locked := requestWith(samplerequest.StatusDispatched, samplerequest.MethodCourier, current)
	_, err := samplerequest.ProposeDeadlineEdit(locked, current, "", "")
	assert.ErrorIs(t, err, samplerequest.ErrDeadlineEditLocked)

	// Editable request with an empty reason and a no-op deadline: the
	// reason check must win over the no-op check.
	editable := requestWith(samplerequest.StatusApproved, samplerequest.MethodCourier, current)
	_, err = samplerequest.ProposeDeadlineEdit(editable, current, "   ", "")
	assert.ErrorIs(t, err, samplerequest.ErrDeadlineReasonRequired)
}

func TestScenarioA_ReadyCourierSucceeds(t *testing.T) {
	current := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	req := requestWith(samplerequest.StatusReady, samplerequest.MethodCourier, current)

	change, err := samplerequest.ProposeDeadlineEdit(req, current.AddDate(0, 0, 7), "client requested extension", "Dana")
	require.NoError(t, err)
	assert.True(t, change.OldDeadline.Equal(current))
}

func TestScenarioB_ReadySelfPickupLocked(t *testing.T) {
	current := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	req := requestWith(samplerequest.StatusReady, samplerequest.MethodSelfPickup, current)

	assert.False(t, samplerequest.CanEditDeadline(req.Status(), req.FulfillmentMethod()))
	_, err := samplerequest.ProposeDeadlineEdit(req, current.AddDate(0, 0, 7), "client requested extension", "Dana")
	assert.ErrorIs(t, err, samplerequest.ErrDeadlineEditLocked)
}

func TestScenarioC_DispatchedLockedForAnyMethod(t *testing.T) {
	for _, method := range allMethods {
		assert.Falsef(t, samplerequest.CanEditDeadline(samplerequest.StatusDispatched, method), "method=%s", method)
	}
}

func TestScenarioD_EmptyReasonRejected(t *testing.T) {
	current := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	req := requestWith(samplerequest.StatusPendingApproval, samplerequest.MethodCourier, current)

	_, err := samplerequest.ProposeDeadlineEdit(req, current.AddDate(0, 0, 7), "", "Dana")
	assert.ErrorIs(t, err, samplerequest.ErrDeadlineReasonRequired)
}

func TestScenarioE_SameInstantDifferentLocationRejected(t *testing.T) {
	tashkent, err := time.LoadLocation("Asia/Tashkent")
	require.NoError(t, err)

	current := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	sameInstant := current.In(tashkent)
	require.NotEqual(t, current.Format(time.RFC3339), sameInstant.Format(time.RFC3339))

	req := requestWith(samplerequest.StatusApproved, samplerequest.MethodCourier, current)
	_, err = samplerequest.ProposeDeadlineEdit(req, sameInstant, "adjust", "Dana")
	assert.ErrorIs(t, err, samplerequest.ErrDeadlineUnchanged)
}

func TestScenarioF_ReceivedLockedWithDistinctReason(t *testing.T) {
	for _, method := range allMethods {
		assert.Falsef(t, samplerequest.CanEditDeadline(samplerequest.StatusReceived, method), "method=%s", method)
	}

	receivedMsg := samplerequest.DeadlineLockReason(samplerequest.StatusReceived, samplerequest.MethodCourier)
	assert.NotEqual(t, receivedMsg, samplerequest.DeadlineLockReason(samplerequest.StatusDispatched, samplerequest.MethodCourier))
	assert.NotEqual(t, receivedMsg, samplerequest.DeadlineLockReason(samplerequest.StatusReady, samplerequest.MethodSelfPickup))
}

func TestStatusTransitions(t *testing.T) {
	req := requestWith(samplerequest.StatusDraft, samplerequest.MethodCourier, time.Now().AddDate(0, 0, 14))

	next, err := req.Transition(samplerequest.StatusPendingApproval)
	require.NoError(t, err)
	assert.Equal(t, samplerequest.StatusPendingApproval, next.Status())

	// No skipping ahead.
	_, err = next.Transition(samplerequest.StatusReady)
	assert.ErrorIs(t, err, samplerequest.ErrInvalidTransition)

	// Rejected is reachable from any non-terminal status.
	rejected, err := next.Transition(samplerequest.StatusRejected)
	require.NoError(t, err)
	assert.True(t, rejected.Status().IsTerminal())

	// Terminal statuses are absorbing.
	_, err = rejected.Transition(samplerequest.StatusApproved)
	assert.ErrorIs(t, err, samplerequest.ErrInvalidTransition)

	received := requestWith(samplerequest.StatusReceived, samplerequest.MethodCourier, time.Now())
	_, err = received.Transition(samplerequest.StatusRejected)
	assert.ErrorIs(t, err, samplerequest.ErrInvalidTransition)
}
