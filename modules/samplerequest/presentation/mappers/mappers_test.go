package mappers_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stonedesk/stonedesk/modules/samplerequest/domain/aggregates/samplerequest"
	"github.com/stonedesk/stonedesk/modules/samplerequest/presentation/mappers"
)

func historyFixture() []samplerequest.DeadlineChange {
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	return []samplerequest.DeadlineChange{
		{
			OldDeadline:   base.AddDate(0, 0, 10),
			NewDeadline:   base.AddDate(0, 0, 14),
			Reason:        "quarry delay",
			ChangedByName: "Olim Karimov",
			Timestamp:     base,
		},
		{
			OldDeadline:   base.AddDate(0, 0, 14),
			NewDeadline:   base.AddDate(0, 0, 21),
			Reason:        "client requested extension",
			ChangedByName: "Dana",
			Timestamp:     base.Add(48 * time.Hour),
		},
		{
			OldDeadline:   base.AddDate(0, 0, 21),
			NewDeadline:   base.AddDate(0, 0, 18),
			Reason:        "earlier install date",
			ChangedByName: "Dana",
			Timestamp:     base.Add(24 * time.Hour),
		},
	}
}

func TestDeadlineHistoryToViewModel_MostRecentFirst(t *testing.T) {
	vm := mappers.DeadlineHistoryToViewModel(historyFixture())

	require.Len(t, vm.Entries, 3)
	assert.Equal(t, "client requested extension", vm.Entries[0].Reason)
	assert.Equal(t, "earlier install date", vm.Entries[1].Reason)
	assert.Equal(t, "quarry delay", vm.Entries[2].Reason)

	assert.Contains(t, vm.Summary, "Dana")
	assert.Contains(t, vm.Summary, "client requested extension")
}

func TestDeadlineHistoryToViewModel_Idempotent(t *testing.T) {
	history := historyFixture()

	first := mappers.DeadlineHistoryToViewModel(history)
	second := mappers.DeadlineHistoryToViewModel(history)
	assert.Equal(t, first, second)

	// The append-order input is left untouched.
	assert.Equal(t, "quarry delay", history[0].Reason)
}

func TestDeadlineHistoryToViewModel_Empty(t *testing.T) {
	vm := mappers.DeadlineHistoryToViewModel(nil)
	assert.Empty(t, vm.Entries)
	assert.Empty(t, vm.Summary)
}

func TestSampleRequestToViewModel_LockReason(t *testing.T) {
	req := samplerequest.Hydrate(
		uuid.New(),
		"Granite samples",
		"",
		uuid.New(),
		"Jane Requester",
		samplerequest.MethodSelfPickup,
		samplerequest.StatusReady,
		time.Now().AddDate(0, 0, 7),
		nil,
		time.Now(),
		time.Now(),
	)

	vm := mappers.SampleRequestToViewModel(req)
	assert.False(t, vm.DeadlineEditable)
	assert.NotEmpty(t, vm.DeadlineLockReason)

	editable := samplerequest.Hydrate(
		uuid.New(),
		"Granite samples",
		"",
		uuid.New(),
		"Jane Requester",
		samplerequest.MethodCourier,
		samplerequest.StatusReady,
		time.Now().AddDate(0, 0, 7),
		nil,
		time.Now(),
		time.Now(),
	)
	vm = mappers.SampleRequestToViewModel(editable)
	assert.True(t, vm.DeadlineEditable)
	assert.Empty(t, vm.DeadlineLockReason)
}
