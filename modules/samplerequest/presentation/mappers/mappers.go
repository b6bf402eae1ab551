package mappers

import (
	"fmt"
	"sort"
	"time"

	"github.com/stonedesk/stonedesk/modules/samplerequest/domain/aggregates/samplerequest"
	"github.com/stonedesk/stonedesk/modules/samplerequest/presentation/viewmodels"
)

const deadlineDisplayFormat = "Jan 2, 2006 15:04"

func SampleRequestToViewModel(req samplerequest.SampleRequest) viewmodels.SampleRequest {
	items := make([]viewmodels.Item, 0, len(req.Items()))
	for _, item := range req.Items() {
		items = append(items, viewmodels.Item{
			ProductName: item.ProductName,
			Finish:      item.Finish,
			Quantity:    item.Quantity,
		})
	}

	vm := viewmodels.SampleRequest{
		ID:                req.ID().String(),
		Title:             req.Title(),
		Notes:             req.Notes(),
		RequesterID:       req.RequesterID().String(),
		RequesterName:     req.RequesterName(),
		FulfillmentMethod: string(req.FulfillmentMethod()),
		Status:            string(req.Status()),
		RequiredBy:        req.RequiredBy().Format(time.RFC3339),
		Items:             items,
		DeadlineEditable:  samplerequest.CanEditDeadline(req.Status(), req.FulfillmentMethod()),
		CreatedAt:         req.CreatedAt().Format(time.RFC3339),
		UpdatedAt:         req.UpdatedAt().Format(time.RFC3339),
	}
	if !vm.DeadlineEditable {
		vm.DeadlineLockReason = samplerequest.DeadlineLockReason(req.Status(), req.FulfillmentMethod())
	}
	return vm
}

func DeadlineChangeToViewModel(change samplerequest.DeadlineChange) viewmodels.DeadlineChange {
	return viewmodels.DeadlineChange{
		OldDeadline:   change.OldDeadline.Format(time.RFC3339),
		NewDeadline:   change.NewDeadline.Format(time.RFC3339),
		Reason:        change.Reason,
		ChangedByName: change.ChangedByName,
		Timestamp:     change.Timestamp.Format(time.RFC3339),
	}
}

// DeadlineHistoryToViewModel reorders the append-order change log most recent
// first for display and summarizes the latest change. The input slice is not
// modified; calling this twice on the same history yields identical output.
func DeadlineHistoryToViewModel(changes []samplerequest.DeadlineChange) viewmodels.DeadlineHistory {
	ordered := make([]samplerequest.DeadlineChange, len(changes))
	copy(ordered, changes)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.After(ordered[j].Timestamp)
	})

	entries := make([]viewmodels.DeadlineChange, 0, len(ordered))
	for _, change := range ordered {
		entries = append(entries, DeadlineChangeToViewModel(change))
	}

	vm := viewmodels.DeadlineHistory{Entries: entries}
	if len(ordered) > 0 {
		vm.Summary = LatestChangeSummary(ordered[0])
	}
	return vm
}

// LatestChangeSummary renders a one-line description of a deadline change.
func LatestChangeSummary(change samplerequest.DeadlineChange) string {
	return fmt.Sprintf(
		"%s moved the deadline from %s to %s: %s",
		change.ChangedByName,
		change.OldDeadline.Format(deadlineDisplayFormat),
		change.NewDeadline.Format(deadlineDisplayFormat),
		change.Reason,
	)
}
