package samplerequest

import (
	"strings"
	"time"

	"github.com/stonedesk/stonedesk/pkg/serrors"
)

var (
	ErrDeadlineEditLocked     = serrors.NewError("SAMPLES_DEADLINE_LOCKED", "the deadline can no longer be changed at this stage")
	ErrDeadlineReasonRequired = serrors.NewError("SAMPLES_DEADLINE_REASON_REQUIRED", "a reason is required to change the deadline")
	ErrDeadlineUnchanged      = serrors.NewError("SAMPLES_DEADLINE_UNCHANGED", "the proposed deadline matches the current one")
	ErrDeadlineConflict       = serrors.NewError("SAMPLES_DEADLINE_CONFLICT", "the request changed while the deadline edit was in flight")
)

// DefaultActorName is recorded on a deadline change when the acting user has
// no display name.
const DefaultActorName = "Coordinator"

// DeadlineChange is an immutable audit record of one deadline edit.
type DeadlineChange struct {
	OldDeadline   time.Time
	NewDeadline   time.Time
	Reason        string
	ChangedByName string
	Timestamp     time.Time
}

// EditableStatuses returns the statuses in which the deadline may still be
// edited for the given fulfillment method. Self pickup locks earlier, at
// ready, because the client has already been told to collect the sample.
// Delivery methods stay editable through ready and lock at dispatched.
func EditableStatuses(method FulfillmentMethod) []Status {
	statuses := []Status{
		StatusPendingApproval,
		StatusApproved,
		StatusAssigned,
		StatusInProduction,
	}
	if method != MethodSelfPickup {
		statuses = append(statuses, StatusReady)
	}
	return statuses
}

// CanEditDeadline reports whether the deadline is editable in the given
// status for the given fulfillment method.
func CanEditDeadline(status Status, method FulfillmentMethod) bool {
	for _, s := range EditableStatuses(method) {
		if s == status {
			return true
		}
	}
	return false
}

// DeadlineLockReason explains why editing is currently disallowed.
func DeadlineLockReason(status Status, method FulfillmentMethod) string {
	switch {
	case status == StatusReady && method == MethodSelfPickup:
		return "The client has already been notified to pick up the sample, so the deadline is locked."
	case status == StatusReceived:
		return "The sample has already been received, so the deadline can no longer be changed."
	case status == StatusDispatched:
		return "The sample has already been dispatched, so the deadline can no longer be changed."
	default:
		return "The deadline cannot be changed while the request is in this status."
	}
}

// ProposeDeadlineEdit validates a deadline edit against the request's current
// state and, if valid, builds the history entry to append. Preconditions are
// checked in order and the first failure wins: the edit lock, then the
// reason, then the no-op check. The instants are compared with time.Equal so
// equal moments expressed in different locations still count as unchanged.
//
// The returned change is not yet durable; persisting it together with the
// required_by update is the repository's job, atomically.
func ProposeDeadlineEdit(
	req SampleRequest,
	newDeadline time.Time,
	reason string,
	actorName string,
) (DeadlineChange, error) {
	if !CanEditDeadline(req.Status(), req.FulfillmentMethod()) {
		return DeadlineChange{}, ErrDeadlineEditLocked
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return DeadlineChange{}, ErrDeadlineReasonRequired
	}

	if newDeadline.Equal(req.RequiredBy()) {
		return DeadlineChange{}, ErrDeadlineUnchanged
	}

	actorName = strings.TrimSpace(actorName)
	if actorName == "" {
		actorName = DefaultActorName
	}

	return DeadlineChange{
		OldDeadline:   req.RequiredBy(),
		NewDeadline:   newDeadline,
		Reason:        reason,
		ChangedByName: actorName,
		Timestamp:     time.Now(),
	}, nil
}
