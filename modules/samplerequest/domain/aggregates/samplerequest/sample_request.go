package samplerequest

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stonedesk/stonedesk/pkg/serrors"
)

var (
	ErrNotFound          = serrors.NewError("SAMPLES_REQUEST_NOT_FOUND", "sample request not found")
	ErrInvalidTransition = serrors.NewError("SAMPLES_INVALID_TRANSITION", "status transition is not allowed")
)

// Status is the request's stage in the approval-to-delivery pipeline.
// Transitions run strictly forward through statusOrder; any non-terminal
// status may jump to StatusRejected.
type Status string

const (
	StatusDraft           Status = "draft"
	StatusPendingApproval Status = "pending_approval"
	StatusApproved        Status = "approved"
	StatusAssigned        Status = "assigned"
	StatusInProduction    Status = "in_production"
	StatusReady           Status = "ready"
	StatusDispatched      Status = "dispatched"
	StatusReceived        Status = "received"
	StatusRejected        Status = "rejected"
)

var statusOrder = []Status{
	StatusDraft,
	StatusPendingApproval,
	StatusApproved,
	StatusAssigned,
	StatusInProduction,
	StatusReady,
	StatusDispatched,
	StatusReceived,
}

func NewStatus(value string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(value)))
	switch s {
	case StatusDraft, StatusPendingApproval, StatusApproved, StatusAssigned,
		StatusInProduction, StatusReady, StatusDispatched, StatusReceived, StatusRejected:
		return s, nil
	}
	return "", serrors.NewError("SAMPLES_INVALID_STATUS", "unknown status: "+value)
}

func (s Status) IsTerminal() bool {
	return s == StatusReceived || s == StatusRejected
}

func (s Status) position() int {
	for i, v := range statusOrder {
		if v == s {
			return i
		}
	}
	return -1
}

// CanTransitionTo permits exactly one step forward in the pipeline, or a jump
// to rejected from any non-terminal status.
func (s Status) CanTransitionTo(next Status) bool {
	if s.IsTerminal() {
		return false
	}
	if next == StatusRejected {
		return true
	}
	from, to := s.position(), next.position()
	return from >= 0 && to == from+1
}

// FulfillmentMethod is how a completed sample reaches the requester. All
// non-self_pickup methods behave identically for deadline locking.
type FulfillmentMethod string

const (
	MethodSelfPickup FulfillmentMethod = "self_pickup"
	MethodCourier    FulfillmentMethod = "courier"
	MethodFreight    FulfillmentMethod = "freight"
	MethodPostal     FulfillmentMethod = "postal"
)

func NewFulfillmentMethod(value string) (FulfillmentMethod, error) {
	m := FulfillmentMethod(strings.ToLower(strings.TrimSpace(value)))
	switch m {
	case MethodSelfPickup, MethodCourier, MethodFreight, MethodPostal:
		return m, nil
	}
	return "", serrors.NewError("SAMPLES_INVALID_METHOD", "unknown fulfillment method: "+value)
}

// Item is one product line captured at creation time.
type Item struct {
	ProductName string `json:"product_name"`
	Finish      string `json:"finish"`
	Quantity    int    `json:"quantity"`
}

type SampleRequest struct {
	id                uuid.UUID
	title             string
	notes             string
	requesterID       uuid.UUID
	requesterName     string
	fulfillmentMethod FulfillmentMethod
	status            Status
	requiredBy        time.Time
	items             []Item
	createdAt         time.Time
	updatedAt         time.Time
}

func New(
	title string,
	notes string,
	requesterID uuid.UUID,
	requesterName string,
	method FulfillmentMethod,
	requiredBy time.Time,
	items []Item,
) SampleRequest {
	return SampleRequest{
		title:             strings.TrimSpace(title),
		notes:             strings.TrimSpace(notes),
		requesterID:       requesterID,
		requesterName:     requesterName,
		fulfillmentMethod: method,
		status:            StatusDraft,
		requiredBy:        requiredBy,
		items:             items,
	}
}

func Hydrate(
	id uuid.UUID,
	title string,
	notes string,
	requesterID uuid.UUID,
	requesterName string,
	method FulfillmentMethod,
	status Status,
	requiredBy time.Time,
	items []Item,
	createdAt time.Time,
	updatedAt time.Time,
) SampleRequest {
	return SampleRequest{
		id:                id,
		title:             title,
		notes:             notes,
		requesterID:       requesterID,
		requesterName:     requesterName,
		fulfillmentMethod: method,
		status:            status,
		requiredBy:        requiredBy,
		items:             items,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

func (r SampleRequest) ID() uuid.UUID                        { return r.id }
func (r SampleRequest) Title() string                        { return r.title }
func (r SampleRequest) Notes() string                        { return r.notes }
func (r SampleRequest) RequesterID() uuid.UUID               { return r.requesterID }
func (r SampleRequest) RequesterName() string                { return r.requesterName }
func (r SampleRequest) FulfillmentMethod() FulfillmentMethod { return r.fulfillmentMethod }
func (r SampleRequest) Status() Status                       { return r.status }
func (r SampleRequest) RequiredBy() time.Time                { return r.requiredBy }
func (r SampleRequest) Items() []Item                        { return r.items }
func (r SampleRequest) CreatedAt() time.Time                 { return r.createdAt }
func (r SampleRequest) UpdatedAt() time.Time                 { return r.updatedAt }

// Transition returns a copy advanced to next, or ErrInvalidTransition.
func (r SampleRequest) Transition(next Status) (SampleRequest, error) {
	if !r.status.CanTransitionTo(next) {
		return SampleRequest{}, ErrInvalidTransition
	}
	out := r
	out.status = next
	return out, nil
}

// WithRequiredBy returns a copy with the deadline replaced.
func (r SampleRequest) WithRequiredBy(deadline time.Time) SampleRequest {
	out := r
	out.requiredBy = deadline
	return out
}
