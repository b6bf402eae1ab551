package samplerequest

import (
	"context"

	"github.com/google/uuid"
)

type FindParams struct {
	Limit       int
	Offset      int
	Status      Status
	RequesterID uuid.UUID
}

type Repository interface {
	Create(ctx context.Context, req SampleRequest) (SampleRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (SampleRequest, error)
	GetPaginated(ctx context.Context, params *FindParams) ([]SampleRequest, int64, error)

	// TransitionStatus moves the stored row from one status to another. The
	// update is conditional on the row still holding the expected current
	// status; zero rows affected surfaces as ErrInvalidTransition.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to Status) error

	// RescheduleDeadline appends the history row and updates required_by in
	// a single transaction. The update is conditional on the row's deadline
	// still matching change.OldDeadline and its status still being editable
	// for the stored fulfillment method; if the row was concurrently
	// advanced, the whole transaction fails with ErrDeadlineConflict.
	RescheduleDeadline(ctx context.Context, id uuid.UUID, change DeadlineChange) error

	// GetDeadlineHistory returns the change log in append (chronological)
	// order.
	GetDeadlineHistory(ctx context.Context, id uuid.UUID) ([]DeadlineChange, error)
}
