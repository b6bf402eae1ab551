package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/stonedesk/stonedesk/modules/samplerequest/domain/aggregates/samplerequest"
	"github.com/stonedesk/stonedesk/modules/samplerequest/infrastructure/persistence/models"
	"github.com/stonedesk/stonedesk/pkg/composables"
	"github.com/stonedesk/stonedesk/pkg/repo"
)

const (
	selectSampleRequestQuery = `
		SELECT id, title, notes, requester_id, requester_name,
		       fulfillment_method, status, required_by, items,
		       created_at, updated_at
		FROM sample_requests`
	countSampleRequestsQuery = `SELECT COUNT(*) FROM sample_requests`

	insertSampleRequestQuery = `
		INSERT INTO sample_requests (
			id, title, notes, requester_id, requester_name,
			fulfillment_method, status, required_by, items,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
		RETURNING id, title, notes, requester_id, requester_name,
		          fulfillment_method, status, required_by, items,
		          created_at, updated_at`

	transitionStatusQuery = `
		UPDATE sample_requests
		SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3`

	insertDeadlineChangeQuery = `
		INSERT INTO sample_request_deadline_changes (
			id, request_id, old_deadline, new_deadline,
			reason, changed_by_name, changed_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	// The deadline update is conditional on the row still holding the
	// deadline the edit was proposed against and on its status still being
	// editable for the stored fulfillment method. A concurrent advance past
	// the editable set makes this affect zero rows, which fails the whole
	// transaction.
	rescheduleDeadlineQuery = `
		UPDATE sample_requests
		SET required_by = $1, updated_at = now()
		WHERE id = $2
		  AND required_by = $3
		  AND (
			(fulfillment_method = 'self_pickup' AND status IN (
				'pending_approval', 'approved', 'assigned', 'in_production'
			))
			OR
			(fulfillment_method <> 'self_pickup' AND status IN (
				'pending_approval', 'approved', 'assigned', 'in_production', 'ready'
			))
		  )`

	selectDeadlineChangesQuery = `
		SELECT id, request_id, old_deadline, new_deadline,
		       reason, changed_by_name, changed_at
		FROM sample_request_deadline_changes
		WHERE request_id = $1
		ORDER BY changed_at ASC, id ASC`
)

type PgSampleRequestRepository struct{}

func NewSampleRequestRepository() samplerequest.Repository {
	return &PgSampleRequestRepository{}
}

func (r *PgSampleRequestRepository) Create(ctx context.Context, req samplerequest.SampleRequest) (samplerequest.SampleRequest, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return samplerequest.SampleRequest{}, err
	}

	id := req.ID()
	if id == uuid.Nil {
		id = uuid.New()
	}
	items, err := marshalItems(req.Items())
	if err != nil {
		return samplerequest.SampleRequest{}, errors.Wrap(err, "failed to encode items")
	}

	row := tx.QueryRow(ctx, insertSampleRequestQuery,
		id.String(),
		req.Title(),
		req.Notes(),
		req.RequesterID().String(),
		req.RequesterName(),
		string(req.FulfillmentMethod()),
		string(req.Status()),
		req.RequiredBy(),
		items,
	)
	created, err := scanSampleRequest(row)
	if err != nil {
		return samplerequest.SampleRequest{}, errors.Wrap(err, "failed to create sample request")
	}
	return created, nil
}

func (r *PgSampleRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (samplerequest.SampleRequest, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return samplerequest.SampleRequest{}, err
	}
	row := tx.QueryRow(ctx, selectSampleRequestQuery+" WHERE id = $1", id.String())
	req, err := scanSampleRequest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return samplerequest.SampleRequest{}, samplerequest.ErrNotFound
		}
		return samplerequest.SampleRequest{}, errors.Wrap(err, "failed to get sample request")
	}
	return req, nil
}

func (r *PgSampleRequestRepository) GetPaginated(ctx context.Context, params *samplerequest.FindParams) ([]samplerequest.SampleRequest, int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, 0, err
	}

	where := " WHERE 1 = 1"
	args := []any{}
	if params != nil && params.Status != "" {
		args = append(args, string(params.Status))
		where += " AND status = $1"
	}
	if params != nil && params.RequesterID != uuid.Nil {
		args = append(args, params.RequesterID.String())
		if len(args) == 1 {
			where += " AND requester_id = $1"
		} else {
			where += " AND requester_id = $2"
		}
	}

	query := selectSampleRequestQuery + where + " ORDER BY created_at DESC"
	if params != nil {
		query += " " + repo.FormatLimitOffset(params.Limit, params.Offset)
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list sample requests")
	}
	defer rows.Close()

	var requests []samplerequest.SampleRequest
	for rows.Next() {
		req, err := scanSampleRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := tx.QueryRow(ctx, countSampleRequestsQuery+where, args...).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "failed to count sample requests")
	}
	return requests, total, nil
}

func (r *PgSampleRequestRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to samplerequest.Status) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, transitionStatusQuery, string(to), id.String(), string(from))
	if err != nil {
		return errors.Wrap(err, "failed to transition sample request status")
	}
	if tag.RowsAffected() == 0 {
		return samplerequest.ErrInvalidTransition
	}
	return nil
}

func (r *PgSampleRequestRepository) RescheduleDeadline(ctx context.Context, id uuid.UUID, change samplerequest.DeadlineChange) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, rescheduleDeadlineQuery,
		change.NewDeadline,
		id.String(),
		change.OldDeadline,
	)
	if err != nil {
		return errors.Wrap(err, "failed to update deadline")
	}
	if tag.RowsAffected() == 0 {
		return samplerequest.ErrDeadlineConflict
	}

	_, err = tx.Exec(ctx, insertDeadlineChangeQuery,
		uuid.New().String(),
		id.String(),
		change.OldDeadline,
		change.NewDeadline,
		change.Reason,
		change.ChangedByName,
		change.Timestamp,
	)
	if err != nil {
		return errors.Wrap(err, "failed to append deadline change")
	}
	return nil
}

func (r *PgSampleRequestRepository) GetDeadlineHistory(ctx context.Context, id uuid.UUID) ([]samplerequest.DeadlineChange, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, selectDeadlineChangesQuery, id.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to load deadline history")
	}
	defer rows.Close()

	var changes []samplerequest.DeadlineChange
	for rows.Next() {
		var m models.DeadlineChange
		if err := rows.Scan(
			&m.ID,
			&m.RequestID,
			&m.OldDeadline,
			&m.NewDeadline,
			&m.Reason,
			&m.ChangedByName,
			&m.ChangedAt,
		); err != nil {
			return nil, err
		}
		changes = append(changes, toDomainDeadlineChange(&m))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return changes, nil
}

func scanSampleRequest(row pgx.Row) (samplerequest.SampleRequest, error) {
	var m models.SampleRequest
	if err := row.Scan(
		&m.ID,
		&m.Title,
		&m.Notes,
		&m.RequesterID,
		&m.RequesterName,
		&m.FulfillmentMethod,
		&m.Status,
		&m.RequiredBy,
		&m.Items,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return samplerequest.SampleRequest{}, err
	}
	return toDomainSampleRequest(&m)
}
