package persistence

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/stonedesk/stonedesk/modules/samplerequest/domain/aggregates/samplerequest"
	"github.com/stonedesk/stonedesk/modules/samplerequest/infrastructure/persistence/models"
)

func toDomainSampleRequest(row *models.SampleRequest) (samplerequest.SampleRequest, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return samplerequest.SampleRequest{}, err
	}
	requesterID, err := uuid.Parse(row.RequesterID)
	if err != nil {
		return samplerequest.SampleRequest{}, err
	}
	method, err := samplerequest.NewFulfillmentMethod(row.FulfillmentMethod)
	if err != nil {
		return samplerequest.SampleRequest{}, err
	}
	status, err := samplerequest.NewStatus(row.Status)
	if err != nil {
		return samplerequest.SampleRequest{}, err
	}

	var items []samplerequest.Item
	if len(row.Items) > 0 {
		if err := json.Unmarshal(row.Items, &items); err != nil {
			return samplerequest.SampleRequest{}, err
		}
	}

	return samplerequest.Hydrate(
		id,
		row.Title,
		row.Notes,
		requesterID,
		row.RequesterName,
		method,
		status,
		row.RequiredBy,
		items,
		row.CreatedAt,
		row.UpdatedAt,
	), nil
}

func toDomainDeadlineChange(row *models.DeadlineChange) samplerequest.DeadlineChange {
	return samplerequest.DeadlineChange{
		OldDeadline:   row.OldDeadline,
		NewDeadline:   row.NewDeadline,
		Reason:        row.Reason,
		ChangedByName: row.ChangedByName,
		Timestamp:     row.ChangedAt,
	}
}

func marshalItems(items []samplerequest.Item) ([]byte, error) {
	if items == nil {
		items = []samplerequest.Item{}
	}
	return json.Marshal(items)
}
