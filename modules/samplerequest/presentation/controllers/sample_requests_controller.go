package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/stonedesk/stonedesk/modules/samplerequest/domain/aggregates/samplerequest"
	"github.com/stonedesk/stonedesk/modules/samplerequest/presentation/mappers"
	"github.com/stonedesk/stonedesk/modules/samplerequest/presentation/viewmodels"
	"github.com/stonedesk/stonedesk/modules/samplerequest/services"
	"github.com/stonedesk/stonedesk/pkg/application"
	"github.com/stonedesk/stonedesk/pkg/composables"
	"github.com/stonedesk/stonedesk/pkg/httpapi"
	"github.com/stonedesk/stonedesk/pkg/middleware"
)

type SampleRequestsAPIController struct {
	app      application.Application
	service  *services.SampleRequestService
	basePath string
}

func NewSampleRequestsAPIController(app application.Application) application.Controller {
	return &SampleRequestsAPIController{
		app:      app,
		service:  app.Service(services.SampleRequestService{}).(*services.SampleRequestService),
		basePath: "/samples/api/requests",
	}
}

func (c *SampleRequestsAPIController) Key() string {
	return c.basePath
}

func (c *SampleRequestsAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(
		middleware.Authorize(),
		middleware.RequireAuthorization(),
	)
	router.HandleFunc("", c.create).Methods(http.MethodPost)
	router.HandleFunc("", c.list).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.getByID).Methods(http.MethodGet)
	router.HandleFunc("/{id}/status", c.transition).Methods(http.MethodPost)
	router.HandleFunc("/{id}/deadline", c.rescheduleDeadline).Methods(http.MethodPatch)
	router.HandleFunc("/{id}/deadline-history", c.deadlineHistory).Methods(http.MethodGet)
}

func requestID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	return id, err == nil
}

func (c *SampleRequestsAPIController) create(w http.ResponseWriter, r *http.Request) {
	var dto samplerequest.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_PAYLOAD", "request body must be valid JSON", nil)
		return
	}

	created, err := c.service.Create(r.Context(), &dto)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, mappers.SampleRequestToViewModel(created))
}

func (c *SampleRequestsAPIController) list(w http.ResponseWriter, r *http.Request) {
	pagination := composables.UsePaginated(r)
	params := &samplerequest.FindParams{
		Limit:  pagination.Limit,
		Offset: pagination.Offset,
	}
	if status := r.URL.Query().Get("status"); status != "" {
		parsed, err := samplerequest.NewStatus(status)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		params.Status = parsed
	}

	requests, total, err := c.service.GetPaginated(r.Context(), params)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	items := make([]viewmodels.SampleRequest, 0, len(requests))
	for _, req := range requests {
		items = append(items, mappers.SampleRequestToViewModel(req))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"total": total,
	})
}

func (c *SampleRequestsAPIController) getByID(w http.ResponseWriter, r *http.Request) {
	id, ok := requestID(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", nil)
		return
	}

	req, err := c.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.SampleRequestToViewModel(req))
}

type transitionRequest struct {
	Status string `json:"status"`
}

func (c *SampleRequestsAPIController) transition(w http.ResponseWriter, r *http.Request) {
	id, ok := requestID(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", nil)
		return
	}

	var payload transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_PAYLOAD", "request body must be valid JSON", nil)
		return
	}
	target, err := samplerequest.NewStatus(payload.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var updated samplerequest.SampleRequest
	switch target {
	case samplerequest.StatusPendingApproval:
		updated, err = c.service.Submit(r.Context(), id)
	case samplerequest.StatusApproved:
		updated, err = c.service.Approve(r.Context(), id)
	case samplerequest.StatusRejected:
		updated, err = c.service.Reject(r.Context(), id)
	case samplerequest.StatusAssigned:
		updated, err = c.service.Assign(r.Context(), id)
	case samplerequest.StatusInProduction:
		updated, err = c.service.StartProduction(r.Context(), id)
	case samplerequest.StatusReady:
		updated, err = c.service.MarkReady(r.Context(), id)
	case samplerequest.StatusDispatched:
		updated, err = c.service.Dispatch(r.Context(), id)
	case samplerequest.StatusReceived:
		updated, err = c.service.MarkReceived(r.Context(), id)
	default:
		_ = httpapi.WriteError(w, http.StatusBadRequest, "SAMPLES_INVALID_STATUS", "draft is not a reachable target status", nil)
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.SampleRequestToViewModel(updated))
}

type rescheduleRequest struct {
	RequiredBy time.Time `json:"required_by"`
	Reason     string    `json:"reason"`
}

func (c *SampleRequestsAPIController) rescheduleDeadline(w http.ResponseWriter, r *http.Request) {
	id, ok := requestID(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", nil)
		return
	}

	var payload rescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_PAYLOAD", "request body must be valid JSON", nil)
		return
	}
	if payload.RequiredBy.IsZero() {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_PAYLOAD", "required_by must be a valid RFC 3339 timestamp", nil)
		return
	}

	updated, change, err := c.service.RescheduleDeadline(r.Context(), id, payload.RequiredBy, payload.Reason)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"request": mappers.SampleRequestToViewModel(updated),
		"change":  mappers.DeadlineChangeToViewModel(change),
	})
}

func (c *SampleRequestsAPIController) deadlineHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := requestID(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", nil)
		return
	}

	history, err := c.service.DeadlineHistory(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.DeadlineHistoryToViewModel(history))
}
