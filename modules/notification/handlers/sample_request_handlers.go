package handlers

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/stonedesk/stonedesk/modules/notification/services"
	"github.com/stonedesk/stonedesk/modules/samplerequest/domain/aggregates/samplerequest"
	"github.com/stonedesk/stonedesk/pkg/application"
	"github.com/stonedesk/stonedesk/pkg/composables"
	"github.com/stonedesk/stonedesk/pkg/configuration"
)

// SampleRequestEventsHandler turns workflow events into per-user
// notifications. Failures are logged and never propagated back to the
// publishing operation.
type SampleRequestEventsHandler struct {
	app     application.Application
	service *services.NotificationService
	logger  *logrus.Logger
}

func RegisterSampleRequestEventHandlers(app application.Application) {
	handler := &SampleRequestEventsHandler{
		app:     app,
		service: app.Service(services.NotificationService{}).(*services.NotificationService),
		logger:  configuration.Use().Logger(),
	}
	app.EventPublisher().Subscribe(handler.onStatusChanged)
	app.EventPublisher().Subscribe(handler.onDeadlineRescheduled)
}

func (h *SampleRequestEventsHandler) onStatusChanged(event samplerequest.StatusChangedEvent) {
	if h.service == nil || h.app == nil {
		return
	}

	ctx := composables.WithPool(context.Background(), h.app.DB())
	message := fmt.Sprintf(
		"%q moved from %s to %s",
		event.Result.Title(),
		event.Previous,
		event.Result.Status(),
	)
	if err := h.service.Notify(ctx, event.Result.RequesterID(), "Request status changed", message); err != nil {
		h.logger.WithError(err).
			WithField("request_id", event.Result.ID()).
			Warn("failed to record status change notification")
	}
}

func (h *SampleRequestEventsHandler) onDeadlineRescheduled(event samplerequest.DeadlineRescheduledEvent) {
	if h.service == nil || h.app == nil {
		return
	}

	ctx := composables.WithPool(context.Background(), h.app.DB())
	message := fmt.Sprintf(
		"%s moved the deadline of %q from %s to %s: %s",
		event.Change.ChangedByName,
		event.Result.Title(),
		event.Change.OldDeadline.Format("Jan 2, 2006 15:04"),
		event.Change.NewDeadline.Format("Jan 2, 2006 15:04"),
		event.Change.Reason,
	)
	if err := h.service.Notify(ctx, event.Result.RequesterID(), "Deadline rescheduled", message); err != nil {
		h.logger.WithError(err).
			WithField("request_id", event.Result.ID()).
			Warn("failed to record deadline change notification")
	}
}
