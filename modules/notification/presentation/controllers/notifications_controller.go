package controllers

import (
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/stonedesk/stonedesk/modules/notification/domain/entities/notification"
	"github.com/stonedesk/stonedesk/modules/notification/services"
	"github.com/stonedesk/stonedesk/pkg/application"
	"github.com/stonedesk/stonedesk/pkg/composables"
	"github.com/stonedesk/stonedesk/pkg/httpapi"
	"github.com/stonedesk/stonedesk/pkg/middleware"
	"github.com/stonedesk/stonedesk/pkg/serrors"
)

type notificationViewModel struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"created_at"`
}

type NotificationsAPIController struct {
	app      application.Application
	service  *services.NotificationService
	basePath string
}

func NewNotificationsAPIController(app application.Application) application.Controller {
	return &NotificationsAPIController{
		app:      app,
		service:  app.Service(services.NotificationService{}).(*services.NotificationService),
		basePath: "/notifications/api",
	}
}

func (c *NotificationsAPIController) Key() string {
	return c.basePath
}

func (c *NotificationsAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(
		middleware.Authorize(),
		middleware.RequireAuthorization(),
	)
	router.HandleFunc("", c.list).Methods(http.MethodGet)
	router.HandleFunc("/{id}/read", c.markRead).Methods(http.MethodPost)
}

func (c *NotificationsAPIController) list(w http.ResponseWriter, r *http.Request) {
	pagination := composables.UsePaginated(r)
	params := &notification.FindParams{
		Limit:      pagination.Limit,
		Offset:     pagination.Offset,
		UnreadOnly: r.URL.Query().Get("unread") == "true",
	}

	notifications, total, err := c.service.GetPaginated(r.Context(), params)
	if err != nil {
		c.writeError(w, err)
		return
	}

	items := make([]notificationViewModel, 0, len(notifications))
	for _, n := range notifications {
		items = append(items, notificationViewModel{
			ID:        n.ID.String(),
			Title:     n.Title,
			Message:   n.Message,
			Read:      n.IsRead(),
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		})
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"total": total,
	})
}

func (c *NotificationsAPIController) markRead(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", nil)
		return
	}
	if err := c.service.MarkRead(r.Context(), id); err != nil {
		c.writeError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusNoContent, nil)
}

func (c *NotificationsAPIController) writeError(w http.ResponseWriter, err error) {
	var baseErr *serrors.BaseError
	if errors.As(err, &baseErr) && baseErr.Code == "NOTIFICATION_NOT_FOUND" {
		_ = httpapi.WriteError(w, http.StatusNotFound, baseErr.Code, baseErr.Message, nil)
		return
	}
	_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error", nil)
}
