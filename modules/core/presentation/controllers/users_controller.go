package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/stonedesk/stonedesk/modules/core/domain/aggregates/user"
	"github.com/stonedesk/stonedesk/modules/core/presentation/mappers"
	"github.com/stonedesk/stonedesk/modules/core/presentation/viewmodels"
	"github.com/stonedesk/stonedesk/modules/core/services"
	"github.com/stonedesk/stonedesk/pkg/application"
	"github.com/stonedesk/stonedesk/pkg/composables"
	"github.com/stonedesk/stonedesk/pkg/httpapi"
	"github.com/stonedesk/stonedesk/pkg/middleware"
)

type UsersAPIController struct {
	app         application.Application
	userService *services.UserService
	basePath    string
}

func NewUsersAPIController(app application.Application) application.Controller {
	return &UsersAPIController{
		app:         app,
		userService: app.Service(services.UserService{}).(*services.UserService),
		basePath:    "/core/api/users",
	}
}

func (c *UsersAPIController) Key() string {
	return c.basePath
}

func (c *UsersAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(
		middleware.Authorize(),
		middleware.RequireAuthorization(),
	)
	router.HandleFunc("", c.create).Methods(http.MethodPost)
	router.HandleFunc("", c.list).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.getByID).Methods(http.MethodGet)
}

func (c *UsersAPIController) create(w http.ResponseWriter, r *http.Request) {
	var dto user.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_PAYLOAD", "request body must be valid JSON", nil)
		return
	}

	created, err := c.userService.Create(r.Context(), &dto)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, mappers.UserToViewModel(created))
}

func (c *UsersAPIController) list(w http.ResponseWriter, r *http.Request) {
	pagination := composables.UsePaginated(r)
	params := &user.FindParams{
		Limit:  pagination.Limit,
		Offset: pagination.Offset,
	}
	if role := r.URL.Query().Get("role"); role != "" {
		parsed, err := user.NewRole(role)
		if err != nil {
			_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ROLE", "unknown role filter", nil)
			return
		}
		params.Role = parsed
	}

	users, total, err := c.userService.GetPaginated(r.Context(), params)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	items := make([]viewmodels.User, 0, len(users))
	for _, u := range users {
		items = append(items, mappers.UserToViewModel(u))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"total": total,
	})
}

func (c *UsersAPIController) getByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", nil)
		return
	}

	u, err := c.userService.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.UserToViewModel(u))
}
