package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/stonedesk/stonedesk/modules/core/presentation/mappers"
	"github.com/stonedesk/stonedesk/modules/core/services"
	"github.com/stonedesk/stonedesk/pkg/application"
	"github.com/stonedesk/stonedesk/pkg/composables"
	"github.com/stonedesk/stonedesk/pkg/httpapi"
	"github.com/stonedesk/stonedesk/pkg/middleware"
)

type AuthAPIController struct {
	app         application.Application
	authService *services.AuthService
	basePath    string
}

func NewAuthAPIController(app application.Application) application.Controller {
	return &AuthAPIController{
		app:         app,
		authService: app.Service(services.AuthService{}).(*services.AuthService),
		basePath:    "/core/api/auth",
	}
}

func (c *AuthAPIController) Key() string {
	return c.basePath
}

func (c *AuthAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/login", c.login).Methods(http.MethodPost)

	protected := r.PathPrefix(c.basePath).Subrouter()
	protected.Use(
		middleware.Authorize(),
		middleware.RequireAuthorization(),
	)
	protected.HandleFunc("/logout", c.logout).Methods(http.MethodPost)
	protected.HandleFunc("/me", c.me).Methods(http.MethodGet)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *AuthAPIController) login(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_PAYLOAD", "request body must be valid JSON", nil)
		return
	}

	sess, u, err := c.authService.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.SessionToViewModel(sess, u))
}

func (c *AuthAPIController) logout(w http.ResponseWriter, r *http.Request) {
	sess, err := composables.UseSession(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := c.authService.Logout(r.Context(), sess.Token); err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusNoContent, nil)
}

func (c *AuthAPIController) me(w http.ResponseWriter, r *http.Request) {
	u, err := composables.UseUser(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.UserToViewModel(u))
}
