package controllers

import (
	"net/http"

	"github.com/go-faster/errors"

	"github.com/stonedesk/stonedesk/pkg/httpapi"
	"github.com/stonedesk/stonedesk/pkg/serrors"
)

var statusByCode = map[string]int{
	"AUTH_INVALID_CREDENTIALS": http.StatusUnauthorized,
	"AUTH_SESSION_EXPIRED":     http.StatusUnauthorized,
	"AUTHZ_FORBIDDEN":          http.StatusForbidden,
	"USER_NOT_FOUND":           http.StatusNotFound,
	"SESSION_NOT_FOUND":        http.StatusUnauthorized,
	"USER_EMAIL_TAKEN":         http.StatusConflict,
}

func writeServiceError(w http.ResponseWriter, err error) {
	var validationErr *serrors.ValidationError
	if errors.As(err, &validationErr) {
		_ = httpapi.WriteJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"code":    "VALIDATION_FAILED",
			"message": "validation failed",
			"errors":  validationErr.Fields,
		})
		return
	}

	var baseErr *serrors.BaseError
	if errors.As(err, &baseErr) {
		status, ok := statusByCode[baseErr.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		_ = httpapi.WriteError(w, status, baseErr.Code, baseErr.Message, nil)
		return
	}

	_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error", nil)
}
