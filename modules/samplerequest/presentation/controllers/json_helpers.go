package controllers

import (
	"net/http"

	"github.com/go-faster/errors"

	"github.com/stonedesk/stonedesk/pkg/httpapi"
	"github.com/stonedesk/stonedesk/pkg/serrors"
)

var statusByCode = map[string]int{
	"AUTHZ_FORBIDDEN":                  http.StatusForbidden,
	"SAMPLES_REQUEST_NOT_FOUND":        http.StatusNotFound,
	"SAMPLES_INVALID_TRANSITION":       http.StatusConflict,
	"SAMPLES_DEADLINE_LOCKED":          http.StatusConflict,
	"SAMPLES_DEADLINE_REASON_REQUIRED": http.StatusUnprocessableEntity,
	"SAMPLES_DEADLINE_UNCHANGED":       http.StatusUnprocessableEntity,
	"SAMPLES_DEADLINE_CONFLICT":        http.StatusConflict,
	"SAMPLES_INVALID_STATUS":           http.StatusBadRequest,
	"SAMPLES_INVALID_METHOD":           http.StatusBadRequest,
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
