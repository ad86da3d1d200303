package http

import (
	"encoding/json"
	"net/http"

	apperrors "covoit/pkg/errors"
)

type SuccessResponse struct {
	Data any `json:"data,omitempty"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError renders err as an apperrors.ErrorResponse. A backend that could
// not be reached surfaces as 502 since the gateway itself is up.
func WriteError(w http.ResponseWriter, err error) {
	appErr := apperrors.AsAppError(err)

	statusCode := appErr.HTTPStatus
	switch {
	case statusCode == apperrors.StatusNetwork:
		statusCode = http.StatusBadGateway
	case statusCode < 400:
		statusCode = http.StatusInternalServerError
	}

	WriteJSON(w, statusCode, apperrors.ErrorResponse{
		Code:    appErr.Code,
		Message: apperrors.UserMessage(appErr),
		Reason:  appErr.Reason,
		Details: appErr.Details,
	})
}

func WriteSuccess(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, SuccessResponse{Data: data})
}

func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, SuccessResponse{Data: data})
}

func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
