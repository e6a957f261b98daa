package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/plexdi/studio/pkg/composables"
)

// ErrorEnvelope is the JSON error shape returned by every API handler.
type ErrorEnvelope struct {
	Message string            `json:"message"`
	Code    string            `json:"code,omitempty"`
	Meta    map[string]string `json:"meta,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteError(ctx context.Context, w http.ResponseWriter, status int, message, code string) {
	if status >= http.StatusInternalServerError {
		logger := composables.UseLogger(ctx)
		logger.WithField("code", code).Error(message)
	}
	WriteJSON(w, status, ErrorEnvelope{Message: message, Code: code})
}

func WriteValidationError(ctx context.Context, w http.ResponseWriter, fields map[string]string) {
	WriteJSON(w, http.StatusUnprocessableEntity, ErrorEnvelope{
		Message: "validation failed",
		Code:    "VALIDATION_ERROR",
		Meta:    fields,
	})
}
