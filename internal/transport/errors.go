package transport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"brandsmith/internal/llm/client"
	"brandsmith/internal/repositories"
	"brandsmith/internal/services"
	"brandsmith/internal/workflow"
)

type errorBody struct {
	Error string `json:"error"`
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrConceptNotFound),
		errors.Is(err, repositories.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrToolkitNotReady),
		errors.Is(err, workflow.ErrMissingArtifact):
		return http.StatusConflict
	case errors.Is(err, workflow.ErrGeneration),
		errors.Is(err, client.ErrNoChoices),
		errors.Is(err, client.ErrEmptyContent),
		errors.Is(err, client.ErrMalformedOutput),
		errors.Is(err, services.ErrConceptCount):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Error("request failed", "error", err)
		msg = "internal error"
	}
	writeJSON(w, status, errorBody{Error: msg})
}
