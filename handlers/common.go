package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"project-dashboard/service"

	"go.uber.org/zap"
)

type errorBody struct {
	Error string `json:"error"`
}

type messageBody struct {
	Message string `json:"message"`
}

// writeJSON encodes v before writing the header so an encoding failure can
// still be reported as a 500.
func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		logger.Error("encode response", zap.Int("status", status), zap.Error(err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Error encoding response"}` + "\n"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		logger.Debug("write response", zap.Error(err))
	}
}

// writeError maps service errors onto HTTP status codes.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, logger, http.StatusBadRequest, errorBody{Error: verr.Message})
	case errors.Is(err, service.ErrInvalidID):
		writeJSON(w, logger, http.StatusBadRequest, errorBody{Error: "Invalid ID"})
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, logger, http.StatusNotFound, errorBody{Error: "Not found"})
	default:
		logger.Error("request failed", zap.Error(err))
		writeJSON(w, logger, http.StatusInternalServerError, errorBody{Error: err.Error()})
	}
}

func writeBadJSON(w http.ResponseWriter, logger *zap.Logger) {
	writeJSON(w, logger, http.StatusBadRequest, errorBody{Error: "Invalid request payload"})
}

// notFound overrides the subject of a 404 so clients see which record is missing.
func notFound(w http.ResponseWriter, logger *zap.Logger, err error, subject string) {
	if errors.Is(err, service.ErrNotFound) {
		writeJSON(w, logger, http.StatusNotFound, errorBody{Error: subject + " not found"})
		return
	}
	writeError(w, logger, err)
}
