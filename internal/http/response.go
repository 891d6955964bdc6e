package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"financeiro/internal/core"
	"financeiro/internal/services"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("Response encoding failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeRawJSON(w, status, data)
}

func writeRawJSON(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
	_, _ = w.Write([]byte("\n"))
}

func writeError(w http.ResponseWriter, status int, message string) {
	data, _ := json.Marshal(errorBody{Error: message})
	writeRawJSON(w, status, data)
}

// validationErrors are rejected input, answered with 422.
var validationErrors = []error{
	core.ErrInvalidAmount,
	core.ErrInvalidFlow,
	core.ErrInvalidRole,
	core.ErrInvalidKind,
	core.ErrInvalidPeriod,
	core.ErrInvalidDate,
	core.ErrInvalidDay,
	core.ErrInvalidMonth,
	core.ErrEmptyDescription,
	core.ErrDescriptionTooLong,
	core.ErrEmptyName,
	core.ErrEmptyType,
	core.ErrEmptyID,
	services.ErrInvalidReference,
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	var bq badQueryError
	switch {
	case errors.As(err, &bq):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidRange), errors.Is(err, core.ErrInvalidBalanceMode):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrBuiltinEntry), errors.Is(err, core.ErrDuplicateID):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return http.StatusUnprocessableEntity
		}
	}
	return http.StatusInternalServerError
}

// respondError writes err with its mapped status. Server errors are logged
// and answered without detail.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "Request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"error", err)
		if status == http.StatusGatewayTimeout {
			writeError(w, status, "report timed out")
			return
		}
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}
