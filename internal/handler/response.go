package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Leganyst/viewing-platform/internal/apperr"
)

// Единый конверт ответов: {"data": ...} либо {"error", "message"}.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(map[string]any{"data": data}); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// writeError мапит доменный код на HTTP-статус. Всё, что не является
// доменной ошибкой, наружу уходит как 500 без деталей.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		slog.Error("internal error", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(errorBody{Error: "INTERNAL", Message: "internal error"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusFor(appErr.Code))
	_ = json.NewEncoder(w).Encode(errorBody{Error: string(appErr.Code), Message: appErr.Message})
}

func statusFor(code apperr.Code) int {
	switch code {
	case apperr.CodeNotFound, apperr.CodeConfigurationMissing:
		return http.StatusNotFound
	case apperr.CodeAccessDenied:
		return http.StatusForbidden
	case apperr.CodeInvalidInput:
		return http.StatusBadRequest
	case apperr.CodeDuplicateReservation,
		apperr.CodeRenterAlreadyBooked,
		apperr.CodeAlreadyCancelled,
		apperr.CodeCancelUnavailable,
		apperr.CodeAlreadyConfirmed,
		apperr.CodeConfirmUnavailable,
		apperr.CodeDoubleConfirmedSlot,
		apperr.CodeDuplicateVideo,
		apperr.CodeVideoStillRecording,
		apperr.CodeReservationNotConfirmed:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
