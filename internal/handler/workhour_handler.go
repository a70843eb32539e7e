package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Leganyst/viewing-platform/internal/apperr"
	"github.com/Leganyst/viewing-platform/internal/auth"
	"github.com/Leganyst/viewing-platform/internal/service"
)

type WorkhourHandler struct {
	svc      *service.WorkhourService
	validate *validator.Validate
}

func NewWorkhourHandler(svc *service.WorkhourService, validate *validator.Validate) *WorkhourHandler {
	return &WorkhourHandler{svc: svc, validate: validate}
}

type workhourRequest struct {
	WeekdayStartTime string `json:"weekdayStartTime" validate:"required,len=5"`
	WeekdayEndTime   string `json:"weekdayEndTime" validate:"required,len=5"`
	WeekendStartTime string `json:"weekendStartTime" validate:"required,len=5"`
	WeekendEndTime   string `json:"weekendEndTime" validate:"required,len=5"`
}

type workhourResponse struct {
	WeekdayStartTime string `json:"weekdayStartTime"`
	WeekdayEndTime   string `json:"weekdayEndTime"`
	WeekendStartTime string `json:"weekendStartTime"`
	WeekendEndTime   string `json:"weekendEndTime"`
}

func (h *WorkhourHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeError(w, apperr.New(apperr.CodeAccessDenied, "not authenticated"))
		return
	}

	var req workhourRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.CodeInvalidInput, "malformed request body"))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, apperr.New(apperr.CodeInvalidInput, err.Error()))
		return
	}

	workhour, err := h.svc.Upsert(r.Context(), userID, service.WorkhourInput{
		WeekdayStartTime: req.WeekdayStartTime,
		WeekdayEndTime:   req.WeekdayEndTime,
		WeekendStartTime: req.WeekendStartTime,
		WeekendEndTime:   req.WeekendEndTime,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, workhourResponse{
		WeekdayStartTime: workhour.WeekdayStartTime,
		WeekdayEndTime:   workhour.WeekdayEndTime,
		WeekendStartTime: workhour.WeekendStartTime,
		WeekendEndTime:   workhour.WeekendEndTime,
	})
}

func (h *WorkhourHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeError(w, apperr.New(apperr.CodeAccessDenied, "not authenticated"))
		return
	}

	workhour, err := h.svc.Get(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, workhourResponse{
		WeekdayStartTime: workhour.WeekdayStartTime,
		WeekdayEndTime:   workhour.WeekdayEndTime,
		WeekendStartTime: workhour.WeekendStartTime,
		WeekendEndTime:   workhour.WeekendEndTime,
	})
}
