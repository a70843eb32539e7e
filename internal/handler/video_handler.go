package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Leganyst/viewing-platform/internal/apperr"
	"github.com/Leganyst/viewing-platform/internal/model"
	"github.com/Leganyst/viewing-platform/internal/service"
)

type VideoHandler struct {
	svc      *service.VideoService
	validate *validator.Validate
}

func NewVideoHandler(svc *service.VideoService, validate *validator.Validate) *VideoHandler {
	return &VideoHandler{svc: svc, validate: validate}
}

type registerVideoRequest struct {
	ReservationID uuid.UUID `json:"reservationId" validate:"required"`
}

type finalizeVideoRequest struct {
	VideoURL string `json:"videoUrl" validate:"required,url"`
	Status   string `json:"status" validate:"required,oneof=recorded"`
}

type videoResponse struct {
	ID            uuid.UUID `json:"id"`
	ReservationID uuid.UUID `json:"reservationId"`
	VideoURL      string    `json:"videoUrl"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (h *VideoHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.CodeInvalidInput, "malformed request body"))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, apperr.New(apperr.CodeInvalidInput, err.Error()))
		return
	}

	video, err := h.svc.Register(r.Context(), req.ReservationID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": video.ID})
}

func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperr.New(apperr.CodeInvalidInput, "invalid video id"))
		return
	}

	video, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, videoResponse{
		ID:            video.ID,
		ReservationID: video.ReservationID,
		VideoURL:      video.VideoURL,
		Status:        string(video.Status),
		CreatedAt:     video.CreatedAt,
	})
}

func (h *VideoHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperr.New(apperr.CodeInvalidInput, "invalid video id"))
		return
	}

	var req finalizeVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.CodeInvalidInput, "malformed request body"))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, apperr.New(apperr.CodeInvalidInput, err.Error()))
		return
	}

	if err := h.svc.Finalize(r.Context(), id, req.VideoURL, model.VideoStatus(req.Status)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}
