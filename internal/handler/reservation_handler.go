package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Leganyst/viewing-platform/internal/apperr"
	"github.com/Leganyst/viewing-platform/internal/auth"
	"github.com/Leganyst/viewing-platform/internal/service"
)

type ReservationHandler struct {
	svc      *service.ReservationService
	validate *validator.Validate
}

func NewReservationHandler(svc *service.ReservationService, validate *validator.Validate) *ReservationHandler {
	return &ReservationHandler{svc: svc, validate: validate}
}

type createReservationRequest struct {
	RoomID          uuid.UUID `json:"roomId" validate:"required"`
	ReservationTime time.Time `json:"reservationTime" validate:"required"`
}

type reservationResponse struct {
	ID              uuid.UUID `json:"id"`
	RoomID          uuid.UUID `json:"roomId"`
	UserID          uuid.UUID `json:"userId"`
	ReservationTime time.Time `json:"reservationTime"`
	Status          string    `json:"status"`
	SessionActive   bool      `json:"sessionActive"`
	Joinable        bool      `json:"joinable"`
}

func toReservationResponse(v service.ReservationView) reservationResponse {
	return reservationResponse{
		ID:              v.Reservation.ID,
		RoomID:          v.Reservation.RoomID,
		UserID:          v.Reservation.UserID,
		ReservationTime: v.Reservation.ReservationTime,
		Status:          string(v.Reservation.Status),
		SessionActive:   v.SessionActive,
		Joinable:        v.Joinable,
	}
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeError(w, apperr.New(apperr.CodeAccessDenied, "not authenticated"))
		return
	}

	var req createReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.CodeInvalidInput, "malformed request body"))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, apperr.New(apperr.CodeInvalidInput, err.Error()))
		return
	}

	reservation, err := h.svc.Create(r.Context(), userID, req.RoomID, req.ReservationTime)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"id": reservation.ID})
}

func (h *ReservationHandler) ListMy(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeError(w, apperr.New(apperr.CodeAccessDenied, "not authenticated"))
		return
	}

	views, err := h.svc.ListMy(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]reservationResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toReservationResponse(v))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ReservationHandler) ListForAgent(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeError(w, apperr.New(apperr.CodeAccessDenied, "not authenticated"))
		return
	}

	views, err := h.svc.ListForAgent(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]reservationResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toReservationResponse(v))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Cancel)
}

func (h *ReservationHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Confirm)
}

func (h *ReservationHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	apply func(ctx context.Context, userID, id uuid.UUID) error,
) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeError(w, apperr.New(apperr.CodeAccessDenied, "not authenticated"))
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperr.New(apperr.CodeInvalidInput, "invalid reservation id"))
		return
	}

	if err := apply(r.Context(), userID, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

// AvailableTimes — GET /api/reservations/available-times?roomId=...&date=YYYY-MM-DD
func (h *ReservationHandler) AvailableTimes(w http.ResponseWriter, r *http.Request) {
	roomID, err := uuid.Parse(r.URL.Query().Get("roomId"))
	if err != nil {
		writeError(w, apperr.New(apperr.CodeInvalidInput, "invalid room id"))
		return
	}

	date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, apperr.New(apperr.CodeInvalidInput, "date must be YYYY-MM-DD"))
		return
	}

	times, err := h.svc.AvailableTimes(r.Context(), roomID, date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"availableTimes": times})
}
