package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/Leganyst/viewing-platform/internal/apperr"
	"github.com/Leganyst/viewing-platform/internal/auth"
	"github.com/Leganyst/viewing-platform/internal/model"
	"github.com/Leganyst/viewing-platform/internal/service"
)

type RoomHandler struct {
	svc      *service.RoomService
	validate *validator.Validate
}

func NewRoomHandler(svc *service.RoomService, validate *validator.Validate) *RoomHandler {
	return &RoomHandler{svc: svc, validate: validate}
}

type roomRequest struct {
	Name        string          `json:"name" validate:"required,max=255"`
	Address     string          `json:"address" validate:"required,max=255"`
	DepositeFee int64           `json:"depositeFee" validate:"gte=0"`
	MonthlyRent int64           `json:"monthlyRent" validate:"gte=0"`
	Area        float64         `json:"area" validate:"gte=0"`
	FloorInfo   string          `json:"floorInfo" validate:"max=32"`
	Description string          `json:"description"`
	Options     json.RawMessage `json:"options"`
}

type roomResponse struct {
	ID          uuid.UUID       `json:"id"`
	AgentID     uuid.UUID       `json:"agentId"`
	Name        string          `json:"name"`
	Address     string          `json:"address"`
	DepositeFee int64           `json:"depositeFee"`
	MonthlyRent int64           `json:"monthlyRent"`
	Area        float64         `json:"area"`
	FloorInfo   string          `json:"floorInfo"`
	Description string          `json:"description"`
	Options     json.RawMessage `json:"options,omitempty"`
}

func toRoomResponse(room *model.Room) roomResponse {
	return roomResponse{
		ID:          room.ID,
		AgentID:     room.AgentID,
		Name:        room.Name,
		Address:     room.Address,
		DepositeFee: room.DepositeFee,
		MonthlyRent: room.MonthlyRent,
		Area:        room.Area,
		FloorInfo:   room.FloorInfo,
		Description: room.Description,
		Options:     json.RawMessage(room.Options),
	}
}

func (h *RoomHandler) decode(w http.ResponseWriter, r *http.Request) (service.RoomInput, bool) {
	var req roomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.CodeInvalidInput, "malformed request body"))
		return service.RoomInput{}, false
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, apperr.New(apperr.CodeInvalidInput, err.Error()))
		return service.RoomInput{}, false
	}
	return service.RoomInput{
		Name:        req.Name,
		Address:     req.Address,
		DepositeFee: req.DepositeFee,
		MonthlyRent: req.MonthlyRent,
		Area:        req.Area,
		FloorInfo:   req.FloorInfo,
		Description: req.Description,
		Options:     datatypes.JSON(req.Options),
	}, true
}

func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeError(w, apperr.New(apperr.CodeAccessDenied, "not authenticated"))
		return
	}

	input, ok := h.decode(w, r)
	if !ok {
		return
	}

	room, err := h.svc.Create(r.Context(), userID, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRoomResponse(room))
}

func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperr.New(apperr.CodeInvalidInput, "invalid room id"))
		return
	}

	room, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoomResponse(room))
}

func (h *RoomHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeError(w, apperr.New(apperr.CodeAccessDenied, "not authenticated"))
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperr.New(apperr.CodeInvalidInput, "invalid room id"))
		return
	}

	input, ok := h.decode(w, r)
	if !ok {
		return
	}

	room, err := h.svc.Update(r.Context(), userID, id, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoomResponse(room))
}

// ListMine — объявления текущего агента.
func (h *RoomHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeError(w, apperr.New(apperr.CodeAccessDenied, "not authenticated"))
		return
	}

	rooms, err := h.svc.ListMine(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]roomResponse, 0, len(rooms))
	for i := range rooms {
		out = append(out, toRoomResponse(&rooms[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *RoomHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeError(w, apperr.New(apperr.CodeAccessDenied, "not authenticated"))
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperr.New(apperr.CodeInvalidInput, "invalid room id"))
		return
	}

	if err := h.svc.Delete(r.Context(), userID, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}
