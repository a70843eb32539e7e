package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Leganyst/viewing-platform/internal/auth"
)

// Валидация параметров отрабатывает до обращения к сервису, поэтому
// здесь хендлер собирается без него.
func newBareHandler() *ReservationHandler {
	return NewReservationHandler(nil, validator.New())
}

func authed(req *http.Request) *http.Request {
	return req.WithContext(auth.WithUserID(req.Context(), uuid.New()))
}

func TestCreate_MalformedBody(t *testing.T) {
	h := newBareHandler()

	req := authed(httptest.NewRequest(http.MethodPost, "/api/reservations", strings.NewReader("{not json")))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreate_MissingFields(t *testing.T) {
	h := newBareHandler()

	req := authed(httptest.NewRequest(http.MethodPost, "/api/reservations", strings.NewReader(`{}`)))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_INPUT")
}

func TestCreate_Unauthenticated(t *testing.T) {
	h := newBareHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/reservations", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAvailableTimes_ParamValidation(t *testing.T) {
	h := newBareHandler()

	cases := map[string]string{
		"missing roomId": "/api/reservations/available-times?date=2025-03-03",
		"bad roomId":     "/api/reservations/available-times?roomId=nope&date=2025-03-03",
		"missing date":   "/api/reservations/available-times?roomId=" + uuid.NewString(),
		"bad date":       "/api/reservations/available-times?roomId=" + uuid.NewString() + "&date=03.03.2025",
	}
	for name, target := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, target, nil)
			rec := httptest.NewRecorder()
			h.AvailableTimes(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCancel_InvalidID(t *testing.T) {
	h := newBareHandler()

	// Без chi route context параметр id пустой и не парсится как uuid.
	req := authed(httptest.NewRequest(http.MethodPatch, "/api/reservations/nope/cancel", nil))
	rec := httptest.NewRecorder()
	h.Cancel(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
