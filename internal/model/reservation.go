package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/Leganyst/viewing-platform/internal/apperr"
)

// Статус брони просмотра.
type ReservationStatus string

const (
	ReservationStatusRequested ReservationStatus = "requested"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
	ReservationStatusCompleted ReservationStatus = "completed"
)

// Действие над бронью.
type ReservationAction string

const (
	ActionCancel   ReservationAction = "cancel"
	ActionConfirm  ReservationAction = "confirm"
	ActionComplete ReservationAction = "complete"
)

// reservations
type Reservation struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	RoomID uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`

	ReservationTime time.Time `gorm:"type:timestamp with time zone;not null;index"`

	Status ReservationStatus `gorm:"type:varchar(32);not null;default:'requested';index"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	// Навигационные поля (опционально, но удобно для Preload).
	Room *Room `gorm:"foreignKey:RoomID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	User *User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// Ребро машины состояний: допустимый переход.
type transition struct {
	From   ReservationStatus
	Action ReservationAction
	To     ReservationStatus
}

// Таблица допустимых переходов. Всё, чего здесь нет, запрещено;
// код отказа берётся из denials. Терминальные состояния —
// cancelled и completed, рёбер из них нет.
var transitions = []transition{
	{From: ReservationStatusRequested, Action: ActionCancel, To: ReservationStatusCancelled},
	{From: ReservationStatusRequested, Action: ActionConfirm, To: ReservationStatusConfirmed},
	{From: ReservationStatusConfirmed, Action: ActionComplete, To: ReservationStatusCompleted},
}

type denialKey struct {
	From   ReservationStatus
	Action ReservationAction
}

// Почему конкретный запрещённый переход отклонён.
var denials = map[denialKey]apperr.Code{
	{From: ReservationStatusCancelled, Action: ActionCancel}: apperr.CodeAlreadyCancelled,
	{From: ReservationStatusConfirmed, Action: ActionCancel}: apperr.CodeCancelUnavailable,
	{From: ReservationStatusCompleted, Action: ActionCancel}: apperr.CodeCancelUnavailable,

	{From: ReservationStatusCancelled, Action: ActionConfirm}: apperr.CodeConfirmUnavailable,
	{From: ReservationStatusConfirmed, Action: ActionConfirm}: apperr.CodeAlreadyConfirmed,
	{From: ReservationStatusCompleted, Action: ActionConfirm}: apperr.CodeConfirmUnavailable,

	{From: ReservationStatusRequested, Action: ActionComplete}: apperr.CodeReservationNotConfirmed,
	{From: ReservationStatusCancelled, Action: ActionComplete}: apperr.CodeReservationNotConfirmed,
	{From: ReservationStatusCompleted, Action: ActionComplete}: apperr.CodeReservationNotConfirmed,
}

// NextStatus возвращает целевой статус для действия action из
// статуса from либо доменную ошибку с кодом отказа.
func NextStatus(from ReservationStatus, action ReservationAction) (ReservationStatus, error) {
	for _, t := range transitions {
		if t.From == from && t.Action == action {
			return t.To, nil
		}
	}
	if code, ok := denials[denialKey{From: from, Action: action}]; ok {
		return "", apperr.Newf(code, "%s is not allowed for %s reservation", action, from)
	}
	return "", apperr.Newf(apperr.CodeInvalidInput, "unknown transition %s from %s", action, from)
}

// Reconcile сверяет подтверждённую бронь с записью видео: если запись
// завершена, бронь переводится в completed. Чистая функция, сохранение
// изменённой брони — на вызывающем. Возвращает true, если статус менялся.
func Reconcile(r Reservation, v *Video) (Reservation, bool) {
	if r.Status != ReservationStatusConfirmed {
		return r, false
	}
	if v == nil || v.Status != VideoStatusRecorded {
		return r, false
	}
	r.Status = ReservationStatusCompleted
	return r, true
}
