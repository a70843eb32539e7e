package apperr

import (
	"errors"
	"fmt"
)

// Код ошибки уровня запроса. Набор закрытый, каждый код
// однозначно мапится на HTTP-статус в транспортном слое.
type Code string

const (
	CodeNotFound             Code = "NOT_FOUND"
	CodeAccessDenied         Code = "ACCESS_DENIED"
	CodeInvalidInput         Code = "INVALID_INPUT"
	CodeConfigurationMissing Code = "CONFIGURATION_MISSING"

	CodeDuplicateReservation Code = "RESERVATION_DUPLICATED"
	CodeRenterAlreadyBooked  Code = "RENTER_ALREADY_BOOKED"
	CodeAlreadyCancelled     Code = "RESERVATION_ALREADY_CANCELLED"
	CodeCancelUnavailable    Code = "RESERVATION_CANCEL_UNAVAILABLE"
	CodeAlreadyConfirmed     Code = "RESERVATION_ALREADY_CONFIRMED"
	CodeConfirmUnavailable   Code = "RESERVATION_CONFIRM_UNAVAILABLE"
	CodeDoubleConfirmedSlot  Code = "RESERVATION_SLOT_ALREADY_CONFIRMED"

	CodeDuplicateVideo          Code = "VIDEO_DUPLICATED"
	CodeVideoStillRecording     Code = "VIDEO_STILL_RECORDING"
	CodeReservationNotConfirmed Code = "RESERVATION_NOT_CONFIRMED"
)

// Error — доменная ошибка с кодом и человекочитаемым сообщением.
// Внутренние детали (SQL, стеки) наружу не попадают.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf возвращает код доменной ошибки внутри цепочки err
// или пустую строку, если доменной ошибки там нет.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// Is позволяет сравнивать ошибки по коду через errors.Is.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}
