package model

import (
	"time"

	"github.com/google/uuid"
)

// Статус записи видеопросмотра.
type VideoStatus string

const (
	VideoStatusRecording VideoStatus = "recording"
	VideoStatusRecorded  VideoStatus = "recorded"
)

// videos — запись видеозвонка, один-к-одному с подтверждённой бронью.
type Video struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	ReservationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`

	VideoURL string      `gorm:"type:varchar(512)"`
	Status   VideoStatus `gorm:"type:varchar(32);not null;default:'recording';index"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Reservation *Reservation `gorm:"foreignKey:ReservationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
