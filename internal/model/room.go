package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// rooms — объявление о сдаче. Идентичность неизменна, атрибуты
// объявления может править только агент-владелец.
type Room struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	AgentID uuid.UUID `gorm:"type:uuid;not null;index"`

	Name         string `gorm:"type:varchar(255);not null"`
	Address      string `gorm:"type:varchar(255);not null"`
	DepositeFee  int64  `gorm:"not null;default:0"`
	MonthlyRent  int64  `gorm:"not null;default:0"`
	Area         float64
	FloorInfo    string `gorm:"type:varchar(32)"`
	Description  string `gorm:"type:text"`

	// Опции/техника в квартире как JSON (можно хранить как JSONB в Postgres).
	Options datatypes.JSON `gorm:"type:jsonb"`

	IsActive bool `gorm:"not null;default:true;index"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Agent *Agent `gorm:"foreignKey:AgentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
