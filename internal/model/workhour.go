package model

import (
	"time"

	"github.com/google/uuid"
)

// agent_workhours — рабочие часы агента. Отдельные окна для будней
// и выходных, время хранится строками "HH:MM" (см. парсинг в пакете
// schedule). Только чтение со стороны ядра бронирования.
type AgentWorkhour struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	AgentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`

	WeekdayStartTime string `gorm:"type:varchar(5);not null"`
	WeekdayEndTime   string `gorm:"type:varchar(5);not null"`
	WeekendStartTime string `gorm:"type:varchar(5);not null"`
	WeekendEndTime   string `gorm:"type:varchar(5);not null"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Agent *Agent `gorm:"foreignKey:AgentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
