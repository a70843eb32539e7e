package model

import (
	"time"

	"github.com/google/uuid"
)

// users
type User struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	Email       string `gorm:"type:varchar(255);not null;uniqueIndex"`
	DisplayName string `gorm:"type:varchar(255)"`
	Phone       string `gorm:"type:varchar(32)"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	// Навигационное поле (опционально)
	Agent *Agent `gorm:"foreignKey:UserID"`
}

// Agent — агент по недвижимости. Привязан к базе пользователей
// через UserID; подтверждает и отменяет просмотры только на своих
// объектах.
type Agent struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	// Внешний ключ на таблицу пользователей.
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`

	OfficeName   string `gorm:"type:varchar(255);not null"`
	OfficeNumber string `gorm:"type:varchar(32)"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	// Навигационные поля для GORM (опционально, но удобно для Preload).
	User *User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	Rooms    []Room         `gorm:"foreignKey:AgentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Workhour *AgentWorkhour `gorm:"foreignKey:AgentID"`
}
