package model

import "gorm.io/gorm"

// AutoMigrate выполняет миграцию всех сущностей ядра просмотров.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Agent{},
		&AgentWorkhour{},
		&Room{},
		&Reservation{},
		&Video{},
		&Event{},
	)
}
