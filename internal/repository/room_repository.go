package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Leganyst/viewing-platform/internal/model"
)

type RoomRepository interface {
	// Создать объявление.
	Create(ctx context.Context, room *model.Room) error
	// Найти объявление по ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Room, error)
	// Обновить объявление.
	Save(ctx context.Context, room *model.Room) error
	// Удалить объявление.
	Delete(ctx context.Context, id uuid.UUID) error
	// Активные объявления агента.
	ListByAgent(ctx context.Context, agentID uuid.UUID) ([]model.Room, error)
}

type GormRoomRepository struct {
	db *gorm.DB
}

func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	return &GormRoomRepository{db: db}
}

func (r *GormRoomRepository) Create(ctx context.Context, room *model.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *GormRoomRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	var room model.Room
	if err := r.db.WithContext(ctx).First(&room, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *GormRoomRepository) Save(ctx context.Context, room *model.Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

func (r *GormRoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Room{}, "id = ?", id).Error
}

func (r *GormRoomRepository) ListByAgent(ctx context.Context, agentID uuid.UUID) ([]model.Room, error) {
	var rooms []model.Room
	err := r.db.WithContext(ctx).
		Where("agent_id = ?", agentID).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}
