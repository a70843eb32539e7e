package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Leganyst/viewing-platform/internal/model"
)

type VideoRepository interface {
	// Создать запись видео.
	Create(ctx context.Context, video *model.Video) error
	// Получить запись по ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error)
	// Запись, связанная с бронью. nil без ошибки, если записи ещё нет.
	FindByReservationID(ctx context.Context, reservationID uuid.UUID) (*model.Video, error)
	// Сохранить запись.
	Save(ctx context.Context, video *model.Video) error
}

type GormVideoRepository struct {
	db *gorm.DB
}

func NewGormVideoRepository(db *gorm.DB) *GormVideoRepository {
	return &GormVideoRepository{db: db}
}

func (r *GormVideoRepository) Create(ctx context.Context, video *model.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

func (r *GormVideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	var v model.Video
	if err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *GormVideoRepository) FindByReservationID(ctx context.Context, reservationID uuid.UUID) (*model.Video, error) {
	var v model.Video
	err := r.db.WithContext(ctx).First(&v, "reservation_id = ?", reservationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *GormVideoRepository) Save(ctx context.Context, video *model.Video) error {
	return r.db.WithContext(ctx).Save(video).Error
}
