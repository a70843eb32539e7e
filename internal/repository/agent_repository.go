package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Leganyst/viewing-platform/internal/model"
)

type AgentRepository interface {
	// Получить агента по ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Agent, error)
	// Агент, привязанный к пользователю. nil без ошибки, если
	// пользователь не агент.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Agent, error)
	// Рабочие часы агента. nil, если не настроены.
	FindWorkhour(ctx context.Context, agentID uuid.UUID) (*model.AgentWorkhour, error)
	// Создать или обновить рабочие часы (одна запись на агента).
	SaveWorkhour(ctx context.Context, workhour *model.AgentWorkhour) error
}

type GormAgentRepository struct {
	db *gorm.DB
}

func NewGormAgentRepository(db *gorm.DB) *GormAgentRepository {
	return &GormAgentRepository{db: db}
}

func (r *GormAgentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Agent, error) {
	var a model.Agent
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *GormAgentRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Agent, error) {
	var a model.Agent
	err := r.db.WithContext(ctx).First(&a, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *GormAgentRepository) FindWorkhour(ctx context.Context, agentID uuid.UUID) (*model.AgentWorkhour, error) {
	var w model.AgentWorkhour
	err := r.db.WithContext(ctx).First(&w, "agent_id = ?", agentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *GormAgentRepository) SaveWorkhour(ctx context.Context, workhour *model.AgentWorkhour) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "agent_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"weekday_start_time",
				"weekday_end_time",
				"weekend_start_time",
				"weekend_end_time",
				"updated_at",
			}),
		}).
		Create(workhour).Error
}
