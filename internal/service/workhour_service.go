package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Leganyst/viewing-platform/internal/apperr"
	"github.com/Leganyst/viewing-platform/internal/model"
	"github.com/Leganyst/viewing-platform/internal/repository"
	schedule "github.com/Leganyst/viewing-platform/internal/utils"
)

// Рабочие окна агента в виде строк "HH:MM".
type WorkhourInput struct {
	WeekdayStartTime string
	WeekdayEndTime   string
	WeekendStartTime string
	WeekendEndTime   string
}

// WorkhourService — настройка рабочих часов агента, входных данных
// для расчёта доступных слотов.
type WorkhourService struct {
	agentRepo repository.AgentRepository
}

func NewWorkhourService(agentRepo repository.AgentRepository) *WorkhourService {
	return &WorkhourService{agentRepo: agentRepo}
}

// Upsert создаёт либо обновляет рабочие часы агента. Каждое окно
// должно парситься как "HH:MM", начало окна — строго раньше конца.
func (s *WorkhourService) Upsert(ctx context.Context, userID uuid.UUID, input WorkhourInput) (*model.AgentWorkhour, error) {
	agent, err := s.agentRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if agent == nil {
		return nil, apperr.New(apperr.CodeAccessDenied, "actor is not an agent")
	}

	windows := [][2]string{
		{input.WeekdayStartTime, input.WeekdayEndTime},
		{input.WeekendStartTime, input.WeekendEndTime},
	}
	for _, w := range windows {
		start, err := schedule.ParseClock(w[0])
		if err != nil {
			return nil, apperr.Newf(apperr.CodeInvalidInput, "invalid clock value %q", w[0])
		}
		end, err := schedule.ParseClock(w[1])
		if err != nil {
			return nil, apperr.Newf(apperr.CodeInvalidInput, "invalid clock value %q", w[1])
		}
		if !start.Before(end) {
			return nil, apperr.Newf(apperr.CodeInvalidInput, "window %s-%s is empty", w[0], w[1])
		}
	}

	workhour := &model.AgentWorkhour{
		ID:               uuid.New(),
		AgentID:          agent.ID,
		WeekdayStartTime: input.WeekdayStartTime,
		WeekdayEndTime:   input.WeekdayEndTime,
		WeekendStartTime: input.WeekendStartTime,
		WeekendEndTime:   input.WeekendEndTime,
	}
	if err := s.agentRepo.SaveWorkhour(ctx, workhour); err != nil {
		return nil, err
	}
	return workhour, nil
}

// Get возвращает рабочие часы агента-владельца токена.
func (s *WorkhourService) Get(ctx context.Context, userID uuid.UUID) (*model.AgentWorkhour, error) {
	agent, err := s.agentRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if agent == nil {
		return nil, apperr.New(apperr.CodeAccessDenied, "actor is not an agent")
	}

	workhour, err := s.agentRepo.FindWorkhour(ctx, agent.ID)
	if err != nil {
		return nil, err
	}
	if workhour == nil {
		return nil, apperr.New(apperr.CodeConfigurationMissing, "agent workhour is not configured")
	}
	return workhour, nil
}
