package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/Leganyst/viewing-platform/internal/apperr"
	"github.com/Leganyst/viewing-platform/internal/model"
	"github.com/Leganyst/viewing-platform/internal/repository"
)

// Входные данные объявления. Валидация формы — на транспортном слое,
// здесь только права и существование.
type RoomInput struct {
	Name        string
	Address     string
	DepositeFee int64
	MonthlyRent int64
	Area        float64
	FloorInfo   string
	Description string
	Options     datatypes.JSON
}

// RoomService — CRUD объявлений. Не часть ядра бронирования:
// статус брони этим сервисом не трогается.
type RoomService struct {
	roomRepo  repository.RoomRepository
	agentRepo repository.AgentRepository
}

func NewRoomService(roomRepo repository.RoomRepository, agentRepo repository.AgentRepository) *RoomService {
	return &RoomService{roomRepo: roomRepo, agentRepo: agentRepo}
}

func (s *RoomService) Create(ctx context.Context, userID uuid.UUID, input RoomInput) (*model.Room, error) {
	agent, err := s.requireAgent(ctx, userID)
	if err != nil {
		return nil, err
	}

	room := &model.Room{
		ID:          uuid.New(),
		AgentID:     agent.ID,
		Name:        input.Name,
		Address:     input.Address,
		DepositeFee: input.DepositeFee,
		MonthlyRent: input.MonthlyRent,
		Area:        input.Area,
		FloorInfo:   input.FloorInfo,
		Description: input.Description,
		Options:     input.Options,
		IsActive:    true,
	}
	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *RoomService) Get(ctx context.Context, roomID uuid.UUID) (*model.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, mapLookupErr(err, "room not found")
	}
	return room, nil
}

func (s *RoomService) Update(ctx context.Context, userID, roomID uuid.UUID, input RoomInput) (*model.Room, error) {
	room, err := s.ownedRoom(ctx, userID, roomID)
	if err != nil {
		return nil, err
	}

	room.Name = input.Name
	room.Address = input.Address
	room.DepositeFee = input.DepositeFee
	room.MonthlyRent = input.MonthlyRent
	room.Area = input.Area
	room.FloorInfo = input.FloorInfo
	room.Description = input.Description
	if input.Options != nil {
		room.Options = input.Options
	}

	if err := s.roomRepo.Save(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *RoomService) Delete(ctx context.Context, userID, roomID uuid.UUID) error {
	if _, err := s.ownedRoom(ctx, userID, roomID); err != nil {
		return err
	}
	return s.roomRepo.Delete(ctx, roomID)
}

func (s *RoomService) ListMine(ctx context.Context, userID uuid.UUID) ([]model.Room, error) {
	agent, err := s.requireAgent(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.roomRepo.ListByAgent(ctx, agent.ID)
}

func (s *RoomService) requireAgent(ctx context.Context, userID uuid.UUID) (*model.Agent, error) {
	agent, err := s.agentRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if agent == nil {
		return nil, apperr.New(apperr.CodeAccessDenied, "actor is not an agent")
	}
	return agent, nil
}

func (s *RoomService) ownedRoom(ctx context.Context, userID, roomID uuid.UUID) (*model.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, mapLookupErr(err, "room not found")
	}
	agent, err := s.requireAgent(ctx, userID)
	if err != nil {
		return nil, err
	}
	if room.AgentID != agent.ID {
		return nil, apperr.New(apperr.CodeAccessDenied, "room belongs to another agent")
	}
	return room, nil
}
