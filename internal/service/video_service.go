package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Leganyst/viewing-platform/internal/apperr"
	"github.com/Leganyst/viewing-platform/internal/model"
	"github.com/Leganyst/viewing-platform/internal/repository"
)

// VideoService — жизненный цикл записи видеопросмотра. Сам перевод
// брони в completed по завершённой записи делает ReservationService
// при чтении списков.
type VideoService struct {
	videoRepo       repository.VideoRepository
	reservationRepo repository.ReservationRepository
}

func NewVideoService(
	videoRepo repository.VideoRepository,
	reservationRepo repository.ReservationRepository,
) *VideoService {
	return &VideoService{
		videoRepo:       videoRepo,
		reservationRepo: reservationRepo,
	}
}

// Register заводит запись в статусе recording для подтверждённой
// брони. Вторая запись на ту же бронь запрещена.
func (s *VideoService) Register(ctx context.Context, reservationID uuid.UUID) (*model.Video, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, mapLookupErr(err, "reservation not found")
	}
	if reservation.Status != model.ReservationStatusConfirmed {
		return nil, apperr.New(apperr.CodeReservationNotConfirmed, "recording requires a confirmed reservation")
	}

	existing, err := s.videoRepo.FindByReservationID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.New(apperr.CodeDuplicateVideo, "reservation already has a video")
	}

	video := &model.Video{
		ID:            uuid.New(),
		ReservationID: reservationID,
		Status:        model.VideoStatusRecording,
	}
	if err := s.videoRepo.Create(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

// Get возвращает завершённую запись. Пока идёт запись, видео
// недоступно.
func (s *VideoService) Get(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, mapLookupErr(err, "video not found")
	}
	if video.Status == model.VideoStatusRecording {
		return nil, apperr.New(apperr.CodeVideoStillRecording, "video is still being recorded")
	}
	return video, nil
}

// Finalize закрывает запись: проставляет URL и конечный статус.
// Допустим только переход из recording; повторная финализация и
// возврат в recording запрещены.
func (s *VideoService) Finalize(ctx context.Context, videoID uuid.UUID, videoURL string, status model.VideoStatus) error {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return mapLookupErr(err, "video not found")
	}
	if video.Status != model.VideoStatusRecording {
		return apperr.New(apperr.CodeDuplicateVideo, "video is already finalized")
	}
	if videoURL == "" || status == model.VideoStatusRecording {
		return apperr.New(apperr.CodeInvalidInput, "video url and final status are required")
	}

	video.VideoURL = videoURL
	video.Status = status
	return s.videoRepo.Save(ctx, video)
}
