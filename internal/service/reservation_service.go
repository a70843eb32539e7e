package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Leganyst/viewing-platform/internal/apperr"
	"github.com/Leganyst/viewing-platform/internal/model"
	"github.com/Leganyst/viewing-platform/internal/repository"
	schedule "github.com/Leganyst/viewing-platform/internal/utils"
	"github.com/Leganyst/viewing-platform/internal/webrtc"
)

// За сколько минут до начала просмотра агенту открывается кнопка входа.
const joinWindow = 10 * time.Minute

// ReservationView — строка листинга броней: сама бронь плюс сигналы
// для фронта (живая сессия, доступность входа).
type ReservationView struct {
	Reservation   model.Reservation
	SessionActive bool
	Joinable      bool
}

// ReservationService — машина статусов брони и расчёт доступных
// слотов. Все мутации статуса проходят только через этот сервис.
type ReservationService struct {
	reservationRepo repository.ReservationRepository
	roomRepo        repository.RoomRepository
	userRepo        repository.UserRepository
	agentRepo       repository.AgentRepository
	videoRepo       repository.VideoRepository
	eventRepo       repository.EventRepository
	sessions        webrtc.SessionStore

	now func() time.Time
}

func NewReservationService(
	reservationRepo repository.ReservationRepository,
	roomRepo repository.RoomRepository,
	userRepo repository.UserRepository,
	agentRepo repository.AgentRepository,
	videoRepo repository.VideoRepository,
	eventRepo repository.EventRepository,
	sessions webrtc.SessionStore,
) *ReservationService {
	return &ReservationService{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		userRepo:        userRepo,
		agentRepo:       agentRepo,
		videoRepo:       videoRepo,
		eventRepo:       eventRepo,
		sessions:        sessions,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// Create создаёт заявку на просмотр от арендатора.
//
// Обе проверки конфликтов выполняются в одной транзакции: чтение
// подтверждённой брони на (объект, время) — под блокировкой строки,
// чтобы параллельный confirm не проскочил между проверкой и записью.
// Несколько заявок (requested) на один слот — допустимы.
func (s *ReservationService) Create(
	ctx context.Context,
	userID, roomID uuid.UUID,
	at time.Time,
) (*model.Reservation, error) {
	if at.IsZero() {
		return nil, apperr.New(apperr.CodeInvalidInput, "reservation time is required")
	}

	if _, err := s.roomRepo.GetByID(ctx, roomID); err != nil {
		return nil, mapLookupErr(err, "room not found")
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, mapLookupErr(err, "user not found")
	}

	reservation := &model.Reservation{
		ID:              uuid.New(),
		RoomID:          roomID,
		UserID:          userID,
		ReservationTime: at,
		Status:          model.ReservationStatusRequested,
	}

	err := s.reservationRepo.InTransaction(ctx, func(repo repository.ReservationRepository) error {
		confirmed, err := repo.FindConfirmedByRoomAndTimeWithLock(ctx, roomID, at)
		if err != nil {
			return err
		}
		if confirmed != nil {
			return apperr.New(apperr.CodeDuplicateReservation, "slot already holds a confirmed reservation")
		}

		active, err := repo.FindActiveByRoomAndUser(ctx, roomID, userID)
		if err != nil {
			return err
		}
		if active != nil {
			return apperr.New(apperr.CodeRenterAlreadyBooked, "renter already holds an active reservation for this room")
		}

		return repo.Create(ctx, reservation)
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, model.EventTypeReservationRequested, userID, reservation.ID)
	return reservation, nil
}

// Cancel отменяет заявку. Действовать может сам арендатор либо
// агент объекта; все остальные получают отказ в доступе.
func (s *ReservationService) Cancel(ctx context.Context, userID, id uuid.UUID) error {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return mapLookupErr(err, "reservation not found")
	}

	if reservation.UserID != userID {
		ok, err := s.isRoomAgent(ctx, userID, reservation.RoomID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.New(apperr.CodeAccessDenied, "actor is neither the renter nor the room agent")
		}
	}

	next, err := model.NextStatus(reservation.Status, model.ActionCancel)
	if err != nil {
		return err
	}

	reservation.Status = next
	if err := s.reservationRepo.Save(ctx, reservation); err != nil {
		return err
	}

	s.audit(ctx, model.EventTypeReservationCancelled, userID, reservation.ID)
	return nil
}

// Confirm подтверждает заявку от имени агента объекта.
//
// Точка сериализации: повторная проверка существования другой
// подтверждённой брони на тот же (объект, время) происходит в той же
// транзакции, что и запись нового статуса. Доступность, показанная
// арендатору при создании заявки, ничего не гарантирует.
func (s *ReservationService) Confirm(ctx context.Context, userID, id uuid.UUID) error {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return mapLookupErr(err, "reservation not found")
	}

	ok, err := s.isRoomAgent(ctx, userID, reservation.RoomID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.New(apperr.CodeAccessDenied, "actor is not the room agent")
	}

	next, err := model.NextStatus(reservation.Status, model.ActionConfirm)
	if err != nil {
		return err
	}

	err = s.reservationRepo.InTransaction(ctx, func(repo repository.ReservationRepository) error {
		taken, err := repo.ExistsConfirmedByRoomAndTime(ctx, reservation.RoomID, reservation.ReservationTime, reservation.ID)
		if err != nil {
			return err
		}
		if taken {
			return apperr.New(apperr.CodeDoubleConfirmedSlot, "another reservation is already confirmed for this slot")
		}

		reservation.Status = next
		return repo.Save(ctx, reservation)
	})
	if err != nil {
		return err
	}

	s.audit(ctx, model.EventTypeReservationConfirmed, userID, reservation.ID)
	return nil
}

// ListMy возвращает брони арендатора. Перед выдачей каждая
// подтверждённая бронь сверяется с записью видео (см. model.Reconcile)
// и при завершённой записи переводится в completed.
func (s *ReservationService) ListMy(ctx context.Context, userID uuid.UUID) ([]ReservationView, error) {
	reservations, err := s.reservationRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]ReservationView, 0, len(reservations))
	for _, reservation := range reservations {
		reservation, err = s.reconcile(ctx, reservation)
		if err != nil {
			return nil, err
		}

		view := ReservationView{Reservation: reservation}
		if reservation.Status == model.ReservationStatusConfirmed {
			view.SessionActive = s.sessions.HasSession(reservation.ID)
		}
		views = append(views, view)
	}
	return views, nil
}

// ListForAgent возвращает брони на объекты агента начиная с
// сегодняшней полуночи, в порядке (время, id). Joinable выставляется
// за joinWindow до начала просмотра.
func (s *ReservationService) ListForAgent(ctx context.Context, userID uuid.UUID) ([]ReservationView, error) {
	agent, err := s.agentRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if agent == nil {
		return nil, apperr.New(apperr.CodeAccessDenied, "actor is not an agent")
	}

	now := s.now()
	today, _ := schedule.DayBounds(now)

	reservations, err := s.reservationRepo.ListByAgentAfter(ctx, agent.ID, today)
	if err != nil {
		return nil, err
	}

	views := make([]ReservationView, 0, len(reservations))
	for _, reservation := range reservations {
		reservation, err = s.reconcile(ctx, reservation)
		if err != nil {
			return nil, err
		}
		views = append(views, ReservationView{
			Reservation: reservation,
			Joinable:    reservation.ReservationTime.Add(-joinWindow).Before(now),
		})
	}
	return views, nil
}

// AvailableTimes отдаёт свободные получасовые слоты объекта на дату:
// сетка внутри рабочего окна агента минус подтверждённые брони.
// Результат — снимок на момент запроса, не гарантия слота.
func (s *ReservationService) AvailableTimes(ctx context.Context, roomID uuid.UUID, date time.Time) ([]string, error) {
	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, mapLookupErr(err, "room not found")
	}

	workhour, err := s.agentRepo.FindWorkhour(ctx, room.AgentID)
	if err != nil {
		return nil, err
	}
	if workhour == nil {
		return nil, apperr.New(apperr.CodeConfigurationMissing, "agent workhour is not configured")
	}

	startStr, endStr := workhour.WeekdayStartTime, workhour.WeekdayEndTime
	if schedule.IsWeekend(date) {
		startStr, endStr = workhour.WeekendStartTime, workhour.WeekendEndTime
	}

	start, err := schedule.ParseClock(startStr)
	if err != nil {
		return nil, apperr.New(apperr.CodeConfigurationMissing, "agent workhour is malformed")
	}
	end, err := schedule.ParseClock(endStr)
	if err != nil {
		return nil, apperr.New(apperr.CodeConfigurationMissing, "agent workhour is malformed")
	}

	dayFrom, dayTo := schedule.DayBounds(date)
	bookedTimes, err := s.reservationRepo.ConfirmedTimes(ctx, roomID, dayFrom, dayTo)
	if err != nil {
		return nil, err
	}

	booked := make(map[string]struct{}, len(bookedTimes))
	for _, t := range bookedTimes {
		booked[schedule.FormatClock(t.In(date.Location()))] = struct{}{}
	}

	available := []string{}
	for _, slot := range schedule.GenerateTimeSlots(start, end) {
		clock := schedule.FormatClock(slot)
		if _, taken := booked[clock]; taken {
			continue
		}
		available = append(available, clock)
	}
	return available, nil
}

// reconcile применяет model.Reconcile к брони и сохраняет её,
// если статус поменялся.
func (s *ReservationService) reconcile(ctx context.Context, reservation model.Reservation) (model.Reservation, error) {
	if reservation.Status != model.ReservationStatusConfirmed {
		return reservation, nil
	}

	video, err := s.videoRepo.FindByReservationID(ctx, reservation.ID)
	if err != nil {
		return model.Reservation{}, err
	}

	updated, changed := model.Reconcile(reservation, video)
	if !changed {
		return reservation, nil
	}
	if err := s.reservationRepo.Save(ctx, &updated); err != nil {
		return model.Reservation{}, err
	}
	s.audit(ctx, model.EventTypeReservationCompleted, updated.UserID, updated.ID)
	return updated, nil
}

// isRoomAgent проверяет, что пользователь — агент, владеющий объектом.
func (s *ReservationService) isRoomAgent(ctx context.Context, userID, roomID uuid.UUID) (bool, error) {
	agent, err := s.agentRepo.FindByUserID(ctx, userID)
	if err != nil {
		return false, err
	}
	if agent == nil {
		return false, nil
	}

	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return false, mapLookupErr(err, "room not found")
	}
	return room.AgentID == agent.ID, nil
}

// audit пишет событие аудита. Сбой аудита не валит операцию.
func (s *ReservationService) audit(ctx context.Context, eventType model.EventType, userID, reservationID uuid.UUID) {
	event := &model.Event{
		EventType:     eventType,
		UserID:        &userID,
		ReservationID: &reservationID,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		slog.Warn("audit event write failed", "type", eventType, "reservation_id", reservationID, "error", err)
	}
}

// mapLookupErr переводит отсутствие строки в доменный NotFound,
// не теряя остальные ошибки хранилища.
func mapLookupErr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.New(apperr.CodeNotFound, message)
	}
	return err
}
