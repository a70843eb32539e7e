package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Leganyst/viewing-platform/internal/model"
)

type ReservationRepository interface {
	// Создать новую бронь.
	Create(ctx context.Context, reservation *model.Reservation) error
	// Получить бронь по ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error)
	// Сохранить бронь (upsert по первичному ключу).
	Save(ctx context.Context, reservation *model.Reservation) error
	// Подтверждённая бронь на (объект, время) под блокировкой строки.
	// nil без ошибки, если такой брони нет.
	FindConfirmedByRoomAndTimeWithLock(ctx context.Context, roomID uuid.UUID, at time.Time) (*model.Reservation, error)
	// Любая неотменённая бронь арендатора на объект. nil, если нет.
	FindActiveByRoomAndUser(ctx context.Context, roomID, userID uuid.UUID) (*model.Reservation, error)
	// Есть ли подтверждённая бронь на (объект, время), кроме excludeID.
	ExistsConfirmedByRoomAndTime(ctx context.Context, roomID uuid.UUID, at time.Time, excludeID uuid.UUID) (bool, error)
	// Все брони арендатора.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Reservation, error)
	// Брони на объекты агента после момента after, порядок (время, id).
	ListByAgentAfter(ctx context.Context, agentID uuid.UUID, after time.Time) ([]model.Reservation, error)
	// Времена подтверждённых броней объекта внутри суток [from, to).
	ConfirmedTimes(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]time.Time, error)
	// Выполнить fn в одной транзакции хранилища: переданный fn
	// получает репозиторий поверх транзакции. Блокирующее чтение
	// держит строку до конца транзакции.
	InTransaction(ctx context.Context, fn func(repo ReservationRepository) error) error
}

// Реализация на GORM.
type GormReservationRepository struct {
	db *gorm.DB
}

func NewGormReservationRepository(db *gorm.DB) *GormReservationRepository {
	return &GormReservationRepository{db: db}
}

func (r *GormReservationRepository) InTransaction(ctx context.Context, fn func(repo ReservationRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormReservationRepository(tx))
	})
}

func (r *GormReservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

func (r *GormReservationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	var res model.Reservation
	if err := r.db.WithContext(ctx).First(&res, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *GormReservationRepository) Save(ctx context.Context, reservation *model.Reservation) error {
	return r.db.WithContext(ctx).Save(reservation).Error
}

func (r *GormReservationRepository) FindConfirmedByRoomAndTimeWithLock(
	ctx context.Context,
	roomID uuid.UUID,
	at time.Time,
) (*model.Reservation, error) {
	var res model.Reservation
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("room_id = ?", roomID).
		Where("reservation_time = ?", at).
		Where("status = ?", model.ReservationStatusConfirmed).
		First(&res).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *GormReservationRepository) FindActiveByRoomAndUser(
	ctx context.Context,
	roomID, userID uuid.UUID,
) (*model.Reservation, error) {
	var res model.Reservation
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Where("user_id = ?", userID).
		Where("status <> ?", model.ReservationStatusCancelled).
		First(&res).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *GormReservationRepository) ExistsConfirmedByRoomAndTime(
	ctx context.Context,
	roomID uuid.UUID,
	at time.Time,
	excludeID uuid.UUID,
) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Reservation{}).
		Where("room_id = ?", roomID).
		Where("reservation_time = ?", at).
		Where("status = ?", model.ReservationStatusConfirmed).
		Where("id <> ?", excludeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormReservationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Reservation, error) {
	var reservations []model.Reservation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("reservation_time ASC").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *GormReservationRepository) ListByAgentAfter(
	ctx context.Context,
	agentID uuid.UUID,
	after time.Time,
) ([]model.Reservation, error) {
	var reservations []model.Reservation
	err := r.db.WithContext(ctx).
		Joins("JOIN rooms ON rooms.id = reservations.room_id").
		Where("rooms.agent_id = ?", agentID).
		Where("reservations.reservation_time > ?", after).
		Order("reservations.reservation_time ASC, reservations.id ASC").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *GormReservationRepository) ConfirmedTimes(
	ctx context.Context,
	roomID uuid.UUID,
	from, to time.Time,
) ([]time.Time, error) {
	var times []time.Time
	err := r.db.WithContext(ctx).
		Model(&model.Reservation{}).
		Where("room_id = ?", roomID).
		Where("status = ?", model.ReservationStatusConfirmed).
		Where("reservation_time >= ? AND reservation_time < ?", from, to).
		Order("reservation_time ASC").
		Pluck("reservation_time", &times).Error
	if err != nil {
		return nil, err
	}
	return times, nil
}
