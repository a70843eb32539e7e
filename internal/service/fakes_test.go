package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Leganyst/viewing-platform/internal/model"
	"github.com/Leganyst/viewing-platform/internal/repository"
)

// In-memory fakes for the repository interfaces. Rooms are shared
// between the reservation fake and the room fake so that agent-scoped
// listing works.

type fakeReservationRepo struct {
	reservations map[uuid.UUID]*model.Reservation
	rooms        map[uuid.UUID]*model.Room
}

func (f *fakeReservationRepo) Create(_ context.Context, r *model.Reservation) error {
	cp := *r
	f.reservations[r.ID] = &cp
	return nil
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReservationRepo) Save(_ context.Context, r *model.Reservation) error {
	cp := *r
	f.reservations[r.ID] = &cp
	return nil
}

func (f *fakeReservationRepo) FindConfirmedByRoomAndTimeWithLock(
	_ context.Context,
	roomID uuid.UUID,
	at time.Time,
) (*model.Reservation, error) {
	for _, r := range f.reservations {
		if r.RoomID == roomID && r.ReservationTime.Equal(at) && r.Status == model.ReservationStatusConfirmed {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeReservationRepo) FindActiveByRoomAndUser(
	_ context.Context,
	roomID, userID uuid.UUID,
) (*model.Reservation, error) {
	for _, r := range f.reservations {
		if r.RoomID == roomID && r.UserID == userID && r.Status != model.ReservationStatusCancelled {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeReservationRepo) ExistsConfirmedByRoomAndTime(
	_ context.Context,
	roomID uuid.UUID,
	at time.Time,
	excludeID uuid.UUID,
) (bool, error) {
	for _, r := range f.reservations {
		if r.ID != excludeID && r.RoomID == roomID && r.ReservationTime.Equal(at) &&
			r.Status == model.ReservationStatusConfirmed {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReservationRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.Reservation, error) {
	var out []model.Reservation
	for _, r := range f.reservations {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ReservationTime.Before(out[j].ReservationTime)
	})
	return out, nil
}

func (f *fakeReservationRepo) ListByAgentAfter(
	_ context.Context,
	agentID uuid.UUID,
	after time.Time,
) ([]model.Reservation, error) {
	var out []model.Reservation
	for _, r := range f.reservations {
		room, ok := f.rooms[r.RoomID]
		if !ok || room.AgentID != agentID {
			continue
		}
		if r.ReservationTime.After(after) {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ReservationTime.Equal(out[j].ReservationTime) {
			return out[i].ReservationTime.Before(out[j].ReservationTime)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (f *fakeReservationRepo) ConfirmedTimes(
	_ context.Context,
	roomID uuid.UUID,
	from, to time.Time,
) ([]time.Time, error) {
	var out []time.Time
	for _, r := range f.reservations {
		if r.RoomID != roomID || r.Status != model.ReservationStatusConfirmed {
			continue
		}
		if !r.ReservationTime.Before(from) && r.ReservationTime.Before(to) {
			out = append(out, r.ReservationTime)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out, nil
}

func (f *fakeReservationRepo) InTransaction(_ context.Context, fn func(repo repository.ReservationRepository) error) error {
	return fn(f)
}

type fakeRoomRepo struct {
	rooms map[uuid.UUID]*model.Room
}

func (f *fakeRoomRepo) Create(_ context.Context, room *model.Room) error {
	cp := *room
	f.rooms[room.ID] = &cp
	return nil
}

func (f *fakeRoomRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Room, error) {
	room, ok := f.rooms[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *room
	return &cp, nil
}

func (f *fakeRoomRepo) Save(_ context.Context, room *model.Room) error {
	cp := *room
	f.rooms[room.ID] = &cp
	return nil
}

func (f *fakeRoomRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.rooms, id)
	return nil
}

func (f *fakeRoomRepo) ListByAgent(_ context.Context, agentID uuid.UUID) ([]model.Room, error) {
	var out []model.Room
	for _, room := range f.rooms {
		if room.AgentID == agentID && room.IsActive {
			out = append(out, *room)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func (f *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeAgentRepo struct {
	agents    map[uuid.UUID]*model.Agent
	workhours map[uuid.UUID]*model.AgentWorkhour
}

func (f *fakeAgentRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Agent, error) {
	a, ok := f.agents[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAgentRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*model.Agent, error) {
	for _, a := range f.agents {
		if a.UserID == userID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeAgentRepo) FindWorkhour(_ context.Context, agentID uuid.UUID) (*model.AgentWorkhour, error) {
	w, ok := f.workhours[agentID]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (f *fakeAgentRepo) SaveWorkhour(_ context.Context, w *model.AgentWorkhour) error {
	cp := *w
	f.workhours[w.AgentID] = &cp
	return nil
}

type fakeVideoRepo struct {
	videos map[uuid.UUID]*model.Video
}

func (f *fakeVideoRepo) Create(_ context.Context, v *model.Video) error {
	cp := *v
	f.videos[v.ID] = &cp
	return nil
}

func (f *fakeVideoRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Video, error) {
	v, ok := f.videos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVideoRepo) FindByReservationID(_ context.Context, reservationID uuid.UUID) (*model.Video, error) {
	for _, v := range f.videos {
		if v.ReservationID == reservationID {
			cp := *v
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeVideoRepo) Save(_ context.Context, v *model.Video) error {
	cp := *v
	f.videos[v.ID] = &cp
	return nil
}

type fakeEventRepo struct {
	events []model.Event
}

func (f *fakeEventRepo) Create(_ context.Context, e *model.Event) error {
	f.events = append(f.events, *e)
	return nil
}

func (f *fakeEventRepo) ListByReservation(_ context.Context, reservationID uuid.UUID) ([]model.Event, error) {
	var out []model.Event
	for _, e := range f.events {
		if e.ReservationID != nil && *e.ReservationID == reservationID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeSessionStore struct {
	open map[uuid.UUID]bool
}

func (f *fakeSessionStore) HasSession(reservationID uuid.UUID) bool {
	return f.open[reservationID]
}

// fixture wires a ReservationService over the fakes and exposes the
// stores for seeding and assertions.
type fixture struct {
	reservations *fakeReservationRepo
	rooms        *fakeRoomRepo
	users        *fakeUserRepo
	agents       *fakeAgentRepo
	videos       *fakeVideoRepo
	events       *fakeEventRepo
	sessions     *fakeSessionStore

	svc *ReservationService
}

func newFixture() *fixture {
	roomStore := map[uuid.UUID]*model.Room{}
	f := &fixture{
		reservations: &fakeReservationRepo{reservations: map[uuid.UUID]*model.Reservation{}, rooms: roomStore},
		rooms:        &fakeRoomRepo{rooms: roomStore},
		users:        &fakeUserRepo{users: map[uuid.UUID]*model.User{}},
		agents:       &fakeAgentRepo{agents: map[uuid.UUID]*model.Agent{}, workhours: map[uuid.UUID]*model.AgentWorkhour{}},
		videos:       &fakeVideoRepo{videos: map[uuid.UUID]*model.Video{}},
		events:       &fakeEventRepo{},
		sessions:     &fakeSessionStore{open: map[uuid.UUID]bool{}},
	}
	f.svc = NewReservationService(f.reservations, f.rooms, f.users, f.agents, f.videos, f.events, f.sessions)
	return f
}

func (f *fixture) seedUser(email string) uuid.UUID {
	id := uuid.New()
	f.users.users[id] = &model.User{ID: id, Email: email}
	return id
}

// seedAgent returns (userID, agentID).
func (f *fixture) seedAgent(email string) (uuid.UUID, uuid.UUID) {
	userID := f.seedUser(email)
	agentID := uuid.New()
	f.agents.agents[agentID] = &model.Agent{ID: agentID, UserID: userID, OfficeName: "office"}
	return userID, agentID
}

func (f *fixture) seedRoom(agentID uuid.UUID) uuid.UUID {
	id := uuid.New()
	f.rooms.rooms[id] = &model.Room{ID: id, AgentID: agentID, Name: "room", Address: "addr", IsActive: true}
	return id
}

func (f *fixture) seedReservation(
	roomID, userID uuid.UUID,
	at time.Time,
	status model.ReservationStatus,
) uuid.UUID {
	id := uuid.New()
	f.reservations.reservations[id] = &model.Reservation{
		ID:              id,
		RoomID:          roomID,
		UserID:          userID,
		ReservationTime: at,
		Status:          status,
	}
	return id
}

func (f *fixture) seedWorkhour(agentID uuid.UUID, wdStart, wdEnd, weStart, weEnd string) {
	f.agents.workhours[agentID] = &model.AgentWorkhour{
		ID:               uuid.New(),
		AgentID:          agentID,
		WeekdayStartTime: wdStart,
		WeekdayEndTime:   wdEnd,
		WeekendStartTime: weStart,
		WeekendEndTime:   weEnd,
	}
}

func (f *fixture) reservationStatus(id uuid.UUID) model.ReservationStatus {
	return f.reservations.reservations[id].Status
}
