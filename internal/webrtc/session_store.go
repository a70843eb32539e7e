package webrtc

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionStore — источник сведений о живых видеосессиях просмотра.
// В проде это обёртка над медиасервером, в тестах — мок.
type SessionStore interface {
	// Есть ли открытая сессия для брони.
	HasSession(reservationID uuid.UUID) bool
}

// SessionRegistry — управление сессиями со стороны медиаслоя.
type SessionRegistry interface {
	SessionStore
	Open(reservationID uuid.UUID)
	Close(reservationID uuid.UUID)
}

// Реализация в памяти процесса.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[uuid.UUID]time.Time)}
}

func (s *MemorySessionStore) HasSession(reservationID uuid.UUID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[reservationID]
	return ok
}

func (s *MemorySessionStore) Open(reservationID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[reservationID] = time.Now().UTC()
}

func (s *MemorySessionStore) Close(reservationID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, reservationID)
}
