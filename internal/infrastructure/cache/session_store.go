package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"campaigninsights/internal/domain/campaign"
)

var (
	// ErrSessionNotFound сессия не найдена или истекла
	ErrSessionNotFound = errors.New("session not found")
	// ErrInsightInFlight для кампании уже выполняется запрос инсайта
	ErrInsightInFlight = errors.New("insight request already in progress for this campaign")
)

// DefaultSessionTTL время жизни сессии без обращений
const DefaultSessionTTL = 30 * time.Minute

// Session данные одной загрузки. Хранятся только в памяти процесса.
type Session struct {
	ID        string
	FileName  string
	CreatedAt time.Time
	Report    *campaign.Report

	expiresAt time.Time
	inFlight  map[string]struct{}
}

// SessionStore хранилище сессий с истечением по TTL
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionStore создает хранилище; ttl <= 0 заменяется на DefaultSessionTTL
func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create сохраняет отчет новой загрузки и возвращает сессию
func (s *SessionStore) Create(fileName string, report *campaign.Report) *Session {
	now := s.now()
	session := &Session{
		ID:        uuid.New().String(),
		FileName:  fileName,
		CreatedAt: now,
		Report:    report,
		expiresAt: now.Add(s.ttl),
		inFlight:  make(map[string]struct{}),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session
}

// Get возвращает сессию и продлевает ее время жизни
func (s *SessionStore) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	now := s.now()
	if now.After(session.expiresAt) {
		delete(s.sessions, id)
		return nil, ErrSessionNotFound
	}
	session.expiresAt = now.Add(s.ttl)
	return session, nil
}

// Delete завершает сессию
func (s *SessionStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

// BeginInsight отмечает запрос инсайта для кампании как выполняемый.
// Возвращаемую функцию нужно вызвать по завершении запроса.
func (s *SessionStore) BeginInsight(id, campaignName string) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok || s.now().After(session.expiresAt) {
		return nil, ErrSessionNotFound
	}
	if _, busy := session.inFlight[campaignName]; busy {
		return nil, ErrInsightInFlight
	}
	session.inFlight[campaignName] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(session.inFlight, campaignName)
			s.mu.Unlock()
		})
	}, nil
}

// Len количество активных сессий
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep удаляет истекшие сессии и возвращает их количество
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, session := range s.sessions {
		if now.After(session.expiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// StartJanitor периодически удаляет истекшие сессии до отмены контекста
func (s *SessionStore) StartJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Sweep()
			}
		}
	}()
}
