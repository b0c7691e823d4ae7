// Package memory 提供单机部署使用的进程内会话存储
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"lecture-tranquille-api/internal/domain/entity"
	"lecture-tranquille-api/internal/domain/repository"
	"lecture-tranquille-api/pkg/metrics"
)

type entry struct {
	session   *entity.ReadingSession
	expiresAt time.Time
}

// SessionStore 进程内会话存储，读写都复制会话，调用方拿到的快照互不影响
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]entry
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionStore 创建内存会话存储，ttl 为 0 时不过期
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *SessionStore) expiry() time.Time {
	if s.ttl <= 0 {
		return time.Time{}
	}
	return s.now().Add(s.ttl)
}

func (s *SessionStore) expired(e entry) bool {
	return !e.expiresAt.IsZero() && s.now().After(e.expiresAt)
}

// Create 写入新会话
func (s *SessionStore) Create(_ context.Context, session *entity.ReadingSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.sessions[session.ID]; ok && !s.expired(e) {
		return fmt.Errorf("session %s already exists", session.ID)
	}
	s.sessions[session.ID] = entry{session: session.Clone(), expiresAt: s.expiry()}
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	return nil
}

// Get 读取会话副本
func (s *SessionStore) Get(_ context.Context, id string) (*entity.ReadingSession, error) {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok || s.expired(e) {
		return nil, repository.ErrSessionNotFound
	}
	return e.session.Clone(), nil
}

// Save 覆盖保存并续期
func (s *SessionStore) Save(_ context.Context, session *entity.ReadingSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.sessions[session.ID]; !ok || s.expired(e) {
		return repository.ErrSessionNotFound
	}
	s.sessions[session.ID] = entry{session: session.Clone(), expiresAt: s.expiry()}
	return nil
}

// Delete 删除会话
func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return repository.ErrSessionNotFound
	}
	delete(s.sessions, id)
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	return nil
}

// Sweep 清理过期会话，返回清理数量
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, e := range s.sessions {
		if s.expired(e) {
			delete(s.sessions, id)
			n++
		}
	}
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	return n
}

// RunSweeper 周期性清理过期会话，直到 ctx 取消
func (s *SessionStore) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
