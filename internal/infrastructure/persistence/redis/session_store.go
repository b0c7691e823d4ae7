package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lecture-tranquille-api/internal/domain/entity"
	"lecture-tranquille-api/internal/domain/repository"
)

// SessionStore 多实例部署使用的 Redis 会话存储，会话以 JSON 保存在 <prefix>:<id>
type SessionStore struct {
	client *Client
	prefix string
	ttl    time.Duration
}

// NewSessionStore 创建 Redis 会话存储
func NewSessionStore(client *Client, prefix string, ttl time.Duration) *SessionStore {
	if prefix == "" {
		prefix = "session"
	}
	return &SessionStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *SessionStore) key(id string) string {
	return sessionKey(s.prefix, id)
}

func sessionKey(prefix, id string) string {
	return fmt.Sprintf("%s:%s", prefix, id)
}

func encodeSession(session *entity.ReadingSession) ([]byte, error) {
	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}
	return data, nil
}

func decodeSession(data []byte) (*entity.ReadingSession, error) {
	var session entity.ReadingSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	if session.Questions == nil {
		session.Questions = map[string]entity.QuestionState{}
	}
	if session.Drafts == nil {
		session.Drafts = map[string]string{}
	}
	return &session, nil
}

// Create 写入新会话，键已存在时报错
func (s *SessionStore) Create(ctx context.Context, session *entity.ReadingSession) error {
	data, err := encodeSession(session)
	if err != nil {
		return err
	}
	key := s.key(session.ID)
	var ok bool
	err = s.client.do(ctx, "SetNX", key, func(ctx context.Context) error {
		var err error
		ok, err = s.client.rdb.SetNX(ctx, key, data, s.ttl).Result()
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	if !ok {
		return fmt.Errorf("session %s already exists", session.ID)
	}
	return nil
}

// Get 读取会话
func (s *SessionStore) Get(ctx context.Context, id string) (*entity.ReadingSession, error) {
	key := s.key(id)
	var raw []byte
	err := s.client.do(ctx, "Get", key, func(ctx context.Context) error {
		var err error
		raw, err = s.client.rdb.Get(ctx, key).Bytes()
		return err
	})
	if err != nil {
		if IsNil(err) {
			return nil, repository.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return decodeSession(raw)
}

// Save 覆盖保存并刷新 TTL，会话已过期时返回 ErrSessionNotFound
func (s *SessionStore) Save(ctx context.Context, session *entity.ReadingSession) error {
	data, err := encodeSession(session)
	if err != nil {
		return err
	}
	key := s.key(session.ID)
	var ok bool
	err = s.client.do(ctx, "SetXX", key, func(ctx context.Context) error {
		var err error
		ok, err = s.client.rdb.SetXX(ctx, key, data, s.ttl).Result()
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	if !ok {
		return repository.ErrSessionNotFound
	}
	return nil
}

// Delete 删除会话
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	key := s.key(id)
	var n int64
	err := s.client.do(ctx, "Del", key, func(ctx context.Context) error {
		var err error
		n, err = s.client.rdb.Del(ctx, key).Result()
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if n == 0 {
		return repository.ErrSessionNotFound
	}
	return nil
}
