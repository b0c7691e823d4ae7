package repository

import (
	"context"
	"errors"

	"lecture-tranquille-api/internal/domain/entity"
)

// ErrSessionNotFound 会话不存在或已过期
var ErrSessionNotFound = errors.New("reading session not found")

// SessionStore 阅读会话存储。会话只是交互状态的缓存，不是结果存储。
type SessionStore interface {
	Create(ctx context.Context, session *entity.ReadingSession) error
	Get(ctx context.Context, id string) (*entity.ReadingSession, error)
	Save(ctx context.Context, session *entity.ReadingSession) error
	Delete(ctx context.Context, id string) error
}
