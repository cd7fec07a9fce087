package repository

import (
	"context"

	"clinic-whatsapp-scheduler/internal/domain/entity"
)

// SessionRepository stores one conversation session per phone number with
// last-write-wins semantics. Get returns nil when no session exists.
type SessionRepository interface {
	Get(ctx context.Context, phone string) (*entity.ConversationSession, error)
	Set(ctx context.Context, phone string, session *entity.ConversationSession) error
	Clear(ctx context.Context, phone string) error
	ClearAll(ctx context.Context) error
}
