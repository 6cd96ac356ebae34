package sessionRepo

import (
	"context"
	"errors"

	"bookline/models"
)

var ErrNotFound = errors.New("session not found")

// Repository is the durable backing store for agent sessions. The in-memory
// session cache is authoritative during a conversation; this store exists so a
// session survives process restarts and cache eviction.
type Repository interface {
	Get(ctx context.Context, sessionID string) (*models.AgentSession, error)
	Upsert(ctx context.Context, session *models.AgentSession) error
	Delete(ctx context.Context, sessionID string) error
}
