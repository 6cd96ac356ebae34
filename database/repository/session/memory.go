package sessionRepo

import (
	"context"
	"sync"

	"bookline/models"
)

// InMemorySessionRepo implements Repository for tests and local development.
type InMemorySessionRepo struct {
	mu   sync.Mutex
	rows map[string]models.AgentSession

	// FailAll makes every call return an error, for exercising the cache-only
	// degradation path.
	FailAll error
}

func NewInMemorySessionRepo() *InMemorySessionRepo {
	return &InMemorySessionRepo{rows: make(map[string]models.AgentSession)}
}

func (repo *InMemorySessionRepo) Get(ctx context.Context, sessionID string) (*models.AgentSession, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.FailAll != nil {
		return nil, repo.FailAll
	}
	row, ok := repo.rows[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	out := row
	return &out, nil
}

func (repo *InMemorySessionRepo) Upsert(ctx context.Context, session *models.AgentSession) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.FailAll != nil {
		return repo.FailAll
	}
	repo.rows[session.SessionID] = *session
	return nil
}

func (repo *InMemorySessionRepo) Delete(ctx context.Context, sessionID string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.FailAll != nil {
		return repo.FailAll
	}
	delete(repo.rows, sessionID)
	return nil
}
