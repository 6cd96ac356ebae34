package session

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"bookline/config"
	sessionRepo "bookline/database/repository/session"
	"bookline/models"
	"bookline/utils"

	"go.uber.org/zap"
)

const shardCount = 16

// Store holds live agent sessions in sharded in-memory maps with a durable
// repository behind them. Reads hit the cache first, fall back to the durable
// store on miss, and degrade to cache-only when the durable store is down.
// Writes update the cache synchronously; the durable write is best effort.
type Store struct {
	shards  [shardCount]*shard
	durable sessionRepo.Repository
	timeout time.Duration

	lockMu sync.Mutex
	locks  map[string]*sync.Mutex

	// Now is injectable for tests.
	Now func() time.Time
}

type shard struct {
	mu   sync.RWMutex
	rows map[string]*models.AgentSession
}

func NewStore(durable sessionRepo.Repository) *Store {
	store := &Store{
		durable: durable,
		timeout: time.Duration(config.AppConfig.SessionTimeoutMins) * time.Minute,
		locks:   make(map[string]*sync.Mutex),
		Now:     time.Now,
	}
	for i := range store.shards {
		store.shards[i] = &shard{rows: make(map[string]*models.AgentSession)}
	}
	return store
}

// NewStoreWithTimeout is for tests that cannot rely on loaded configuration.
func NewStoreWithTimeout(durable sessionRepo.Repository, timeout time.Duration) *Store {
	store := &Store{
		durable: durable,
		timeout: timeout,
		locks:   make(map[string]*sync.Mutex),
		Now:     time.Now,
	}
	for i := range store.shards {
		store.shards[i] = &shard{rows: make(map[string]*models.AgentSession)}
	}
	return store
}

func (s *Store) shardFor(sessionID string) *shard {
	h := fnv.New32a()
	h.Write([]byte(sessionID))
	return s.shards[h.Sum32()%shardCount]
}

// Acquire takes the per-session turn lock and returns its release func. Turns
// for the same session run strictly one at a time; turns for different
// sessions never contend.
func (s *Store) Acquire(sessionID string) func() {
	for {
		s.lockMu.Lock()
		mu, ok := s.locks[sessionID]
		if !ok {
			mu = &sync.Mutex{}
			s.locks[sessionID] = mu
		}
		s.lockMu.Unlock()

		mu.Lock()

		// The sweep may have dropped this mutex from the map between the
		// read above and the lock. Holding an orphaned mutex serializes
		// nothing, so re-check and take the current one instead.
		s.lockMu.Lock()
		current := s.locks[sessionID]
		s.lockMu.Unlock()
		if current == mu {
			return mu.Unlock
		}
		mu.Unlock()
	}
}

// Get returns the session for sessionID, creating a fresh one bound to shopID
// when neither the cache nor the durable store has it. A session id replayed
// against a different shop starts clean instead of continuing the first
// shop's conversation. A durable-store failure is logged and treated as a
// miss.
func (s *Store) Get(ctx context.Context, sessionID, shopID string) *models.AgentSession {
	sh := s.shardFor(sessionID)
	sh.mu.RLock()
	cached, ok := sh.rows[sessionID]
	sh.mu.RUnlock()
	if ok && cached.ShopID == shopID {
		out := *cached
		return &out
	}

	if !ok {
		loaded, err := s.durable.Get(ctx, sessionID)
		if err == nil && loaded.ShopID == shopID {
			sh.mu.Lock()
			sh.rows[sessionID] = loaded
			sh.mu.Unlock()
			out := *loaded
			return &out
		}
		if err != nil && err != sessionRepo.ErrNotFound {
			utils.GetLogger().Warn("Durable session load failed, continuing cache-only",
				zap.String("sessionID", sessionID), zap.Error(err))
		}
	}

	now := s.Now()
	fresh := &models.AgentSession{
		SessionID:    sessionID,
		ShopID:       shopID,
		State:        models.StateIdle,
		CreatedAt:    now,
		LastActivity: now,
	}
	sh.mu.Lock()
	sh.rows[sessionID] = fresh
	sh.mu.Unlock()
	out := *fresh
	return &out
}

// Put writes the session to the cache and, best effort, to the durable store.
func (s *Store) Put(ctx context.Context, session *models.AgentSession) {
	session.LastActivity = s.Now()

	sh := s.shardFor(session.SessionID)
	stored := *session
	sh.mu.Lock()
	sh.rows[session.SessionID] = &stored
	sh.mu.Unlock()

	if err := s.durable.Upsert(ctx, session); err != nil {
		utils.GetLogger().Warn("Durable session write failed",
			zap.String("sessionID", session.SessionID), zap.Error(err))
	}
}

// SweepExpired evicts cached sessions idle longer than the session timeout and
// drops their turn locks. Durable rows are left alone so an expired session
// can still be rehydrated later.
func (s *Store) SweepExpired(now time.Time) int {
	evicted := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		for id, sess := range sh.rows {
			if now.Sub(sess.LastActivity) > s.timeout {
				delete(sh.rows, id)
				evicted++
				s.lockMu.Lock()
				// Never drop a lock mid-turn.
				if mu, ok := s.locks[id]; ok && mu.TryLock() {
					mu.Unlock()
					delete(s.locks, id)
				}
				s.lockMu.Unlock()
			}
		}
		sh.mu.Unlock()
	}
	if evicted > 0 {
		utils.GetLogger().Info("Swept expired sessions", zap.Int("count", evicted))
	}
	return evicted
}
