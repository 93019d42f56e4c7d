package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/RMahshie/reynolds/internal/repository"
	"github.com/RMahshie/reynolds/pkg/models"
	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"
)

// SessionRepository keeps sessions in process memory. Every successful
// read or write restarts a session's idle clock; a session left alone for
// longer than the TTL is gone. A zero TTL keeps sessions forever.
type SessionRepository struct {
	// serialises check-then-set on writes; reads go straight to the cache
	mu    sync.Mutex
	cache *ttlcache.Cache[uuid.UUID, models.Session]
}

// NewSessionRepository creates an in-memory session repository
func NewSessionRepository(ttl time.Duration) *SessionRepository {
	return &SessionRepository{
		cache: ttlcache.New[uuid.UUID, models.Session](
			ttlcache.WithTTL[uuid.UUID, models.Session](ttl),
		),
	}
}

var _ repository.SessionRepository = (*SessionRepository)(nil)

// Start purges expired sessions in the background until Stop is called
func (r *SessionRepository) Start() {
	r.cache.Start()
}

// Stop ends the background purge
func (r *SessionRepository) Stop() {
	r.cache.Stop()
}

// Create stores a new session
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	id, err := uuid.Parse(session.ID)
	if err != nil {
		return fmt.Errorf("invalid session ID: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cache.Has(id) {
		return fmt.Errorf("session %s already exists", id)
	}
	r.cache.Set(id, *session, ttlcache.DefaultTTL)
	return nil
}

// GetByID returns a copy of the session and refreshes its idle clock
func (r *SessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	item := r.cache.Get(id)
	if item == nil {
		return nil, repository.ErrSessionNotFound
	}

	s := item.Value()
	return &s, nil
}

// Update replaces a live session
func (r *SessionRepository) Update(ctx context.Context, session *models.Session) error {
	id, err := uuid.Parse(session.ID)
	if err != nil {
		return fmt.Errorf("invalid session ID: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.cache.Has(id) {
		r.cache.Delete(id)
		return repository.ErrSessionNotFound
	}
	r.cache.Set(id, *session, ttlcache.DefaultTTL)
	return nil
}

// Delete removes a session
func (r *SessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	live := r.cache.Has(id)
	r.cache.Delete(id)
	if !live {
		return repository.ErrSessionNotFound
	}
	return nil
}

// Len reports how many live sessions are held
func (r *SessionRepository) Len() int {
	r.cache.DeleteExpired()
	return r.cache.Len()
}
