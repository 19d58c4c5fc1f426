package memory

import (
	"context"
	"sync"

	"github.com/gridironhq/roster-api/internal/domain/user"
)

type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]user.Session
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[string]user.Session)}
}

func (r *SessionRepository) Create(_ context.Context, s user.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[s.Token] = s
	return nil
}

func (r *SessionRepository) GetByToken(_ context.Context, token string) (user.Session, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.sessions[token]
	return item, ok, nil
}

func (r *SessionRepository) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, token)
	return nil
}
