package session

import (
	"context"
	"errors"
	"log/slog"
)

// Manager loads and persists sessions.
type Manager struct {
	store  Store
	logger *slog.Logger
}

func NewManager(store Store, logger *slog.Logger) *Manager {
	return &Manager{store: store, logger: logger}
}

// Load returns the session with id, or a new session when it is unknown or expired.
// created reports whether a new session was started.
func (m *Manager) Load(ctx context.Context, id string) (s *Session, created bool, err error) {
	if id != "" {
		s, err = m.store.Get(ctx, id)
		if err == nil {
			return s, false, nil
		}
		if !errors.Is(err, ErrSessionNotFound) {
			return nil, false, err
		}
		m.logger.Debug("session not found, starting a new one", "session_id", id)
	}
	return New(), true, nil
}

func (m *Manager) Save(ctx context.Context, s *Session) error {
	return m.store.Save(ctx, s)
}

func (m *Manager) Destroy(ctx context.Context, id string) error {
	return m.store.Delete(ctx, id)
}
