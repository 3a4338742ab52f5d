package roleconfig

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/carelink/carelink/internal/platform/persistence"
)

// Persistence keys shared with the browser front-end.
const (
	KeyCurrentRole = "currentRole"
	KeyRoleHistory = "roleHistory"
)

// Session tracks the active role and every role activated so far. It is
// owned by the composition root and passed explicitly, never a hidden
// singleton. Switching to an unregistered role is a deliberate no-op, and
// persistence writes are best-effort: a failed write is logged but the
// in-memory state is not rolled back.
type Session struct {
	mu      sync.Mutex
	current Role
	history []Role
	store   persistence.Store
	logger  zerolog.Logger
}

// NewSession restores a session from the store, defaulting to DefaultRole
// with a single-entry history when nothing usable was persisted.
func NewSession(ctx context.Context, store persistence.Store, logger zerolog.Logger) *Session {
	s := &Session{
		current: DefaultRole,
		store:   store,
		logger:  logger,
	}

	if raw, ok, err := store.Get(ctx, KeyCurrentRole); err != nil {
		logger.Warn().Err(err).Msg("restore current role")
	} else if ok && Registered(Role(raw)) {
		s.current = Role(raw)
	}

	if raw, ok, err := store.Get(ctx, KeyRoleHistory); err != nil {
		logger.Warn().Err(err).Msg("restore role history")
	} else if ok {
		var stored []Role
		if err := json.Unmarshal([]byte(raw), &stored); err != nil {
			logger.Warn().Err(err).Msg("decode role history")
		} else {
			for _, r := range stored {
				if Registered(r) && !containsRole(s.history, r) {
					s.history = append(s.history, r)
				}
			}
		}
	}

	if !containsRole(s.history, s.current) {
		s.history = append(s.history, s.current)
	}
	return s
}

// Current returns the active role.
func (s *Session) Current() Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// History returns every role activated in this session, in first-activation
// order, without duplicates.
func (s *Session) History() []Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Role, len(s.history))
	copy(out, s.history)
	return out
}

// Config returns the configuration for the active role.
func (s *Session) Config() Configuration {
	return Lookup(s.Current())
}

// Theme returns the theme tokens for the active role.
func (s *Session) Theme() Theme {
	return ThemeFor(s.Current())
}

// Switch activates id. Unregistered roles leave the session untouched.
// Both the current role and the history are written through to the store.
func (s *Session) Switch(ctx context.Context, id Role) {
	if !Registered(id) {
		s.logger.Debug().Str("role", string(id)).Msg("ignoring switch to unregistered role")
		return
	}

	s.mu.Lock()
	s.current = id
	if !containsRole(s.history, id) {
		s.history = append(s.history, id)
	}
	history := make([]Role, len(s.history))
	copy(history, s.history)
	s.mu.Unlock()

	if err := s.store.Set(ctx, KeyCurrentRole, string(id)); err != nil {
		s.logger.Warn().Err(err).Str("role", string(id)).Msg("persist current role")
	}
	encoded, err := json.Marshal(history)
	if err == nil {
		err = s.store.Set(ctx, KeyRoleHistory, string(encoded))
	}
	if err != nil {
		s.logger.Warn().Err(err).Msg("persist role history")
	}
}

func containsRole(roles []Role, id Role) bool {
	for _, r := range roles {
		if r == id {
			return true
		}
	}
	return false
}
