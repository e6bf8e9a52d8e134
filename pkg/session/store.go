// Package session holds the bearer token the backend hands out after the
// Cognito OAuth flow. The store is injected everywhere it is needed so tests
// never depend on ambient global state; it is written from two places at
// runtime (header rotation and 401 eviction) and last write wins.
package session

import (
	"strings"
	"sync"
)

// Store is the credential holder shared by the request layer and the
// auth-failure handler.
type Store interface {
	// Token returns the stored bearer token, if any.
	Token() (string, bool)
	SetToken(token string)
	Clear()
}

// MemoryStore keeps the token in process memory. It is the default store and
// the one used in tests; the token does not survive a restart.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

func (s *MemoryStore) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
}

// ParseBearer extracts the token from an "Authorization: Bearer x" header
// value. Returns "" when the value is absent or not a bearer credential.
func ParseBearer(headerValue string) string {
	if headerValue == "" {
		return ""
	}
	scheme, token, found := strings.Cut(headerValue, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
