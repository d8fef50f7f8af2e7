package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/PuraFome/fodinha/game/engine"
	"github.com/PuraFome/fodinha/game/service"
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionAlreadyExists = errors.New("session already exists")
)

// Manager is the process-wide session registry. It owns session lifecycle
// (create, lookup, destroy-on-empty, expiry) and nothing else: per-table
// state belongs to the session's own lock.
type Manager struct {
	sessions map[string]*service.Session
	mu       sync.RWMutex
}

// NewManager creates an empty session registry.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*service.Session),
	}
}

// Create registers a new table with the host seated as dealer. An empty id
// gets a generated 8-character code.
func (m *Manager) Create(id string, maxPlayers int, hostID, hostName string) (*service.Session, error) {
	if id == "" {
		id = generateSessionID()
	}
	id = strings.ToUpper(id)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[id]; exists {
		return nil, ErrSessionAlreadyExists
	}

	now := time.Now()
	sess := &service.Session{
		ID:             id,
		Game:           engine.NewGame(id, maxPlayers, hostID, hostName),
		CreatedAt:      now,
		LastAccessedAt: now,
	}
	m.sessions[id] = sess
	return sess, nil
}

// Get retrieves a session by ID (case-insensitive).
func (m *Manager) Get(id string) (*service.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, exists := m.sessions[strings.ToUpper(id)]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Delete removes a session from the registry and cancels any pending reveal
// task.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToUpper(id)
	sess, exists := m.sessions[key]
	if !exists {
		return ErrSessionNotFound
	}
	sess.StopRevealTimer()
	delete(m.sessions, key)
	return nil
}

// List returns all active sessions.
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		result = append(result, sess)
	}
	return result
}

// Count returns the number of active sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// CleanupExpiredSessions removes sessions that haven't been touched within
// maxAge and reports how many were dropped.
func (m *Manager) CleanupExpiredSessions(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for id, sess := range m.sessions {
		if sess.LastAccessedAt.Before(cutoff) {
			sess.StopRevealTimer()
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// generateSessionID returns a short join code: 8 uppercase hex characters.
func generateSessionID() string {
	bytes := make([]byte, 4)
	rand.Read(bytes)
	return strings.ToUpper(hex.EncodeToString(bytes))
}
