// Package session holds logged-in identity for the page handlers.
//
// Identity is an explicit object looked up per request from the session
// cookie, never ambient process state: every handler receives the session
// it is acting for.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

// Session is the per-login identity record.
type Session struct {
	Token     string
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Manager is an in-memory TTL session table with periodic sweeping of
// expired entries.
type Manager struct {
	mu           sync.Mutex
	sessions     map[string]Session
	ttl          time.Duration
	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

// NewManager creates a session manager and starts its sweep goroutine.
func NewManager(ttl time.Duration, sweepInterval time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	if sweepInterval <= 0 {
		sweepInterval = 5 * time.Minute
	}

	m := &Manager{
		sessions:    make(map[string]Session),
		ttl:         ttl,
		stopCleanup: make(chan struct{}),
	}
	go m.startCleanup(sweepInterval)
	return m
}

// Create issues a new session for username and returns its token.
func (m *Manager) Create(username string) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}

	now := time.Now()
	m.mu.Lock()
	m.sessions[token] = Session{
		Token:     token,
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	m.mu.Unlock()

	return token, nil
}

// Get returns the live session for token. Expired sessions are dropped on
// lookup.
func (m *Manager) Get(token string) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[token]
	if !ok {
		return Session{}, false
	}
	if time.Now().After(sess.ExpiresAt) {
		delete(m.sessions, token)
		return Session{}, false
	}
	return sess, true
}

// Destroy removes the session for token. Unknown tokens are no-ops.
func (m *Manager) Destroy(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}

// Len returns the number of stored sessions, expired ones included until
// the next sweep.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Stop shuts down the sweep goroutine.
func (m *Manager) Stop() {
	m.shutdownOnce.Do(func() {
		close(m.stopCleanup)
	})
}

func (m *Manager) startCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.sweepExpired()
		case <-m.stopCleanup:
			return
		}
	}
}

func (m *Manager) sweepExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for token, sess := range m.sessions {
		if now.After(sess.ExpiresAt) {
			delete(m.sessions, token)
		}
	}
}

func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
