package store

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/davemojo/battleship-game-public/game/engine"
	"github.com/davemojo/battleship-game-public/game/service"
)

var (
	ErrGameNotFound      = errors.New("game not found")
	ErrGameAlreadyExists = errors.New("game already exists")
)

// Manager handles game lifecycle. Persistence is the source of truth;
// the in-memory map is a cache populated on demand.
type Manager struct {
	games       map[string]*service.Session
	persistence GamePersistence
	mu          sync.RWMutex
}

// NewManager creates a new in-memory game manager
func NewManager() *Manager {
	return &Manager{
		games: make(map[string]*service.Session),
	}
}

// NewManagerWithPersistence creates a new game manager with persistence
func NewManagerWithPersistence(persistence GamePersistence) *Manager {
	return &Manager{
		games:       make(map[string]*service.Session),
		persistence: persistence,
	}
}

// Create creates a new game with a generated ID
func (m *Manager) Create() (*service.Session, error) {
	id := uuid.NewString()

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.games[id]; exists {
		return nil, ErrGameAlreadyExists
	}

	eng, err := engine.NewEngine(id)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	session := &service.Session{
		ID:             id,
		Engine:         eng,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}

	if m.persistence != nil {
		if err := m.persistence.Save(session); err != nil {
			return nil, fmt.Errorf("failed to persist new game: %w", err)
		}
	}

	m.games[id] = session
	return session, nil
}

// Get retrieves a game by ID, falling back to persistence on a cache miss
func (m *Manager) Get(id string) (*service.Session, error) {
	m.mu.RLock()
	session, exists := m.games[id]
	m.mu.RUnlock()

	if exists {
		return session, nil
	}

	if m.persistence != nil && m.persistence.Exists(id) {
		session, err := m.persistence.Load(id)
		if err != nil {
			return nil, fmt.Errorf("failed to load persisted game: %w", err)
		}

		m.mu.Lock()
		m.games[id] = session
		m.mu.Unlock()

		return session, nil
	}

	return nil, ErrGameNotFound
}

// List returns all known games, including persisted games not yet cached
func (m *Manager) List() []*service.Session {
	if m.persistence != nil {
		if ids, err := m.persistence.ListAll(); err == nil {
			for _, id := range ids {
				m.mu.RLock()
				_, cached := m.games[id]
				m.mu.RUnlock()
				if cached {
					continue
				}
				if _, err := m.Get(id); err != nil {
					log.Printf("Warning: failed to load persisted game %s: %v", id, err)
				}
			}
		} else {
			log.Printf("Warning: failed to list persisted games: %v", err)
		}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Session, 0, len(m.games))
	for _, session := range m.games {
		result = append(result, session)
	}

	return result
}

// CachedIDs returns the IDs currently held in the cache without touching
// persistence.
func (m *Manager) CachedIDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.games))
	for id := range m.games {
		ids = append(ids, id)
	}

	return ids
}

// Delete removes a game from the cache and from persistence
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, inMemory := m.games[id]
	delete(m.games, id)

	if m.persistence != nil && m.persistence.Exists(id) {
		if err := m.persistence.Delete(id); err != nil {
			return fmt.Errorf("failed to delete persisted game: %w", err)
		}
		return nil
	}

	if !inMemory {
		return ErrGameNotFound
	}

	return nil
}

// DeleteFromMemory evicts a game from the cache without touching persistence
func (m *Manager) DeleteFromMemory(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.games[id]; !exists {
		return ErrGameNotFound
	}

	delete(m.games, id)
	return nil
}

// UpdateLastAccessed updates the last accessed time for a cached game.
// The new timestamp reaches disk with the next Save.
func (m *Manager) UpdateLastAccessed(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.games[id]
	if !exists {
		return ErrGameNotFound
	}

	session.LastAccessedAt = time.Now()
	return nil
}

// Save saves a specific game to persistence
func (m *Manager) Save(id string) error {
	if m.persistence == nil {
		return nil
	}

	m.mu.RLock()
	session, exists := m.games[id]
	m.mu.RUnlock()

	if !exists {
		return ErrGameNotFound
	}

	return m.persistence.Save(session)
}

// CleanupExpired evicts cached games that haven't been accessed in the given
// duration. Persisted records are untouched and reloadable on demand.
func (m *Manager) CleanupExpired(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0

	for id, session := range m.games {
		if session.LastAccessedAt.Before(cutoff) {
			delete(m.games, id)
			removed++
		}
	}

	return removed
}

// Count returns the number of cached games
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}
