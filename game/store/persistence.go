package store

import (
	"time"

	"github.com/davemojo/battleship-game-public/game/engine"
	"github.com/davemojo/battleship-game-public/game/service"
)

// GamePersistence defines the interface for durably storing games
type GamePersistence interface {
	// Save persists a game to storage
	Save(session *service.Session) error

	// Load retrieves a game from storage by ID
	Load(id string) (*service.Session, error)

	// Delete removes a game from storage
	Delete(id string) error

	// ListAll returns all persisted game IDs
	ListAll() ([]string, error)

	// Exists checks if a game exists in storage
	Exists(id string) bool
}

// PersistedGameData represents the JSON structure for persisted games
type PersistedGameData struct {
	ID             string       `json:"id"`
	CreatedAt      time.Time    `json:"created_at"`
	LastAccessedAt time.Time    `json:"last_accessed_at"`
	Game           *engine.Game `json:"game"`
}
