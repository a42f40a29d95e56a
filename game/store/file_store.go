package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/davemojo/battleship-game-public/game/engine"
	"github.com/davemojo/battleship-game-public/game/service"
)

// FilePersistence implements GamePersistence using file system storage
type FilePersistence struct {
	gamesDir string
}

// NewFilePersistence creates a new file-based game persistence layer
func NewFilePersistence(gamesDir string) (*FilePersistence, error) {
	// Create games directory if it doesn't exist
	if err := os.MkdirAll(gamesDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create games directory: %w", err)
	}

	return &FilePersistence{
		gamesDir: gamesDir,
	}, nil
}

// Save persists a game to a JSON file
func (fp *FilePersistence) Save(session *service.Session) error {
	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}

	data := PersistedGameData{
		ID:             session.ID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		Game:           session.Engine.Game(),
	}

	// Marshal to JSON with indentation for readability
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal game data: %w", err)
	}

	filePath := fp.getFilePath(session.ID)
	if err := os.WriteFile(filePath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write game file: %w", err)
	}

	return nil
}

// Load retrieves a game from a JSON file
func (fp *FilePersistence) Load(id string) (*service.Session, error) {
	filePath := fp.getFilePath(id)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, ErrGameNotFound
	}

	jsonData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read game file: %w", err)
	}

	var data PersistedGameData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game data: %w", err)
	}

	if data.Game == nil {
		return nil, fmt.Errorf("game file %s has no game record", id)
	}

	// Rebuild the engine around the persisted aggregate
	session := &service.Session{
		ID:             data.ID,
		Engine:         engine.Restore(data.Game),
		CreatedAt:      data.CreatedAt,
		LastAccessedAt: data.LastAccessedAt,
	}

	return session, nil
}

// Delete removes a game file
func (fp *FilePersistence) Delete(id string) error {
	filePath := fp.getFilePath(id)

	if !fp.Exists(id) {
		return ErrGameNotFound
	}

	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to remove game file: %w", err)
	}

	return nil
}

// ListAll returns all persisted game IDs
func (fp *FilePersistence) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fp.gamesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read games directory: %w", err)
	}

	var gameIDs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasSuffix(name, ".json") {
			gameIDs = append(gameIDs, strings.TrimSuffix(name, ".json"))
		}
	}

	return gameIDs, nil
}

// Exists checks if a game file exists
func (fp *FilePersistence) Exists(id string) bool {
	_, err := os.Stat(fp.getFilePath(id))
	return err == nil
}

// getFilePath returns the full file path for a game ID
func (fp *FilePersistence) getFilePath(id string) string {
	return filepath.Join(fp.gamesDir, fmt.Sprintf("%s.json", id))
}
