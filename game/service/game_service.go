package service

import (
	"context"
	"time"

	"github.com/davemojo/battleship-game-public/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Game Lifecycle
	CreateGame(ctx context.Context) (*GameView, error)
	GetGame(ctx context.Context, gameID string) (*GameView, error)
	ListGames(ctx context.Context) ([]*GameInfo, error)
	DeleteGame(ctx context.Context, gameID string) error

	// Game Operations
	PlaceShip(ctx context.Context, gameID string, coords []engine.Coordinate) (*PlacementResult, error)
	Attack(ctx context.Context, gameID string, target engine.Coordinate) (*AttackOutcome, error)
	AITurn(ctx context.Context, gameID string) (*AITurnOutcome, error)
}

// SessionManager defines game storage operations
type SessionManager interface {
	Create() (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// Session represents a live game held in memory
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
