package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/davemojo/battleship-game-public/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	games SessionManager

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewGameService creates a new game service instance
func NewGameService(games SessionManager) GameService {
	return &gameServiceImpl{
		games: games,
		locks: make(map[string]*sync.Mutex),
	}
}

// gameLock returns the mutex that serializes operations on one game ID.
// Operations on different IDs proceed independently.
func (s *gameServiceImpl) gameLock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, exists := s.locks[id]
	if !exists {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}

// releaseGameLock drops the lock entry for a deleted game
func (s *gameServiceImpl) releaseGameLock(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, id)
}

// CreateGame starts a new game with the AI fleet already placed
func (s *gameServiceImpl) CreateGame(ctx context.Context) (*GameView, error) {
	sess, err := s.games.Create()
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return buildGameView(sess), nil
}

// GetGame retrieves a game snapshot
func (s *gameServiceImpl) GetGame(ctx context.Context, gameID string) (*GameView, error) {
	lock := s.gameLock(gameID)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.games.Get(gameID)
	if err != nil {
		return nil, fmt.Errorf("game not found: %w", err)
	}

	s.games.UpdateLastAccessed(gameID)

	return buildGameView(sess), nil
}

// ListGames returns summaries of all known games
func (s *gameServiceImpl) ListGames(ctx context.Context) ([]*GameInfo, error) {
	sessions := s.games.List()
	result := make([]*GameInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, &GameInfo{
			ID:             sess.ID,
			Status:         sess.Engine.Game().Status,
			CreatedAt:      sess.CreatedAt,
			LastAccessedAt: sess.LastAccessedAt,
		})
	}

	return result, nil
}

// DeleteGame removes a game from memory and storage
func (s *gameServiceImpl) DeleteGame(ctx context.Context, gameID string) error {
	lock := s.gameLock(gameID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.games.Delete(gameID); err != nil {
		return err
	}

	s.releaseGameLock(gameID)
	return nil
}

// PlaceShip places the player's next fleet ship on the given coordinates
func (s *gameServiceImpl) PlaceShip(ctx context.Context, gameID string, coords []engine.Coordinate) (*PlacementResult, error) {
	lock := s.gameLock(gameID)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.games.Get(gameID)
	if err != nil {
		return nil, fmt.Errorf("game not found: %w", err)
	}
	s.games.UpdateLastAccessed(gameID)

	placed, total, err := sess.Engine.PlaceShip(coords)
	if err != nil {
		return nil, err
	}

	// The operation is complete only once the mutated game is durable
	if err := s.games.Save(gameID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}

	return &PlacementResult{
		ShipsPlaced:  placed,
		ShipsToPlace: total,
		Status:       sess.Engine.Game().Status,
	}, nil
}

// Attack resolves a player attack against the AI board
func (s *gameServiceImpl) Attack(ctx context.Context, gameID string, target engine.Coordinate) (*AttackOutcome, error) {
	lock := s.gameLock(gameID)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.games.Get(gameID)
	if err != nil {
		return nil, fmt.Errorf("game not found: %w", err)
	}
	s.games.UpdateLastAccessed(gameID)

	result, err := sess.Engine.Attack(target)
	if err != nil {
		return nil, err
	}

	if err := s.games.Save(gameID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}

	return &AttackOutcome{
		Target:           target,
		Result:           result,
		Status:           sess.Engine.Game().Status,
		AIShipsRemaining: sess.Engine.AIShipsRemaining(),
	}, nil
}

// AITurn resolves the AI's attack against the player board
func (s *gameServiceImpl) AITurn(ctx context.Context, gameID string) (*AITurnOutcome, error) {
	lock := s.gameLock(gameID)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.games.Get(gameID)
	if err != nil {
		return nil, fmt.Errorf("game not found: %w", err)
	}
	s.games.UpdateLastAccessed(gameID)

	target, result, err := sess.Engine.AITurn()
	if err != nil {
		return nil, err
	}

	if err := s.games.Save(gameID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}

	return &AITurnOutcome{
		Target:               target,
		Result:               result,
		Status:               sess.Engine.Game().Status,
		PlayerShipsRemaining: sess.Engine.PlayerShipsRemaining(),
	}, nil
}

// buildGameView assembles the client-facing snapshot of a session
func buildGameView(sess *Session) *GameView {
	game := sess.Engine.Game()

	return &GameView{
		ID:                   game.ID,
		Status:               game.Status,
		CurrentTurn:          game.CurrentTurn,
		ShipsPlaced:          sess.Engine.ShipsPlaced(),
		ShipsToPlace:         sess.Engine.TotalShips(),
		PlayerShipsRemaining: sess.Engine.PlayerShipsRemaining(),
		AIShipsRemaining:     sess.Engine.AIShipsRemaining(),
		PlayerBoard:          openBoard(game.PlayerBoard),
		AIBoard:              maskedBoard(game.AIBoard),
		CreatedAt:            sess.CreatedAt,
		LastAccessedAt:       sess.LastAccessedAt,
	}
}

// openBoard copies a board with full ship visibility
func openBoard(b engine.Board) BoardView {
	grid := make([][]engine.CellState, len(b.Grid))
	for r, row := range b.Grid {
		grid[r] = append([]engine.CellState(nil), row...)
	}
	return BoardView{Grid: grid, Ships: b.Ships}
}

// maskedBoard copies a board hiding unhit ship cells and ship layouts.
// This is the only view of the AI board a client ever sees.
func maskedBoard(b engine.Board) BoardView {
	grid := make([][]engine.CellState, len(b.Grid))
	for r, row := range b.Grid {
		grid[r] = make([]engine.CellState, len(row))
		for c, cell := range row {
			if cell == engine.CellShip {
				cell = engine.CellEmpty
			}
			grid[r][c] = cell
		}
	}
	return BoardView{Grid: grid}
}
