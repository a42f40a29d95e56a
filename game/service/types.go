package service

import (
	"errors"
	"time"

	"github.com/davemojo/battleship-game-public/game/engine"
)

// ErrPersistenceFailure is returned when a mutated game could not be
// durably saved. The in-memory state may have advanced, but the caller
// must not treat the operation as complete.
var ErrPersistenceFailure = errors.New("failed to persist game")

// BoardView is a board as shown to the player. The AI's board omits
// ship details and masks unhit ship cells.
type BoardView struct {
	Grid  [][]engine.CellState `json:"grid"`
	Ships []engine.Ship        `json:"ships,omitempty"`
}

// GameView is the full game snapshot returned to clients
type GameView struct {
	ID                   string        `json:"id"`
	Status               engine.Status `json:"state"`
	CurrentTurn          string        `json:"current_turn"`
	ShipsPlaced          int           `json:"ships_placed"`
	ShipsToPlace         int           `json:"ships_to_place"`
	PlayerShipsRemaining int           `json:"player_ships_remaining"`
	AIShipsRemaining     int           `json:"ai_ships_remaining"`
	PlayerBoard          BoardView     `json:"player_board"`
	AIBoard              BoardView     `json:"ai_board"`
	CreatedAt            time.Time     `json:"created_at"`
	LastAccessedAt       time.Time     `json:"last_accessed_at"`
}

// GameInfo is a lightweight listing entry
type GameInfo struct {
	ID             string        `json:"id"`
	Status         engine.Status `json:"state"`
	CreatedAt      time.Time     `json:"created_at"`
	LastAccessedAt time.Time     `json:"last_accessed_at"`
}

// PlacementResult contains the result of placing one ship
type PlacementResult struct {
	ShipsPlaced  int           `json:"ships_placed"`
	ShipsToPlace int           `json:"ships_to_place"`
	Status       engine.Status `json:"state"`
}

// AttackOutcome contains the result of a player attack
type AttackOutcome struct {
	Target           engine.Coordinate   `json:"target"`
	Result           engine.AttackResult `json:"result"`
	Status           engine.Status       `json:"state"`
	AIShipsRemaining int                 `json:"ai_ships_remaining"`
}

// AITurnOutcome contains the AI's move and its result
type AITurnOutcome struct {
	Target               engine.Coordinate   `json:"target"`
	Result               engine.AttackResult `json:"result"`
	Status               engine.Status       `json:"state"`
	PlayerShipsRemaining int                 `json:"player_ships_remaining"`
}
