package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// GameEngine wraps a Game with the operations callers mutate it through.
// It is not safe for concurrent use; callers serialize per game.
type GameEngine struct {
	game *Game
	rng  *rand.Rand
}

// NewEngine creates a new game in setup state with the AI fleet already
// placed. The player's fleet is placed afterwards through PlaceShip.
func NewEngine(id string) (*GameEngine, error) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	game := &Game{
		ID:          id,
		PlayerBoard: NewBoard(),
		AIBoard:     NewBoard(),
		Status:      StatusSetup,
		CurrentTurn: TurnPlayer,
	}

	if err := RandomFleet(&game.AIBoard, rng); err != nil {
		return nil, fmt.Errorf("failed to place AI fleet: %w", err)
	}

	return &GameEngine{game: game, rng: rng}, nil
}

// Restore wraps a previously persisted game (used by persistence loading)
func Restore(game *Game) *GameEngine {
	return &GameEngine{
		game: game,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Game returns the underlying game aggregate
func (e *GameEngine) Game() *Game {
	return e.game
}

// ShipsPlaced returns how many of the player's ships have been placed
func (e *GameEngine) ShipsPlaced() int {
	return len(e.game.PlayerBoard.Ships)
}

// TotalShips returns the number of ships each side places
func (e *GameEngine) TotalShips() int {
	return len(Fleet)
}

// PlayerShipsRemaining returns the player's unsunk ship count
func (e *GameEngine) PlayerShipsRemaining() int {
	return e.game.PlayerBoard.ShipsRemaining()
}

// AIShipsRemaining returns the AI's unsunk ship count
func (e *GameEngine) AIShipsRemaining() int {
	return e.game.AIBoard.ShipsRemaining()
}

// PlaceShip places the player's next ship of the fixed fleet order. Once the
// full fleet is placed the game transitions to the player's turn. Returns the
// updated placed count and the fleet total.
func (e *GameEngine) PlaceShip(coords []Coordinate) (int, int, error) {
	placed := e.ShipsPlaced()
	total := e.TotalShips()

	if e.game.Status != StatusSetup {
		return placed, total, fmt.Errorf("%w: cannot place ships in state %q",
			ErrInvalidState, e.game.Status)
	}
	if placed >= total {
		return placed, total, fmt.Errorf("%w: all ships already placed", ErrInvalidState)
	}

	if err := e.game.PlayerBoard.PlaceShip(coords, Fleet[placed]); err != nil {
		return placed, total, err
	}

	placed++
	if placed == total {
		e.game.Status = StatusPlayerTurn
		e.game.CurrentTurn = TurnPlayer
	}

	return placed, total, nil
}

// Attack resolves a player attack against the AI board and advances the state
// machine: to player_won when the AI fleet is fully sunk, otherwise to the
// AI's turn. No mutation happens on failure.
func (e *GameEngine) Attack(c Coordinate) (AttackResult, error) {
	if e.game.Status.Terminal() {
		return AttackResult{ShipIndex: -1}, ErrGameOver
	}
	if e.game.Status != StatusPlayerTurn {
		return AttackResult{ShipIndex: -1}, fmt.Errorf("%w: expected %q, game is in %q",
			ErrInvalidState, StatusPlayerTurn, e.game.Status)
	}

	result, err := e.game.AIBoard.Attack(c)
	if err != nil {
		return result, err
	}

	if e.game.AIBoard.ShipsRemaining() == 0 {
		e.game.Status = StatusPlayerWon
	} else {
		e.game.Status = StatusAITurn
		e.game.CurrentTurn = TurnAI
	}

	return result, nil
}

// AITurn lets the AI choose and resolve one attack against the player board,
// updating its targeting memory with the outcome, then advances the state
// machine: to ai_won when the player fleet is fully sunk, otherwise back to
// the player's turn.
func (e *GameEngine) AITurn() (Coordinate, AttackResult, error) {
	if e.game.Status.Terminal() {
		return Coordinate{}, AttackResult{ShipIndex: -1}, ErrGameOver
	}
	if e.game.Status != StatusAITurn {
		return Coordinate{}, AttackResult{ShipIndex: -1}, fmt.Errorf("%w: expected %q, game is in %q",
			ErrInvalidState, StatusAITurn, e.game.Status)
	}

	target, err := ChooseTarget(&e.game.PlayerBoard, &e.game.AIMemory, e.rng)
	if err != nil {
		return Coordinate{}, AttackResult{ShipIndex: -1}, err
	}

	result, err := e.game.PlayerBoard.Attack(target)
	if err != nil {
		// ChooseTarget only returns unattacked in-bounds cells
		return target, result, err
	}

	e.game.AIMemory.Record(target, result, &e.game.PlayerBoard)

	if e.game.PlayerBoard.ShipsRemaining() == 0 {
		e.game.Status = StatusAIWon
	} else {
		e.game.Status = StatusPlayerTurn
		e.game.CurrentTurn = TurnPlayer
	}

	return target, result, nil
}
