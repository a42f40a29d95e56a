// Command analyze validates persisted game files in the games directory. It
// checks each record against the board invariants:
//   - JSON structure and required fields
//   - Grid dimensions and allowed cell states
//   - Ship cells exactly matching the union of ship positions, no overlap
//   - Straight, contiguous ship lines sized per the standard fleet
//   - Hit counters matching hit cells
//   - Game state consistency (terminal states require a sunken fleet)
//   - AI targeting memory pointing at real hit cells
//
// It prints a per-file report and exits non-zero if any record is invalid.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/davemojo/battleship-game-public/game/engine"
)

// PersistedGame mirrors the JSON schema of one stored game record.
type PersistedGame struct {
	ID   string       `json:"id"`
	Game *engine.Game `json:"game"`
}

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateGameFile loads and validates a single persisted game record.
func validateGameFile(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var record PersistedGame
	if err := json.Unmarshal(data, &record); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if record.Game == nil {
		result.Valid = false
		result.Errors = append(result.Errors, "Record has no game payload")
		return result
	}

	game := record.Game

	if record.ID != game.ID {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Record ID %q does not match game ID %q", record.ID, game.ID))
	}

	expectedName := record.ID + ".json"
	if result.File != expectedName {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("File name does not match record ID (expected %s)", expectedName))
	}

	result.merge("player board", validateBoard(&game.PlayerBoard))
	result.merge("ai board", validateBoard(&game.AIBoard))

	validateStatus(game, &result)
	validateMemory(game, &result)

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Game: %s", game.ID))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ State: %s (turn: %s)", game.Status, game.CurrentTurn))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Player fleet: %d placed, %d afloat",
			len(game.PlayerBoard.Ships), shipsAfloat(&game.PlayerBoard)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ AI fleet: %d placed, %d afloat",
			len(game.AIBoard.Ships), shipsAfloat(&game.AIBoard)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Shots: %d at player, %d at AI",
			shotCount(&game.PlayerBoard), shotCount(&game.AIBoard)))
		if n := len(game.AIMemory.PendingHits); n > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ AI hunting: %d unresolved hits", n))
		}
	}

	return result
}

// merge folds a board validation into the file result, prefixing errors with
// the board label.
func (r *ValidationResult) merge(label string, errs []string) {
	for _, e := range errs {
		r.Valid = false
		r.Errors = append(r.Errors, fmt.Sprintf("%s: %s", label, e))
	}
}

// validateBoard checks grid shape, cell states, and ship bookkeeping.
func validateBoard(board *engine.Board) []string {
	var errs []string

	if len(board.Grid) != engine.BoardSize {
		errs = append(errs, fmt.Sprintf("Expected %d rows, got %d", engine.BoardSize, len(board.Grid)))
		return errs
	}

	validStates := map[engine.CellState]bool{
		engine.CellEmpty: true,
		engine.CellShip:  true,
		engine.CellHit:   true,
		engine.CellMiss:  true,
	}

	for i, row := range board.Grid {
		if len(row) != engine.BoardSize {
			errs = append(errs, fmt.Sprintf("Inconsistent grid width at row %d: expected %d, got %d", i, engine.BoardSize, len(row)))
			return errs
		}
		for j, cell := range row {
			if !validStates[cell] {
				errs = append(errs, fmt.Sprintf("Invalid cell state %q at (%d,%d)", cell, i, j))
			}
		}
	}

	if len(board.Ships) > len(engine.Fleet) {
		errs = append(errs, fmt.Sprintf("Too many ships: %d (fleet is %d)", len(board.Ships), len(engine.Fleet)))
	}

	// Every ship position must be an in-bounds ship or hit cell, owned by
	// exactly one ship, and hit counters must match hit cells.
	owned := make(map[engine.Coordinate]int)
	for idx, ship := range board.Ships {
		if idx < len(engine.Fleet) {
			class := engine.Fleet[idx]
			if ship.Size != class.Size {
				errs = append(errs, fmt.Sprintf("Ship %d (%s): expected size %d, got %d", idx, class.Name, class.Size, ship.Size))
			}
			if ship.Name != class.Name {
				errs = append(errs, fmt.Sprintf("Ship %d: expected name %s, got %s", idx, class.Name, ship.Name))
			}
		}

		if len(ship.Positions) != ship.Size {
			errs = append(errs, fmt.Sprintf("Ship %d (%s): %d positions for size %d", idx, ship.Name, len(ship.Positions), ship.Size))
			continue
		}

		if !isStraightLine(ship.Positions) {
			errs = append(errs, fmt.Sprintf("Ship %d (%s): positions are not a straight contiguous line", idx, ship.Name))
		}

		hitCells := 0
		for _, pos := range ship.Positions {
			if !pos.InBounds() {
				errs = append(errs, fmt.Sprintf("Ship %d (%s): position (%d,%d) out of bounds", idx, ship.Name, pos.Row, pos.Col))
				continue
			}
			if prev, taken := owned[pos]; taken {
				errs = append(errs, fmt.Sprintf("Ships %d and %d overlap at (%d,%d)", prev, idx, pos.Row, pos.Col))
			}
			owned[pos] = idx

			switch board.Grid[pos.Row][pos.Col] {
			case engine.CellHit:
				hitCells++
			case engine.CellShip:
				// intact
			default:
				errs = append(errs, fmt.Sprintf("Ship %d (%s): cell (%d,%d) is %q, expected ship or hit",
					idx, ship.Name, pos.Row, pos.Col, board.Grid[pos.Row][pos.Col]))
			}
		}

		if ship.Hits != hitCells {
			errs = append(errs, fmt.Sprintf("Ship %d (%s): hit counter %d but %d hit cells", idx, ship.Name, ship.Hits, hitCells))
		}
	}

	// Every ship or hit cell must belong to some ship.
	for i, row := range board.Grid {
		for j, cell := range row {
			if cell != engine.CellShip && cell != engine.CellHit {
				continue
			}
			if _, ok := owned[engine.Coordinate{Row: i, Col: j}]; !ok {
				errs = append(errs, fmt.Sprintf("Cell (%d,%d) is %q but no ship occupies it", i, j, cell))
			}
		}
	}

	return errs
}

// isStraightLine reports whether the positions form a contiguous row or
// column segment, in order.
func isStraightLine(positions []engine.Coordinate) bool {
	if len(positions) <= 1 {
		return true
	}

	dRow := positions[1].Row - positions[0].Row
	dCol := positions[1].Col - positions[0].Col
	if abs(dRow)+abs(dCol) != 1 {
		return false
	}

	for i := 1; i < len(positions); i++ {
		if positions[i].Row != positions[i-1].Row+dRow || positions[i].Col != positions[i-1].Col+dCol {
			return false
		}
	}
	return true
}

// validateStatus cross-checks the state machine position against the boards.
func validateStatus(game *engine.Game, result *ValidationResult) {
	fleetSize := len(engine.Fleet)

	switch game.Status {
	case engine.StatusSetup:
		if len(game.PlayerBoard.Ships) >= fleetSize {
			result.Valid = false
			result.Errors = append(result.Errors, "State is setup but the player fleet is fully placed")
		}
	case engine.StatusPlayerTurn, engine.StatusAITurn:
		if len(game.PlayerBoard.Ships) != fleetSize {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("State is %s but the player fleet is incomplete", game.Status))
		}
	case engine.StatusPlayerWon:
		if shipsAfloat(&game.AIBoard) != 0 {
			result.Valid = false
			result.Errors = append(result.Errors, "State is player_won but AI ships are still afloat")
		}
	case engine.StatusAIWon:
		if shipsAfloat(&game.PlayerBoard) != 0 {
			result.Valid = false
			result.Errors = append(result.Errors, "State is ai_won but player ships are still afloat")
		}
	default:
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Unknown state %q", game.Status))
	}

	if len(game.AIBoard.Ships) != fleetSize {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("AI fleet has %d ships, expected %d", len(game.AIBoard.Ships), fleetSize))
	}
}

// validateMemory checks that every pending AI hit points at a hit cell on the
// player's board.
func validateMemory(game *engine.Game, result *ValidationResult) {
	for _, c := range game.AIMemory.PendingHits {
		if !c.InBounds() {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("AI memory: pending hit (%d,%d) out of bounds", c.Row, c.Col))
			continue
		}
		if game.PlayerBoard.Grid[c.Row][c.Col] != engine.CellHit {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("AI memory: pending hit (%d,%d) is not a hit cell", c.Row, c.Col))
		}
	}
}

func shipsAfloat(board *engine.Board) int {
	count := 0
	for i := range board.Ships {
		if !board.Ships[i].IsSunk() {
			count++
		}
	}
	return count
}

func shotCount(board *engine.Board) int {
	count := 0
	for _, row := range board.Grid {
		for _, cell := range row {
			if cell == engine.CellHit || cell == engine.CellMiss {
				count++
			}
		}
	}
	return count
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// main scans the games directory for *.json files and validates each one,
// printing a concise report and exiting with non-zero status if any are
// invalid.
func main() {
	gamesDir := flag.String("data-dir", "games", "Directory of persisted games")
	flag.Parse()

	files, err := filepath.Glob(filepath.Join(*gamesDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding game files: %v\n", err)
		os.Exit(1)
	}

	if len(files) == 0 {
		fmt.Printf("No game files found in %s\n", *gamesDir)
		return
	}

	allValid := true
	for _, file := range files {
		result := validateGameFile(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All game records are valid!")
	} else {
		fmt.Println("❌ Some game records have errors")
		os.Exit(1)
	}
}
