package engine

import (
	"fmt"
	"sort"
)

// Board holds one side's grid and placed ships. The set of ship cells on the
// grid is always exactly the union of the placed ships' positions.
type Board struct {
	Grid  [][]CellState `json:"grid"`
	Ships []Ship        `json:"ships"`
}

// NewBoard creates an empty board
func NewBoard() Board {
	grid := make([][]CellState, BoardSize)
	for row := range grid {
		grid[row] = make([]CellState, BoardSize)
		for col := range grid[row] {
			grid[row][col] = CellEmpty
		}
	}
	return Board{Grid: grid, Ships: []Ship{}}
}

// Cell returns the state of the cell at the given coordinate
func (b *Board) Cell(c Coordinate) CellState {
	return b.Grid[c.Row][c.Col]
}

// Attacked reports whether the coordinate has already been attacked
func (b *Board) Attacked(c Coordinate) bool {
	state := b.Grid[c.Row][c.Col]
	return state == CellHit || state == CellMiss
}

// PlaceShip validates the proposed coordinates for the given ship class and,
// if valid, places the ship. It never partially applies: on error the board
// is unchanged.
//
// The placement must be in bounds, match the class size, form a single
// straight contiguous line, and not overlap a previously placed ship.
func (b *Board) PlaceShip(coords []Coordinate, class ShipClass) error {
	if len(coords) != class.Size {
		return fmt.Errorf("%w: %s requires %d coordinates, got %d",
			ErrInvalidPlacement, class.Name, class.Size, len(coords))
	}

	for _, c := range coords {
		if !c.InBounds() {
			return fmt.Errorf("%w: coordinate (%d,%d) is out of bounds",
				ErrInvalidPlacement, c.Row, c.Col)
		}
	}

	line, err := shipLine(coords)
	if err != nil {
		return err
	}

	for _, c := range line {
		if b.Grid[c.Row][c.Col] != CellEmpty {
			return fmt.Errorf("%w: coordinate (%d,%d) overlaps another ship",
				ErrInvalidPlacement, c.Row, c.Col)
		}
	}

	b.Ships = append(b.Ships, Ship{
		Name:      class.Name,
		Size:      class.Size,
		Positions: line,
	})
	for _, c := range line {
		b.Grid[c.Row][c.Col] = CellShip
	}

	return nil
}

// shipLine validates straightness and contiguity by regenerating the full
// line between the sorted endpoints and requiring the submitted coordinates
// to match it exactly. Client-submitted coordinate lists are never trusted
// directly: gaps, diagonals and duplicates all fail the comparison.
func shipLine(coords []Coordinate) ([]Coordinate, error) {
	line := make([]Coordinate, len(coords))
	copy(line, coords)
	sort.Slice(line, func(i, j int) bool {
		if line[i].Row != line[j].Row {
			return line[i].Row < line[j].Row
		}
		return line[i].Col < line[j].Col
	})

	first, last := line[0], line[len(line)-1]

	var span []Coordinate
	switch {
	case first.Row == last.Row:
		for col := first.Col; col <= last.Col; col++ {
			span = append(span, Coordinate{Row: first.Row, Col: col})
		}
	case first.Col == last.Col:
		for row := first.Row; row <= last.Row; row++ {
			span = append(span, Coordinate{Row: row, Col: first.Col})
		}
	default:
		return nil, fmt.Errorf("%w: coordinates do not form a straight line", ErrInvalidPlacement)
	}

	if len(span) != len(line) {
		return nil, fmt.Errorf("%w: coordinates are not contiguous", ErrInvalidPlacement)
	}
	for i := range span {
		if span[i] != line[i] {
			return nil, fmt.Errorf("%w: coordinates are not contiguous", ErrInvalidPlacement)
		}
	}

	return line, nil
}

// Attack resolves an attack on the coordinate, transitioning the cell to hit
// or miss. Attacking a resolved cell fails with ErrAlreadyAttacked and leaves
// the board unchanged.
func (b *Board) Attack(c Coordinate) (AttackResult, error) {
	result := AttackResult{ShipIndex: -1}

	if !c.InBounds() {
		return result, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, c.Row, c.Col)
	}

	switch b.Grid[c.Row][c.Col] {
	case CellHit, CellMiss:
		return result, fmt.Errorf("%w: (%d,%d)", ErrAlreadyAttacked, c.Row, c.Col)

	case CellShip:
		b.Grid[c.Row][c.Col] = CellHit
		for i := range b.Ships {
			if b.Ships[i].Occupies(c) {
				b.Ships[i].Hits++
				result.Hit = true
				result.Sunk = b.Ships[i].IsSunk()
				result.ShipIndex = i
				return result, nil
			}
		}
		// Unreachable while the board invariant holds: every ship cell
		// belongs to exactly one placed ship.
		result.Hit = true
		return result, nil

	default:
		b.Grid[c.Row][c.Col] = CellMiss
		return result, nil
	}
}

// ShipsRemaining returns the number of placed ships not yet sunk
func (b *Board) ShipsRemaining() int {
	remaining := 0
	for i := range b.Ships {
		if !b.Ships[i].IsSunk() {
			remaining++
		}
	}
	return remaining
}
