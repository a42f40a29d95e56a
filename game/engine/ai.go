package engine

import (
	"fmt"
	"math/rand"
)

// ChooseTarget picks the AI's next attack coordinate from the opponent board
// as the AI sees it: only hit/miss cells are information it has earned, and
// both empty and ship cells count as unknown.
//
// With unresolved hits pending, the strategy probes the in-bounds unattacked
// 4-neighbors of the most recent one (target mode). Older pending hits are
// consulted when the newest has no neighbor left. With no pending hit usable,
// it selects uniformly among all unattacked cells (hunt mode).
func ChooseTarget(board *Board, mem *TargetingMemory, rng *rand.Rand) (Coordinate, error) {
	for i := len(mem.PendingHits) - 1; i >= 0; i-- {
		candidates := unattackedNeighbors(board, mem.PendingHits[i])
		if len(candidates) > 0 {
			return candidates[rng.Intn(len(candidates))], nil
		}
	}

	var open []Coordinate
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			c := Coordinate{Row: row, Col: col}
			if !board.Attacked(c) {
				open = append(open, c)
			}
		}
	}
	if len(open) == 0 {
		return Coordinate{}, fmt.Errorf("no unattacked cells remain")
	}
	return open[rng.Intn(len(open))], nil
}

// unattackedNeighbors returns the in-bounds 4-neighbors of c that have not
// been attacked yet
func unattackedNeighbors(board *Board, c Coordinate) []Coordinate {
	var open []Coordinate
	for _, n := range c.Adjacent() {
		if !board.Attacked(n) {
			open = append(open, n)
		}
	}
	return open
}

// Record updates the targeting memory with the resolution of an attack the
// AI just made against the given board. A non-sinking hit joins the pending
// frontier; a sinking hit clears every pending hit belonging to the sunk
// ship; a miss leaves the memory untouched.
func (m *TargetingMemory) Record(c Coordinate, result AttackResult, board *Board) {
	if !result.Hit {
		return
	}

	if !result.Sunk {
		m.PendingHits = append(m.PendingHits, c)
		return
	}

	if result.ShipIndex < 0 || result.ShipIndex >= len(board.Ships) {
		return
	}
	sunk := &board.Ships[result.ShipIndex]

	kept := m.PendingHits[:0]
	for _, hit := range m.PendingHits {
		if !sunk.Occupies(hit) {
			kept = append(kept, hit)
		}
	}
	m.PendingHits = kept
}

// RandomFleet places the full fleet on the board with uniformly random
// orientation and anchor, using the same placement validator the player's
// ships go through.
func RandomFleet(b *Board, rng *rand.Rand) error {
	for _, class := range Fleet {
		if err := placeRandom(b, class, rng); err != nil {
			return err
		}
	}
	return nil
}

func placeRandom(b *Board, class ShipClass, rng *rand.Rand) error {
	for attempt := 0; attempt < 200; attempt++ {
		horizontal := rng.Intn(2) == 0
		var anchor Coordinate
		if horizontal {
			anchor = Coordinate{Row: rng.Intn(BoardSize), Col: rng.Intn(BoardSize - class.Size + 1)}
		} else {
			anchor = Coordinate{Row: rng.Intn(BoardSize - class.Size + 1), Col: rng.Intn(BoardSize)}
		}
		if err := b.PlaceShip(spanFrom(anchor, class.Size, horizontal), class); err == nil {
			return nil
		}
	}

	// Random placement is overwhelmingly likely to succeed on a standard
	// board; sweep every anchor so fleet generation cannot fail regardless.
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			anchor := Coordinate{Row: row, Col: col}
			for _, horizontal := range []bool{true, false} {
				if err := b.PlaceShip(spanFrom(anchor, class.Size, horizontal), class); err == nil {
					return nil
				}
			}
		}
	}

	return fmt.Errorf("no remaining space for %s", class.Name)
}

// spanFrom generates the coordinate run of the given length starting at
// anchor in the given orientation
func spanFrom(anchor Coordinate, size int, horizontal bool) []Coordinate {
	coords := make([]Coordinate, size)
	for i := range coords {
		if horizontal {
			coords[i] = Coordinate{Row: anchor.Row, Col: anchor.Col + i}
		} else {
			coords[i] = Coordinate{Row: anchor.Row + i, Col: anchor.Col}
		}
	}
	return coords
}
