package main

import (
	"math/rand"
	"time"
)

const boardSize = 10

// fleetSizes lists the standard fleet in placement order.
var fleetSizes = []int{5, 4, 3, 3, 2}

// Strategy decides fleet placement and shot selection. Shots run in two
// modes, read off the enemy grid every turn:
//   - target: some hit cell still has an unattacked orthogonal neighbor;
//     fire at one of those neighbors to trace the wounded ship
//   - hunt: no open hits; fire on a parity pattern, since every ship is at
//     least two cells long and must straddle a checkerboard cell
type Strategy struct {
	rng    *rand.Rand
	parity int
}

func NewStrategy(seed int64) *Strategy {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	return &Strategy{
		rng:    rng,
		parity: rng.Intn(2),
	}
}

// Fleet generates a random legal placement for the full fleet.
func (s *Strategy) Fleet() [][]Coordinate {
	var occupied [boardSize][boardSize]bool
	fleet := make([][]Coordinate, 0, len(fleetSizes))

	for _, size := range fleetSizes {
		for {
			horizontal := s.rng.Intn(2) == 0
			var row, col int
			if horizontal {
				row = s.rng.Intn(boardSize)
				col = s.rng.Intn(boardSize - size + 1)
			} else {
				row = s.rng.Intn(boardSize - size + 1)
				col = s.rng.Intn(boardSize)
			}

			coords := make([]Coordinate, size)
			clear := true
			for i := range coords {
				r, c := row, col
				if horizontal {
					c += i
				} else {
					r += i
				}
				if occupied[r][c] {
					clear = false
					break
				}
				coords[i] = Coordinate{Row: r, Col: c}
			}

			if !clear {
				continue
			}
			for _, c := range coords {
				occupied[c.Row][c.Col] = true
			}
			fleet = append(fleet, coords)
			break
		}
	}

	return fleet
}

// NextShot picks the next target from the enemy grid as the server exposes
// it: "hit" and "miss" cells are known, everything else is open water.
func (s *Strategy) NextShot(grid [][]string) Coordinate {
	// Target mode: probe around open hits first
	var probes []Coordinate
	for row := range grid {
		for col, cell := range grid[row] {
			if cell != "hit" {
				continue
			}
			for _, n := range neighbors(row, col) {
				if !attacked(grid, n) {
					probes = append(probes, n)
				}
			}
		}
	}
	if len(probes) > 0 {
		return probes[s.rng.Intn(len(probes))]
	}

	// Hunt mode on the parity pattern
	var open, parityOpen []Coordinate
	for row := range grid {
		for col := range grid[row] {
			c := Coordinate{Row: row, Col: col}
			if attacked(grid, c) {
				continue
			}
			open = append(open, c)
			if (row+col)%2 == s.parity {
				parityOpen = append(parityOpen, c)
			}
		}
	}
	if len(parityOpen) > 0 {
		return parityOpen[s.rng.Intn(len(parityOpen))]
	}
	return open[s.rng.Intn(len(open))]
}

func attacked(grid [][]string, c Coordinate) bool {
	cell := grid[c.Row][c.Col]
	return cell == "hit" || cell == "miss"
}

func neighbors(row, col int) []Coordinate {
	candidates := []Coordinate{
		{Row: row - 1, Col: col},
		{Row: row + 1, Col: col},
		{Row: row, Col: col - 1},
		{Row: row, Col: col + 1},
	}

	result := make([]Coordinate, 0, 4)
	for _, c := range candidates {
		if c.Row >= 0 && c.Row < boardSize && c.Col >= 0 && c.Col < boardSize {
			result = append(result, c)
		}
	}
	return result
}
