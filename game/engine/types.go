package engine

// CellState represents the state of a single board cell
type CellState string

const (
	CellEmpty CellState = "empty"
	CellShip  CellState = "ship"
	CellHit   CellState = "hit"
	CellMiss  CellState = "miss"
)

// Status represents the game state machine position
type Status string

const (
	StatusSetup      Status = "setup"
	StatusPlayerTurn Status = "player_turn"
	StatusAITurn     Status = "ai_turn"
	StatusPlayerWon  Status = "player_won"
	StatusAIWon      Status = "ai_won"
)

// Terminal reports whether the game has ended
func (s Status) Terminal() bool {
	return s == StatusPlayerWon || s == StatusAIWon
}

// Turn owners
const (
	TurnPlayer = "player"
	TurnAI     = "ai"
)

// BoardSize is the fixed side length of every board
const BoardSize = 10

// ShipClass describes one vessel of the standard fleet
type ShipClass struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

// Fleet is the fixed set of ships each side places, in placement order.
var Fleet = []ShipClass{
	{Name: "Carrier", Size: 5},
	{Name: "Battleship", Size: 4},
	{Name: "Cruiser", Size: 3},
	{Name: "Submarine", Size: 3},
	{Name: "Destroyer", Size: 2},
}

// FleetCells returns the total number of cells the full fleet occupies
func FleetCells() int {
	total := 0
	for _, class := range Fleet {
		total += class.Size
	}
	return total
}

// Coordinate represents a row,col board position
type Coordinate struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// InBounds reports whether the coordinate lies on the board
func (c Coordinate) InBounds() bool {
	return c.Row >= 0 && c.Row < BoardSize && c.Col >= 0 && c.Col < BoardSize
}

// Adjacent returns the in-bounds 4-directional neighbors of the coordinate
func (c Coordinate) Adjacent() []Coordinate {
	candidates := []Coordinate{
		{Row: c.Row - 1, Col: c.Col},
		{Row: c.Row + 1, Col: c.Col},
		{Row: c.Row, Col: c.Col - 1},
		{Row: c.Row, Col: c.Col + 1},
	}

	neighbors := make([]Coordinate, 0, 4)
	for _, n := range candidates {
		if n.InBounds() {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

// Ship represents one placed vessel and the damage it has taken
type Ship struct {
	Name      string       `json:"name"`
	Size      int          `json:"size"`
	Positions []Coordinate `json:"positions"`
	Hits      int          `json:"hits"`
}

// IsSunk reports whether every cell of the ship has been hit
func (s *Ship) IsSunk() bool {
	return s.Hits >= s.Size
}

// Occupies reports whether the ship covers the given coordinate
func (s *Ship) Occupies(c Coordinate) bool {
	for _, p := range s.Positions {
		if p == c {
			return true
		}
	}
	return false
}

// AttackResult is the resolution of a single attack
type AttackResult struct {
	Hit  bool `json:"hit"`
	Sunk bool `json:"sunk"`

	// ShipIndex identifies the struck ship on the target board, -1 on a miss
	ShipIndex int `json:"ship_index"`
}

// TargetingMemory is the AI's persisted record of unresolved hits: cells that
// struck a ship whose remaining cells have not yet been found. The set of
// already-attacked coordinates is not stored here; it is derived from the
// opponent board's hit/miss cells.
type TargetingMemory struct {
	PendingHits []Coordinate `json:"pending_hits"`
}

// Game is the aggregate persisted per match
type Game struct {
	ID          string          `json:"id"`
	PlayerBoard Board           `json:"player_board"`
	AIBoard     Board           `json:"ai_board"`
	Status      Status          `json:"state"`
	CurrentTurn string          `json:"current_turn"`
	AIMemory    TargetingMemory `json:"ai_memory"`
}
