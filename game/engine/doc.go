// Package engine provides the core game logic for the battleship server.
//
// The engine package implements the game mechanics including:
//   - Board state and ship placement validation
//   - Attack resolution and sunk-ship detection
//   - The AI opponent's hunt/target strategy
//   - The game state machine (setup, turns, terminal states)
//
// Core Types:
//
// Game is the aggregate persisted per match: both boards, the state machine
// status, the turn owner, and the AI's targeting memory. GameEngine wraps a
// Game with the operations callers mutate it through; it is the only type
// that carries non-persisted state (the random source used by the AI).
//
// Usage:
//
//	eng, err := engine.NewEngine(id)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	placed, total, err := eng.PlaceShip(coords)
//	result, err := eng.Attack(engine.Coordinate{Row: 0, Col: 0})
//
// Game Rules:
//
// Each side owns a 10x10 board holding a fleet of five ships (Carrier 5,
// Battleship 4, Cruiser 3, Submarine 3, Destroyer 2). The player places
// ships during setup; the AI fleet is placed at game creation. Sides then
// alternate single attacks until one fleet is fully sunk.
package engine
