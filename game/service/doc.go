// Package service provides the business logic layer for the battleship game.
//
// The service package implements:
//   - Multi-game lifecycle management
//   - Ship placement, attack, and AI turn orchestration
//   - Per-game serialization of mutating operations
//   - Client-facing views that hide the AI's unhit ships
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game
// operations. SessionManager handles game creation, retrieval, and
// persistence.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP)
// and the game engine, providing game isolation and durability
// orchestration. Each game runs its own engine instance with independent
// state.
//
// Usage:
//
//	manager := store.NewManager(persistence)
//	gameService := service.NewGameService(manager)
//
//	// Create a new game
//	view, err := gameService.CreateGame(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Place a ship and attack
//	placement, err := gameService.PlaceShip(ctx, view.ID, coords)
//	outcome, err := gameService.Attack(ctx, view.ID, target)
//
// Concurrency:
//
// Mutating operations against the same game ID are serialized by a
// per-ID mutex held for the full load, mutate, save cycle. Operations on
// different game IDs proceed concurrently.
//
// Durability:
//
// Every mutating operation saves the game before returning. A save
// failure surfaces as ErrPersistenceFailure and the operation does not
// count as complete.
package service
