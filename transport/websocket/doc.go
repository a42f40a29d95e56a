// Package websocket provides WebSocket transport for the battleship game.
//
// The websocket package implements:
//   - Real-time game state broadcasting
//   - Game-aware WebSocket connections
//   - Connection lifecycle management
//   - Message routing and handling
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// goroutine that manages reading, writing, and cleanup.
//
// Message Protocol:
//
// Outgoing messages are JSON-encoded snapshots:
//   - {game_id: "...", event: "state_update", game: {...}}
//
// The game snapshot is the same masked view the REST API returns, so the
// AI's unhit ships are never exposed over the socket.
//
// Game Integration:
//
// Clients specify their game ID via query parameter (?game=<id>) when
// establishing the connection. State updates are broadcast only to clients
// watching that game.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// After each mutation the API layer pushes the fresh view:
//	hub.BroadcastToGame(gameID, view)
//
// Connection Lifecycle:
//
// 1. Client connects with game ID
// 2. Connection registered with hub
// 3. Client receives state updates as moves resolve
// 4. Disconnection triggers cleanup
//
// Concurrency:
//
// The hub and client handlers are designed for concurrent operation.
// Multiple clients can connect, disconnect, and receive messages
// simultaneously without blocking each other.
package websocket
