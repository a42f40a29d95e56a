// Package mcp provides a Model Context Protocol interface for the battleship game.
//
// The package implements a thin MCP client that proxies every tool call to
// the REST API, so MCP agents and HTTP clients always act on the same
// persisted games.
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - create_game: Create a new game with the AI fleet already placed
//   - get_game: Get the current game snapshot with both boards rendered
//   - list_games: List all known games
//   - place_ship: Place the next fleet ship on an ordered coordinate list
//   - attack: Fire at an enemy coordinate; the AI reply resolves in the same call
//   - ai_turn: Resolve a pending AI move explicitly
//   - delete_game: Delete a game
//   - game_instructions: Get complete game rules and strategy notes
//
// Board Rendering:
//
// Tool results render both boards as ASCII grids. The player's own board
// shows ship cells; the enemy board only ever shows hits and misses, never
// unhit ship positions.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
