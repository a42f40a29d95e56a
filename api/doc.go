// Package api provides HTTP REST API handlers for the battleship game.
//
// The api package implements:
//   - RESTful endpoints for game lifecycle and operations
//   - Error-to-status mapping for engine and storage errors
//   - WebSocket upgrade handling
//   - Static file serving
//
// Endpoints:
//
// Game Lifecycle:
//   - POST /api/games - Create a new game (AI fleet placed immediately)
//   - GET /api/games - List games, sortable by created/accessed time
//   - GET /api/games/{id} - Get a game snapshot
//   - DELETE /api/games/{id} - Delete a game
//
// Game Operations:
//   - POST /api/games/{id}/ships - Place the next fleet ship
//   - POST /api/games/{id}/attack - Attack the AI board
//   - POST /api/games/{id}/ai-turn - Resolve the AI's move
//
// Health:
//   - GET /api/health - Liveness probe
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Ship placement takes an ordered
// coordinate list; attacks take a single coordinate:
//
//	{"coordinates": [{"row":0,"col":0}, {"row":0,"col":1}]}
//	{"row": 5, "col": 5}
//
// When an attack leaves the game in the AI's turn, the response includes
// the AI's reply under "ai_move" so a client never has to poll for it.
//
// Error Handling:
//
// Errors are returned as JSON with status codes mapped from the engine:
// 404 for unknown games, 400 for invalid placements and out-of-range
// coordinates, 409 for wrong-state operations, repeated attacks, and
// finished games, 500 for persistence failures.
//
//	{
//	  "error": "error message"
//	}
package api
