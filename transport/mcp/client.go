package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/davemojo/battleship-game-public/game/engine"
	"github.com/davemojo/battleship-game-public/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Battleship Game",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Battleship Game - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Sink all five enemy ships before the AI sinks yours. Boards are 10x10;
coordinates are 0-based (row, col).

AVAILABLE TOOLS:
- create_game: Start a new game (the AI places its fleet immediately)
- get_game: Get the current game snapshot with both boards
- list_games: List all known games
- place_ship: Place your next fleet ship on an ordered coordinate list
- attack: Fire at an enemy coordinate (the AI replies in the same call)
- ai_turn: Resolve the AI's move explicitly if it is the AI's turn
- delete_game: Delete a finished or abandoned game
- game_instructions: Get comprehensive game instructions and rules

Ships are placed in fixed fleet order: Carrier (5), Battleship (4),
Cruiser (3), Submarine (3), Destroyer (2).`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Game lifecycle
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_game",
		Description: "Create a new battleship game. The AI fleet is placed immediately; you then place your five ships.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleCreateGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_games",
		Description: "List all known games",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListGames)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_game",
		Description: "Get the current snapshot of a game, including both boards",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game ID to retrieve",
				},
			},
			Required: []string{"game_id"},
		},
	}, c.handleGetGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "delete_game",
		Description: "Delete a game",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game ID to delete",
				},
			},
			Required: []string{"game_id"},
		},
	}, c.handleDeleteGame)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "place_ship",
		Description: "Place your next fleet ship. Coordinates must be contiguous, straight, in bounds, and not overlap a placed ship. Ships go in fleet order: Carrier (5), Battleship (4), Cruiser (3), Submarine (3), Destroyer (2).",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game ID",
				},
				"coordinates": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"row": map[string]interface{}{"type": "integer"},
							"col": map[string]interface{}{"type": "integer"},
						},
						"required": []string{"row", "col"},
					},
					"description": "Ordered cells the ship occupies, e.g. [{row:0,col:0},{row:0,col:1}]",
				},
			},
			Required: []string{"game_id", "coordinates"},
		},
	}, c.handlePlaceShip)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "attack",
		Description: "Fire at an enemy coordinate. If the game continues, the AI's reply move is resolved and returned in the same call.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game ID",
				},
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Row to attack (0-9)",
				},
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "Column to attack (0-9)",
				},
			},
			Required: []string{"game_id", "row", "col"},
		},
	}, c.handleAttack)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "ai_turn",
		Description: "Resolve the AI's move when the game is waiting on the AI's turn",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game ID",
				},
			},
			Required: []string{"game_id"},
		},
	}, c.handleAITurn)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// attackResponse mirrors the REST attack payload
type attackResponse struct {
	Attack *service.AttackOutcome `json:"attack"`
	AIMove *service.AITurnOutcome `json:"ai_move,omitempty"`
	Status engine.Status          `json:"state"`
}

// Tool handlers

func (c *Client) handleCreateGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var view service.GameView
	err := c.apiCall("POST", "/api/games", nil, &view)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created game: %s\n\n%s", view.ID, formatGameView(&view))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListGames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count int                `json:"count"`
		Games []service.GameInfo `json:"games"`
	}

	err := c.apiCall("GET", "/api/games", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Games (%d):\n\n", response.Count)
	for _, g := range response.Games {
		result += fmt.Sprintf("- %s (State: %s, Created: %s)\n",
			g.ID, g.Status, g.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)

	var view service.GameView
	err := c.apiCall("GET", fmt.Sprintf("/api/games/%s", gameID), nil, &view)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameView(&view)), nil
}

func (c *Client) handleDeleteGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)

	err := c.apiCall("DELETE", fmt.Sprintf("/api/games/%s", gameID), nil, nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Deleted game %s", gameID)), nil
}

func (c *Client) handlePlaceShip(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)
	coordsRaw, _ := args["coordinates"].([]interface{})

	coords := make([]engine.Coordinate, 0, len(coordsRaw))
	for _, raw := range coordsRaw {
		cell, ok := raw.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("coordinates must be objects with row and col"), nil
		}
		row, _ := cell["row"].(float64)
		col, _ := cell["col"].(float64)
		coords = append(coords, engine.Coordinate{Row: int(row), Col: int(col)})
	}

	body := map[string]interface{}{
		"coordinates": coords,
	}

	var result service.PlacementResult
	err := c.apiCall("POST", fmt.Sprintf("/api/games/%s/ships", gameID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := fmt.Sprintf("Ship placed: %d/%d\nState: %s\n",
		result.ShipsPlaced, result.ShipsToPlace, result.Status)
	if result.Status == engine.StatusPlayerTurn {
		response += "\nAll ships placed. Fire when ready with the attack tool."
	} else if result.ShipsPlaced < result.ShipsToPlace {
		next := engine.Fleet[result.ShipsPlaced]
		response += fmt.Sprintf("\nNext ship: %s (size %d)", next.Name, next.Size)
	}

	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleAttack(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)
	row, _ := args["row"].(float64)
	col, _ := args["col"].(float64)

	body := map[string]int{
		"row": int(row),
		"col": int(col),
	}

	var resp attackResponse
	err := c.apiCall("POST", fmt.Sprintf("/api/games/%s/attack", gameID), body, &resp)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString(formatAttackLine("You fired at", resp.Attack.Target, resp.Attack.Result))
	if resp.AIMove != nil {
		b.WriteString(formatAttackLine("AI fired at", resp.AIMove.Target, resp.AIMove.Result))
	}
	b.WriteString(fmt.Sprintf("State: %s\n", resp.Status))

	// Append the fresh snapshot so the caller sees both boards
	var view service.GameView
	if err := c.apiCall("GET", fmt.Sprintf("/api/games/%s", gameID), nil, &view); err == nil {
		b.WriteString("\n")
		b.WriteString(formatGameView(&view))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleAITurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)

	var outcome service.AITurnOutcome
	err := c.apiCall("POST", fmt.Sprintf("/api/games/%s/ai-turn", gameID), nil, &outcome)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatAttackLine("AI fired at", outcome.Target, outcome.Result)
	result += fmt.Sprintf("State: %s\nYour ships remaining: %d\n", outcome.Status, outcome.PlayerShipsRemaining)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Battleship Game - Complete Instructions

GAME OBJECTIVE:
Sink all five AI ships before the AI sinks yours.

SETUP:
Each game starts in the "setup" state. The AI fleet is already placed on
its own hidden board. You place five ships, in this fixed order:
1. Carrier     - 5 cells
2. Battleship  - 4 cells
3. Cruiser     - 3 cells
4. Submarine   - 3 cells
5. Destroyer   - 2 cells

Placement rules:
- Coordinates are 0-based (row, col) on a 10x10 grid
- A ship's cells must be contiguous and in a straight line
- Ships may not overlap or leave the board
- An invalid placement is rejected and changes nothing; retry freely

Once the fifth ship lands, the game moves to "player_turn".

BATTLE:
- attack fires at one enemy coordinate; you cannot repeat a coordinate
- A hit marks X, a miss marks o; sinking is reported when a ship's last
  cell is hit
- After your attack, the AI's reply resolves in the same call; the game
  alternates until one fleet is gone
- Terminal states are "player_won" and "ai_won"; finished games reject
  further attacks

BOARD LEGEND:
- . : unknown / empty water
- S : your ship (only shown on your own board)
- X : hit
- o : miss

STRATEGY HINTS:
- Open with a spread pattern; adjacent cells of a hit hide the rest of
  the ship
- After a hit, probe the four neighbors to establish the ship's line
- The AI does the same: it remembers its hits and hunts nearby, even
  across server restarts

GAME MANAGEMENT:
- Multiple games can run simultaneously; each has a unique ID
- Games persist on the server, so an interrupted game can be resumed
  with get_game at any time`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatAttackLine(who string, target engine.Coordinate, result engine.AttackResult) string {
	outcome := "miss"
	if result.Hit {
		outcome = "HIT"
		if result.Sunk {
			outcome = "HIT and SUNK"
		}
	}
	return fmt.Sprintf("%s (%d,%d): %s\n", who, target.Row, target.Col, outcome)
}

func formatGameView(view *service.GameView) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Game: %s | State: %s | Turn: %s\n", view.ID, view.Status, view.CurrentTurn))
	b.WriteString(fmt.Sprintf("Ships placed: %d/%d | Yours afloat: %d | Enemy afloat: %d\n\n",
		view.ShipsPlaced, view.ShipsToPlace, view.PlayerShipsRemaining, view.AIShipsRemaining))

	b.WriteString("Enemy waters:\n")
	b.WriteString(formatBoardGrid(view.AIBoard.Grid))
	b.WriteString("\nYour board:\n")
	b.WriteString(formatBoardGrid(view.PlayerBoard.Grid))

	switch view.Status {
	case engine.StatusPlayerWon:
		b.WriteString("\nVICTORY! The enemy fleet is destroyed.")
	case engine.StatusAIWon:
		b.WriteString("\nDEFEAT. Your fleet has been sunk.")
	}

	return b.String()
}

// formatBoardGrid renders a grid with row/column indexes
func formatBoardGrid(grid [][]engine.CellState) string {
	if len(grid) == 0 {
		return "(no board)\n"
	}

	var b strings.Builder
	b.WriteString("   ")
	for col := range grid[0] {
		b.WriteString(fmt.Sprintf("%d ", col))
	}
	b.WriteString("\n")

	for row, cells := range grid {
		b.WriteString(fmt.Sprintf("%2d ", row))
		for _, cell := range cells {
			b.WriteString(cellChar(cell))
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}

	return b.String()
}

func cellChar(cell engine.CellState) string {
	switch cell {
	case engine.CellShip:
		return "S"
	case engine.CellHit:
		return "X"
	case engine.CellMiss:
		return "o"
	default:
		return "."
	}
}
