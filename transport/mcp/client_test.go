package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/davemojo/battleship-game-public/game/engine"
	"github.com/davemojo/battleship-game-public/game/service"
)

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}

	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}

	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}

	if client.mcpServer == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	expectedResponse := map[string]interface{}{
		"id":    "test-game",
		"state": "setup",
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expectedResponse)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]interface{}
	err := client.apiCall("GET", "/api", nil, &response)
	if err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}

	if response["id"] != expectedResponse["id"] {
		t.Errorf("Expected id %v, got %v", expectedResponse["id"], response["id"])
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	err := client.apiCall("GET", "/api", nil, nil)
	if err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api", nil, nil)
	if err == nil {
		t.Error("Expected error for HTTP 500 response")
	}

	if !strings.Contains(err.Error(), "API error") {
		t.Errorf("Expected 'API error' in error message, got: %v", err)
	}
}

func TestClient_apiCall_ErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "coordinate already attacked"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("POST", "/api", nil, nil)
	if err == nil {
		t.Fatal("Expected error for HTTP 409 response")
	}

	if err.Error() != "coordinate already attacked" {
		t.Errorf("Expected API error message to pass through, got: %v", err)
	}
}

func testGameView(id string) service.GameView {
	grid := make([][]engine.CellState, engine.BoardSize)
	for i := range grid {
		grid[i] = make([]engine.CellState, engine.BoardSize)
	}

	return service.GameView{
		ID:                   id,
		Status:               engine.StatusSetup,
		CurrentTurn:          engine.TurnPlayer,
		ShipsPlaced:          0,
		ShipsToPlace:         len(engine.Fleet),
		PlayerShipsRemaining: 0,
		AIShipsRemaining:     len(engine.Fleet),
		PlayerBoard:          service.BoardView{Grid: grid},
		AIBoard:              service.BoardView{Grid: grid},
	}
}

func TestClient_handleCreateGame(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/games" {
			t.Errorf("Expected POST /api/games, got %s %s", r.Method, r.URL.Path)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(testGameView("test-game-123"))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "create_game",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleCreateGame(ctx, request)
	if err != nil {
		t.Fatalf("handleCreateGame failed: %v", err)
	}

	if result == nil {
		t.Fatal("Expected result, got nil")
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	if !strings.Contains(resultStr.Text, "test-game-123") {
		t.Errorf("Expected game ID in result, got: %s", resultStr.Text)
	}
}

func TestClient_handleAttack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == "POST" && r.URL.Path == "/api/games/g1/attack":
			var body map[string]int
			json.NewDecoder(r.Body).Decode(&body)
			if body["row"] != 3 || body["col"] != 4 {
				t.Errorf("Expected attack at (3,4), got (%d,%d)", body["row"], body["col"])
			}

			json.NewEncoder(w).Encode(attackResponse{
				Attack: &service.AttackOutcome{
					Target:           engine.Coordinate{Row: 3, Col: 4},
					Result:           engine.AttackResult{Hit: true, ShipIndex: 0},
					AIShipsRemaining: 5,
				},
				AIMove: &service.AITurnOutcome{
					Target:               engine.Coordinate{Row: 7, Col: 7},
					Result:               engine.AttackResult{ShipIndex: -1},
					PlayerShipsRemaining: 5,
				},
				Status: engine.StatusPlayerTurn,
			})
		case r.Method == "GET" && r.URL.Path == "/api/games/g1":
			view := testGameView("g1")
			view.Status = engine.StatusPlayerTurn
			json.NewEncoder(w).Encode(view)
		default:
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "attack",
			Arguments: map[string]interface{}{
				"game_id": "g1",
				"row":     float64(3),
				"col":     float64(4),
			},
		},
	}

	result, err := client.handleAttack(ctx, request)
	if err != nil {
		t.Fatalf("handleAttack failed: %v", err)
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	expectedFields := []string{
		"You fired at (3,4): HIT",
		"AI fired at (7,7): miss",
		"State: player_turn",
	}

	for _, field := range expectedFields {
		if !strings.Contains(resultStr.Text, field) {
			t.Errorf("Expected '%s' in attack result, got: %s", field, resultStr.Text)
		}
	}
}

func TestClient_handlePlaceShip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/games/g1/ships" {
			t.Errorf("Expected POST /api/games/g1/ships, got %s %s", r.Method, r.URL.Path)
		}

		var body struct {
			Coordinates []engine.Coordinate `json:"coordinates"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if len(body.Coordinates) != 2 {
			t.Errorf("Expected 2 coordinates, got %d", len(body.Coordinates))
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(service.PlacementResult{
			ShipsPlaced:  1,
			ShipsToPlace: len(engine.Fleet),
			Status:       engine.StatusSetup,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "place_ship",
			Arguments: map[string]interface{}{
				"game_id": "g1",
				"coordinates": []interface{}{
					map[string]interface{}{"row": float64(0), "col": float64(0)},
					map[string]interface{}{"row": float64(0), "col": float64(1)},
				},
			},
		},
	}

	result, err := client.handlePlaceShip(ctx, request)
	if err != nil {
		t.Fatalf("handlePlaceShip failed: %v", err)
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	if !strings.Contains(resultStr.Text, "Ship placed: 1/5") {
		t.Errorf("Expected placement progress in result, got: %s", resultStr.Text)
	}

	if !strings.Contains(resultStr.Text, "Next ship: Battleship") {
		t.Errorf("Expected next ship hint in result, got: %s", resultStr.Text)
	}
}

func TestFormatGameView(t *testing.T) {
	view := testGameView("g-format")
	view.Status = engine.StatusPlayerTurn
	view.ShipsPlaced = 5
	view.PlayerShipsRemaining = 4
	view.AIShipsRemaining = 3

	result := formatGameView(&view)

	expectedFields := []string{
		"Game: g-format",
		"State: player_turn",
		"Ships placed: 5/5",
		"Yours afloat: 4",
		"Enemy afloat: 3",
		"Enemy waters:",
		"Your board:",
	}

	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field '%s' in formatted output, got: %s", field, result)
		}
	}
}

func TestFormatGameView_Terminal(t *testing.T) {
	won := testGameView("g-won")
	won.Status = engine.StatusPlayerWon

	if result := formatGameView(&won); !strings.Contains(result, "VICTORY") {
		t.Errorf("Expected 'VICTORY' in result, got: %s", result)
	}

	lost := testGameView("g-lost")
	lost.Status = engine.StatusAIWon

	if result := formatGameView(&lost); !strings.Contains(result, "DEFEAT") {
		t.Errorf("Expected 'DEFEAT' in result, got: %s", result)
	}
}

func TestFormatBoardGrid(t *testing.T) {
	grid := [][]engine.CellState{
		{engine.CellEmpty, engine.CellShip},
		{engine.CellHit, engine.CellMiss},
	}

	result := formatBoardGrid(grid)

	lines := strings.Split(strings.TrimRight(result, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d lines: %q", len(lines), result)
	}

	if !strings.Contains(lines[1], ". S") {
		t.Errorf("Expected '. S' in first row, got: %s", lines[1])
	}

	if !strings.Contains(lines[2], "X o") {
		t.Errorf("Expected 'X o' in second row, got: %s", lines[2])
	}
}

func TestClient_handleGameInstructions(t *testing.T) {
	client := NewClient("http://localhost:8080")
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "game_instructions",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleGameInstructions(ctx, request)
	if err != nil {
		t.Fatalf("handleGameInstructions failed: %v", err)
	}

	if result == nil {
		t.Fatal("Expected result, got nil")
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	expectedContent := []string{
		"Battleship Game - Complete Instructions",
		"GAME OBJECTIVE:",
		"SETUP:",
		"BATTLE:",
		"BOARD LEGEND:",
		"STRATEGY HINTS:",
		"GAME MANAGEMENT:",
	}

	for _, content := range expectedContent {
		if !strings.Contains(resultStr.Text, content) {
			t.Errorf("Expected '%s' in instructions, got: %s", content, resultStr.Text)
		}
	}
}

func TestClient_Integration(t *testing.T) {
	client := NewClient("http://localhost:8080")

	if client == nil {
		t.Fatal("Failed to create client")
	}

	if client.mcpServer == nil {
		t.Fatal("MCP server not initialized")
	}

	if client.baseURL == "" {
		t.Error("Base URL not set")
	}

	if client.httpClient == nil {
		t.Error("HTTP client not initialized")
	}
}
