package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/davemojo/battleship-game-public/game/engine"
	"github.com/davemojo/battleship-game-public/game/service"
	"github.com/davemojo/battleship-game-public/game/store"
	"github.com/davemojo/battleship-game-public/transport/websocket"
)

// MockGameService implements service.GameService for testing
type MockGameService struct {
	CreateGameFunc func(ctx context.Context) (*service.GameView, error)
	GetGameFunc    func(ctx context.Context, gameID string) (*service.GameView, error)
	ListGamesFunc  func(ctx context.Context) ([]*service.GameInfo, error)
	DeleteGameFunc func(ctx context.Context, gameID string) error

	PlaceShipFunc func(ctx context.Context, gameID string, coords []engine.Coordinate) (*service.PlacementResult, error)
	AttackFunc    func(ctx context.Context, gameID string, target engine.Coordinate) (*service.AttackOutcome, error)
	AITurnFunc    func(ctx context.Context, gameID string) (*service.AITurnOutcome, error)
}

func (m *MockGameService) CreateGame(ctx context.Context) (*service.GameView, error) {
	if m.CreateGameFunc != nil {
		return m.CreateGameFunc(ctx)
	}
	return &service.GameView{
		ID:        "test-game",
		Status:    engine.StatusSetup,
		CreatedAt: time.Now(),
	}, nil
}

func (m *MockGameService) GetGame(ctx context.Context, gameID string) (*service.GameView, error) {
	if m.GetGameFunc != nil {
		return m.GetGameFunc(ctx, gameID)
	}
	return &service.GameView{
		ID:        gameID,
		Status:    engine.StatusSetup,
		CreatedAt: time.Now(),
	}, nil
}

func (m *MockGameService) ListGames(ctx context.Context) ([]*service.GameInfo, error) {
	if m.ListGamesFunc != nil {
		return m.ListGamesFunc(ctx)
	}
	return []*service.GameInfo{}, nil
}

func (m *MockGameService) DeleteGame(ctx context.Context, gameID string) error {
	if m.DeleteGameFunc != nil {
		return m.DeleteGameFunc(ctx, gameID)
	}
	return nil
}

func (m *MockGameService) PlaceShip(ctx context.Context, gameID string, coords []engine.Coordinate) (*service.PlacementResult, error) {
	if m.PlaceShipFunc != nil {
		return m.PlaceShipFunc(ctx, gameID, coords)
	}
	return &service.PlacementResult{
		ShipsPlaced:  1,
		ShipsToPlace: 5,
		Status:       engine.StatusSetup,
	}, nil
}

func (m *MockGameService) Attack(ctx context.Context, gameID string, target engine.Coordinate) (*service.AttackOutcome, error) {
	if m.AttackFunc != nil {
		return m.AttackFunc(ctx, gameID, target)
	}
	return &service.AttackOutcome{
		Target: target,
		Result: engine.AttackResult{ShipIndex: -1},
		Status: engine.StatusAITurn,
	}, nil
}

func (m *MockGameService) AITurn(ctx context.Context, gameID string) (*service.AITurnOutcome, error) {
	if m.AITurnFunc != nil {
		return m.AITurnFunc(ctx, gameID)
	}
	return &service.AITurnOutcome{
		Target: engine.Coordinate{Row: 0, Col: 0},
		Result: engine.AttackResult{ShipIndex: -1},
		Status: engine.StatusPlayerTurn,
	}, nil
}

// Test helpers
func setupTestServer(mockService *MockGameService) *Server {
	hub := websocket.NewHub()
	go hub.Run()
	return NewServer(mockService, hub)
}

func makeRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	if err := json.Unmarshal(w.Body.Bytes(), target); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
}

func TestCreateGame(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(*MockGameService)
		expectedStatus int
		validateResp   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "Create game",
			setupMock: func(m *MockGameService) {
				m.CreateGameFunc = func(ctx context.Context) (*service.GameView, error) {
					return &service.GameView{
						ID:           "game-123",
						Status:       engine.StatusSetup,
						ShipsToPlace: 5,
						CreatedAt:    time.Now(),
					}, nil
				}
			},
			expectedStatus: http.StatusCreated,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.GameView
				parseResponse(t, w, &resp)
				if resp.ID != "game-123" {
					t.Errorf("Expected game ID game-123, got %s", resp.ID)
				}
				if resp.Status != engine.StatusSetup {
					t.Errorf("Expected setup state, got %s", resp.Status)
				}
			},
		},
		{
			name: "Handle service error",
			setupMock: func(m *MockGameService) {
				m.CreateGameFunc = func(ctx context.Context) (*service.GameView, error) {
					return nil, fmt.Errorf("service error")
				}
			},
			expectedStatus: http.StatusInternalServerError,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]string
				parseResponse(t, w, &resp)
				if resp["error"] != "service error" {
					t.Errorf("Expected error message 'service error', got %s", resp["error"])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			w := httptest.NewRecorder()
			req := makeRequest("POST", "/api/games", nil)

			server.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			if tt.validateResp != nil {
				tt.validateResp(t, w)
			}
		})
	}
}

func TestListGames(t *testing.T) {
	mockService := &MockGameService{
		ListGamesFunc: func(ctx context.Context) ([]*service.GameInfo, error) {
			return []*service.GameInfo{
				{ID: "game-1", Status: engine.StatusPlayerTurn},
				{ID: "game-2", Status: engine.StatusSetup},
			}, nil
		},
	}

	server := setupTestServer(mockService)
	w := httptest.NewRecorder()
	req := makeRequest("GET", "/api/games", nil)

	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp map[string]interface{}
	parseResponse(t, w, &resp)
	if resp["count"].(float64) != 2 {
		t.Errorf("Expected count 2, got %v", resp["count"])
	}
	games := resp["games"].([]interface{})
	if len(games) != 2 {
		t.Errorf("Expected 2 games, got %d", len(games))
	}
}

func TestGetGame(t *testing.T) {
	tests := []struct {
		name           string
		gameID         string
		setupMock      func(*MockGameService)
		expectedStatus int
	}{
		{
			name:   "Get existing game",
			gameID: "game-123",
			setupMock: func(m *MockGameService) {
				m.GetGameFunc = func(ctx context.Context, gameID string) (*service.GameView, error) {
					return &service.GameView{ID: gameID, Status: engine.StatusPlayerTurn}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "Unknown game returns 404",
			gameID: "missing",
			setupMock: func(m *MockGameService) {
				m.GetGameFunc = func(ctx context.Context, gameID string) (*service.GameView, error) {
					return nil, fmt.Errorf("game not found: %w", store.ErrGameNotFound)
				}
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{}
			tt.setupMock(mockService)

			server := setupTestServer(mockService)
			w := httptest.NewRecorder()
			req := makeRequest("GET", "/api/games/"+tt.gameID, nil)

			server.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

func TestPlaceShip(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(*MockGameService)
		expectedStatus int
	}{
		{
			name: "Valid placement",
			body: map[string]interface{}{
				"coordinates": []engine.Coordinate{{Row: 0, Col: 0}, {Row: 0, Col: 1}},
			},
			setupMock: func(m *MockGameService) {
				m.PlaceShipFunc = func(ctx context.Context, gameID string, coords []engine.Coordinate) (*service.PlacementResult, error) {
					if len(coords) != 2 {
						t.Errorf("Expected 2 coordinates, got %d", len(coords))
					}
					return &service.PlacementResult{ShipsPlaced: 1, ShipsToPlace: 5, Status: engine.StatusSetup}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Invalid placement returns 400",
			body: map[string]interface{}{"coordinates": []engine.Coordinate{}},
			setupMock: func(m *MockGameService) {
				m.PlaceShipFunc = func(ctx context.Context, gameID string, coords []engine.Coordinate) (*service.PlacementResult, error) {
					return nil, fmt.Errorf("ship overlaps: %w", engine.ErrInvalidPlacement)
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Placement outside setup returns 409",
			body: map[string]interface{}{"coordinates": []engine.Coordinate{}},
			setupMock: func(m *MockGameService) {
				m.PlaceShipFunc = func(ctx context.Context, gameID string, coords []engine.Coordinate) (*service.PlacementResult, error) {
					return nil, engine.ErrInvalidState
				}
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{}
			tt.setupMock(mockService)

			server := setupTestServer(mockService)
			w := httptest.NewRecorder()
			req := makeRequest("POST", "/api/games/game-123/ships", tt.body)

			server.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

func TestAttack(t *testing.T) {
	t.Run("AttackChainsAIMove", func(t *testing.T) {
		aiTurnCalls := 0
		mockService := &MockGameService{
			AttackFunc: func(ctx context.Context, gameID string, target engine.Coordinate) (*service.AttackOutcome, error) {
				if target.Row != 3 || target.Col != 4 {
					t.Errorf("Expected target (3,4), got (%d,%d)", target.Row, target.Col)
				}
				return &service.AttackOutcome{
					Target: target,
					Result: engine.AttackResult{Hit: true, ShipIndex: 0},
					Status: engine.StatusAITurn,
				}, nil
			},
			AITurnFunc: func(ctx context.Context, gameID string) (*service.AITurnOutcome, error) {
				aiTurnCalls++
				return &service.AITurnOutcome{
					Target: engine.Coordinate{Row: 7, Col: 2},
					Result: engine.AttackResult{ShipIndex: -1},
					Status: engine.StatusPlayerTurn,
				}, nil
			},
		}

		server := setupTestServer(mockService)
		w := httptest.NewRecorder()
		req := makeRequest("POST", "/api/games/game-123/attack", map[string]int{"row": 3, "col": 4})

		server.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}
		if aiTurnCalls != 1 {
			t.Errorf("Expected the AI turn to be resolved once, got %d calls", aiTurnCalls)
		}

		var resp attackResponse
		parseResponse(t, w, &resp)
		if !resp.Attack.Result.Hit {
			t.Error("Expected hit result")
		}
		if resp.AIMove == nil {
			t.Fatal("Expected AI move in response")
		}
		if resp.Status != engine.StatusPlayerTurn {
			t.Errorf("Expected final state player_turn, got %s", resp.Status)
		}
	})

	t.Run("WinningAttackSkipsAIMove", func(t *testing.T) {
		mockService := &MockGameService{
			AttackFunc: func(ctx context.Context, gameID string, target engine.Coordinate) (*service.AttackOutcome, error) {
				return &service.AttackOutcome{
					Target: target,
					Result: engine.AttackResult{Hit: true, Sunk: true, ShipIndex: 4},
					Status: engine.StatusPlayerWon,
				}, nil
			},
			AITurnFunc: func(ctx context.Context, gameID string) (*service.AITurnOutcome, error) {
				t.Error("AI turn must not run after a winning attack")
				return nil, nil
			},
		}

		server := setupTestServer(mockService)
		w := httptest.NewRecorder()
		req := makeRequest("POST", "/api/games/game-123/attack", map[string]int{"row": 0, "col": 1})

		server.ServeHTTP(w, req)

		var resp attackResponse
		parseResponse(t, w, &resp)
		if resp.AIMove != nil {
			t.Error("Expected no AI move after win")
		}
		if resp.Status != engine.StatusPlayerWon {
			t.Errorf("Expected player_won, got %s", resp.Status)
		}
	})

	t.Run("RepeatedAttackReturns409", func(t *testing.T) {
		mockService := &MockGameService{
			AttackFunc: func(ctx context.Context, gameID string, target engine.Coordinate) (*service.AttackOutcome, error) {
				return nil, engine.ErrAlreadyAttacked
			},
		}

		server := setupTestServer(mockService)
		w := httptest.NewRecorder()
		req := makeRequest("POST", "/api/games/game-123/attack", map[string]int{"row": 0, "col": 0})

		server.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("Expected status 409, got %d", w.Code)
		}
	})

	t.Run("FinishedGameReturns409", func(t *testing.T) {
		mockService := &MockGameService{
			AttackFunc: func(ctx context.Context, gameID string, target engine.Coordinate) (*service.AttackOutcome, error) {
				return nil, engine.ErrGameOver
			},
		}

		server := setupTestServer(mockService)
		w := httptest.NewRecorder()
		req := makeRequest("POST", "/api/games/game-123/attack", map[string]int{"row": 0, "col": 0})

		server.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("Expected status 409, got %d", w.Code)
		}
	})

	t.Run("OutOfBoundsReturns400", func(t *testing.T) {
		mockService := &MockGameService{
			AttackFunc: func(ctx context.Context, gameID string, target engine.Coordinate) (*service.AttackOutcome, error) {
				return nil, engine.ErrOutOfBounds
			},
		}

		server := setupTestServer(mockService)
		w := httptest.NewRecorder()
		req := makeRequest("POST", "/api/games/game-123/attack", map[string]int{"row": 42, "col": 0})

		server.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

func TestAITurnEndpoint(t *testing.T) {
	mockService := &MockGameService{
		AITurnFunc: func(ctx context.Context, gameID string) (*service.AITurnOutcome, error) {
			return &service.AITurnOutcome{
				Target: engine.Coordinate{Row: 5, Col: 6},
				Result: engine.AttackResult{Hit: true, ShipIndex: 1},
				Status: engine.StatusPlayerTurn,
			}, nil
		},
	}

	server := setupTestServer(mockService)
	w := httptest.NewRecorder()
	req := makeRequest("POST", "/api/games/game-123/ai-turn", nil)

	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp service.AITurnOutcome
	parseResponse(t, w, &resp)
	if resp.Target.Row != 5 || resp.Target.Col != 6 {
		t.Errorf("Expected target (5,6), got (%d,%d)", resp.Target.Row, resp.Target.Col)
	}
}

func TestDeleteGame(t *testing.T) {
	mockService := &MockGameService{
		DeleteGameFunc: func(ctx context.Context, gameID string) error {
			if gameID != "game-123" {
				t.Errorf("Expected game-123, got %s", gameID)
			}
			return nil
		},
	}

	server := setupTestServer(mockService)
	w := httptest.NewRecorder()
	req := makeRequest("DELETE", "/api/games/game-123", nil)

	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	server := setupTestServer(&MockGameService{})
	w := httptest.NewRecorder()
	req := makeRequest("GET", "/api/health", nil)

	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp map[string]string
	parseResponse(t, w, &resp)
	if resp["status"] != "healthy" {
		t.Errorf("Expected healthy status, got %s", resp["status"])
	}
}
