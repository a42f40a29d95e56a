package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/davemojo/battleship-game-public/game/engine"
	"github.com/davemojo/battleship-game-public/game/service"
	"github.com/davemojo/battleship-game-public/game/store"
	"github.com/davemojo/battleship-game-public/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.GameService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server
func NewServer(gameService service.GameService, hub *websocket.Hub) *Server {
	s := &Server{
		service: gameService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Game lifecycle
	api.HandleFunc("/games", s.handleCreateGame).Methods("POST")
	api.HandleFunc("/games", s.handleListGames).Methods("GET")
	api.HandleFunc("/games/{id}", s.handleGetGame).Methods("GET")
	api.HandleFunc("/games/{id}", s.handleDeleteGame).Methods("DELETE")

	// Game operations
	api.HandleFunc("/games/{id}/ships", s.handlePlaceShip).Methods("POST")
	api.HandleFunc("/games/{id}/attack", s.handleAttack).Methods("POST")
	api.HandleFunc("/games/{id}/ai-turn", s.handleAITurn).Methods("POST")

	// Health
	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)

	// Static files (if needed)
	s.router.PathPrefix("/").Handler(http.FileServer(http.Dir("./static/")))
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// statusForError maps engine and storage errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, store.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrInvalidPlacement), errors.Is(err, engine.ErrOutOfBounds):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrInvalidState), errors.Is(err, engine.ErrAlreadyAttacked), errors.Is(err, engine.ErrGameOver):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Game Lifecycle Handlers

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	view, err := s.service.CreateGame(r.Context())
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	fmt.Printf("[GAME] created id=%s\n", view.ID)
	respondJSON(w, http.StatusCreated, view)
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	games, err := s.service.ListGames(r.Context())
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	// Parse query parameters
	query := r.URL.Query()
	sortBy := query.Get("sort")    // "created", "accessed" (default)
	order := query.Get("order")    // "asc", "desc" (default: "desc")
	limitStr := query.Get("limit") // number of games to return

	if sortBy == "" {
		sortBy = "accessed"
	}
	if order == "" {
		order = "desc"
	}

	sort.Slice(games, func(i, j int) bool {
		var ti, tj time.Time
		if sortBy == "created" {
			ti, tj = games[i].CreatedAt, games[j].CreatedAt
		} else { // "accessed"
			ti, tj = games[i].LastAccessedAt, games[j].LastAccessedAt
		}

		if order == "asc" {
			return ti.Before(tj)
		}
		return ti.After(tj) // desc
	})

	limit := len(games)
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < len(games) {
			limit = l
		}
	}
	games = games[:limit]

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(games),
		"games": games,
		"sort":  sortBy,
		"order": order,
	})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	view, err := s.service.GetGame(r.Context(), gameID)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, view)
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	if err := s.service.DeleteGame(r.Context(), gameID); err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Game %s deleted", gameID),
	})
}

// Game Operation Handlers

func (s *Server) handlePlaceShip(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	var req struct {
		Coordinates []engine.Coordinate `json:"coordinates"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.PlaceShip(r.Context(), gameID, req.Coordinates)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	s.broadcastGame(r, gameID)

	fmt.Printf("[PLACE] game=%s ships=%d/%d state=%s\n",
		gameID, result.ShipsPlaced, result.ShipsToPlace, result.Status)

	respondJSON(w, http.StatusOK, result)
}

// attackResponse pairs the player's attack with the AI's immediate reply
type attackResponse struct {
	Attack *service.AttackOutcome `json:"attack"`
	AIMove *service.AITurnOutcome `json:"ai_move,omitempty"`
	Status engine.Status          `json:"state"`
}

func (s *Server) handleAttack(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	var target engine.Coordinate
	if err := json.NewDecoder(r.Body).Decode(&target); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	outcome, err := s.service.Attack(r.Context(), gameID, target)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	resp := &attackResponse{
		Attack: outcome,
		Status: outcome.Status,
	}

	// When the attack hands the turn to the AI, resolve the reply
	// immediately, keyed on the result just returned.
	if outcome.Status == engine.StatusAITurn {
		aiMove, err := s.service.AITurn(r.Context(), gameID)
		if err != nil {
			respondError(w, statusForError(err), err.Error())
			return
		}
		resp.AIMove = aiMove
		resp.Status = aiMove.Status
	}

	s.broadcastGame(r, gameID)

	fmt.Printf("[ATTACK] game=%s target=(%d,%d) hit=%t sunk=%t state=%s\n",
		gameID, target.Row, target.Col, outcome.Result.Hit, outcome.Result.Sunk, resp.Status)

	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAITurn(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	outcome, err := s.service.AITurn(r.Context(), gameID)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	s.broadcastGame(r, gameID)

	fmt.Printf("[AI] game=%s target=(%d,%d) hit=%t sunk=%t state=%s\n",
		gameID, outcome.Target.Row, outcome.Target.Col, outcome.Result.Hit, outcome.Result.Sunk, outcome.Status)

	respondJSON(w, http.StatusOK, outcome)
}

// broadcastGame pushes the fresh snapshot to WebSocket watchers
func (s *Server) broadcastGame(r *http.Request, gameID string) {
	if s.hub == nil {
		return
	}

	view, err := s.service.GetGame(r.Context(), gameID)
	if err != nil {
		return
	}
	s.hub.BroadcastToGame(gameID, view)
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	if gameID == "" {
		http.Error(w, "game parameter required", http.StatusBadRequest)
		return
	}

	// Verify game exists
	if _, err := s.service.GetGame(r.Context(), gameID); err != nil {
		http.Error(w, "Invalid game", http.StatusNotFound)
		return
	}

	s.hub.ServeWS(w, r, gameID)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
