// Command autoplayer plays complete battleship games against a running
// server through the REST API. It places a random legal fleet, then fires
// using a parity hunt with target-mode follow-up on hits, until the game
// reaches a terminal state.
//
// It is useful for exercising a server end to end and for measuring how the
// built-in AI fares against a reasonable opponent.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

type Coordinate struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type BoardView struct {
	Grid [][]string `json:"grid"`
}

type GameView struct {
	ID           string    `json:"id"`
	State        string    `json:"state"`
	CurrentTurn  string    `json:"current_turn"`
	ShipsPlaced  int       `json:"ships_placed"`
	ShipsToPlace int       `json:"ships_to_place"`
	PlayerBoard  BoardView `json:"player_board"`
	AIBoard      BoardView `json:"ai_board"`
}

type AttackResult struct {
	Hit  bool `json:"hit"`
	Sunk bool `json:"sunk"`
}

type MoveOutcome struct {
	Target Coordinate   `json:"target"`
	Result AttackResult `json:"result"`
	State  string       `json:"state"`
}

type AttackResponse struct {
	Attack *MoveOutcome `json:"attack"`
	AIMove *MoveOutcome `json:"ai_move,omitempty"`
	State  string       `json:"state"`
}

type PlacementResult struct {
	ShipsPlaced  int    `json:"ships_placed"`
	ShipsToPlace int    `json:"ships_to_place"`
	State        string `json:"state"`
}

type Client struct {
	baseURL string
	gameID  string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) CreateGame() (*GameView, error) {
	resp, err := c.client.Post(c.baseURL+"/api/games", "application/json", nil)
	if err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("create game failed: %s - %s", resp.Status, string(body))
	}

	var view GameView
	if err := json.Unmarshal(body, &view); err != nil {
		return nil, fmt.Errorf("parse game response: %w", err)
	}

	c.gameID = view.ID
	return &view, nil
}

func (c *Client) GetGame() (*GameView, error) {
	url := fmt.Sprintf("%s/api/games/%s", c.baseURL, c.gameID)
	resp, err := c.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("get game: %w", err)
	}
	defer resp.Body.Close()

	var view GameView
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		return nil, fmt.Errorf("parse game: %w", err)
	}

	return &view, nil
}

func (c *Client) PlaceShip(coords []Coordinate) (*PlacementResult, error) {
	body, err := json.Marshal(map[string][]Coordinate{"coordinates": coords})
	if err != nil {
		return nil, fmt.Errorf("marshal placement: %w", err)
	}

	url := fmt.Sprintf("%s/api/games/%s/ships", c.baseURL, c.gameID)
	resp, err := c.client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("place ship: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("placement rejected: %s - %s", resp.Status, string(respBody))
	}

	var result PlacementResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("parse placement response: %w", err)
	}

	return &result, nil
}

func (c *Client) Attack(target Coordinate) (*AttackResponse, error) {
	body, err := json.Marshal(target)
	if err != nil {
		return nil, fmt.Errorf("marshal attack: %w", err)
	}

	url := fmt.Sprintf("%s/api/games/%s/attack", c.baseURL, c.gameID)
	resp, err := c.client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("attack: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("attack rejected: %s - %s", resp.Status, string(respBody))
	}

	var result AttackResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("parse attack response: %w", err)
	}

	return &result, nil
}

func main() {
	serverURL := flag.String("url", "http://localhost:8080", "Game server URL")
	maxGames := flag.Int("max-games", 1, "Number of games to play")
	verbose := flag.Bool("v", false, "Verbose output")
	delayMs := flag.Int("delay", 0, "Delay between shots in milliseconds (0 = no delay)")
	seed := flag.Int64("seed", 0, "Strategy random seed (0 = time-based)")
	flag.Parse()

	log.Printf("Connecting to game server at %s", *serverURL)

	wins := 0
	for gameNum := 1; gameNum <= *maxGames; gameNum++ {
		log.Printf("\n=== 🎮 Game %d/%d ===", gameNum, *maxGames)

		client := NewClient(*serverURL)
		view, err := client.CreateGame()
		if err != nil {
			log.Fatalf("Failed to create game: %v", err)
		}
		log.Printf("✨ Game created: %s", client.gameID)

		strategy := NewStrategy(*seed)

		// Place the fleet
		for _, coords := range strategy.Fleet() {
			if _, err := client.PlaceShip(coords); err != nil {
				log.Fatalf("Failed to place ship: %v", err)
			}
		}

		view, err = client.GetGame()
		if err != nil {
			log.Fatalf("Failed to fetch state: %v", err)
		}
		if view.State != "player_turn" {
			log.Fatalf("Expected player_turn after placement, got %s", view.State)
		}

		// Battle loop: each attack call also resolves the AI's reply
		shots := 0
		for view.State == "player_turn" {
			target := strategy.NextShot(view.AIBoard.Grid)

			resp, err := client.Attack(target)
			if err != nil {
				log.Fatalf("Attack failed: %v", err)
			}
			shots++

			if *verbose {
				outcome := "miss"
				if resp.Attack.Result.Hit {
					outcome = "hit"
					if resp.Attack.Result.Sunk {
						outcome = "hit (sunk)"
					}
				}
				log.Printf("Shot %d at (%d,%d): %s", shots, target.Row, target.Col, outcome)
			}

			view, err = client.GetGame()
			if err != nil {
				log.Fatalf("Failed to fetch state: %v", err)
			}

			if *delayMs > 0 {
				time.Sleep(time.Duration(*delayMs) * time.Millisecond)
			}
		}

		log.Printf("Game %s finished: %s after %d shots", client.gameID, view.State, shots)
		if view.State == "player_won" {
			wins++
			log.Printf("🎉 VICTORY in %d shots!", shots)
		}
	}

	log.Printf("\nResults: %d/%d games won", wins, *maxGames)
	if wins == 0 {
		os.Exit(1)
	}
}
