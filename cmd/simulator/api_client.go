package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dom/hero-draft-assistant/internal/api/handlers"
	"github.com/dom/hero-draft-assistant/internal/domain"
	"github.com/dom/hero-draft-assistant/internal/service"
)

// APIClient handles HTTP communication with the backend
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL + "/api/v1",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// errConflict is returned for 409 responses, which callers may tolerate
var errConflict = fmt.Errorf("conflict")

// AddHero creates a hero. An existing hero yields errConflict.
func (c *APIClient) AddHero(hero handlers.CreateHeroRequest) error {
	resp, err := c.do(http.MethodPost, "/heroes", hero)
	if err != nil {
		return fmt.Errorf("add hero request failed: %w", err)
	}
	defer resp.Body.Close()
	return expect(resp, http.StatusCreated)
}

func (c *APIClient) ListHeroes() (*handlers.HeroesResponse, error) {
	var out handlers.HeroesResponse
	if err := c.getJSON("/heroes", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddMatch records a match and returns it with its assigned ID
func (c *APIClient) AddMatch(match domain.MatchRecord) (*domain.MatchRecord, error) {
	resp, err := c.do(http.MethodPost, "/matches", match)
	if err != nil {
		return nil, fmt.Errorf("add match request failed: %w", err)
	}
	defer resp.Body.Close()
	if err := expect(resp, http.StatusCreated); err != nil {
		return nil, err
	}

	var stored domain.MatchRecord
	if err := json.NewDecoder(resp.Body).Decode(&stored); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &stored, nil
}

func (c *APIClient) HeroStats() (*handlers.HeroStatsResponse, error) {
	var out handlers.HeroStatsResponse
	if err := c.getJSON("/stats/heroes", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) Draft() (*domain.DraftState, error) {
	var out domain.DraftState
	if err := c.getJSON("/draft", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) ResetDraft() (*domain.DraftState, error) {
	return c.mutateDraft(http.MethodPost, "/draft/reset", nil)
}

func (c *APIClient) AddBan(team domain.TeamID, hero string, slot int) (*domain.DraftState, error) {
	return c.mutateDraft(http.MethodPost, "/draft/bans", handlers.NewSlotRequest(team, hero, slot))
}

func (c *APIClient) AddPick(team domain.TeamID, hero string, slot int) (*domain.DraftState, error) {
	return c.mutateDraft(http.MethodPost, "/draft/picks", handlers.NewSlotRequest(team, hero, slot))
}

func (c *APIClient) Turn() (*service.TurnInfo, error) {
	var out service.TurnInfo
	if err := c.getJSON("/draft/turn", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) NextPick() (*domain.Recommendation, error) {
	var out handlers.NextPickResponse
	if err := c.getJSON("/draft/next-pick", &out); err != nil {
		return nil, err
	}
	return out.Suggestion, nil
}

func (c *APIClient) WinRate() (*service.WinRateEstimate, error) {
	var out service.WinRateEstimate
	if err := c.getJSON("/draft/win-rate", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) mutateDraft(method, path string, body interface{}) (*domain.DraftState, error) {
	resp, err := c.do(method, path, body)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", path, err)
	}
	defer resp.Body.Close()
	if err := expect(resp, http.StatusOK); err != nil {
		return nil, err
	}

	var state domain.DraftState
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &state, nil
}

// HTTP helpers

func (c *APIClient) getJSON(path string, v interface{}) error {
	resp, err := c.do(http.MethodGet, path, nil)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", path, err)
	}
	defer resp.Body.Close()
	if err := expect(resp, http.StatusOK); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *APIClient) do(method, path string, body interface{}) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.httpClient.Do(req)
}

func expect(resp *http.Response, status int) error {
	if resp.StatusCode == status {
		return nil
	}
	bodyBytes, _ := io.ReadAll(resp.Body)
	if resp.StatusCode == http.StatusConflict {
		return fmt.Errorf("%w: %s", errConflict, bytes.TrimSpace(bodyBytes))
	}
	return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, bytes.TrimSpace(bodyBytes))
}
