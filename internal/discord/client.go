package discord

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/kassalytics/tracker/internal/domain"
)

// APIClient handles communication with the tracker engine API
type APIClient struct {
	BaseURL string
	Client  *http.Client
	APIKey  string
}

// NewAPIClient creates a new API client. baseURL should include the
// /api/v1 prefix.
func NewAPIClient(baseURL, apiKey string) *APIClient {
	return &APIClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
		APIKey: apiKey,
	}
}

// doRequest performs an HTTP request with retry logic
func (c *APIClient) doRequest(method, path string, body interface{}) (*http.Response, error) {
	var reqBody []byte
	var err error

	if body != nil {
		reqBody, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
	}

	url := fmt.Sprintf("%s%s", c.BaseURL, path)

	// Retry configuration
	maxRetries := 3
	retryDelay := 500 * time.Millisecond

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff with jitter
			jitter := time.Duration(time.Now().UnixNano()%100) * time.Millisecond
			delay := retryDelay*time.Duration(1<<uint(attempt-1)) + jitter
			time.Sleep(delay)
			slog.Info("Retrying API request", "attempt", attempt, "path", path, "delay", delay)
		}

		req, err := http.NewRequest(method, url, bytes.NewBuffer(reqBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		if c.APIKey != "" {
			req.Header.Set("X-API-Key", c.APIKey)
		}

		resp, err := c.Client.Do(req)
		if err != nil {
			lastErr = err
			slog.Warn("API request failed", "error", err, "attempt", attempt)
			continue
		}

		// Success or non-retryable error
		if resp.StatusCode < 500 {
			return resp, nil
		}

		// Server error - retry
		resp.Body.Close()
		lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
		slog.Warn("Server error, will retry", "status", resp.StatusCode, "attempt", attempt)
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// apiError extracts the error message from a non-2xx response body.
func apiError(resp *http.Response) error {
	var errResp struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
		return fmt.Errorf("API error: %s", errResp.Error)
	}
	return fmt.Errorf("API returned status: %d", resp.StatusCode)
}

// dataEnvelope matches the engine's DataResponse wrapper.
type dataEnvelope struct {
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data"`
}

// PlaceBet places a wager on one side of a tracked game
func (c *APIClient) PlaceBet(bettorID, gameID, side string, stake int64) (*domain.Wager, error) {
	req := map[string]interface{}{
		"game_id":   gameID,
		"bettor_id": bettorID,
		"side":      side,
		"stake":     stake,
	}

	resp, err := c.doRequest(http.MethodPost, "/bets", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, apiError(resp)
	}

	var wager domain.Wager
	if err := json.NewDecoder(resp.Body).Decode(&wager); err != nil {
		return nil, fmt.Errorf("failed to decode wager: %w", err)
	}

	return &wager, nil
}

// GetBalance retrieves a bettor's account
func (c *APIClient) GetBalance(bettorID string) (*domain.BettorAccount, error) {
	params := url.Values{}
	params.Set("bettor_id", bettorID)

	resp, err := c.doRequest(http.MethodGet, "/balance?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var account domain.BettorAccount
	if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
		return nil, fmt.Errorf("failed to decode account: %w", err)
	}

	return &account, nil
}

// GetLeaderboard retrieves the top bettors by balance
func (c *APIClient) GetLeaderboard(limit int) ([]domain.BettorAccount, error) {
	resp, err := c.doRequest(http.MethodGet, "/leaderboard?limit="+strconv.Itoa(limit), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var envelope dataEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode leaderboard: %w", err)
	}

	var accounts []domain.BettorAccount
	if err := json.Unmarshal(envelope.Data, &accounts); err != nil {
		return nil, fmt.Errorf("failed to decode leaderboard: %w", err)
	}

	return accounts, nil
}

// GetWagerHistory retrieves a bettor's recent wagers
func (c *APIClient) GetWagerHistory(bettorID string, limit int) ([]domain.Wager, error) {
	params := url.Values{}
	params.Set("bettor_id", bettorID)
	params.Set("limit", strconv.Itoa(limit))

	resp, err := c.doRequest(http.MethodGet, "/bets/history?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var envelope dataEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}

	var wagers []domain.Wager
	if err := json.Unmarshal(envelope.Data, &wagers); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}

	return wagers, nil
}

// ListGames retrieves all unresolved tracked games
func (c *APIClient) ListGames() ([]domain.TrackedGame, error) {
	resp, err := c.doRequest(http.MethodGet, "/games", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var envelope dataEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode games: %w", err)
	}

	var games []domain.TrackedGame
	if err := json.Unmarshal(envelope.Data, &games); err != nil {
		return nil, fmt.Errorf("failed to decode games: %w", err)
	}

	return games, nil
}

// GetGame retrieves a single tracked game
func (c *APIClient) GetGame(gameID string) (*domain.TrackedGame, error) {
	params := url.Values{}
	params.Set("game_id", gameID)

	resp, err := c.doRequest(http.MethodGet, "/games/get?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var game domain.TrackedGame
	if err := json.NewDecoder(resp.Body).Decode(&game); err != nil {
		return nil, fmt.Errorf("failed to decode game: %w", err)
	}

	return &game, nil
}

// TrackAccount subscribes a Riot account for live-game tracking
func (c *APIClient) TrackAccount(gameName, tagLine string) (*domain.TrackedAccount, error) {
	req := map[string]string{
		"game_name": gameName,
		"tag_line":  tagLine,
	}

	resp, err := c.doRequest(http.MethodPost, "/accounts/track", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, apiError(resp)
	}

	var envelope dataEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode account: %w", err)
	}

	var account domain.TrackedAccount
	if err := json.Unmarshal(envelope.Data, &account); err != nil {
		return nil, fmt.Errorf("failed to decode account: %w", err)
	}

	return &account, nil
}

// UntrackAccount stops tracking a Riot account
func (c *APIClient) UntrackAccount(gameName, tagLine string) (string, error) {
	req := map[string]string{
		"game_name": gameName,
		"tag_line":  tagLine,
	}

	resp, err := c.doRequest(http.MethodPost, "/accounts/untrack", req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apiError(resp)
	}

	var msgResp struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&msgResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return msgResp.Message, nil
}

// ListAccounts retrieves all tracked accounts
func (c *APIClient) ListAccounts() ([]domain.TrackedAccount, error) {
	resp, err := c.doRequest(http.MethodGet, "/accounts", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var envelope dataEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode accounts: %w", err)
	}

	var accounts []domain.TrackedAccount
	if err := json.Unmarshal(envelope.Data, &accounts); err != nil {
		return nil, fmt.Errorf("failed to decode accounts: %w", err)
	}

	return accounts, nil
}

// ResolveGame settles a game by operator decision
func (c *APIClient) ResolveGame(gameID, winningSide string) (*domain.SettlementSummary, error) {
	req := map[string]string{
		"game_id":      gameID,
		"winning_side": winningSide,
	}

	resp, err := c.doRequest(http.MethodPost, "/admin/resolve", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var summary domain.SettlementSummary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return nil, fmt.Errorf("failed to decode summary: %w", err)
	}

	return &summary, nil
}
