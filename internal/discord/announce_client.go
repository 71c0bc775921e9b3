package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kassalytics/tracker/internal/domain"
)

// NotifyClient is the engine's HTTP client for the bot's internal
// notification endpoints. It implements the tracker's Notifier
// interface so the engine never links the Discord session directly.
type NotifyClient struct {
	BaseURL string
	Client  *http.Client
}

// NewNotifyClient creates a notifier client for the bot at baseURL
func NewNotifyClient(baseURL string) *NotifyClient {
	return &NotifyClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *NotifyClient) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("notification request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("notification returned status %d: %s", resp.StatusCode, bytes.TrimSpace(data))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode notification response: %w", err)
		}
	}
	return nil
}

// GameOpened announces a new game and returns the posted message id
func (c *NotifyClient) GameOpened(ctx context.Context, game *domain.TrackedGame) (string, error) {
	var resp GameOpenedResponse
	if err := c.post(ctx, "/notify/game-opened", GameOpenedRequest{Game: *game}, &resp); err != nil {
		return "", err
	}
	return resp.Ref, nil
}

// BettingClosed announces the end of a betting window
func (c *NotifyClient) BettingClosed(ctx context.Context, game *domain.TrackedGame) error {
	return c.post(ctx, "/notify/betting-closed", BettingClosedRequest{Game: *game}, nil)
}

// GameResolved announces a settled game
func (c *NotifyClient) GameResolved(ctx context.Context, game *domain.TrackedGame, summary *domain.SettlementSummary) error {
	return c.post(ctx, "/notify/game-resolved", GameResolvedRequest{Game: *game, Summary: *summary}, nil)
}

// GameNeedsManual flags a game for operator settlement
func (c *NotifyClient) GameNeedsManual(ctx context.Context, game *domain.TrackedGame) error {
	return c.post(ctx, "/notify/needs-manual", NeedsManualRequest{Game: *game}, nil)
}
