// Package riot is the HTTP client for the Riot Games API surface the
// engine needs: account lookup, live-game spectation, ranked entries
// and finished-match results.
package riot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/kassalytics/tracker/internal/domain"
	"github.com/kassalytics/tracker/internal/logger"
)

const (
	defaultTimeout = 10 * time.Second

	accountCacheSize = 512
	leagueCacheSize  = 1024
	leagueCacheTTL   = 10 * time.Minute
)

// regionalRoute maps a platform routing value to its regional cluster.
var regionalRoute = map[string]string{
	"na1": "americas", "br1": "americas", "la1": "americas", "la2": "americas",
	"euw1": "europe", "eun1": "europe", "tr1": "europe", "ru": "europe",
	"kr": "asia", "jp1": "asia",
	"oc1": "sea", "ph2": "sea", "sg2": "sea", "th2": "sea", "tw2": "sea", "vn2": "sea",
}

// Client talks to the Riot API for a single platform. It is safe for
// concurrent use; a shared throttle keeps consecutive requests at least
// one gap apart so polling sweeps stay inside rate limits.
type Client struct {
	httpClient *http.Client
	apiKey     string
	platform   string

	platformBase string
	regionalBase string

	throttle time.Duration
	mu       sync.Mutex
	lastReq  time.Time

	accountCache *lru.Cache[string, Account]
	leagueCache  *expirable.LRU[string, []LeagueEntry]

	ddragon *ddragonClient
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURLs points the client at explicit endpoints instead of the
// public Riot hosts. Tests use this with httptest servers.
func WithBaseURLs(platformBase, regionalBase, ddragonBase string) Option {
	return func(c *Client) {
		c.platformBase = platformBase
		c.regionalBase = regionalBase
		c.ddragon.baseURL = ddragonBase
	}
}

// WithThrottle sets the minimum gap between consecutive requests.
// Zero disables throttling.
func WithThrottle(gap time.Duration) Option {
	return func(c *Client) { c.throttle = gap }
}

// NewClient builds a client for a platform routing value such as "euw1".
func NewClient(apiKey, platform string, opts ...Option) (*Client, error) {
	platform = strings.ToLower(platform)
	regional, ok := regionalRoute[platform]
	if !ok {
		return nil, fmt.Errorf("unknown platform routing value %q", platform)
	}

	accountCache, err := lru.New[string, Account](accountCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create account cache: %w", err)
	}

	c := &Client{
		httpClient:   &http.Client{Timeout: defaultTimeout},
		apiKey:       apiKey,
		platform:     platform,
		platformBase: fmt.Sprintf("https://%s.api.riotgames.com", platform),
		regionalBase: fmt.Sprintf("https://%s.api.riotgames.com", regional),
		accountCache: accountCache,
		leagueCache:  expirable.NewLRU[string, []LeagueEntry](leagueCacheSize, nil, leagueCacheTTL),
		ddragon:      newDDragonClient(),
	}

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Platform returns the platform routing value the client was built for.
func (c *Client) Platform() string {
	return c.platform
}

// AccountByRiotID resolves a GameName#TagLine pair to its account.
// Results are cached; a riot id never changes puuid.
func (c *Client) AccountByRiotID(ctx context.Context, gameName, tagLine string) (*Account, error) {
	cacheKey := strings.ToLower(gameName + "#" + tagLine)
	if acct, ok := c.accountCache.Get(cacheKey); ok {
		return &acct, nil
	}

	endpoint := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		c.regionalBase, url.PathEscape(gameName), url.PathEscape(tagLine))

	var acct Account
	found, err := c.get(ctx, endpoint, &acct)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: riot id %s#%s", domain.ErrAccountNotFound, gameName, tagLine)
	}

	c.accountCache.Add(cacheKey, acct)
	return &acct, nil
}

// ActiveGame returns the live game the account is currently in, or
// (nil, nil) when the account is not in a game. The 404 from the
// spectator endpoint is the normal "not playing" answer, not an error.
func (c *Client) ActiveGame(ctx context.Context, puuid string) (*CurrentGameInfo, error) {
	endpoint := fmt.Sprintf("%s/lol/spectator/v5/active-games/by-summoner/%s",
		c.platformBase, url.PathEscape(puuid))

	var game CurrentGameInfo
	found, err := c.get(ctx, endpoint, &game)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &game, nil
}

// LeagueEntries returns the account's ranked standings across queues.
// Entries are cached briefly; rank moves slowly relative to polling.
func (c *Client) LeagueEntries(ctx context.Context, puuid string) ([]LeagueEntry, error) {
	if entries, ok := c.leagueCache.Get(puuid); ok {
		return entries, nil
	}

	endpoint := fmt.Sprintf("%s/lol/league/v4/entries/by-puuid/%s",
		c.platformBase, url.PathEscape(puuid))

	var entries []LeagueEntry
	found, err := c.get(ctx, endpoint, &entries)
	if err != nil {
		return nil, err
	}
	if !found {
		// No ranked history yet. Cache the empty answer too.
		entries = []LeagueEntry{}
	}

	c.leagueCache.Add(puuid, entries)
	return entries, nil
}

// SoloQueueEntry picks the ranked solo queue standing out of the
// account's entries, or nil when the account has none.
func SoloQueueEntry(entries []LeagueEntry) *LeagueEntry {
	for i := range entries {
		if entries[i].QueueType == QueueTypeRankedSolo {
			return &entries[i]
		}
	}
	return nil
}

// MatchResult fetches the finished match and reports the outcome from
// the tracked player's perspective. Returns ErrGameNotFound while the
// match has not reached the match history yet.
func (c *Client) MatchResult(ctx context.Context, matchID, puuid string) (*domain.MatchResult, error) {
	endpoint := fmt.Sprintf("%s/lol/match/v5/matches/%s",
		c.regionalBase, url.PathEscape(matchID))

	var match matchResponse
	found, err := c.get(ctx, endpoint, &match)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: match %s", domain.ErrGameNotFound, matchID)
	}

	result := &domain.MatchResult{
		GameID:   matchID,
		Duration: time.Duration(match.Info.GameDuration) * time.Second,
	}

	var trackedFound bool
	for _, p := range match.Info.Participants {
		if p.Win {
			if p.TeamID == TeamIDBlue {
				result.WinningSide = domain.SideBlue
			} else {
				result.WinningSide = domain.SideRed
			}
		}
		if p.PUUID == puuid {
			result.TrackedWon = p.Win
			trackedFound = true
		}
	}
	if !trackedFound {
		return nil, fmt.Errorf("tracked player %s not in match %s", puuid, matchID)
	}
	return result, nil
}

// ChampionName resolves a champion id to its display name via data
// dragon. The champion table is fetched once and kept in memory.
func (c *Client) ChampionName(ctx context.Context, championID int64) (string, error) {
	return c.ddragon.championName(ctx, c.httpClient, championID)
}

// get performs a throttled GET and decodes the JSON body into out.
// Returns found=false on 404. Rate limits, server errors and transport
// failures all wrap ErrUpstreamUnavailable so callers can retry later.
func (c *Client) get(ctx context.Context, endpoint string, out any) (bool, error) {
	if err := c.waitThrottle(ctx); err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Riot-Token", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return false, fmt.Errorf("decode response: %w", err)
		}
		return true, nil
	case resp.StatusCode == http.StatusNotFound:
		io.Copy(io.Discard, resp.Body)
		return false, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		logger.FromContext(ctx).Warn("riot api unavailable",
			"status", resp.StatusCode, "endpoint", req.URL.Path)
		return false, fmt.Errorf("%w: status %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return false, fmt.Errorf("riot api status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
}

// waitThrottle blocks until the minimum request gap has elapsed.
func (c *Client) waitThrottle(ctx context.Context) error {
	if c.throttle <= 0 {
		return nil
	}

	c.mu.Lock()
	wait := c.throttle - time.Since(c.lastReq)
	if wait < 0 {
		wait = 0
	}
	// Reserve the next slot so concurrent callers queue behind us.
	c.lastReq = time.Now().Add(wait)
	c.mu.Unlock()

	if wait == 0 {
		return nil
	}
	select {
	case <-time.After(wait):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func matchID(platformID string, gameID int64) string {
	return fmt.Sprintf("%s_%d", strings.ToUpper(platformID), gameID)
}
