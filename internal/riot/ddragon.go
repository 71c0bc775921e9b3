package riot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
)

const publicDDragonBase = "https://ddragon.leagueoflegends.com"

// ddragonClient resolves champion ids to display names from the static
// data dragon CDN. The champion table changes only on patch days, so it
// is fetched once per process and kept in memory.
type ddragonClient struct {
	baseURL string

	mu        sync.Mutex
	champions map[int64]string
}

func newDDragonClient() *ddragonClient {
	return &ddragonClient{baseURL: publicDDragonBase}
}

type championData struct {
	Data map[string]struct {
		Key  string `json:"key"`
		Name string `json:"name"`
	} `json:"data"`
}

func (d *ddragonClient) championName(ctx context.Context, hc *http.Client, championID int64) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.champions == nil {
		if err := d.loadLocked(ctx, hc); err != nil {
			return "", err
		}
	}

	name, ok := d.champions[championID]
	if !ok {
		// New champion on an older cached patch. Fall back to the id.
		return fmt.Sprintf("Champion %d", championID), nil
	}
	return name, nil
}

// loadLocked fetches the latest patch version and its champion table.
// Caller holds d.mu.
func (d *ddragonClient) loadLocked(ctx context.Context, hc *http.Client) error {
	var versions []string
	if err := d.getJSON(ctx, hc, d.baseURL+"/api/versions.json", &versions); err != nil {
		return fmt.Errorf("fetch ddragon versions: %w", err)
	}
	if len(versions) == 0 {
		return fmt.Errorf("ddragon returned no versions")
	}

	var data championData
	endpoint := fmt.Sprintf("%s/cdn/%s/data/en_US/champion.json", d.baseURL, versions[0])
	if err := d.getJSON(ctx, hc, endpoint, &data); err != nil {
		return fmt.Errorf("fetch champion data: %w", err)
	}

	champions := make(map[int64]string, len(data.Data))
	for _, champ := range data.Data {
		id, err := strconv.ParseInt(champ.Key, 10, 64)
		if err != nil {
			continue
		}
		champions[id] = champ.Name
	}
	d.champions = champions
	return nil
}

func (d *ddragonClient) getJSON(ctx context.Context, hc *http.Client, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d from %s", resp.StatusCode, endpoint)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
