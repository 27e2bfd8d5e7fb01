package departures

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/bayarea-transit/vehicle-tracker/config"
	"github.com/bayarea-transit/vehicle-tracker/fetch"
	"github.com/bayarea-transit/vehicle-tracker/vehicle"
)

const sourceName = "departures"

// Client fetches estimated departures for the whole station topology in one
// call and synthesizes vehicle records from them.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	now        func() time.Time
}

func NewClient(cfg config.DepartureFeedConfig) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond},
		now:        time.Now,
	}
}

func (c *Client) Name() string { return sourceName }

// Fetch returns the synthesized fleet, or an empty result when the
// credential is the placeholder.
func (c *Client) Fetch(ctx context.Context) ([]vehicle.Record, error) {
	if config.IsPlaceholder(c.apiKey) {
		return nil, nil
	}
	q := url.Values{}
	q.Set("cmd", "etd")
	q.Set("orig", "ALL")
	q.Set("key", c.apiKey)
	q.Set("json", "y")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fetch.Unavailable(sourceName, "", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fetch.Unavailable(sourceName, "", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fetch.Unavailable(sourceName, "", fmt.Errorf("HTTP %d from %s", resp.StatusCode, c.baseURL))
	}

	var payload etdResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fetch.Decode(sourceName, "", err)
	}
	return c.synthesize(&payload), nil
}
