package gtfsrt

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/bayarea-transit/vehicle-tracker/config"
	"github.com/bayarea-transit/vehicle-tracker/fetch"
	"github.com/bayarea-transit/vehicle-tracker/vehicle"
)

const sourceName = "regional-gtfsrt"

// Client fetches GTFS-RT vehicle positions for a set of agency codes from
// one regional aggregator endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	agencies   []string
	aggregate  string
	httpClient *http.Client
	retry      fetch.RetryPolicy
	now        func() time.Time
}

func NewClient(cfg config.RegionalFeedConfig) *Client {
	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
	return &Client{
		baseURL:   cfg.BaseURL,
		apiKey:    cfg.APIKey,
		agencies:  cfg.Agencies,
		aggregate: cfg.AggregateAgency,
		// Per-attempt timeouts come from the retry policy; the client-level
		// timeout is a backstop.
		httpClient: &http.Client{Timeout: 2 * timeout},
		retry:      fetch.DefaultRetryPolicy(timeout),
		now:        time.Now,
	}
}

func (c *Client) Name() string { return sourceName }

// Fetch queries every configured agency sub-feed and returns the combined
// partial results. A missing credential short-circuits to an empty result:
// "not configured" is intentional disablement, not an error.
func (c *Client) Fetch(ctx context.Context) ([]vehicle.Record, error) {
	if config.IsPlaceholder(c.apiKey) {
		return nil, nil
	}
	var all []vehicle.Record
	failed := 0
	for _, agency := range c.agencies {
		recs, err := c.fetchAgency(ctx, agency)
		if err != nil {
			failed++
			log.Printf("gtfsrt: %v", err)
			continue
		}
		log.Printf("gtfsrt: fetched %d vehicles from agency %s", len(recs), agency)
		all = append(all, recs...)
	}
	if failed == len(c.agencies) && len(c.agencies) > 0 {
		return all, fmt.Errorf("all %d agency sub-feeds failed", failed)
	}
	return all, nil
}

func (c *Client) fetchAgency(ctx context.Context, agency string) ([]vehicle.Record, error) {
	var body []byte
	err := c.retry.Do(ctx, func(ctx context.Context) error {
		var err error
		body, err = c.get(ctx, agency)
		return err
	})
	if err != nil {
		return nil, fetch.Unavailable(sourceName, agency, err)
	}

	var feed gtfs.FeedMessage
	if err := proto.Unmarshal(body, &feed); err != nil {
		return nil, fetch.Decode(sourceName, agency, err)
	}
	return c.parseEntities(&feed, agency), nil
}

func (c *Client) get(ctx context.Context, agency string) ([]byte, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("agency", agency)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, c.baseURL)
	}
	return io.ReadAll(resp.Body)
}
