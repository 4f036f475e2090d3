// Package browser implements the remote station-directory client.
// It owns transport, response caching and wire decoding; the rest of the
// application only sees tune.Station records and receipt DTOs.
package browser

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"tune-go/internal/config"
	"tune-go/internal/tune"

	"github.com/goccy/go-json"
	"github.com/patrickmn/go-cache"
)

// Client talks to a radio-directory server over its JSON REST API and
// implements tune.DirectoryClient.
//
// Search and category responses are cached by request path for the
// configured TTL; vote and click requests always hit the server.
type Client struct {
	baseURL   *url.URL
	hc        *http.Client
	cache     *cache.Cache
	userAgent string
	logger    tune.Logger
}

// NewClient creates a directory client from config.
func NewClient(cfg config.DirectoryConfig, logger tune.Logger) (*Client, error) {
	base, err := url.Parse(cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid directory server URL %q: %w", cfg.ServerURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid directory server URL %q: need scheme and host", cfg.ServerURL)
	}

	ttl := time.Duration(cfg.CacheTTLSec) * time.Second
	return &Client{
		baseURL:   base,
		hc:        &http.Client{Timeout: time.Duration(cfg.TimeoutSec) * time.Second},
		cache:     cache.New(ttl, 2*ttl),
		userAgent: cfg.UserAgent,
		logger:    logger,
	}, nil
}

// Search returns stations matching the compiled filter.
func (c *Client) Search(ctx context.Context, filter *tune.Filter) ([]*tune.Station, error) {
	path := "/json/stations/search"
	if qs := filter.QueryString(); qs != "" {
		path += "?" + qs
	}
	return c.fetchStations(ctx, path)
}

// Stations looks stations up through one of the directory's fixed endpoints.
func (c *Client) Stations(ctx context.Context, by tune.SearchBy, term string) ([]*tune.Station, error) {
	token := by.Token()
	if token == "" {
		return nil, fmt.Errorf("unknown station lookup kind %d", by)
	}
	path := "/json/stations/" + token
	if term != "" {
		path += "/" + url.PathEscape(term)
	}
	return c.fetchStations(ctx, path)
}

// Categories enumerates the distinct values of one station attribute.
func (c *Client) Categories(ctx context.Context, kind tune.CategoryKind) ([]tune.CategoryItem, error) {
	var items []tune.CategoryItem
	if err := c.getJSON(ctx, "/json/"+string(kind), true, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Vote casts a vote for a station. Never cached.
func (c *Client) Vote(ctx context.Context, uuid string) (*tune.VoteReceipt, error) {
	var receipt tune.VoteReceipt
	if err := c.getJSON(ctx, "/json/vote/"+url.PathEscape(uuid), false, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// Click registers a click (listen) for a station. Never cached.
func (c *Client) Click(ctx context.Context, uuid string) (*tune.ClickReceipt, error) {
	var receipt tune.ClickReceipt
	if err := c.getJSON(ctx, "/json/url/"+url.PathEscape(uuid), false, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (c *Client) fetchStations(ctx context.Context, path string) ([]*tune.Station, error) {
	// Stations arrive as generic field-name/value rows; the station field
	// accessor table maps them so new directory fields never break decoding.
	var rows []map[string]any
	if err := c.getJSON(ctx, path, true, &rows); err != nil {
		return nil, err
	}

	stations := make([]*tune.Station, 0, len(rows))
	for _, row := range rows {
		station := tune.NewStation()
		station.Source = tune.SourceRemote
		for name, value := range row {
			if err := tune.SetField(station, name, value); err != nil {
				c.logger.Warn("skipping malformed station field", "error", err)
			}
		}
		stations = append(stations, station)
	}
	return stations, nil
}

// getJSON performs a GET against the directory and decodes the JSON body
// into out. Cacheable responses are stored and served by raw body, so every
// caller gets its own decode.
func (c *Client) getJSON(ctx context.Context, path string, cacheable bool, out any) error {
	if cacheable {
		if body, ok := c.cache.Get(path); ok {
			c.logger.Debug("directory cache hit", "path", path)
			return json.Unmarshal(body.([]byte), out)
		}
	}

	u := *c.baseURL
	ref, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("building request URL: %w", err)
	}
	reqURL := u.ResolveReference(ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("directory request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("directory returned %s for %s", resp.Status, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading directory response: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding directory response: %w", err)
	}

	if cacheable {
		c.cache.SetDefault(path, body)
	}
	return nil
}
