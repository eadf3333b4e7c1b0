package pinterest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"imagescout/internal/model"
	"imagescout/internal/scout"
)

// sizePreference orders the image renditions from best to worst; the first
// available one wins.
var sizePreference = []string{"orig", "736x", "564x"}

// Client searches Pinterest through its internal BaseSearchResource
// endpoint. No API key is required; the endpoint is the one the web UI
// itself calls.
type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

// Config holds the knobs for a Client.
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// NewClient creates a Pinterest search client.
func NewClient(cfg Config) *Client {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = "https://www.pinterest.com"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: cfg.Timeout},
	}
}

// searchResponse mirrors the subset of the BaseSearchResource payload we
// care about.
type searchResponse struct {
	ResourceResponse struct {
		Data struct {
			Results []pin `json:"results"`
		} `json:"data"`
	} `json:"resource_response"`
}

type pin struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	GridTitle string `json:"grid_title"`
	Images    map[string]struct {
		URL string `json:"url"`
	} `json:"images"`
	Pinner struct {
		Username   string `json:"username"`
		ProfileURL string `json:"profile_url"`
	} `json:"pinner"`
	AggregatedPinData struct {
		AggregatedStats struct {
			Saves int `json:"saves"`
		} `json:"aggregated_stats"`
	} `json:"aggregated_pin_data"`
}

// searchOptions is the JSON payload Pinterest expects in the data query
// parameter.
type searchOptions struct {
	Options struct {
		Query string `json:"query"`
		Scope string `json:"scope"`
	} `json:"options"`
	Context struct{} `json:"context"`
}

// Platform returns the label stamped on this source's records.
func (c *Client) Platform() string { return model.PlatformPinterest }

// Search issues one request against the search resource and maps up to max
// pins. The result list is truncated to max before mapping, so a skipped
// pin still uses up a slot. Any failure is absorbed: Search logs a
// diagnostic and returns an empty sequence.
func (c *Client) Search(ctx context.Context, query string, max int) []model.ImageRecord {
	return scout.BestEffort("pinterest", func() ([]model.ImageRecord, error) {
		return c.search(ctx, query, max)
	})
}

// search performs the single-shot request.
// API: GET /resource/BaseSearchResource/get/?source_url=...&data={json}
func (c *Client) search(ctx context.Context, query string, max int) ([]model.ImageRecord, error) {
	if max < 0 {
		max = 0
	}
	var opts searchOptions
	opts.Options.Query = query
	opts.Options.Scope = "pins"
	payload, err := json.Marshal(opts)
	if err != nil {
		return nil, err
	}
	q := url.Values{
		"source_url": {"/search/pins/?q=" + url.QueryEscape(query)},
		"data":       {string(payload)},
	}
	endpoint := c.baseURL + "/resource/BaseSearchResource/get/?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("pinterest: status %d", resp.StatusCode)
	}
	var raw searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("pinterest: %w", err)
	}

	pins := raw.ResourceResponse.Data.Results
	if len(pins) > max {
		pins = pins[:max]
	}
	records := make([]model.ImageRecord, 0, len(pins))
	for _, p := range pins {
		if rec, ok := convertPin(p); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

// convertPin maps a pin to an ImageRecord. Pins without any usable image
// rendition are dropped. Score is the aggregated saves count.
func convertPin(p pin) (model.ImageRecord, bool) {
	imageURL := bestImageURL(p.Images)
	if imageURL == "" {
		return model.ImageRecord{}, false
	}
	title := p.Title
	if title == "" {
		title = p.GridTitle
	}
	rec := model.ImageRecord{
		URL:       imageURL,
		Title:     title,
		Author:    p.Pinner.Username,
		AuthorURL: p.Pinner.ProfileURL,
		Platform:  model.PlatformPinterest,
		Score:     p.AggregatedPinData.AggregatedStats.Saves,
	}
	if p.ID != "" {
		rec.SourceURL = "https://www.pinterest.com/pin/" + p.ID + "/"
	}
	return rec, true
}

// bestImageURL picks the highest-resolution rendition available.
func bestImageURL(images map[string]struct {
	URL string `json:"url"`
}) string {
	for _, size := range sizePreference {
		if img, ok := images[size]; ok && img.URL != "" {
			return img.URL
		}
	}
	return ""
}
