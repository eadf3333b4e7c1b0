package flickr

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

// Client reads Flickr's public photo feed. No API key is required.
type Client struct {
	feedURL string
	client  *http.Client
}

// Config holds the knobs for a Client.
type Config struct {
	FeedURL string
	Timeout time.Duration
}

// NewClient creates a Flickr feed client.
func NewClient(cfg Config) *Client {
	if strings.TrimSpace(cfg.FeedURL) == "" {
		cfg.FeedURL = "https://www.flickr.com/services/feeds/photos_public.gne"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		feedURL: cfg.FeedURL,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// feed mirrors the subset of the public feed payload we care about.
type feed struct {
	Items []feedItem `json:"items"`
}

type feedItem struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Author    string `json:"author"`
	AuthorURL string `json:"author_url"`
	Published string `json:"published"`
	Media     struct {
		M string `json:"m"`
	} `json:"media"`
}

// Platform returns the label stamped on this source's records.
func (c *Client) Platform() string { return model.PlatformFlickr }

// Search fetches the public feed filtered by the query as a tag and maps up
// to max items. The item list is truncated to max before mapping, so a
// skipped item still uses up a slot. Any failure is absorbed: Search logs a
// diagnostic and returns an empty sequence.
func (c *Client) Search(ctx context.Context, query string, max int) []model.ImageRecord {
	return scout.BestEffort("flickr", func() ([]model.ImageRecord, error) {
		return c.search(ctx, query, max)
	})
}

// search performs the single-shot feed request.
// API: GET /services/feeds/photos_public.gne?tags=...&format=json&nojsoncallback=1
func (c *Client) search(ctx context.Context, query string, max int) ([]model.ImageRecord, error) {
	if max < 0 {
		max = 0
	}
	q := url.Values{
		"tags":           {query},
		"format":         {"json"},
		"nojsoncallback": {"1"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("flickr: status %d", resp.StatusCode)
	}
	var raw feed
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("flickr: %w", err)
	}

	items := raw.Items
	if len(items) > max {
		items = items[:max]
	}
	records := make([]model.ImageRecord, 0, len(items))
	for _, it := range items {
		if rec, ok := convertItem(it); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

// convertItem maps a feed item to an ImageRecord. The feed only carries a
// medium-size URL; the large variant is derived by swapping the size
// suffix. Items without a medium URL are dropped. The feed has no
// popularity signal, so score stays 0.
func convertItem(it feedItem) (model.ImageRecord, bool) {
	imageURL := largeImageURL(it.Media.M)
	if imageURL == "" {
		return model.ImageRecord{}, false
	}
	return model.ImageRecord{
		URL:       imageURL,
		Title:     it.Title,
		Author:    displayName(it.Author),
		AuthorURL: it.AuthorURL,
		Platform:  model.PlatformFlickr,
		Timestamp: it.Published,
		SourceURL: it.Link,
	}, true
}

// largeImageURL swaps the medium size suffix for the large one
// (photo_m.jpg -> photo_b.jpg).
func largeImageURL(medium string) string {
	return strings.Replace(medium, "_m.jpg", "_b.jpg", 1)
}

// displayName extracts the display name from the feed's author format,
// "nobody@flickr.com (janedoe)". When no parenthesized portion is present
// the raw string is kept.
func displayName(author string) string {
	open := strings.Index(author, "(")
	if open < 0 {
		return author
	}
	end := strings.Index(author[open+1:], ")")
	if end < 0 {
		return author
	}
	return author[open+1 : open+1+end]
}
