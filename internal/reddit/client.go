package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"imagescout/internal/model"
	"imagescout/internal/scout"
)

// imageExtensions mark a post URL as a direct image link.
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// imageHosts are direct-image hosts whose URLs carry no extension.
var imageHosts = []string{"i.redd.it", "i.imgur.com"}

// Client searches Reddit's public JSON API. No API key is required; Reddit
// only asks for a descriptive User-Agent.
type Client struct {
	baseURL    string
	userAgent  string
	subreddits []string
	exclude    []string
	pageLimit  int
	client     *http.Client
}

// Config holds the knobs for a Client. Zero values fall back to the public
// endpoint and the stock photography communities.
type Config struct {
	BaseURL         string
	UserAgent       string
	Subreddits      []string
	ExcludeKeywords []string
	PageLimit       int
	Timeout         time.Duration
}

// NewClient creates a Reddit search client.
func NewClient(cfg Config) *Client {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = "https://www.reddit.com"
	}
	if cfg.PageLimit <= 0 {
		cfg.PageLimit = 25
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		subreddits: cfg.Subreddits,
		exclude:    cfg.ExcludeKeywords,
		pageLimit:  cfg.PageLimit,
		client:     &http.Client{Timeout: cfg.Timeout},
	}
}

// listing mirrors the subset of Reddit's search response we care about.
type listing struct {
	Data struct {
		Children []struct {
			Data post `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type post struct {
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	Author     string  `json:"author"`
	Score      int     `json:"score"`
	CreatedUTC float64 `json:"created_utc"`
	Permalink  string  `json:"permalink"`
}

// Platform returns the label stamped on this source's records.
func (c *Client) Platform() string { return model.PlatformReddit }

// Search walks the configured subreddits in order and collects up to max
// image posts for the query. The walk stops as soon as the cap is reached,
// so later subreddits are not requested at all; a non-positive cap means
// nothing is requested. A failing subreddit contributes zero results and
// the walk continues; Search itself never fails.
func (c *Client) Search(ctx context.Context, query string, max int) []model.ImageRecord {
	if max < 0 {
		max = 0
	}
	out := make([]model.ImageRecord, 0, max)
	for _, sub := range c.subreddits {
		if len(out) >= max {
			break
		}
		sub := sub
		remaining := max - len(out)
		got := scout.BestEffort("r/"+sub, func() ([]model.ImageRecord, error) {
			return c.searchSubreddit(ctx, sub, query, remaining)
		})
		out = append(out, got...)
		slog.Info("reddit: subreddit searched", "subreddit", sub, "total", len(out))
	}
	return out
}

// searchSubreddit issues one search request restricted to a subreddit and
// maps the accepted posts, stopping once remaining records are collected.
// API: GET /r/{sub}/search.json?q={query}&restrict_sr=1&sort=top&limit=N
func (c *Client) searchSubreddit(ctx context.Context, sub, query string, remaining int) ([]model.ImageRecord, error) {
	endpoint := fmt.Sprintf("%s/r/%s/search.json", c.baseURL, url.PathEscape(sub))
	q := url.Values{
		"q":           {query},
		"restrict_sr": {"1"},
		"sort":        {"top"},
		"limit":       {strconv.Itoa(c.pageLimit)},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("reddit: r/%s status %d", sub, resp.StatusCode)
	}
	var raw listing
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("reddit: r/%s: %w", sub, err)
	}

	records := make([]model.ImageRecord, 0, remaining)
	for _, child := range raw.Data.Children {
		if len(records) >= remaining {
			break
		}
		p := child.Data
		if !isImageURL(p.URL) {
			continue
		}
		if excludedTitle(p.Title, c.exclude) {
			continue
		}
		records = append(records, convertPost(p))
	}
	return records, nil
}

// convertPost maps a Reddit post to an ImageRecord. Score is the post's
// upvote count; the permalink is resolved against reddit.com.
func convertPost(p post) model.ImageRecord {
	rec := model.ImageRecord{
		URL:      p.URL,
		Title:    p.Title,
		Platform: model.PlatformReddit,
		Score:    p.Score,
	}
	if p.Author != "" {
		rec.Author = p.Author
		rec.AuthorURL = "https://reddit.com/u/" + p.Author
	}
	if p.CreatedUTC > 0 {
		rec.Timestamp = time.Unix(int64(p.CreatedUTC), 0).UTC().Format(time.RFC3339)
	}
	if p.Permalink != "" {
		rec.SourceURL = "https://reddit.com" + p.Permalink
	}
	return rec
}

// isImageURL reports whether the post links to a direct image: either a
// known image extension or one of the direct-image hosts.
func isImageURL(u string) bool {
	if u == "" {
		return false
	}
	for _, ext := range imageExtensions {
		if strings.HasSuffix(u, ext) {
			return true
		}
	}
	for _, host := range imageHosts {
		if strings.Contains(u, host) {
			return true
		}
	}
	return false
}

// excludedTitle reports whether the lower-cased title contains any of the
// exclusion keywords.
func excludedTitle(title string, exclude []string) bool {
	t := strings.ToLower(title)
	for _, kw := range exclude {
		if strings.Contains(t, kw) {
			return true
		}
	}
	return false
}
