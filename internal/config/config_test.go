package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFillDefaults(t *testing.T) {
	var c Config
	c.FillDefaults()

	require.Equal(t, "info", c.App.LogLevel)
	require.Equal(t, "https://www.reddit.com", c.Sources.Reddit.BaseURL)
	require.Equal(t, "Mozilla/5.0 (compatible; TravelBlogr/1.0)", c.Sources.Reddit.UserAgent)
	require.Equal(t, DefaultSubreddits, c.Sources.Reddit.Subreddits)
	require.Equal(t, DefaultExcludeKeywords, c.Sources.Reddit.ExcludeKeywords)
	require.Equal(t, 25, c.Sources.Reddit.PageLimit)
	require.Equal(t, "https://www.pinterest.com", c.Sources.Pinterest.BaseURL)
	require.Equal(t, c.Sources.Reddit.UserAgent, c.Sources.Pinterest.UserAgent)
	require.Equal(t, "https://www.flickr.com/services/feeds/photos_public.gne", c.Sources.Flickr.FeedURL)
	require.Equal(t, 20, c.Search.MaxImages)
	require.Equal(t, "10s", c.Search.Timeout)
	require.Equal(t, []string{"reddit", "pinterest", "flickr"}, c.Search.Sources)
	require.Equal(t, "1h", c.Cache.TTL)
	require.False(t, c.Cache.Enabled)
	require.Equal(t, "1h", c.Watch.Interval)
}

func TestFillDefaultsKeepsExplicitValues(t *testing.T) {
	c := Config{}
	c.Search.MaxImages = 5
	c.Sources.Reddit.Subreddits = []string{"analog"}
	c.Sources.Pinterest.UserAgent = "custom/1.0"
	c.FillDefaults()

	require.Equal(t, 5, c.Search.MaxImages)
	require.Equal(t, []string{"analog"}, c.Sources.Reddit.Subreddits)
	require.Equal(t, "custom/1.0", c.Sources.Pinterest.UserAgent)
}
