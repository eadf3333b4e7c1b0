package config

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// RedisConfig holds redis connection settings for the optional result cache.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CacheConfig controls the per-source result cache. Disabled by default;
// when disabled nothing connects to Redis.
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	TTL     string `mapstructure:"ttl"` // duration string, e.g., "1h"
}

// RedditConfig controls the Reddit source.
type RedditConfig struct {
	BaseURL         string   `mapstructure:"base_url"`
	UserAgent       string   `mapstructure:"user_agent"`
	Subreddits      []string `mapstructure:"subreddits"`
	ExcludeKeywords []string `mapstructure:"exclude_keywords"`
	PageLimit       int      `mapstructure:"page_limit"`
}

// PinterestConfig controls the Pinterest source.
type PinterestConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	UserAgent string `mapstructure:"user_agent"`
}

// FlickrConfig controls the Flickr source.
type FlickrConfig struct {
	FeedURL string `mapstructure:"feed_url"`
}

// DataSources groups the available sources.
type DataSources struct {
	Reddit    RedditConfig    `mapstructure:"reddit"`
	Pinterest PinterestConfig `mapstructure:"pinterest"`
	Flickr    FlickrConfig    `mapstructure:"flickr"`
}

// SearchConfig holds the defaults for a search run.
type SearchConfig struct {
	MaxImages int      `mapstructure:"max_images"` // per-source cap
	Timeout   string   `mapstructure:"timeout"`    // per-request, e.g., "10s"
	Sources   []string `mapstructure:"sources"`    // subset of reddit/pinterest/flickr
}

// GalleryConfig controls markdown gallery output.
type GalleryConfig struct {
	OutputDir string `mapstructure:"output_dir"`
	Title     string `mapstructure:"title"` // supports {.Query} and {.CurrentDate}
}

// OpenAIConfig enables the optional AI-written gallery intro.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// WatchConfig controls the periodic refresh mode.
type WatchConfig struct {
	Interval string   `mapstructure:"interval"` // duration string, e.g., "1h"
	Queries  []string `mapstructure:"queries"`
}

// Config is the top-level configuration structure.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Sources DataSources   `mapstructure:"sources"`
	Search  SearchConfig  `mapstructure:"search"`
	Gallery GalleryConfig `mapstructure:"gallery"`
	OpenAI  OpenAIConfig  `mapstructure:"openai"`
	Watch   WatchConfig   `mapstructure:"watch"`
}

// DefaultSubreddits are the photography communities searched when the config
// provides none.
var DefaultSubreddits = []string{
	"itookapicture",
	"travelphotography",
	"earthporn",
	"cityporn",
	"villageporn",
	"architectureporn",
}

// DefaultExcludeKeywords drop low-quality posts (memes, jokes, selfies) by
// title match.
var DefaultExcludeKeywords = []string{"meme", "funny", "joke", "selfie", "my face"}

// FillDefaults applies default values if not provided.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "127.0.0.1:6379"
	}
	if c.Cache.TTL == "" {
		c.Cache.TTL = "1h"
	}
	if c.Sources.Reddit.BaseURL == "" {
		c.Sources.Reddit.BaseURL = "https://www.reddit.com"
	}
	if c.Sources.Reddit.UserAgent == "" {
		c.Sources.Reddit.UserAgent = "Mozilla/5.0 (compatible; TravelBlogr/1.0)"
	}
	if len(c.Sources.Reddit.Subreddits) == 0 {
		c.Sources.Reddit.Subreddits = DefaultSubreddits
	}
	if len(c.Sources.Reddit.ExcludeKeywords) == 0 {
		c.Sources.Reddit.ExcludeKeywords = DefaultExcludeKeywords
	}
	if c.Sources.Reddit.PageLimit == 0 {
		c.Sources.Reddit.PageLimit = 25
	}
	if c.Sources.Pinterest.BaseURL == "" {
		c.Sources.Pinterest.BaseURL = "https://www.pinterest.com"
	}
	if c.Sources.Pinterest.UserAgent == "" {
		c.Sources.Pinterest.UserAgent = c.Sources.Reddit.UserAgent
	}
	if c.Sources.Flickr.FeedURL == "" {
		c.Sources.Flickr.FeedURL = "https://www.flickr.com/services/feeds/photos_public.gne"
	}
	if c.Search.MaxImages == 0 {
		c.Search.MaxImages = 20
	}
	if c.Search.Timeout == "" {
		c.Search.Timeout = "10s"
	}
	if len(c.Search.Sources) == 0 {
		c.Search.Sources = []string{"reddit", "pinterest", "flickr"}
	}
	if c.Gallery.OutputDir == "" {
		c.Gallery.OutputDir = "./out"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
	if c.Watch.Interval == "" {
		c.Watch.Interval = "1h"
	}
}
