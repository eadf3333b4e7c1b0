package model

// Platform labels for the supported sources.
const (
	PlatformReddit    = "Reddit"
	PlatformPinterest = "Pinterest"
	PlatformFlickr    = "Flickr"
)

// ImageRecord is a single image result normalized across sources.
// URL and Platform are always set; the remaining fields are omitted from
// serialized output when the source did not provide them. Score carries a
// source-specific popularity signal (Reddit upvotes, Pinterest saves) and
// stays 0 for sources without one.
type ImageRecord struct {
	URL       string `json:"url" yaml:"url"`
	Title     string `json:"title,omitempty" yaml:"title,omitempty"`
	Author    string `json:"author,omitempty" yaml:"author,omitempty"`
	AuthorURL string `json:"author_url,omitempty" yaml:"author_url,omitempty"`
	Platform  string `json:"platform" yaml:"platform"`
	Score     int    `json:"score" yaml:"score"`
	Timestamp string `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	SourceURL string `json:"source_url,omitempty" yaml:"source_url,omitempty"`
}

// QueryResult is the document emitted for one search run: the original
// query, the merged records sorted by score (descending, stable), and their
// count. Images is never nil so an empty run serializes as [].
type QueryResult struct {
	Query       string        `json:"query" yaml:"query"`
	TotalImages int           `json:"total_images" yaml:"total_images"`
	Images      []ImageRecord `json:"images" yaml:"images"`
}
