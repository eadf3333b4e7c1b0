package gallery

import (
	"strings"
	"testing"
	"time"

	"imagescout/internal/markdown"
	"imagescout/internal/model"

	"github.com/stretchr/testify/require"
)

func sampleResult() model.QueryResult {
	return model.QueryResult{
		Query:       "Kyoto",
		TotalImages: 2,
		Images: []model.ImageRecord{
			{URL: "https://i.redd.it/a.jpg", Title: "Sunset in Kyoto", Author: "jane", AuthorURL: "https://reddit.com/u/jane", Platform: model.PlatformReddit, Score: 42, SourceURL: "https://reddit.com/r/x/1/"},
			{URL: "https://live.staticflickr.com/1/1_b.jpg", Platform: model.PlatformFlickr},
		},
	}
}

func TestRenderRoundTrip(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC)
	data := BuildData(sampleResult(), "", "A stroll through the old capital.", now)
	require.Equal(t, "Images of Kyoto", data.Title)
	require.Equal(t, "gallery-kyoto-20260829", data.Slug)

	content, err := Render(data)
	require.NoError(t, err)

	doc, err := markdown.Parse(strings.NewReader(content))
	require.NoError(t, err)
	for _, key := range []string{"title", "query", "slug", "generated", "total"} {
		require.Contains(t, doc.Frontmatter, key)
	}
	require.Equal(t, "Kyoto", doc.Frontmatter["query"])
	require.Equal(t, 2, doc.Frontmatter["total"])
	require.Contains(t, doc.Body, "A stroll through the old capital.")
	require.Contains(t, doc.Body, "## Sunset in Kyoto")
	require.Contains(t, doc.Body, "![Sunset in Kyoto](https://i.redd.it/a.jpg)")
	require.Contains(t, doc.Body, "[jane](https://reddit.com/u/jane)")
	require.Contains(t, doc.Body, "score 42")
	require.Contains(t, doc.Body, "## Untitled")
	require.Contains(t, doc.Body, "From Flickr")
}

func TestBuildDataTitleTemplate(t *testing.T) {
	now := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	data := BuildData(sampleResult(), "{.Query} gallery, {.CurrentDate}", "", now)
	require.Equal(t, "Kyoto gallery, 2026-08-29", data.Title)
}

func TestExpandVars(t *testing.T) {
	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "Paris on 2026-01-02", ExpandVars("{.Query} on {.CurrentDate}", "Paris", now))
	require.Equal(t, "", ExpandVars("", "Paris", now))
	require.Equal(t, "plain", ExpandVars("plain", "Paris", now))
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Paris France", "paris-france"},
		{"  Tokyo,  Japan!  ", "tokyo-japan"},
		{"kyoto", "kyoto"},
		{"--", ""},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Slugify(tt.in), "input %q", tt.in)
	}
}
