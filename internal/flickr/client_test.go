package flickr

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"imagescout/internal/model"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{FeedURL: srv.URL})
}

func TestSearchMapsItems(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "osaka", r.URL.Query().Get("tags"))
		require.Equal(t, "json", r.URL.Query().Get("format"))
		require.Equal(t, "1", r.URL.Query().Get("nojsoncallback"))
		fmt.Fprint(w, `{"items":[
			{"title":"Dotonbori at night","link":"https://www.flickr.com/photos/janedoe/1/","author":"nobody@flickr.com (janedoe)","author_url":"https://www.flickr.com/people/janedoe/","published":"2026-08-01T12:00:00Z","media":{"m":"https://live.staticflickr.com/1/1_m.jpg"}}
		]}`)
	})

	got := c.Search(context.Background(), "osaka", 20)
	require.Len(t, got, 1)
	rec := got[0]
	require.Equal(t, "https://live.staticflickr.com/1/1_b.jpg", rec.URL)
	require.Equal(t, "Dotonbori at night", rec.Title)
	require.Equal(t, "janedoe", rec.Author)
	require.Equal(t, "https://www.flickr.com/people/janedoe/", rec.AuthorURL)
	require.Equal(t, model.PlatformFlickr, rec.Platform)
	require.Equal(t, 0, rec.Score)
	require.Equal(t, "2026-08-01T12:00:00Z", rec.Timestamp)
	require.Equal(t, "https://www.flickr.com/photos/janedoe/1/", rec.SourceURL)
}

func TestSearchTruncatesBeforeMapping(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items":[
			{"title":"no media","media":{"m":""}},
			{"title":"kept","media":{"m":"https://live.staticflickr.com/2/2_m.jpg"}},
			{"title":"dropped by cap","media":{"m":"https://live.staticflickr.com/3/3_m.jpg"}}
		]}`)
	})

	got := c.Search(context.Background(), "x", 2)
	require.Len(t, got, 1)
	require.Equal(t, "https://live.staticflickr.com/2/2_b.jpg", got[0].URL)
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"nobody@flickr.com (janedoe)", "janedoe"},
		{"nobody@flickr.com", "nobody@flickr.com"},
		{"", ""},
		{"weird (name) (extra)", "name"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, displayName(tt.in), "input %q", tt.in)
	}
}

func TestSearchNegativeCapYieldsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items":[{"title":"t","media":{"m":"https://live.staticflickr.com/1/1_m.jpg"}}]}`)
	})

	require.Empty(t, c.Search(context.Background(), "x", -1))
}

func TestSearchFailureYieldsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json at all`)
	})

	require.Empty(t, c.Search(context.Background(), "x", 20))
}
