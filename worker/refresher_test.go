package worker

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"imagescout/internal/model"
	"imagescout/internal/scout"

	"github.com/stretchr/testify/require"
)

type stubSource struct {
	records []model.ImageRecord
}

func (s *stubSource) Platform() string { return model.PlatformReddit }

func (s *stubSource) Search(ctx context.Context, query string, max int) []model.ImageRecord {
	return s.records
}

func TestRefresherWritesResultAndStopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	w := &SearchRefresher{
		Query:     "Paris France",
		Max:       20,
		Sources:   []scout.Searcher{&stubSource{records: []model.ImageRecord{{URL: "u", Platform: model.PlatformReddit, Score: 1}}}},
		Interval:  time.Hour,
		OutputDir: filepath.Join(dir, "out"),
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	jsonPath := filepath.Join(dir, "out", "paris-france.json")
	require.Eventually(t, func() bool {
		_, err := os.Stat(jsonPath)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)

	b, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var res model.QueryResult
	require.NoError(t, json.Unmarshal(b, &res))
	require.Equal(t, "Paris France", res.Query)
	require.Equal(t, 1, res.TotalImages)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("refresher did not stop after cancellation")
	}
}

func TestRefresherRendersGallery(t *testing.T) {
	dir := t.TempDir()
	w := &SearchRefresher{
		Query:         "Kyoto",
		Max:           5,
		Sources:       []scout.Searcher{&stubSource{records: []model.ImageRecord{{URL: "u", Title: "t", Platform: model.PlatformReddit}}}},
		Interval:      time.Hour,
		OutputDir:     dir,
		RenderGallery: true,
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	mdGlob := filepath.Join(dir, "gallery-kyoto-*.md")
	require.Eventually(t, func() bool {
		m, _ := filepath.Glob(mdGlob)
		return len(m) == 1
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
