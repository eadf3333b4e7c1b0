package scout

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"imagescout/internal/model"

	"github.com/stretchr/testify/require"
)

type stubSource struct {
	platform string
	records  []model.ImageRecord
}

func (s *stubSource) Platform() string { return s.platform }

func (s *stubSource) Search(ctx context.Context, query string, max int) []model.ImageRecord {
	if len(s.records) > max {
		return s.records[:max]
	}
	return s.records
}

func rec(platform, url string, score int) model.ImageRecord {
	return model.ImageRecord{URL: url, Platform: platform, Score: score}
}

func TestAggregateSortsByScoreDescending(t *testing.T) {
	a := &stubSource{platform: "Reddit", records: []model.ImageRecord{
		rec("Reddit", "r1", 5), rec("Reddit", "r2", 50),
	}}
	b := &stubSource{platform: "Flickr", records: []model.ImageRecord{
		rec("Flickr", "f1", 10),
	}}

	res := Aggregate(context.Background(), "q", 20, []Searcher{a, b})
	require.Equal(t, "q", res.Query)
	require.Equal(t, 3, res.TotalImages)
	require.Len(t, res.Images, res.TotalImages)
	require.Equal(t, []string{"r2", "f1", "r1"}, urls(res.Images))
}

func TestAggregateStableOnTies(t *testing.T) {
	a := &stubSource{platform: "Reddit", records: []model.ImageRecord{
		rec("Reddit", "r1", 7), rec("Reddit", "r2", 7),
	}}
	b := &stubSource{platform: "Pinterest", records: []model.ImageRecord{
		rec("Pinterest", "p1", 7),
	}}

	res := Aggregate(context.Background(), "q", 20, []Searcher{a, b})
	// Equal scores keep concatenation order: source order first, then each
	// source's emission order.
	require.Equal(t, []string{"r1", "r2", "p1"}, urls(res.Images))
}

func TestAggregateZeroSources(t *testing.T) {
	res := Aggregate(context.Background(), "q", 20, nil)
	require.Equal(t, 0, res.TotalImages)
	require.NotNil(t, res.Images)
	require.Empty(t, res.Images)

	b, err := json.Marshal(res)
	require.NoError(t, err)
	require.Contains(t, string(b), `"images":[]`)
}

func TestAggregateAppliesPerSourceCap(t *testing.T) {
	a := &stubSource{platform: "Reddit", records: []model.ImageRecord{
		rec("Reddit", "r1", 3), rec("Reddit", "r2", 2), rec("Reddit", "r3", 1),
	}}

	res := Aggregate(context.Background(), "q", 2, []Searcher{a})
	require.Equal(t, 2, res.TotalImages)
}

func TestAggregateClampsNegativeCap(t *testing.T) {
	a := &stubSource{platform: "Reddit", records: []model.ImageRecord{
		rec("Reddit", "r1", 1),
	}}

	res := Aggregate(context.Background(), "q", -1, []Searcher{a})
	require.Equal(t, 0, res.TotalImages)
	require.NotNil(t, res.Images)
	require.Empty(t, res.Images)
}

func TestBestEffortAbsorbsFailure(t *testing.T) {
	got := BestEffort("unit", func() ([]model.ImageRecord, error) {
		return nil, errors.New("boom")
	})
	require.Empty(t, got)

	want := []model.ImageRecord{rec("Reddit", "r1", 1)}
	got = BestEffort("unit", func() ([]model.ImageRecord, error) {
		return want, nil
	})
	require.Equal(t, want, got)
}

func urls(records []model.ImageRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.URL)
	}
	return out
}
