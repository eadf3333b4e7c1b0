package scout

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"imagescout/internal/model"
)

// Searcher is a single image source. Search returns up to max normalized
// records for the query; it never fails outward — sources absorb their own
// transport and decoding errors and return what they could collect.
type Searcher interface {
	// Platform returns the label stamped on this source's records.
	Platform() string
	Search(ctx context.Context, query string, max int) []model.ImageRecord
}

// BestEffort runs one unit of fetch work and absorbs its failure: on error
// it logs a diagnostic and returns an empty sequence. Sources use it around
// each external call (a subreddit, a whole endpoint) so that no unit can
// take down the run.
func BestEffort(unit string, fn func() ([]model.ImageRecord, error)) []model.ImageRecord {
	records, err := fn()
	if err != nil {
		slog.Error("search unit failed", "unit", unit, "err", err)
		return nil
	}
	return records
}

// Aggregate queries the sources and merges their results into one
// QueryResult: records are concatenated in the order the sources are given,
// then sorted by score descending. The sort is stable, so equal scores keep
// the concatenation order. Sources run concurrently but each one's output
// lands in its own slot, which keeps the final ordering deterministic.
func Aggregate(ctx context.Context, query string, max int, sources []Searcher) model.QueryResult {
	if max < 0 {
		max = 0
	}
	perSource := make([][]model.ImageRecord, len(sources))
	var wg sync.WaitGroup
	for i, s := range sources {
		wg.Add(1)
		go func(i int, s Searcher) {
			defer wg.Done()
			perSource[i] = s.Search(ctx, query, max)
			slog.Info("source done", "platform", s.Platform(), "count", len(perSource[i]))
		}(i, s)
	}
	wg.Wait()

	images := make([]model.ImageRecord, 0, len(sources)*max)
	for _, records := range perSource {
		images = append(images, records...)
	}
	sort.SliceStable(images, func(i, j int) bool {
		return images[i].Score > images[j].Score
	})
	return model.QueryResult{
		Query:       query,
		TotalImages: len(images),
		Images:      images,
	}
}
