package worker

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"imagescout/internal/ai"
	"imagescout/internal/gallery"
	"imagescout/internal/scout"
)

// SearchRefresher re-runs a search on an interval and rewrites the result
// document under OutputDir. With RenderGallery set it also rewrites the
// Markdown gallery for the query.
type SearchRefresher struct {
	Query         string
	Max           int
	Sources       []scout.Searcher
	Interval      time.Duration
	OutputDir     string
	RenderGallery bool
	TitleTemplate string
	Intro         ai.IntroWriter // optional, gallery only
}

func (w *SearchRefresher) Start(ctx context.Context) error {
	if w.Interval <= 0 {
		w.Interval = time.Hour
	}
	if err := os.MkdirAll(w.OutputDir, 0o755); err != nil {
		return err
	}

	// initial run
	w.runOnce(ctx)

	t := time.NewTicker(w.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			w.runOnce(ctx)
		}
	}
}

func (w *SearchRefresher) runOnce(ctx context.Context) {
	res := scout.Aggregate(ctx, w.Query, w.Max, w.Sources)

	jsonPath := filepath.Join(w.OutputDir, gallery.Slugify(w.Query)+".json")
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		slog.Error("refresher: encode result failed", "query", w.Query, "err", err)
		return
	}
	if err := os.WriteFile(jsonPath, append(b, '\n'), 0o644); err != nil {
		slog.Error("refresher: write result failed", "path", jsonPath, "err", err)
		return
	}
	slog.Info("refresher: result written", "query", w.Query, "path", jsonPath, "total", res.TotalImages)

	if !w.RenderGallery {
		return
	}
	var intro string
	if w.Intro != nil && len(res.Images) > 0 {
		if s, err := w.Intro.WriteIntro(ctx, w.Query, res.Images); err == nil {
			intro = s
		}
	}
	data := gallery.BuildData(res, w.TitleTemplate, intro, time.Now())
	content, err := gallery.Render(data)
	if err != nil {
		slog.Error("refresher: render gallery failed", "query", w.Query, "err", err)
		return
	}
	mdPath := filepath.Join(w.OutputDir, data.Slug+".md")
	if err := os.WriteFile(mdPath, []byte(content), 0o644); err != nil {
		slog.Error("refresher: write gallery failed", "path", mdPath, "err", err)
		return
	}
	slog.Info("refresher: gallery written", "query", w.Query, "path", mdPath)
}
