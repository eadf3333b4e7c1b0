package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"imagescout/internal/ai"
	"imagescout/internal/gallery"

	"github.com/spf13/cobra"
)

var (
	galleryMax     int
	gallerySources []string
)

// galleryCmd runs a search and renders the result as a Markdown gallery
// document under the configured output directory.
var galleryCmd = &cobra.Command{
	Use:   "gallery <query...>",
	Short: "Search and render a Markdown gallery for the query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		cfg := GetConfig()

		max := galleryMax
		if !cmd.Flags().Changed("max-images") {
			max = cfg.Search.MaxImages
		}
		names := gallerySources
		if !cmd.Flags().Changed("sources") {
			names = cfg.Search.Sources
		}

		res, err := runSearch(cfg, query, max, names)
		if err != nil {
			return err
		}

		// Intro is best-effort: a failed or unconfigured writer just means
		// no intro paragraph.
		var intro string
		if cfg.OpenAI.APIKey != "" && len(res.Images) > 0 {
			writer := ai.NewOpenAI(ai.Config{APIKey: cfg.OpenAI.APIKey, Model: cfg.OpenAI.Model, BaseURL: cfg.OpenAI.BaseURL})
			if s, err := writer.WriteIntro(context.Background(), query, res.Images); err == nil {
				intro = s
			} else {
				slog.Warn("gallery: intro generation failed", "err", err)
			}
		}

		data := gallery.BuildData(res, cfg.Gallery.Title, intro, time.Now())
		content, err := gallery.Render(data)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(cfg.Gallery.OutputDir, 0o755); err != nil {
			return err
		}
		outPath := filepath.Join(cfg.Gallery.OutputDir, data.Slug+".md")
		if err := os.WriteFile(outPath, []byte(content), 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Generated: %s\n", outPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(galleryCmd)
	galleryCmd.Flags().IntVarP(&galleryMax, "max-images", "n", 20, "maximum images per source")
	galleryCmd.Flags().StringSliceVar(&gallerySources, "sources", []string{"reddit", "pinterest", "flickr"}, "sources to search")
}
