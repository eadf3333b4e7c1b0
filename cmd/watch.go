package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"imagescout/internal/ai"
	"imagescout/worker"

	"github.com/spf13/cobra"
)

var (
	watchMax     int
	watchSources []string
	watchGallery bool
)

// watchCmd re-runs searches on an interval and keeps the result documents
// fresh under the gallery output directory. Queries come from the arguments
// or, when none are given, from watch.queries in the config.
var watchCmd = &cobra.Command{
	Use:   "watch [query...]",
	Short: "Periodically re-run searches and rewrite their result documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		queries := []string{}
		if len(args) > 0 {
			queries = []string{strings.Join(args, " ")}
		} else {
			queries = append(queries, cfg.Watch.Queries...)
		}
		if len(queries) == 0 {
			return fmt.Errorf("no queries: pass one as arguments or set watch.queries in config")
		}

		max := watchMax
		if !cmd.Flags().Changed("max-images") {
			max = cfg.Search.MaxImages
		}
		names := watchSources
		if !cmd.Flags().Changed("sources") {
			names = cfg.Search.Sources
		}
		interval, err := time.ParseDuration(cfg.Watch.Interval)
		if err != nil {
			return fmt.Errorf("invalid watch.interval: %w", err)
		}

		srcs, closeFn, err := buildSources(cfg, names)
		if err != nil {
			return err
		}
		defer closeFn()

		var intro ai.IntroWriter
		if watchGallery && cfg.OpenAI.APIKey != "" {
			intro = ai.NewOpenAI(ai.Config{APIKey: cfg.OpenAI.APIKey, Model: cfg.OpenAI.Model, BaseURL: cfg.OpenAI.BaseURL})
		}

		ws := make([]worker.Worker, 0, len(queries))
		for _, q := range queries {
			slog.Info("starting search refresher", "query", q, "interval", interval)
			ws = append(ws, &worker.SearchRefresher{
				Query:         q,
				Max:           max,
				Sources:       srcs,
				Interval:      interval,
				OutputDir:     cfg.Gallery.OutputDir,
				RenderGallery: watchGallery,
				TitleTemplate: cfg.Gallery.Title,
				Intro:         intro,
			})
		}
		mgr := worker.NewManager(ws...)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Signal handling for systemd
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			s := <-sigc
			log.Printf("received signal: %s, shutting down", s)
			cancel()
		}()

		return mgr.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().IntVarP(&watchMax, "max-images", "n", 20, "maximum images per source")
	watchCmd.Flags().StringSliceVar(&watchSources, "sources", []string{"reddit", "pinterest", "flickr"}, "sources to search")
	watchCmd.Flags().BoolVar(&watchGallery, "gallery", false, "also rewrite the Markdown gallery on each run")
}
