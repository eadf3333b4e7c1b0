package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"imagescout/internal/cache"
	"imagescout/internal/config"
	"imagescout/internal/flickr"
	"imagescout/internal/model"
	"imagescout/internal/pinterest"
	"imagescout/internal/reddit"
	"imagescout/internal/redisclient"
	"imagescout/internal/scout"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	searchMax     int
	searchSources []string
	searchFormat  string
	searchOutput  string
)

// searchCmd runs one search across the enabled sources and emits the merged
// document.
var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search the enabled sources and print the merged, ranked result",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		cfg := GetConfig()

		max := searchMax
		if !cmd.Flags().Changed("max-images") {
			max = cfg.Search.MaxImages
		}
		names := searchSources
		if !cmd.Flags().Changed("sources") {
			names = cfg.Search.Sources
		}
		format := strings.ToLower(searchFormat)
		if format != "json" && format != "yaml" {
			return fmt.Errorf("unknown format: %q (valid: json, yaml)", searchFormat)
		}

		srcs, closeFn, err := buildSources(cfg, names)
		if err != nil {
			return err
		}
		defer closeFn()

		res := scout.Aggregate(context.Background(), query, max, srcs)

		out := cmd.OutOrStdout()
		if searchOutput != "" {
			f, err := os.Create(searchOutput)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}
		switch format {
		case "yaml":
			enc := yaml.NewEncoder(out)
			defer enc.Close()
			return enc.Encode(res)
		default:
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVarP(&searchMax, "max-images", "n", 20, "maximum images per source")
	searchCmd.Flags().StringSliceVar(&searchSources, "sources", []string{"reddit", "pinterest", "flickr"}, "sources to search")
	searchCmd.Flags().StringVar(&searchFormat, "format", "json", "output format (json or yaml)")
	searchCmd.Flags().StringVarP(&searchOutput, "output", "o", "", "write the document to a file instead of stdout")
}

// buildSources resolves enabled source names into clients, in the fixed
// reddit, pinterest, flickr order regardless of how names are given. Unknown
// names are rejected before any network call. With the cache enabled each
// source is wrapped in the Redis-backed result cache; the returned close
// function releases the Redis connection and is a no-op otherwise.
func buildSources(cfg config.Config, names []string) ([]scout.Searcher, func(), error) {
	enabled := map[string]bool{}
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		switch n {
		case "reddit", "pinterest", "flickr":
			enabled[n] = true
		default:
			return nil, nil, fmt.Errorf("unknown source: %q (valid: reddit, pinterest, flickr)", n)
		}
	}

	timeout, err := time.ParseDuration(cfg.Search.Timeout)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid search.timeout: %w", err)
	}

	var srcs []scout.Searcher
	if enabled["reddit"] {
		srcs = append(srcs, reddit.NewClient(reddit.Config{
			BaseURL:         cfg.Sources.Reddit.BaseURL,
			UserAgent:       cfg.Sources.Reddit.UserAgent,
			Subreddits:      cfg.Sources.Reddit.Subreddits,
			ExcludeKeywords: cfg.Sources.Reddit.ExcludeKeywords,
			PageLimit:       cfg.Sources.Reddit.PageLimit,
			Timeout:         timeout,
		}))
	}
	if enabled["pinterest"] {
		srcs = append(srcs, pinterest.NewClient(pinterest.Config{
			BaseURL:   cfg.Sources.Pinterest.BaseURL,
			UserAgent: cfg.Sources.Pinterest.UserAgent,
			Timeout:   timeout,
		}))
	}
	if enabled["flickr"] {
		srcs = append(srcs, flickr.NewClient(flickr.Config{
			FeedURL: cfg.Sources.Flickr.FeedURL,
			Timeout: timeout,
		}))
	}

	closeFn := func() {}
	if cfg.Cache.Enabled {
		ttl, err := time.ParseDuration(cfg.Cache.TTL)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid cache.ttl: %w", err)
		}
		rdb := redisclient.New(cfg.Redis)
		store := cache.NewStore(rdb, ttl)
		for i, s := range srcs {
			srcs[i] = store.Wrap(s)
		}
		closeFn = func() { _ = rdb.Close() }
	}
	return srcs, closeFn, nil
}

// runSearch is the shared core for the gallery command.
func runSearch(cfg config.Config, query string, max int, names []string) (model.QueryResult, error) {
	srcs, closeFn, err := buildSources(cfg, names)
	if err != nil {
		return model.QueryResult{}, err
	}
	defer closeFn()
	return scout.Aggregate(context.Background(), query, max, srcs), nil
}
