package cmd

import (
	"context"
	"fmt"
	"time"

	"imagescout/internal/cache"
	"imagescout/internal/redisclient"

	"github.com/spf13/cobra"
)

// cacheCmd groups result-cache utilities.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Result cache utilities",
}

// cachePingCmd pings the configured Redis server.
var cachePingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Ping Redis and print PONG",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		res, err := rdb.Ping(ctx).Result()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), res)
		return nil
	},
}

// cacheClearCmd drops every cached result.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop all cached search results",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()
		store := cache.NewStore(rdb, 0)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		n, err := store.Clear(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "cleared %d cached results\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cachePingCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
