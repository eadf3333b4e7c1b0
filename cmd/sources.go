package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// sourcesCmd lists the known sources, their endpoints, and whether the
// config enables them.
var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the known sources and their endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		enabled := map[string]bool{}
		for _, n := range cfg.Search.Sources {
			enabled[strings.ToLower(strings.TrimSpace(n))] = true
		}
		rows := []struct {
			name     string
			endpoint string
		}{
			{"reddit", cfg.Sources.Reddit.BaseURL + "/r/<sub>/search.json"},
			{"pinterest", cfg.Sources.Pinterest.BaseURL + "/resource/BaseSearchResource/get/"},
			{"flickr", cfg.Sources.Flickr.FeedURL},
		}
		out := cmd.OutOrStdout()
		for _, r := range rows {
			state := "disabled"
			if enabled[r.name] {
				state = "enabled"
			}
			fmt.Fprintf(out, "%-10s %-9s %s\n", r.name, state, r.endpoint)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
