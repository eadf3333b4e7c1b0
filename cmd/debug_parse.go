package cmd

import (
	"fmt"

	"imagescout/internal/markdown"

	"github.com/spf13/cobra"
)

// debugParseCmd round-trips a rendered gallery file: parse it back and
// print the frontmatter keys and body size.
var debugParseCmd = &cobra.Command{
	Use:   "debug-parse <gallery_path>",
	Short: "Debug: parse a gallery file and print frontmatter keys",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := markdown.ParseFile(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprint(out, "frontmatter keys: ")
		first := true
		for k := range doc.Frontmatter {
			if !first {
				fmt.Fprint(out, ", ")
			}
			fmt.Fprint(out, k)
			first = false
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "body bytes: %d\n", len(doc.Body))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(debugParseCmd)
}
