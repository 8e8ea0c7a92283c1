package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"ytcatalog/internal/catalog"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show [path]",
		Short: "Summarize a written catalog",
		Long:  "Reads a catalog file (the configured output path by default) and prints its categories with video counts and newest upload.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := cfg.Output.Path
			if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
				path = strings.TrimSpace(args[0])
			}

			cat, err := catalog.Read(path)
			if err != nil {
				return err
			}
			summary := catalog.Summarize(cat)
			if asJSON {
				return writeJSON(cmd, summary)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Channel:   %s (%s)\n", summary.ChannelName, summary.ChannelID)
			fmt.Fprintf(out, "Generated: %s\n", summary.GeneratedAt)
			if len(summary.PerCategory) == 0 {
				fmt.Fprintln(out, "No categories")
				return nil
			}

			rows := make([][]string, 0, len(summary.PerCategory))
			for _, c := range summary.PerCategory {
				newest := c.Newest
				if newest == "" {
					newest = "-"
				}
				rows = append(rows, []string{c.Title, strconv.Itoa(c.Videos), newest})
			}
			fmt.Fprintln(out, tableView{
				headers: []string{"Category", "Videos", "Newest upload"},
				aligns:  []columnAlignment{alignLeft, alignRight, alignLeft},
				rows:    rows,
				footer:  []string{fmt.Sprintf("%d categories", summary.Categories), strconv.Itoa(summary.Videos), ""},
			}.render())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the summary as JSON")
	return cmd
}
