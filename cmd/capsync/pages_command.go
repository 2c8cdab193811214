package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"capsync/internal/chunker"
	"capsync/internal/pager"
)

func newPagesCommand(ctx *commandContext) *cobra.Command {
	var (
		duration   float64
		outputPath string
		jsonOut    bool
	)

	cmd := &cobra.Command{
		Use:   "pages <transcript>",
		Short: "Segment a transcript into fixed caption pages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			ws, _, err := loadTranscript(args[0], duration)
			if err != nil {
				return err
			}

			pages := pager.Paginate(chunker.FromSeconds(ws), cfg.PagerConfig())
			doc := runDocument{Words: ws, Pages: pages}

			if outputPath != "" {
				data, err := json.MarshalIndent(doc, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal output: %w", err)
				}
				if err := writeOutputFile(outputPath, append(data, '\n')); err != nil {
					return err
				}
			}
			if jsonOut {
				return writeJSON(cmd, doc)
			}

			out := cmd.OutOrStdout()
			if len(pages) == 0 {
				fmt.Fprintln(out, "No pages produced")
				return nil
			}
			rows := make([][]string, 0, len(pages))
			for _, p := range pages {
				rows = append(rows, []string{
					formatCount(p.Index),
					formatMs(p.StartMs),
					formatMs(p.EndMs),
					formatCount(len(p.Lines)),
					strings.ReplaceAll(p.Text, "\n", " / "),
				})
			}
			table := renderTable(
				[]string{"#", "Start", "End", "Lines", "Text"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignLeft},
			)
			fmt.Fprintln(out, table)
			if outputPath != "" {
				fmt.Fprintf(out, "Wrote output to %s\n", outputPath)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&duration, "duration", 0, "Clip duration in seconds (default: last word end time)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write result JSON to this path")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print result JSON to stdout")

	return cmd
}
