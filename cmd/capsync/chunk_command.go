package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"capsync/internal/chunker"
)

func newChunkCommand(ctx *commandContext) *cobra.Command {
	var (
		duration   float64
		outputPath string
		jsonOut    bool
	)

	cmd := &cobra.Command{
		Use:   "chunk <transcript>",
		Short: "Segment a transcript into display chunks",
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

			chunks := chunker.Chunk(chunker.FromSeconds(ws), cfg.ChunkerConfig())
			doc := runDocument{Words: ws, Chunks: chunks}

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
			if len(chunks) == 0 {
				fmt.Fprintln(out, "No chunks produced")
				return nil
			}
			rows := make([][]string, 0, len(chunks))
			for _, c := range chunks {
				rows = append(rows, []string{
					formatCount(c.Index),
					formatMs(c.StartMs),
					formatMs(c.EndMs),
					formatCount(len(c.Words)),
					formatCount(c.CharCount),
					yesNo(c.HasEmphasis),
					c.Text,
				})
			}
			table := renderTable(
				[]string{"#", "Start", "End", "Words", "Chars", "Emphasis", "Text"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft, alignLeft},
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
