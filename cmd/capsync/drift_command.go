package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"capsync/internal/drift"
	"capsync/internal/words"
)

type driftReport struct {
	Analysis  drift.Analysis `json:"analysis"`
	Corrected bool           `json:"corrected"`
	Words     []words.Word   `json:"words,omitempty"`
}

func newDriftCommand(ctx *commandContext) *cobra.Command {
	var (
		refPath    string
		correct    bool
		outputPath string
		jsonOut    bool
	)

	cmd := &cobra.Command{
		Use:   "drift <transcript>",
		Short: "Classify systematic timing drift against a reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			ws, _, err := loadTranscript(args[0], 0)
			if err != nil {
				return err
			}
			starts, err := loadExpectedStarts(refPath)
			if err != nil {
				return err
			}
			if len(starts) != len(ws) {
				return fmt.Errorf("reference has %d words, transcript has %d", len(starts), len(ws))
			}

			samples := make([]drift.Sample, len(ws))
			for i, w := range ws {
				samples[i] = drift.Sample{Word: w, ExpectedStart: starts[i]}
			}

			analysis := drift.Analyze(samples, cfg.DriftOptions())
			report := driftReport{Analysis: analysis}

			if correct && analysis.Correctable {
				corrected := drift.Correct(samples, analysis)
				report.Corrected = true
				report.Words = corrected
				if outputPath != "" {
					data, err := words.Encode(corrected)
					if err != nil {
						return err
					}
					if err := writeOutputFile(outputPath, data); err != nil {
						return err
					}
				}
			}

			if jsonOut {
				return writeJSON(cmd, report)
			}

			out := cmd.OutOrStdout()
			rows := [][]string{
				{"Pattern", string(analysis.Pattern)},
				{"Severity", string(analysis.Severity)},
				{"Direction", string(analysis.Direction)},
				{"Mean drift", formatMs(analysis.MeanDriftMs)},
				{"Max drift", formatMs(analysis.MaxDriftMs)},
				{"Correctable", yesNo(analysis.Correctable)},
			}
			switch analysis.Pattern {
			case drift.PatternLinear:
				rows = append(rows, []string{"Slope", fmt.Sprintf("%.4fs/word", analysis.SlopeSecPerWord)})
			case drift.PatternStepped:
				rows = append(rows, []string{"Jumps", formatCount(len(analysis.JumpIndices))})
				rows = append(rows, []string{"Jump magnitude", formatMs(analysis.JumpMagnitudeMs)})
			case drift.PatternProgressive:
				rows = append(rows, []string{"Accumulation rate", fmt.Sprintf("%.2fms/word", analysis.AccumulationRate)})
			}
			table := renderTable([]string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignLeft})
			fmt.Fprintln(out, table)

			if correct && !analysis.Correctable {
				fmt.Fprintf(out, "Pattern %s is not correctable; words unchanged\n", analysis.Pattern)
			}
			if report.Corrected && outputPath != "" {
				fmt.Fprintf(out, "Wrote corrected transcript to %s\n", outputPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&refPath, "reference", "", "Reference transcript with expected start times (required)")
	cmd.Flags().BoolVar(&correct, "correct", false, "Remove the drift when the pattern is correctable")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the corrected transcript to this path")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the report as JSON")
	_ = cmd.MarkFlagRequired("reference")

	return cmd
}
