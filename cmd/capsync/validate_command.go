package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"capsync/internal/timing"
	"capsync/internal/words"
)

type validateReport struct {
	Valid     bool    `json:"valid"`
	WordCount int     `json:"word_count"`
	Duration  float64 `json:"duration_sec"`
	Issue     string  `json:"issue,omitempty"`
	WordIndex int     `json:"word_index,omitempty"`
	Word      string  `json:"word,omitempty"`
	Detail    string  `json:"detail,omitempty"`
	Repaired  bool    `json:"repaired,omitempty"`
}

func newValidateCommand(ctx *commandContext) *cobra.Command {
	var (
		duration   float64
		repair     bool
		outputPath string
		jsonOut    bool
	)

	cmd := &cobra.Command{
		Use:   "validate <transcript>",
		Short: "Check word timings for structural problems",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			ws, totalDuration, err := loadTranscript(args[0], duration)
			if err != nil {
				return err
			}

			report := validateReport{
				Valid:     true,
				WordCount: len(ws),
				Duration:  totalDuration,
			}

			var verr *timing.ValidationError
			if err := timing.Validate(ws, totalDuration, cfg.ValidateOptions()); err != nil {
				if !errors.As(err, &verr) {
					return err
				}
			}
			if verr != nil {
				report.Valid = false
				report.Issue = string(verr.Issue)
				report.WordIndex = verr.WordIndex
				report.Word = verr.Word
				report.Detail = verr.Detail
			}

			if verr != nil && repair {
				repaired := timing.Repair(ws, totalDuration)
				if repaired == nil {
					return fmt.Errorf("timing unrepairable: %w", verr)
				}
				report.Repaired = true
				if outputPath != "" {
					data, err := words.Encode(repaired)
					if err != nil {
						return err
					}
					if err := writeOutputFile(outputPath, data); err != nil {
						return err
					}
				}
			}

			if jsonOut {
				if err := writeJSON(cmd, report); err != nil {
					return err
				}
				if !report.Valid && !report.Repaired {
					return errors.New("timing validation failed")
				}
				return nil
			}

			out := cmd.OutOrStdout()
			if report.Valid {
				fmt.Fprintf(out, "Timing valid: %d words over %s\n", report.WordCount, formatSeconds(report.Duration))
				return nil
			}
			fmt.Fprintf(out, "Timing invalid: %s at word %d %q (%s)\n",
				report.Issue, report.WordIndex, report.Word, report.Detail)
			if report.Repaired {
				fmt.Fprintf(out, "Repaired %d words proportionally\n", report.WordCount)
				if outputPath != "" {
					fmt.Fprintf(out, "Wrote repaired transcript to %s\n", outputPath)
				}
				return nil
			}
			return errors.New("timing validation failed")
		},
	}

	cmd.Flags().Float64Var(&duration, "duration", 0, "Clip duration in seconds (default: last word end time)")
	cmd.Flags().BoolVar(&repair, "repair", false, "Rebuild timings proportionally when validation fails")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the repaired transcript to this path")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the report as JSON")

	return cmd
}
