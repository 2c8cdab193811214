package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"capsync/internal/drift"
	"capsync/internal/pipeline"
	"capsync/internal/postprocess"
	"capsync/internal/reconcile"
	"capsync/internal/store"
	"capsync/internal/words"
)

// runStats is the per-run statistics blob persisted alongside run history.
type runStats struct {
	Repaired       bool              `json:"repaired"`
	RepairReason   string            `json:"repair_reason,omitempty"`
	Postprocess    postprocess.Stats `json:"postprocess"`
	Reconcile      *reconcile.Stats  `json:"reconcile,omitempty"`
	Drift          *drift.Analysis   `json:"drift,omitempty"`
	DriftCorrected bool              `json:"drift_corrected"`
}

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var (
		duration   float64
		scriptPath string
		refPath    string
		outputPath string
		legacy     bool
		jsonOut    bool
		noSave     bool
	)

	cmd := &cobra.Command{
		Use:   "process <transcript>",
		Short: "Run the full synchronization pipeline on a transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}

			ws, totalDuration, err := loadTranscript(args[0], duration)
			if err != nil {
				return err
			}

			opts := pipeline.FromConfig(cfg)
			opts.Logger = logger
			opts.Legacy = legacy
			if scriptPath != "" {
				opts.Script, err = readScript(scriptPath)
				if err != nil {
					return err
				}
			}
			if refPath != "" {
				opts.ExpectedStarts, err = loadExpectedStarts(refPath)
				if err != nil {
					return err
				}
				opts.DriftEnabled = true
			}

			result, err := pipeline.Run(cmd.Context(), ws, totalDuration, opts)
			if err != nil {
				return err
			}

			doc := runDocument{
				Words:  result.Words,
				Chunks: result.Chunks,
				Pages:  result.Pages,
			}
			docJSON, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal output: %w", err)
			}
			docJSON = append(docJSON, '\n')

			var savedID string
			if !noSave {
				savedID, err = persistRun(cmd, ctx, args[0], cfg.Language, result, string(docJSON))
				if err != nil {
					return err
				}
			}

			if outputPath != "" {
				if err := writeOutputFile(outputPath, docJSON); err != nil {
					return err
				}
			}

			if jsonOut {
				return writeJSON(cmd, doc)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Processed %d words in %s mode\n", len(result.Words), result.Mode)
			if result.Repaired {
				fmt.Fprintf(out, "Timings repaired (%s)\n", result.RepairReason)
			}
			if result.Reconcile != nil {
				s := result.Reconcile
				fmt.Fprintf(out, "Reconciled against script: %d direct, %d compound, %d relocated, %d pass-through\n",
					s.Direct, s.Compound, s.Relocated, s.PassThrough)
			}
			if result.Drift != nil {
				fmt.Fprintf(out, "Drift: %s (%s, corrected: %s)\n",
					result.Drift.Pattern, result.Drift.Severity, yesNo(result.DriftCorrected))
			}
			if result.Mode == pipeline.ModePages {
				fmt.Fprintf(out, "Pages: %d\n", len(result.Pages))
			} else {
				fmt.Fprintf(out, "Chunks: %d\n", len(result.Chunks))
			}
			if savedID != "" {
				fmt.Fprintf(out, "Saved run %s\n", savedID)
			}
			if outputPath != "" {
				fmt.Fprintf(out, "Wrote output to %s\n", outputPath)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&duration, "duration", 0, "Clip duration in seconds (default: last word end time)")
	cmd.Flags().StringVar(&scriptPath, "script", "", "Reference script for word reconciliation")
	cmd.Flags().StringVar(&refPath, "reference", "", "Reference transcript for drift analysis")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write result JSON to this path")
	cmd.Flags().BoolVar(&legacy, "legacy", false, "Emit fixed pages instead of chunks")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print result JSON to stdout")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Skip recording the run in history")

	return cmd
}

func persistRun(cmd *cobra.Command, ctx *commandContext, inputPath, language string, result pipeline.Result, outputJSON string) (string, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return "", err
	}
	db, err := store.Open(cfg)
	if err != nil {
		return "", fmt.Errorf("open run history: %w", err)
	}
	defer db.Close()

	stats := runStats{
		Repaired:       result.Repaired,
		RepairReason:   result.RepairReason,
		Postprocess:    result.Postprocess,
		Reconcile:      result.Reconcile,
		Drift:          result.Drift,
		DriftCorrected: result.DriftCorrected,
	}
	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return "", fmt.Errorf("marshal run stats: %w", err)
	}
	wordsJSON, err := words.Encode(result.Words)
	if err != nil {
		return "", err
	}

	run := store.Run{
		InputPath:      strings.TrimSpace(inputPath),
		Language:       language,
		Mode:           result.Mode,
		WordCount:      len(result.Words),
		Repaired:       result.Repaired,
		DriftCorrected: result.DriftCorrected,
		StatsJSON:      string(statsJSON),
		WordsJSON:      string(wordsJSON),
		OutputJSON:     outputJSON,
	}
	if result.Mode == pipeline.ModePages {
		run.ChunkCount = len(result.Pages)
	} else {
		run.ChunkCount = len(result.Chunks)
	}
	if result.Drift != nil {
		run.DriftPattern = string(result.Drift.Pattern)
		run.DriftSeverity = string(result.Drift.Severity)
	}

	saved, err := db.SaveRun(cmd.Context(), run)
	if err != nil {
		return "", fmt.Errorf("save run: %w", err)
	}

	if cfg.Store.RetentionDays > 0 {
		cutoff := time.Now().UTC().AddDate(0, 0, -cfg.Store.RetentionDays)
		if _, err := db.Prune(cmd.Context(), cutoff); err != nil {
			return "", fmt.Errorf("prune run history: %w", err)
		}
	}
	return saved.ID, nil
}
