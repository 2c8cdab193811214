package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"capsync/internal/chunker"
	"capsync/internal/config"
	"capsync/internal/drift"
	"capsync/internal/logging"
	"capsync/internal/pager"
	"capsync/internal/postprocess"
	"capsync/internal/reconcile"
	"capsync/internal/timing"
	"capsync/internal/words"
)

// Options carries per-stage settings for one pipeline run.
type Options struct {
	Validate      timing.ValidateOptions
	RepairEnabled bool

	Postprocess postprocess.Options

	// Script is the reference text. Empty disables reconciliation.
	Script    string
	Reconcile reconcile.Options

	// ExpectedStarts pairs words with reference start times for drift
	// analysis. Empty disables the drift stage.
	ExpectedStarts   []float64
	DriftEnabled     bool
	DriftAutoCorrect bool
	Drift            drift.Options

	// Legacy selects fixed-page output instead of chunks.
	Legacy  bool
	Chunker chunker.Config
	Pager   pager.Config

	Logger *slog.Logger
}

// FromConfig builds run options from application configuration.
func FromConfig(cfg *config.Config) Options {
	return Options{
		Validate:         cfg.ValidateOptions(),
		RepairEnabled:    cfg.Timing.RepairEnabled,
		Postprocess:      cfg.PostprocessOptions(),
		Reconcile:        cfg.ReconcileOptions(),
		DriftEnabled:     cfg.Drift.Enabled,
		DriftAutoCorrect: cfg.Drift.AutoCorrect,
		Drift:            cfg.DriftOptions(),
		Chunker:          cfg.ChunkerConfig(),
		Pager:            cfg.PagerConfig(),
	}
}

// Result aggregates the pipeline output and per-stage statistics.
type Result struct {
	// Words is the cleaned word sequence in seconds.
	Words []words.Word
	// Chunks is set in chunk mode, Pages in legacy mode.
	Chunks []chunker.CaptionChunk
	Pages  []pager.Page
	Mode   string

	Repaired     bool
	RepairReason string

	Postprocess    postprocess.Stats
	Reconcile      *reconcile.Stats
	Drift          *drift.Analysis
	DriftCorrected bool
}

// Modes for Result.Mode.
const (
	ModeChunks = "chunks"
	ModePages  = "pages"
)

// Run executes the pipeline over a word sequence. totalDurationSec is the
// known clip length used for validation and repair. Stage packages stay
// pure; all logging happens here.
func Run(ctx context.Context, ws []words.Word, totalDurationSec float64, opts Options) (Result, error) {
	logger := logging.WithComponent(opts.Logger, "pipeline")
	result := Result{Mode: ModeChunks}
	if opts.Legacy {
		result.Mode = ModePages
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	current, err := validateStage(ws, totalDurationSec, opts, &result, logger)
	if err != nil {
		return result, err
	}

	current, result.Postprocess = postprocess.ProcessWithStats(current, opts.Postprocess)
	if result.Postprocess.Total() > 0 {
		logger.Debug("post-processing adjusted words",
			logging.Int("split_word_merges", result.Postprocess.SplitWordMerges),
			logging.Int("contraction_merges", result.Postprocess.ContractionMerges),
			logging.Int("repeated_char_merges", result.Postprocess.RepeatedCharMerges),
			logging.Int("artifacts_dropped", result.Postprocess.ArtifactsDropped),
			logging.Int("overlaps_fixed", result.Postprocess.OverlapsFixed),
			logging.Int("durations_extended", result.Postprocess.DurationsExtended))
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	if opts.Script != "" {
		reconciled, stats := reconcile.ReconcileWithStats(current, opts.Script, opts.Reconcile)
		current = reconciled
		result.Reconcile = &stats
		logger.Debug("script reconciliation complete",
			logging.Int("direct", stats.Direct),
			logging.Int("compound", stats.Compound),
			logging.Int("relocated", stats.Relocated),
			logging.Int("pass_through", stats.PassThrough))
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	if opts.DriftEnabled && len(opts.ExpectedStarts) > 0 {
		current = driftStage(current, opts, &result, logger)
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	result.Words = current
	timed := chunker.FromSeconds(current)
	if opts.Legacy {
		result.Pages = pager.Paginate(timed, opts.Pager)
		logger.Info("pagination complete",
			logging.Int(logging.FieldWordCount, len(current)),
			logging.Int("pages", len(result.Pages)))
	} else {
		result.Chunks = chunker.Chunk(timed, opts.Chunker)
		logger.Info("chunking complete",
			logging.Int(logging.FieldWordCount, len(current)),
			logging.Int("chunks", len(result.Chunks)))
	}

	return result, nil
}

func validateStage(ws []words.Word, totalDurationSec float64, opts Options, result *Result, logger *slog.Logger) ([]words.Word, error) {
	err := timing.Validate(ws, totalDurationSec, opts.Validate)
	if err == nil {
		return ws, nil
	}

	var verr *timing.ValidationError
	if !errors.As(err, &verr) {
		return nil, err
	}
	if !opts.RepairEnabled {
		return nil, fmt.Errorf("timing rejected and repair disabled: %w", verr)
	}

	repaired := timing.Repair(ws, totalDurationSec)
	if repaired == nil {
		return nil, fmt.Errorf("timing unrepairable: %w", verr)
	}
	result.Repaired = true
	result.RepairReason = string(verr.Issue)
	logger.Warn("word timings rebuilt proportionally",
		logging.String("issue", string(verr.Issue)),
		logging.Int("word_index", verr.WordIndex),
		logging.String("word", verr.Word))
	return repaired, nil
}

func driftStage(current []words.Word, opts Options, result *Result, logger *slog.Logger) []words.Word {
	n := len(current)
	if len(opts.ExpectedStarts) < n {
		n = len(opts.ExpectedStarts)
	}
	if n != len(current) {
		logger.Warn("drift reference length differs from word count",
			logging.Int("reference", len(opts.ExpectedStarts)),
			logging.Int(logging.FieldWordCount, len(current)))
	}

	samples := make([]drift.Sample, n)
	for i := 0; i < n; i++ {
		samples[i] = drift.Sample{Word: current[i], ExpectedStart: opts.ExpectedStarts[i]}
	}

	analysis := drift.Analyze(samples, opts.Drift)
	result.Drift = &analysis
	logger.Info("drift analysis complete",
		logging.String("pattern", string(analysis.Pattern)),
		logging.String("severity", string(analysis.Severity)),
		logging.String("direction", string(analysis.Direction)),
		logging.Float64("mean_drift_ms", analysis.MeanDriftMs),
		logging.Float64("max_drift_ms", analysis.MaxDriftMs))

	if !opts.DriftAutoCorrect || !analysis.Correctable {
		return current
	}

	corrected := drift.Correct(samples, analysis)
	if n < len(current) {
		corrected = append(corrected, current[n:]...)
	}
	result.DriftCorrected = true
	logger.Info("drift corrected",
		logging.String("pattern", string(analysis.Pattern)),
		logging.Int(logging.FieldWordCount, len(corrected)))
	return corrected
}
