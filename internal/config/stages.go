package config

import (
	"capsync/internal/chunker"
	"capsync/internal/drift"
	"capsync/internal/pager"
	"capsync/internal/postprocess"
	"capsync/internal/reconcile"
	"capsync/internal/timing"
)

// ValidateOptions returns the timing validation thresholds.
func (c *Config) ValidateOptions() timing.ValidateOptions {
	return timing.ValidateOptions{
		MinCoverageRatio: c.Timing.MinCoverageRatio,
		MaxGapSec:        c.Timing.MaxGapSeconds,
	}
}

// PostprocessOptions returns the word cleanup settings.
func (c *Config) PostprocessOptions() postprocess.Options {
	return postprocess.Options{
		MergeSplitWords:   c.Postprocess.MergeSplitWords,
		MergeContractions: c.Postprocess.MergeContractions,
		FixOverlaps:       c.Postprocess.FixOverlaps,
		MinDurationMs:     c.Postprocess.MinDurationMs,
	}
}

// ReconcileOptions returns the script alignment settings.
func (c *Config) ReconcileOptions() reconcile.Options {
	return reconcile.Options{
		MinSimilarity:       c.Reconcile.MinSimilarity,
		PreservePunctuation: c.Reconcile.PreservePunctuation,
		MaxLookahead:        c.Reconcile.MaxLookahead,
	}
}

// DriftOptions returns the drift analysis tolerances.
func (c *Config) DriftOptions() drift.Options {
	return drift.Options{
		ToleranceMs:     c.Drift.ToleranceMs,
		StepThresholdMs: c.Drift.StepThresholdMs,
	}
}

// ChunkerConfig returns the caption segmentation settings.
func (c *Config) ChunkerConfig() chunker.Config {
	cfg := chunker.Config{
		MaxWordsPerChunk:  c.Chunker.MaxWordsPerChunk,
		MinWordsPerChunk:  c.Chunker.MinWordsPerChunk,
		MaxCharsPerSecond: c.Chunker.MaxCharsPerSecond,
		MinOnScreenMs:     c.Chunker.MinOnScreenMs,
		PauseGapMs:        c.Chunker.PauseGapMs,
	}
	for _, t := range c.Chunker.EmphasisTypes {
		cfg.EmphasisTypes = append(cfg.EmphasisTypes, chunker.EmphasisType(t))
	}
	return cfg
}

// PagerConfig returns the legacy page layout settings.
func (c *Config) PagerConfig() pager.Config {
	return pager.Config{
		MaxCharsPerLine: c.Pager.MaxCharsPerLine,
		MaxLinesPerPage: c.Pager.MaxLinesPerPage,
		MaxWordsPerPage: c.Pager.MaxWordsPerPage,
		MaxGapMs:        c.Pager.MaxGapMs,
	}
}
