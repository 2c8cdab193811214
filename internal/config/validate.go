package config

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"

	"capsync/internal/chunker"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLanguage(); err != nil {
		return err
	}
	if err := c.validateTiming(); err != nil {
		return err
	}
	if err := c.validatePostprocess(); err != nil {
		return err
	}
	if err := c.validateReconcile(); err != nil {
		return err
	}
	if err := c.validateDrift(); err != nil {
		return err
	}
	if err := c.validateChunker(); err != nil {
		return err
	}
	if err := c.validatePager(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLanguage() error {
	if _, err := language.Parse(c.Language); err != nil {
		return fmt.Errorf("language: unrecognized tag %q: %w", c.Language, err)
	}
	return nil
}

func (c *Config) validateTiming() error {
	if c.Timing.MinCoverageRatio <= 0 || c.Timing.MinCoverageRatio > 1 {
		return errors.New("timing.min_coverage_ratio must be between 0 and 1")
	}
	if c.Timing.MaxGapSeconds <= 0 {
		return errors.New("timing.max_gap_seconds must be positive")
	}
	return nil
}

func (c *Config) validatePostprocess() error {
	if c.Postprocess.MinDurationMs < 0 {
		return errors.New("postprocess.min_duration_ms must be >= 0")
	}
	return nil
}

func (c *Config) validateReconcile() error {
	if c.Reconcile.MinSimilarity <= 0 || c.Reconcile.MinSimilarity > 1 {
		return errors.New("reconcile.min_similarity must be between 0 and 1")
	}
	if c.Reconcile.MaxLookahead < 2 {
		return errors.New("reconcile.max_lookahead must be >= 2")
	}
	return nil
}

func (c *Config) validateDrift() error {
	if c.Drift.ToleranceMs <= 0 {
		return errors.New("drift.tolerance_ms must be positive")
	}
	if c.Drift.StepThresholdMs <= c.Drift.ToleranceMs {
		return errors.New("drift.step_threshold_ms must be greater than drift.tolerance_ms")
	}
	return nil
}

func (c *Config) validateChunker() error {
	if err := ensurePositiveMap(map[string]int{
		"chunker.max_words_per_chunk": c.Chunker.MaxWordsPerChunk,
		"chunker.min_words_per_chunk": c.Chunker.MinWordsPerChunk,
	}); err != nil {
		return err
	}
	if c.Chunker.MinWordsPerChunk > c.Chunker.MaxWordsPerChunk {
		return errors.New("chunker.min_words_per_chunk must not exceed chunker.max_words_per_chunk")
	}
	if c.Chunker.MaxCharsPerSecond <= 0 {
		return errors.New("chunker.max_chars_per_second must be positive")
	}
	if c.Chunker.MinOnScreenMs <= 0 {
		return errors.New("chunker.min_on_screen_ms must be positive")
	}
	if c.Chunker.PauseGapMs <= 0 {
		return errors.New("chunker.pause_gap_ms must be positive")
	}
	for _, t := range c.Chunker.EmphasisTypes {
		if !knownEmphasisType(t) {
			return fmt.Errorf("chunker.emphasis_types: unknown type %q", t)
		}
	}
	return nil
}

func knownEmphasisType(value string) bool {
	for _, kind := range chunker.AllEmphasisTypes {
		if string(kind) == value {
			return true
		}
	}
	return false
}

func (c *Config) validatePager() error {
	return ensurePositiveMap(map[string]int{
		"pager.max_chars_per_line": c.Pager.MaxCharsPerLine,
		"pager.max_lines_per_page": c.Pager.MaxLinesPerPage,
		"pager.max_words_per_page": c.Pager.MaxWordsPerPage,
		"pager.max_gap_ms":         int(c.Pager.MaxGapMs),
	})
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
