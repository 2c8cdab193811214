package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLanguage()
	c.normalizeTiming()
	c.normalizeReconcile()
	c.normalizeDrift()
	c.normalizeChunker()
	c.normalizePager()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Store.Path) == "" {
		c.Store.Path = defaultStorePath
	}
	if c.Store.Path, err = expandPath(c.Store.Path); err != nil {
		return fmt.Errorf("store.path: %w", err)
	}
	if c.Store.RetentionDays < 0 {
		c.Store.RetentionDays = 0
	}
	return nil
}

func (c *Config) normalizeLanguage() {
	c.Language = strings.TrimSpace(c.Language)
	if c.Language == "" {
		c.Language = defaultLanguage
	}
}

func (c *Config) normalizeTiming() {
	if c.Timing.MinCoverageRatio == 0 {
		c.Timing.MinCoverageRatio = defaultMinCoverageRatio
	}
	if c.Timing.MaxGapSeconds == 0 {
		c.Timing.MaxGapSeconds = defaultMaxGapSeconds
	}
}

func (c *Config) normalizeReconcile() {
	if c.Reconcile.MinSimilarity == 0 {
		c.Reconcile.MinSimilarity = defaultMinSimilarity
	}
	if c.Reconcile.MaxLookahead == 0 {
		c.Reconcile.MaxLookahead = defaultMaxLookahead
	}
}

func (c *Config) normalizeDrift() {
	if c.Drift.ToleranceMs == 0 {
		c.Drift.ToleranceMs = defaultDriftToleranceMs
	}
	if c.Drift.StepThresholdMs == 0 {
		c.Drift.StepThresholdMs = defaultStepThresholdMs
	}
}

func (c *Config) normalizeChunker() {
	if c.Chunker.MaxWordsPerChunk == 0 {
		c.Chunker.MaxWordsPerChunk = defaultMaxWordsPerChunk
	}
	if c.Chunker.MinWordsPerChunk == 0 {
		c.Chunker.MinWordsPerChunk = defaultMinWordsPerChunk
	}
	if c.Chunker.MaxCharsPerSecond == 0 {
		c.Chunker.MaxCharsPerSecond = defaultMaxCharsPerSecond
	}
	if c.Chunker.MinOnScreenMs == 0 {
		c.Chunker.MinOnScreenMs = defaultMinOnScreenMs
	}
	if c.Chunker.PauseGapMs == 0 {
		c.Chunker.PauseGapMs = defaultPauseGapMs
	}
	types := make([]string, 0, len(c.Chunker.EmphasisTypes))
	for _, t := range c.Chunker.EmphasisTypes {
		normalized := strings.ToLower(strings.TrimSpace(t))
		if normalized == "" {
			continue
		}
		types = append(types, normalized)
	}
	c.Chunker.EmphasisTypes = types
}

func (c *Config) normalizePager() {
	if c.Pager.MaxCharsPerLine == 0 {
		c.Pager.MaxCharsPerLine = defaultMaxCharsPerLine
	}
	if c.Pager.MaxLinesPerPage == 0 {
		c.Pager.MaxLinesPerPage = defaultMaxLinesPerPage
	}
	if c.Pager.MaxWordsPerPage == 0 {
		c.Pager.MaxWordsPerPage = defaultMaxWordsPerPage
	}
	if c.Pager.MaxGapMs == 0 {
		c.Pager.MaxGapMs = defaultPageMaxGapMs
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
