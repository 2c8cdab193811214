package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains data directory configuration.
type Paths struct {
	DataDir string `toml:"data_dir"`
}

// Timing contains configuration for word timing validation and repair.
type Timing struct {
	MinCoverageRatio float64 `toml:"min_coverage_ratio"`
	MaxGapSeconds    float64 `toml:"max_gap_seconds"`
	RepairEnabled    bool    `toml:"repair_enabled"`
}

// Postprocess contains configuration for the word cleanup stages.
type Postprocess struct {
	MergeSplitWords   bool    `toml:"merge_split_words"`
	MergeContractions bool    `toml:"merge_contractions"`
	FixOverlaps       bool    `toml:"fix_overlaps"`
	MinDurationMs     float64 `toml:"min_duration_ms"`
}

// Reconcile contains configuration for script reconciliation.
type Reconcile struct {
	MinSimilarity       float64 `toml:"min_similarity"`
	PreservePunctuation bool    `toml:"preserve_punctuation"`
	MaxLookahead        int     `toml:"max_lookahead"`
}

// Drift contains configuration for drift analysis and correction.
type Drift struct {
	Enabled         bool    `toml:"enabled"`
	AutoCorrect     bool    `toml:"auto_correct"`
	ToleranceMs     float64 `toml:"tolerance_ms"`
	StepThresholdMs float64 `toml:"step_threshold_ms"`
}

// Chunker contains configuration for caption chunk segmentation.
type Chunker struct {
	MaxWordsPerChunk  int      `toml:"max_words_per_chunk"`
	MinWordsPerChunk  int      `toml:"min_words_per_chunk"`
	MaxCharsPerSecond float64  `toml:"max_chars_per_second"`
	MinOnScreenMs     float64  `toml:"min_on_screen_ms"`
	PauseGapMs        float64  `toml:"pause_gap_ms"`
	EmphasisTypes     []string `toml:"emphasis_types"`
}

// Pager contains configuration for the legacy page layout.
type Pager struct {
	MaxCharsPerLine int     `toml:"max_chars_per_line"`
	MaxLinesPerPage int     `toml:"max_lines_per_page"`
	MaxWordsPerPage int     `toml:"max_words_per_page"`
	MaxGapMs        float64 `toml:"max_gap_ms"`
}

// Store contains configuration for run history persistence.
type Store struct {
	Path          string `toml:"path"`
	RetentionDays int    `toml:"retention_days"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for capsync.
//
// Configuration sections by subsystem:
//   - Paths: data directory for run history and scratch files
//   - Timing: validation thresholds and proportional repair
//   - Postprocess: split-word merges, artifact cleanup, overlap fixes
//   - Reconcile: script alignment thresholds
//   - Drift: drift detection tolerances and auto-correction
//   - Chunker: caption segmentation limits and emphasis detectors
//   - Pager: legacy fixed-page layout limits
//   - Store: run history database location and retention
//   - Logging: log format and level
type Config struct {
	Language    string      `toml:"language"`
	Paths       Paths       `toml:"paths"`
	Timing      Timing      `toml:"timing"`
	Postprocess Postprocess `toml:"postprocess"`
	Reconcile   Reconcile   `toml:"reconcile"`
	Drift       Drift       `toml:"drift"`
	Chunker     Chunker     `toml:"chunker"`
	Pager       Pager       `toml:"pager"`
	Store       Store       `toml:"store"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/capsync/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The boolean reports
// whether a config file was actually found.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("capsync.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the data directory tree needed for persistence.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, filepath.Dir(c.Store.Path)} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
