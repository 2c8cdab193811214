package config

const (
	defaultDataDir           = "~/.local/share/capsync"
	defaultStorePath         = "~/.local/share/capsync/capsync.db"
	defaultStoreRetention    = 90
	defaultLanguage          = "en"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	defaultMinCoverageRatio  = 0.85
	defaultMaxGapSeconds     = 0.5
	defaultMinDurationMs     = 100
	defaultMinSimilarity     = 0.6
	defaultMaxLookahead      = 3
	defaultDriftToleranceMs  = 30
	defaultStepThresholdMs   = 200
	defaultMaxWordsPerChunk  = 5
	defaultMinWordsPerChunk  = 2
	defaultMaxCharsPerSecond = 15
	defaultMinOnScreenMs     = 350
	defaultPauseGapMs        = 500
	defaultMaxCharsPerLine   = 32
	defaultMaxLinesPerPage   = 2
	defaultMaxWordsPerPage   = 12
	defaultPageMaxGapMs      = 1000
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
		},
		Language: defaultLanguage,
		Timing: Timing{
			MinCoverageRatio: defaultMinCoverageRatio,
			MaxGapSeconds:    defaultMaxGapSeconds,
			RepairEnabled:    true,
		},
		Postprocess: Postprocess{
			MergeSplitWords:   true,
			MergeContractions: true,
			FixOverlaps:       true,
			MinDurationMs:     defaultMinDurationMs,
		},
		Reconcile: Reconcile{
			MinSimilarity:       defaultMinSimilarity,
			PreservePunctuation: true,
			MaxLookahead:        defaultMaxLookahead,
		},
		Drift: Drift{
			Enabled:         true,
			AutoCorrect:     true,
			ToleranceMs:     defaultDriftToleranceMs,
			StepThresholdMs: defaultStepThresholdMs,
		},
		Chunker: Chunker{
			MaxWordsPerChunk:  defaultMaxWordsPerChunk,
			MinWordsPerChunk:  defaultMinWordsPerChunk,
			MaxCharsPerSecond: defaultMaxCharsPerSecond,
			MinOnScreenMs:     defaultMinOnScreenMs,
			PauseGapMs:        defaultPauseGapMs,
		},
		Pager: Pager{
			MaxCharsPerLine: defaultMaxCharsPerLine,
			MaxLinesPerPage: defaultMaxLinesPerPage,
			MaxWordsPerPage: defaultMaxWordsPerPage,
			MaxGapMs:        defaultPageMaxGapMs,
		},
		Store: Store{
			Path:          defaultStorePath,
			RetentionDays: defaultStoreRetention,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
