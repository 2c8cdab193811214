// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"capsync/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Store.Path = filepath.Join(base, "data", "capsync.db")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithLanguage overrides the transcript language on the test config.
func WithLanguage(tag string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Language = tag
	}
}
