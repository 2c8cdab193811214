// Package logging constructs slog loggers with console and JSON handlers
// plus the standardized attribute helpers used across capsync.
package logging
